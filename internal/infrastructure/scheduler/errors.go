package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when a job is triggered on a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrJobNotFound is returned when no job has the given name
	ErrJobNotFound = errors.New("job not found")

	// ErrDuplicateJob is returned when two jobs share a name
	ErrDuplicateJob = errors.New("job already registered")

	// ErrInvalidSchedule is returned for cron expressions that do not parse
	ErrInvalidSchedule = errors.New("invalid cron schedule")
)
