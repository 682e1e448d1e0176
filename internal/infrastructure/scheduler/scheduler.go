// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IST is the firm's local time; schedules are read in it.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// JobStatus represents the outcome of the latest run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Job is a unit of background work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

func (f JobFunc) Name() string                  { return f.JobName }
func (f JobFunc) Run(ctx context.Context) error { return f.Fn(ctx) }

// JobInfo describes a registered job and its latest run
type JobInfo struct {
	Name        string     `json:"name"`
	Schedule    string     `json:"schedule"`
	Status      JobStatus  `json:"status"`
	NextRun     time.Time  `json:"next_run"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	Runs        int        `json:"runs"`
}

type registration struct {
	job     Job
	entryID cron.EntryID
	info    JobInfo
}

// Config holds scheduler configuration
type Config struct {
	// JobTimeout bounds a single run
	JobTimeout time.Duration
	Location   *time.Location
}

// Scheduler runs registered jobs with robfig/cron. A run that is still
// going when its next tick arrives causes that tick to be skipped.
type Scheduler struct {
	cron   *cron.Cron
	config Config
	logger *zap.Logger

	mu      sync.Mutex
	jobs    map[string]*registration
	running bool
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a stopped Scheduler
func New(cfg Config, logger *zap.Logger) *Scheduler {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 2 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = IST
	}
	cronLogger := newCronLogger(logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		config: cfg,
		logger: logger.Named("scheduler"),
		jobs:   make(map[string]*registration),
	}
}

// Register adds job on a standard five field cron schedule
func (s *Scheduler) Register(schedule string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name())
	}

	reg := &registration{
		job:  job,
		info: JobInfo{Name: job.Name(), Schedule: schedule, Status: JobStatusPending},
	}
	id, err := s.cron.AddFunc(schedule, func() { s.execute(reg) })
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSchedule, schedule, err)
	}
	reg.entryID = id
	s.jobs[job.Name()] = reg

	s.logger.Info("Job registered", zap.String("job", job.Name()), zap.String("schedule", schedule))
	return nil
}

// Start begins firing schedules. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.baseCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.running = true
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop stops firing schedules, cancels running jobs and waits for them to
// return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	cronDone := s.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow runs the named job immediately in the background
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrSchedulerNotRunning
	}
	reg, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(reg)
	}()
	return nil
}

// Jobs lists the registered jobs, sorted by name
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, reg := range s.jobs {
		info := reg.info
		info.NextRun = s.cron.Entry(reg.entryID).Next
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (s *Scheduler) execute(reg *registration) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	base := s.baseCtx
	started := time.Now()
	reg.info.Status = JobStatusRunning
	reg.info.StartedAt = &started
	reg.info.Error = ""
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(base, s.config.JobTimeout)
	defer cancel()

	log := s.logger.With(zap.String("job", reg.job.Name()))
	log.Info("Job started")
	err := reg.job.Run(ctx)

	s.mu.Lock()
	completed := time.Now()
	reg.info.CompletedAt = &completed
	reg.info.Runs++
	if err != nil {
		reg.info.Status = JobStatusFailed
		reg.info.Error = err.Error()
	} else {
		reg.info.Status = JobStatusSuccess
	}
	s.mu.Unlock()

	if err != nil {
		log.Error("Job failed", zap.Duration("duration", completed.Sub(started)), zap.Error(err))
		return
	}
	log.Info("Job completed", zap.Duration("duration", completed.Sub(started)))
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func newCronLogger(logger *zap.Logger) cron.Logger {
	return cronLogger{sugar: logger.Named("cron").Sugar()}
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
