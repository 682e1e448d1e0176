package shared

import (
	"context"
	"strings"
	"time"
)

// SubmissionGuard suppresses repeats of the same public form submission
// within a time window.
type SubmissionGuard interface {
	// Claim records key for window. It returns false when key is already held.
	Claim(ctx context.Context, key string, window time.Duration) (bool, error)
	// Release frees key so the submission can be retried.
	Release(ctx context.Context, key string) error
}

// SubmissionKey builds a guard key from a form name and identifying parts.
// Parts are trimmed and lower-cased so that trivial variations collide.
func SubmissionKey(form string, parts ...string) string {
	var b strings.Builder
	b.WriteString(form)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(strings.ToLower(strings.TrimSpace(p)))
	}
	return b.String()
}
