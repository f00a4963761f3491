package captable

import (
	"fmt"
	"log/slog"
	"sync"
)

// CompensatingAction is a deferred update that reverses the aggregate
// effect of an already-committed primary operation, e.g. subtracting a
// deleted record's amount from the company's total funding.
//
// The primary operation commits first and stands regardless of the
// action's outcome; the action is keyed so a replay cannot apply it
// twice.
type CompensatingAction struct {
	// Key makes the action idempotent across retries: one key, one
	// application.
	Key string
	Op  string
	Run func() error
}

// Compensator runs compensating actions and remembers which keys have
// been applied. A failed action stays queued for retry; a succeeded key
// is never run again.
type Compensator struct {
	log *slog.Logger

	mu      sync.Mutex
	applied map[string]bool
	pending map[string]CompensatingAction
}

// NewCompensator creates an empty compensator logging through log.
func NewCompensator(log *slog.Logger) *Compensator {
	if log == nil {
		log = slog.Default()
	}
	return &Compensator{
		log:     log,
		applied: make(map[string]bool),
		pending: make(map[string]CompensatingAction),
	}
}

// Apply runs the action now. On failure the action is queued for Retry
// and a DependentWarning is returned; the caller's primary operation is
// already committed and must not be rolled back.
func (c *Compensator) Apply(a CompensatingAction) error {
	c.mu.Lock()
	if c.applied[a.Key] {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := a.Run(); err != nil {
		c.mu.Lock()
		c.pending[a.Key] = a
		c.mu.Unlock()
		c.log.Warn("compensating action failed, queued for retry",
			"op", a.Op, "key", a.Key, "error", err)
		return &DependentWarning{Op: a.Op, Err: err}
	}

	c.mu.Lock()
	c.applied[a.Key] = true
	delete(c.pending, a.Key)
	c.mu.Unlock()
	return nil
}

// Retry re-runs every pending action. Actions that succeed are marked
// applied; the first failure is reported, the rest keep waiting.
func (c *Compensator) Retry() error {
	c.mu.Lock()
	actions := make([]CompensatingAction, 0, len(c.pending))
	for _, a := range c.pending {
		actions = append(actions, a)
	}
	c.mu.Unlock()

	var firstErr error
	for _, a := range actions {
		if err := c.Apply(a); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Pending reports how many actions await a successful retry.
func (c *Compensator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// compensationKey builds the idempotency key for a record deletion.
func compensationKey(companyID, recordID string) string {
	return fmt.Sprintf("funding-rollback/%s/%s", companyID, recordID)
}
