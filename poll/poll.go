// Package poll implements bounded busy-polling of status registers.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when a condition does not hold within the budget.
var ErrTimeout = errors.New("poll timed out")

// Budget bounds a busy-poll. A zero field does not bound anything, so the
// zero Budget polls forever.
type Budget struct {
	MaxPolls int
	Timeout  time.Duration
}

// Unbounded reports whether the budget never times out.
func (b Budget) Unbounded() bool {
	return b.MaxPolls <= 0 && b.Timeout <= 0
}

// Until evaluates cond until it returns true. It returns the number of
// evaluations, including the final one. The context is checked between
// evaluations.
func Until(ctx context.Context, b Budget, cond func() bool) (int, error) {
	var deadline time.Time
	if b.Timeout > 0 {
		deadline = time.Now().Add(b.Timeout)
	}

	polls := 0
	for {
		polls++
		if cond() {
			return polls, nil
		}

		if b.MaxPolls > 0 && polls >= b.MaxPolls {
			return polls, fmt.Errorf("%w after %d polls", ErrTimeout, polls)
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			return polls, fmt.Errorf("%w after %v", ErrTimeout, b.Timeout)
		}

		if err := ctx.Err(); err != nil {
			return polls, err
		}
	}
}
