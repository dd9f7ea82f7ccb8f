package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
)

// DefaultQueryTimeout bounds every store call so a wedged connection surfaces
// as a retryable failure instead of hanging the request.
const DefaultQueryTimeout = 10 * time.Second

func queryContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// wrapStoreErr maps an expired per-call deadline to ErrStoreTimeout. The
// driver may surface its own cancellation error instead of one wrapping
// context.DeadlineExceeded ("pq: canceling statement due to user request"),
// so the timed-out context is checked as well.
func wrapStoreErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrStoreTimeout, err)
	}
	return err
}
