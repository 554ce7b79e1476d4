package booking

import (
	"context"
	"errors"
	"time"

	"github.com/dineflow/dineflow/internal/domain"
)

// withRetry runs fn up to cfg.TxAttempts times, backing off between
// attempts with doubling delay, retrying only lost atomic-update races.
// Any other outcome, success included, returns immediately.
func (s *Service) withRetry(ctx context.Context, fn func() error) error {
	backoff := s.cfg.TxBackoff

	var err error
	for attempt := 0; attempt < s.cfg.TxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		err = fn()
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
	}

	return err
}
