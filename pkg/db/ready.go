package db

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-retry"

	"github.com/sea-catering/backend/pkg/config"
	"github.com/sea-catering/backend/pkg/logger"
)

// EnsureReady pings the datasource with bounded exponential backoff so
// request handlers never see a cold connection. Transient startup failures
// are absorbed here, at the adapter boundary.
func (c *Client) EnsureReady(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) error {
	attempts := cfg.ReadyAttempts
	if attempts <= 0 {
		attempts = 5
	}

	backoff := retry.NewExponential(cfg.ReadyBaseDelay)
	backoff = retry.WithMaxRetries(uint64(attempts-1), backoff)
	if cfg.ReadyMaxElapsed > 0 {
		backoff = retry.WithCappedDuration(cfg.ReadyMaxElapsed, backoff)
	}

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := c.Ping(ctx); err != nil {
			if logg != nil {
				pingCtx := logg.WithFields(ctx, map[string]any{"attempt": attempt})
				logg.Warn(pingCtx, "database not ready, retrying")
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("database not ready after %d attempts: %w", attempt, err)
	}
	return nil
}
