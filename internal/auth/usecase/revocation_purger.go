package usecase

import (
	"context"
	"log/slog"
	"time"
)

// RevocationPurger periodically deletes revocation records whose tokens have
// expired. Purging is housekeeping only; a failed run is logged and retried on
// the next tick.
type RevocationPurger struct {
	sessions SessionUseCase
	interval time.Duration
	logger   *slog.Logger
}

// NewRevocationPurger creates a purger that runs every interval.
func NewRevocationPurger(sessions SessionUseCase, interval time.Duration, logger *slog.Logger) *RevocationPurger {
	return &RevocationPurger{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Run purges once immediately and then on every tick until ctx is done.
func (p *RevocationPurger) Run(ctx context.Context) error {
	p.logger.Info("starting revocation purger", slog.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.purge(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("revocation purger stopped")
			return nil
		case <-ticker.C:
			p.purge(ctx)
		}
	}
}

func (p *RevocationPurger) purge(ctx context.Context) {
	count, err := p.sessions.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Error("failed to purge revoked tokens", slog.Any("error", err))
		return
	}
	if count > 0 {
		p.logger.Info("purged revoked tokens", slog.Int64("count", count))
	}
}
