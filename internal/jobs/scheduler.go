package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ResetTokenSweeper deletes recovery tokens whose window has passed.
type ResetTokenSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Scheduler runs periodic maintenance. Token expiry is still enforced at
// verification time; the sweep only keeps the reset_tokens table from
// growing without bound.
type Scheduler struct {
	cron   *cron.Cron
	tokens ResetTokenSweeper
	log    zerolog.Logger
}

func NewScheduler(tokens ResetTokenSweeper, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:   c,
		tokens: tokens,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 */1 * * *", s.sweepResetTokens); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish, or for
// ctx to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) sweepResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reset token sweep failed")
		return
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Msg("expired reset tokens swept")
	}
}
