package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSweeper struct {
	calls   int
	deleted int64
	err     error
}

func (s *recordingSweeper) DeleteExpired(_ context.Context) (int64, error) {
	s.calls++
	return s.deleted, s.err
}

func TestSweepResetTokens(t *testing.T) {
	t.Run("invokes the sweeper", func(t *testing.T) {
		sweeper := &recordingSweeper{deleted: 3}
		s := NewScheduler(sweeper, zerolog.Nop())

		s.sweepResetTokens()
		assert.Equal(t, 1, sweeper.calls)
	})

	t.Run("sweeper failure does not panic", func(t *testing.T) {
		sweeper := &recordingSweeper{err: errors.New("db down")}
		s := NewScheduler(sweeper, zerolog.Nop())

		s.sweepResetTokens()
		assert.Equal(t, 1, sweeper.calls)
	})
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(&recordingSweeper{}, zerolog.Nop())
	require.NoError(t, s.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
