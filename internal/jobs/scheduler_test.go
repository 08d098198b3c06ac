package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsTasks(t *testing.T) {
	s := NewScheduler(nil, time.Second)
	var calls atomic.Int32
	require.NoError(t, s.Add("typing", "@every 1s", func(ctx context.Context) (int64, error) {
		calls.Add(1)
		return 2, nil
	}))
	s.Start()
	defer s.Stop(context.Background())

	require.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_BadSpec(t *testing.T) {
	s := NewScheduler(nil, 0)
	err := s.Add("x", "not a schedule", func(context.Context) (int64, error) { return 0, nil })
	require.Error(t, err)
}

func TestScheduler_RunSurvivesErrors(t *testing.T) {
	s := NewScheduler(nil, time.Second)
	require.NotPanics(t, func() {
		s.run("invitations", func(context.Context) (int64, error) { return 0, errors.New("db down") })
	})
}

func TestScheduler_StopCancelsRunningTask(t *testing.T) {
	s := NewScheduler(nil, time.Minute)
	started := make(chan struct{})
	var once sync.Once
	require.NoError(t, s.Add("slow", "@every 1s", func(ctx context.Context) (int64, error) {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return 0, ctx.Err()
	}))
	s.Start()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() { s.Stop(ctx); close(done) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
