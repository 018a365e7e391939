package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddInvalidSpec(t *testing.T) {
	t.Parallel()

	s := New(context.Background(), nil)
	err := s.Add("ingest", "not a cron", func(context.Context) error { return nil })
	assert.ErrorContains(t, err, "register ingest")
}

func TestScheduler_Next(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	s := New(context.Background(), tokyo)
	require.NoError(t, s.Add("ingest", "0 8 * * *", func(context.Context) error { return nil }))

	s.Start()
	defer s.Stop(context.Background())

	next := s.Next()
	require.Len(t, next, 1)
	assert.Equal(t, 8, next[0].In(tokyo).Hour())
	assert.Equal(t, 0, next[0].In(tokyo).Minute())
}

// TestScheduler_RunsJob はジョブが実行され、失敗しても次回も実行されることを検証します。
func TestScheduler_RunsJob(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	s := New(ctx, nil)
	require.NoError(t, s.Add("flaky", "@every 1s", func(jctx context.Context) error {
		assert.Equal(t, ctx, jctx)
		runs.Add(1)
		return errors.New("upstream down")
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	s.Stop(stopCtx)
}

// TestScheduler_SkipsOverlappingRuns は前回の実行中は次の実行をスキップすることを検証します。
func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	t.Parallel()

	var running, maxRunning atomic.Int32
	release := make(chan struct{})
	s := New(context.Background(), nil)
	require.NoError(t, s.Add("slow", "@every 1s", func(context.Context) error {
		n := running.Add(1)
		defer running.Add(-1)
		if n > maxRunning.Load() {
			maxRunning.Store(n)
		}
		<-release
		return nil
	}))

	s.Start()
	time.Sleep(2500 * time.Millisecond)
	close(release)

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Stop(stopCtx)

	assert.Equal(t, int32(1), maxRunning.Load())
}
