package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingRunner struct {
	count int64
	first chan struct{}
	once  atomic.Bool
}

func (r *countingRunner) RunCycle(ctx context.Context) error {
	atomic.AddInt64(&r.count, 1)
	if r.once.CompareAndSwap(false, true) {
		close(r.first)
	}
	return nil
}

func TestPoller_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	runner := &countingRunner{first: make(chan struct{})}
	p := NewPoller(runner, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()

	select {
	case <-runner.first:
	case <-time.After(time.Second):
		t.Fatal("first cycle did not run immediately")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on cancel")
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&runner.count))
}

func TestPoller_TicksRepeatedly(t *testing.T) {
	runner := &countingRunner{first: make(chan struct{})}
	p := NewPoller(runner, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	p.Run(ctx)

	assert.GreaterOrEqual(t, atomic.LoadInt64(&runner.count), int64(3))
}
