package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CycleRunner runs one poll cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// Poller drives the periodic poll loop. Cycles never overlap: the loop
// blocks on the current cycle before waiting for the next tick. The first
// cycle runs immediately at startup.
type Poller struct {
	runner   CycleRunner
	interval time.Duration
	logger   *zap.Logger
}

// NewPoller creates a poller.
func NewPoller(runner CycleRunner, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Run loops until the context is cancelled. Cycle errors are already logged
// by the runner; the loop always proceeds to the next tick.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("poller started", zap.Duration("interval", p.interval))

	p.runCycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped")
			return
		case <-ticker.C:
			p.runCycle(ctx)
		}
	}
}

func (p *Poller) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.runner.RunCycle(ctx); err != nil {
		p.logger.Warn("cycle ended with error", zap.Error(err))
	}
}
