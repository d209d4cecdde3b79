package worker

import (
	"context"
	"errors"
	"time"

	"flipper/internal/domain/service/agent"
	"flipper/pkg/contextx"
	"flipper/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type ScanRunner interface {
	Scan(ctx context.Context, req agent.ScanRequest) (agent.ScanResult, error)
}

// Scanner runs an agent scan right away and then on every interval tick.
type Scanner struct {
	agent    ScanRunner
	interval time.Duration
}

func NewScanner(a ScanRunner, interval time.Duration) *Scanner {
	return &Scanner{
		agent:    a,
		interval: interval,
	}
}

// Run blocks until ctx is done. A failed scan is logged and the loop goes on.
func (w *Scanner) Run(ctx context.Context) error {
	if w.interval <= 0 {
		return errors.New("scan interval must be positive")
	}

	logger(ctx).Info("scanner started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.scanOnce(ctx)

		select {
		case <-ctx.Done():
			logger(ctx).Info("scanner stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Scanner) scanOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()

	result, err := w.agent.Scan(ctx, agent.ScanRequest{})
	if err != nil {
		logger(ctx).Error("scheduled scan failed", logx.Error(err))
		return
	}

	logger(ctx).Info("scheduled scan completed",
		"listings", len(result.Listings),
		"buys", len(result.Buys()),
		logx.FieldDurationMs, time.Since(start).Milliseconds(),
	)
}
