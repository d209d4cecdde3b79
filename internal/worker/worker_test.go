package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"flipper/internal/domain/service/agent"
)

type countingRunner struct {
	mu       sync.Mutex
	requests []agent.ScanRequest
	err      error
}

func (r *countingRunner) Scan(_ context.Context, req agent.ScanRequest) (agent.ScanResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return agent.ScanResult{}, r.err
}

func (r *countingRunner) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func TestScanner_Run(t *testing.T) {
	rq := require.New(t)

	runner := &countingRunner{}
	s := NewScanner(runner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	rq.Eventually(func() bool { return runner.calls() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	rq.ErrorIs(<-done, context.Canceled)

	stopped := runner.calls()
	time.Sleep(30 * time.Millisecond)
	rq.Equal(stopped, runner.calls())
}

func TestScanner_KeepsRunningAfterFailure(t *testing.T) {
	runner := &countingRunner{err: errors.New("storage down")}
	s := NewScanner(runner, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return runner.calls() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestScanner_RejectsZeroInterval(t *testing.T) {
	err := NewScanner(&countingRunner{}, 0).Run(context.Background())
	require.Error(t, err)
}

func TestScanTaskHandler(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	runner := &countingRunner{}
	h := NewScanTaskHandler(runner)

	task, err := NewScanTask(ScanPayload{MaxPerMarketplace: 7, Category: "gaming"})
	rq.NoError(err)
	rq.Equal(TypeScan, task.Type())
	rq.NoError(h.Handle(ctx, task))

	rq.NoError(h.Handle(ctx, asynq.NewTask(TypeScan, nil)))

	err = h.Handle(ctx, asynq.NewTask(TypeScan, []byte("{broken")))
	rq.ErrorIs(err, asynq.SkipRetry)

	rq.Equal([]agent.ScanRequest{
		{MaxPerMarketplace: 7, Category: "gaming"},
		{},
	}, runner.requests)

	runner.err = errors.New("ledger down")
	rq.Error(h.Handle(ctx, task))
}
