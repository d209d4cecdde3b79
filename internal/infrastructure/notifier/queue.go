package notifier

import (
	"context"

	"flipper/internal/domain/entity"
	"flipper/pkg/contextx"
	"flipper/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Queue buffers BUY decisions for a notifier. Publish never blocks: when the
// buffer is full the decision is dropped and logged.
type Queue struct {
	ch chan entity.Decision
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan entity.Decision, size)}
}

func (q *Queue) Publish(ctx context.Context, d entity.Decision) {
	select {
	case q.ch <- d:
	default:
		logger(ctx).Warn("notification dropped", logx.FieldListingID, d.ListingID)
	}
}

func (q *Queue) Decisions() <-chan entity.Decision {
	return q.ch
}
