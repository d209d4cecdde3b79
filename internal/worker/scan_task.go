package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"flipper/internal/domain/service/agent"
	"flipper/pkg/logx"
)

const TypeScan = "agent:scan"

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// ScanPayload overrides the default scan parameters. Zero fields keep the defaults.
type ScanPayload struct {
	MaxPerMarketplace int    `json:"maxPerMarketplace,omitempty"`
	Category          string `json:"category,omitempty"`
}

func NewScanTask(p ScanPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeScan, payload), nil
}

type ScanTaskHandler struct {
	agent ScanRunner
}

func NewScanTaskHandler(a ScanRunner) ScanTaskHandler {
	return ScanTaskHandler{agent: a}
}

func (h ScanTaskHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var p ScanPayload

	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("json.Unmarshal: %v: %w", err, asynq.SkipRetry)
		}
	}

	result, err := h.agent.Scan(ctx, agent.ScanRequest{
		MaxPerMarketplace: p.MaxPerMarketplace,
		Category:          p.Category,
	})
	if err != nil {
		return fmt.Errorf("agent.Scan: %w", err)
	}

	logger(ctx).Info("scan task completed",
		"listings", len(result.Listings),
		"buys", len(result.Buys()),
		logx.FieldCategory, p.Category,
	)

	return nil
}
