package server

import (
	"context"

	"flipper/internal/domain/entity"
	"flipper/internal/domain/service/agent"
)

type Agent interface {
	Scan(ctx context.Context, req agent.ScanRequest) (agent.ScanResult, error)
	Status(ctx context.Context) agent.Status
	Inventory(ctx context.Context) []entity.InventoryItem
	Transactions(ctx context.Context) []entity.Transaction
	Configure(ctx context.Context, upd agent.ConfigUpdate) error
	QueryListings(ctx context.Context, filter entity.ListingFilter) []entity.Listing
	Relist(ctx context.Context) ([]entity.Listing, error)
	MarkSold(ctx context.Context, id string, price float64) (entity.InventoryItem, error)
}

// Server exposes the agent over HTTP.
type Server struct {
	agent Agent
}

func NewServer(a Agent) Server {
	return Server{
		agent: a,
	}
}
