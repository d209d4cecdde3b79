package main

// flipcycle runs a single scan and relist cycle against an in-memory store
// and prints the outcome.
//
//	go run ./cmd/flipcycle -budget 5000 -max 30

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"flipper/internal/application"
	"flipper/internal/domain/service/agent"
	"flipper/internal/domain/value"
	"flipper/internal/infrastructure/persistence"
	"flipper/pkg/contextx"
	"flipper/pkg/logx"
)

func main() {
	budget := flag.Float64("budget", 5000, "starting budget in USD")
	maxPerMarketplace := flag.Int("max", 30, "listings fetched per marketplace")
	category := flag.String("category", "electronics", "listing category")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := logx.New(os.Stderr, level, "text")
	slog.SetDefault(log)
	ctx = contextx.WithLogger(ctx, log)

	if err := run(ctx, agent.Settings{
		Budget:            *budget,
		Thresholds:        value.DefaultThresholds(),
		MaxPerMarketplace: *maxPerMarketplace,
		Category:          *category,
	}); err != nil {
		log.Error("flip cycle failed", logx.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, settings agent.Settings) error {
	a, err := application.BuildAgent(ctx, persistence.NewMemoryStore(), application.AgentOptions{Settings: settings})
	if err != nil {
		return fmt.Errorf("application.BuildAgent: %w", err)
	}

	result, err := a.Scan(ctx, agent.ScanRequest{})
	if err != nil {
		return fmt.Errorf("agent.Scan: %w", err)
	}

	fmt.Printf("scanned %d listings, evaluated %d\n", len(result.Listings), len(result.Evaluated))

	buys := result.Buys()
	fmt.Printf("purchased %d items\n", len(buys))
	for _, d := range buys {
		fmt.Printf("  BUY %-45s $%8.2f  %s\n", d.Title, d.Price, d.Reasoning)
	}

	relisted, err := a.Relist(ctx)
	if err != nil {
		return fmt.Errorf("agent.Relist: %w", err)
	}
	fmt.Printf("relisted %d items\n", len(relisted))

	status := a.Status(ctx)
	fmt.Printf("\nbudget           $%.2f\n", status.Budget)
	fmt.Printf("remaining        $%.2f\n", status.RemainingBudget)
	fmt.Printf("invested         $%.2f\n", status.Financials.TotalInvested)
	fmt.Printf("potential sales  $%.2f\n", status.Financials.PotentialRevenue)
	fmt.Printf("expected profit  $%.2f\n", status.Financials.ExpectedProfit)
	fmt.Printf("expected ROI     %.1f%%\n", status.Financials.ExpectedROI*100)

	return nil
}
