package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"flipper/internal/config"
	"flipper/internal/domain/service/agent"
	"flipper/internal/domain/value"
	"flipper/internal/infrastructure/metrics"
	"flipper/internal/infrastructure/notifier"
	"flipper/internal/server"
	"flipper/internal/worker"
	"flipper/pkg/application/modules"
	"flipper/pkg/contextx"
	"flipper/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const asynqQueue = "default"

// Run starts every module and blocks until ctx is done or one of them fails.
func Run(ctx context.Context, cfg config.Config) error {
	st, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openStorage: %w", err)
	}
	defer st.close(ctx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	queue := notifier.NewQueue(cfg.Agent.NotifyQueueSize)

	a, err := BuildAgent(ctx, st.store, AgentOptions{
		Settings:     settingsFromConfig(cfg.Agent),
		Concurrency:  cfg.Agent.Concurrency,
		ReferenceTTL: cfg.Agent.ReferenceCacheTTL,
		Publisher:    queue,
		Recorder:     metrics.NewAgent(registry),
	})
	if err != nil {
		return fmt.Errorf("BuildAgent: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if err := runNotifier(ctx, g, cfg.Bot, queue); err != nil {
		return err
	}

	if cfg.Agent.ScanInterval > 0 {
		scanner := worker.NewScanner(a, cfg.Agent.ScanInterval)
		g.Go(func() error {
			if err := scanner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("scanner.Run: %w", err)
			}
			return nil
		})
	}

	if cfg.Asynq.Enabled {
		if err := runAsynq(ctx, g, cfg, a); err != nil {
			return err
		}
	}

	var masker logx.SensitiveDataMaskerInterface = logx.NewNopSensitiveDataMasker()
	if cfg.HTTP.MaskSensitiveData {
		masker = logx.NewSensitiveDataMasker()
	}

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr: cfg.HTTP.ListenAddress,
		Handler: server.NewRouter(server.NewServer(a), server.RouterOptions{
			CORSAllowedOrigins:  cfg.HTTP.CORSAllowedOrigins,
			SensitiveDataMasker: masker,
			LogFieldMaxLen:      cfg.HTTP.LogFieldMaxLen,
		}),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
		Ready:         st.ready,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
		Gatherer:      registry,
	}.Run(ctx, g)

	logger(ctx).Info("application started",
		"storage", cfg.Storage.Driver,
		"budget", cfg.Agent.Budget,
		"scan-interval", cfg.Agent.ScanInterval.String(),
		"asynq", cfg.Asynq.Enabled,
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func settingsFromConfig(c config.Agent) agent.Settings {
	return agent.Settings{
		Budget: c.Budget,
		Thresholds: value.Thresholds{
			MinScore:        c.MinScore,
			MinProfitMargin: c.MinProfitMargin,
			MinProfit:       c.MinProfit,
		},
		MaxPerMarketplace: c.MaxPerMarketplace,
		Category:          c.Category,
		AutoRelist:        c.AutoRelist,
	}
}

// runNotifier drains the decision queue into Telegram. Without a bot token
// the queue is drained into the log instead.
func runNotifier(ctx context.Context, g *errgroup.Group, cfg config.Bot, queue *notifier.Queue) error {
	if cfg.Token == "" {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case d := <-queue.Decisions():
					logger(ctx).Info("buy alert", logx.FieldListingID, d.ListingID, "reasoning", d.Reasoning)
				}
			}
		})
		return nil
	}

	bot, err := notifier.NewTelegramBot(cfg.Token, cfg.ChatID)
	if err != nil {
		return fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	// a bad token or chat id shows up here instead of on the first BUY
	if err := bot.SendText(ctx, "flipper agent started"); err != nil {
		logger(ctx).Error("telegram startup message failed", logx.Error(err))
	}

	g.Go(func() error {
		if err := bot.Run(ctx, queue.Decisions()); err != nil && ctx.Err() == nil {
			return fmt.Errorf("bot.Run: %w", err)
		}
		return nil
	})

	return nil
}

func runAsynq(ctx context.Context, g *errgroup.Group, cfg config.Config, a *agent.Agent) error {
	task, err := worker.NewScanTask(worker.ScanPayload{})
	if err != nil {
		return fmt.Errorf("worker.NewScanTask: %w", err)
	}

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
		Concurrency:   cfg.Asynq.Concurrency,
	}.Run(ctx, g,
		modules.AsynqQueues{asynqQueue: 1},
		modules.AsynqHandler{Pattern: worker.TypeScan, Handle: worker.NewScanTaskHandler(a).Handle},
	)

	modules.AsynqScheduler{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g, modules.AsynqPeriodicTask{
		Cronspec: cfg.Asynq.Cron,
		Task:     task,
		// the next tick is the retry
		Opts: []asynq.Option{asynq.Queue(asynqQueue), asynq.MaxRetry(0)},
	})

	return nil
}
