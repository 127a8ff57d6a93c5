package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/alkmaar-rp/supportbot/internal/api/http"
	"github.com/alkmaar-rp/supportbot/internal/api/http/handlers"
	"github.com/alkmaar-rp/supportbot/internal/bot"
	"github.com/alkmaar-rp/supportbot/internal/config"
	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/observability"
	"github.com/alkmaar-rp/supportbot/internal/persistence"
	"github.com/alkmaar-rp/supportbot/internal/platform"
	"github.com/alkmaar-rp/supportbot/internal/repository"
	"github.com/alkmaar-rp/supportbot/internal/service"
	"github.com/alkmaar-rp/supportbot/internal/ticket"
	"github.com/alkmaar-rp/supportbot/internal/transcript"
	"github.com/alkmaar-rp/supportbot/internal/worker"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rdb := persistence.NewRedis(cfg.Redis, logger)
	defer rdb.Close()

	var store repository.TicketStore
	if rdb.Client != nil {
		store = repository.NewRedisTicketStore(rdb.Client)
	} else {
		store, err = repository.NewFileTicketStore(cfg.Tickets.StateFile)
		if err != nil {
			logger.Fatal("failed to open ticket state file", zap.Error(err))
		}
	}

	// No gateway binding is wired here; the in-memory client keeps the web
	// surface and dry runs working without one.
	logger.Warn("no platform binding configured; using the in-memory client")
	client := platform.NewMemoryClient("bot")

	registry := cfg.CategoryRegistry()
	planner := &ticket.Planner{
		Registry:      registry,
		EveryoneID:    cfg.Guild.EveryoneID,
		BotID:         client.BotID(),
		SupportRoleID: cfg.Roles.Support,
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	var auditRepo repository.AuditRepository
	var reviewRepo repository.ReviewRepository
	if pool != nil {
		auditRepo = repository.NewAuditRepository(pool)
		reviewRepo = repository.NewReviewRepository(pool)
	}

	templates := service.NewTemplateService()
	reminders := service.NewReminderService(client, store, cfg.Tickets.AlertWindow(), logger)
	reviews := service.NewReviewService(reviewRepo, client, dispatcher,
		cfg.Review.HandleSecret, cfg.Review.HandleTTL(), cfg.Channels.Reviews, logger)
	clock := service.NewClockService(repository.NewClockLedger(cfg.Clock.DataFile), dispatcher, logger)
	signoffs := service.NewSignoffService(dispatcher, logger)
	staff := service.NewStaffService(client, templates, dispatcher, logger)

	tickets := service.NewTicketService(service.TicketServiceConfig{
		SupportRoleID:  cfg.Roles.Support,
		AuditChannelID: cfg.Channels.AuditLog,
		TranscriptDir:  cfg.Tickets.TranscriptDir,
	}, service.TicketDependencies{
		Store:       store,
		Platform:    client,
		Planner:     planner,
		Registry:    registry,
		Transcripts: transcript.NewRenderer(),
		Templates:   templates,
		Reminders:   reminders,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})

	notifier := service.NewAuditNotifier(service.AuditNotifierConfig{
		AuditChannelID:   cfg.Channels.AuditLog,
		SignoffChannelID: cfg.Channels.SignoffLog,
		ClockChannelID:   cfg.Channels.ClockLog,
	}, client, auditRepo, logger)
	worker.StartAuditWorker(notifier, dispatcher)

	router := bot.NewRouter(bot.RouterRoles{
		Support:          cfg.Roles.Support,
		StaffCoordinator: cfg.Roles.StaffCoordinator,
		Bestuur:          cfg.Roles.Bestuur,
	}, bot.RouterDependencies{
		Tickets:   tickets,
		Reminders: reminders,
		Reviews:   reviews,
		Templates: templates,
		Staff:     staff,
		Registry:  registry,
		Platform:  client,
		Metrics:   metrics,
		Logger:    logger,
	})
	// A gateway adapter translates raw interactions into bot.Interaction
	// values and hands them to router.Handle; attach one here when a
	// platform binding is configured.
	logger.Info("interaction router ready", zap.Bool("gateway_attached", false))
	_ = router

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, version, pg, rdb),
		Clock:   handlers.NewClockHandler(clock),
		Signoff: handlers.NewSignoffHandler(signoffs),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
