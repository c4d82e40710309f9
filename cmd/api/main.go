package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/E72-BI/cartao-santa-casa/internal/api/http"
	"github.com/E72-BI/cartao-santa-casa/internal/api/http/handlers"
	"github.com/E72-BI/cartao-santa-casa/internal/auth"
	"github.com/E72-BI/cartao-santa-casa/internal/config"
	"github.com/E72-BI/cartao-santa-casa/internal/events"
	"github.com/E72-BI/cartao-santa-casa/internal/observability"
	"github.com/E72-BI/cartao-santa-casa/internal/persistence"
	"github.com/E72-BI/cartao-santa-casa/internal/repository"
	"github.com/E72-BI/cartao-santa-casa/internal/service"
	"github.com/E72-BI/cartao-santa-casa/internal/worker"
)

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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	store := persistence.NewRedisStore(redis)

	sessions := repository.NewSessionStore(store, logger)
	directory := repository.NewMemberDirectory(store, logger)
	directory.BindSession(sessions)
	assets := repository.NewAssetLibrary(store, logger)

	seedMembers := repository.SeedMembers()
	if !cfg.Directory.SeedOnEmpty {
		seedMembers = nil
	}
	directory.Load(ctx, seedMembers)
	sessions.Load(ctx)
	assets.Load(ctx)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(service.AuthDependencies{
		Directory:  directory,
		Sessions:   sessions,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	membersService := service.NewMembersService(directory, dispatcher, logger, cfg.Directory.ImportDelay())
	assistantService := service.NewAssistantService(
		rand.New(rand.NewSource(time.Now().UnixNano())),
		cfg.Assistant.ReplyDelay(),
		metrics,
		logger,
	)
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	sessionMiddleware := auth.NewSessionMiddleware(sessions)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Auth:              handlers.NewAuthHandler(authService),
		Members:           handlers.NewMembersHandler(membersService),
		Assets:            handlers.NewAssetsHandler(assets),
		Benefits:          handlers.NewBenefitsHandler(),
		Chat:              handlers.NewChatHandler(assistantService),
		SessionMiddleware: sessionMiddleware,
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
