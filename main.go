package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wagergate/config"
	pcactrl "wagergate/controllers/callback/slots/pca"
	sabactrl "wagergate/controllers/callback/sportsbook/saba"
	"wagergate/controllers/user"
	"wagergate/database"
	"wagergate/jobs"
	"wagergate/ledger"
	"wagergate/pca"
	"wagergate/player"
	"wagergate/providers"
	"wagergate/providers/slots"
	"wagergate/providers/sportsbook"
	"wagergate/routes"
	"wagergate/saba"
	"wagergate/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on the environment")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	players := player.NewRepository(db)
	reports := ledger.NewRepository(db)
	gateway := wallet.NewClient(cfg.WalletBaseURL, httpClient, logger)
	details := saba.NewBetDetailClient(cfg.BetDetailBaseURL, cfg.BetDetailKey, httpClient, logger)

	sabaService := saba.NewService(cfg, players, reports, gateway, details, logger)
	pcaService := pca.NewService(cfg, players, reports, gateway, logger)

	registry := providers.NewRegistry()
	registry.Register("saba", &sportsbook.SabaLauncher{
		APIURL:   cfg.BetDetailBaseURL,
		VendorID: cfg.BetDetailKey,
		Players:  players,
		HTTP:     httpClient,
		Log:      logger,
	})
	registry.Register("pca", &slots.PCALauncher{
		GameURL: os.Getenv("PCA_GAME_URL"),
		PCA:     pcaService,
	})

	app := fiber.New()
	routes.Setup(app, routes.Deps{
		AdminKey: cfg.AdminKey,
		Saba:     sabactrl.NewHandler(sabaService),
		PCA:      pcactrl.NewHandler(pcaService),
		User:     user.NewHandler(cfg, players, gateway, logger),
		Registry: registry,
	})

	jobsCtx, stopJobs := context.WithCancel(context.Background())
	jobs.StartReconcileScheduler(jobsCtx, reports, details, logger, 30*time.Minute)

	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
		if err := app.Listen(cfg.Addr); err != nil {
			logger.Panic("failed to start server", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("gracefully shutting down")
	stopJobs()
	if err := app.Shutdown(); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited cleanly")
}
