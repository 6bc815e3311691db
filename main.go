package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/health-tracker/internal/bot"
	"github.com/vladimiradmaev/health-tracker/internal/bot/handlers"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/config"
	"github.com/vladimiradmaev/health-tracker/internal/database"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
	"github.com/vladimiradmaev/health-tracker/internal/repository"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid config", "error", err)
	}

	if err := logger.InitWithConfig(cfg.Logger.ToLogger()); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Close()
	logger.Info("Starting Health Tracker Bot", "db_driver", cfg.DB.Driver, "state_backend", cfg.StateBackend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	loc, err := cfg.Report.Location()
	if err != nil {
		logger.Fatal("Invalid report timezone", "error", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	glucoseRepo := repository.NewGlucoseRepository(db)
	pressureRepo := repository.NewPressureRepository(db)
	foodRepo := repository.NewFoodRepository(db)

	ids := services.UUIDGenerator{}
	deps := handlers.Dependencies{
		ProfileSvc:     services.NewProfileService(profileRepo, ids),
		MeasurementSvc: services.NewMeasurementService(profileRepo, glucoseRepo, pressureRepo, foodRepo, ids),
		ReportSvc:      services.NewReportService(profileRepo, glucoseRepo, pressureRepo, foodRepo, loc),
		DefaultDays:    cfg.Report.DefaultDays,
	}
	logger.Info("Services initialized", "timezone", loc.String())

	stateManager, err := newStateManager(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize state manager", "error", err)
	}
	defer stateManager.Close()

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", "error", err)
	}
	logger.Info("Bot stopped")
}

func newStateManager(ctx context.Context, cfg *config.Config) (state.StateManager, error) {
	if cfg.StateBackend == config.StateRedis {
		logger.Info("Using Redis state manager", "addr", cfg.Redis.Addr())
		return state.NewRedisManager(ctx, cfg.Redis)
	}
	logger.Info("Using in-memory state manager")
	return state.NewManager(), nil
}
