package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalflow/internal/config"
	"github.com/templui/goalflow/internal/db"
	"github.com/templui/goalflow/internal/markdown"
	"github.com/templui/goalflow/internal/middleware"
	"github.com/templui/goalflow/internal/repository"
	"github.com/templui/goalflow/internal/service"
	"github.com/templui/goalflow/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	AuthLimiter   *middleware.RateLimiter
	AuthService   *service.AuthService
	EmailService  *service.EmailService
	GoalService   *service.GoalService
	ReportService *service.ReportService
	ExportService *service.ExportService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.AutoMigrate {
		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	reportRepository := repository.NewReportRepository(database)

	// Storage (optional)
	archiveStorage, err := storage.New(ctx, cfg)
	if errors.Is(err, storage.ErrDisabled) {
		slog.Info("week archives disabled (no S3_BUCKET)")
		archiveStorage = nil
	} else if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	goalService := service.NewGoalService(goalRepository, markdown.NewParser())
	authService := service.NewAuthService(
		userRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)

	return &App{
		Cfg:           cfg,
		DB:            database,
		AuthLimiter:   middleware.NewRateLimiter(cfg.AuthRateLimit, 15*time.Minute),
		AuthService:   authService,
		EmailService:  emailService,
		GoalService:   goalService,
		ReportService: service.NewReportService(reportRepository),
		ExportService: service.NewExportService(goalService, archiveStorage),
	}, nil
}

func (a *App) Close() error {
	if a.AuthLimiter != nil {
		a.AuthLimiter.Stop()
	}
	return db.Close(a.DB)
}
