package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/config"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/hris-attendance-engine/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/repository/rediscache"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/service/dailysummary"
	issueService "github.com/cmlabs-hris/hris-attendance-engine/internal/service/issue"
	"github.com/cmlabs-hris/hris-attendance-engine/internal/service/monthlysummary"
	worktimeService "github.com/cmlabs-hris/hris-attendance-engine/internal/service/worktime"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{MaxConns: int32(cfg.Database.MaxConns)})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			return err
		}
		slog.Info("Database schema applied")
	}

	policy, err := cfg.WorkTimePolicy()
	if err != nil {
		return err
	}

	transactor := postgresql.NewTransactor(db)
	eventRepo := postgresql.NewRawEventRepository(db)
	usedRepo := postgresql.NewUsedAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	dailyRepo := postgresql.NewDailySummaryRepository(db)
	monthlyRepo := postgresql.NewMonthlySummaryRepository(db)
	issueRepo := postgresql.NewIssueRepository(db)

	var typeRepo attendance.AttendanceTypeRepository = postgresql.NewAttendanceTypeRepository(db)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		defer rdb.Close()
		typeRepo = rediscache.NewAttendanceTypeRepository(typeRepo, cache.NewRedisStore(rdb, "attendance-engine"), cfg.Engine.CatalogCacheTTL)
		slog.Info("Attendance type catalog cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Engine.CatalogCacheTTL)
	}

	calculator := worktimeService.NewCalculator(policy)
	tracker := issueService.NewTracker(issueRepo)
	dailyService := dailysummary.NewDailySummaryService(
		transactor,
		eventRepo,
		usedRepo,
		typeRepo,
		employeeRepo,
		holidayRepo,
		dailyRepo,
		tracker,
		calculator,
		dailysummary.Options{Workers: cfg.Engine.Workers, BatchSize: cfg.Engine.BatchSize},
	)
	monthlyService := monthlysummary.NewMonthlySummaryService(
		transactor,
		employeeRepo,
		dailyRepo,
		usedRepo,
		typeRepo,
		monthlyRepo,
		monthlysummary.NewAggregator(calculator),
	)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	summaryHandler := appHTTP.NewSummaryHandler(dailyService, monthlyService)
	issueHandler := appHTTP.NewIssueHandler(tracker)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{AllowedOrigins: cfg.App.CORSAllowedOrigins, Env: cfg.App.Env},
		JWTService,
		summaryHandler,
		issueHandler,
	)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewSummaryJobs(dailyService, monthlyService, cfg.Cron.Hour).RegisterJobs(scheduler, cfg.Cron.Interval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
