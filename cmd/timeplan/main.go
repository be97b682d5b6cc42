package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/timeplan/internal/api"
	"github.com/alexanderramin/timeplan/internal/cli"
	"github.com/alexanderramin/timeplan/internal/cli/formatter"
	"github.com/alexanderramin/timeplan/internal/config"
	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/metrics"
	"github.com/alexanderramin/timeplan/internal/repository"
	"github.com/alexanderramin/timeplan/internal/scheduler"
	"github.com/alexanderramin/timeplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	database, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	conn := database.Conn()
	projectRepo := repository.NewSQLProjectRepo(conn)
	phaseRepo := repository.NewSQLPhaseRepo(conn)
	recurringRepo := repository.NewSQLRecurringRepo(conn)
	eventRepo := repository.NewSQLEventRepo(conn)
	holidayRepo := repository.NewSQLHolidayRepo(conn)
	workHoursRepo := repository.NewSQLWorkHoursRepo(conn)

	uow := database.UnitOfWork()
	policy := cfg.DomainPolicy()
	clock := service.Clock(time.Now)
	observer := service.CombineUseCaseObservers(
		service.NewSlogUseCaseObserver(logger),
		service.NewMetricsUseCaseObserver(),
	)

	cache := scheduler.NewEstimateCache(cfg.CacheEntries)
	cache.OnLookup = metrics.ObserveCacheLookup

	// Wire services
	calendarSvc := service.NewCalendarService(workHoursRepo, holidayRepo, uow, observer)
	projectSvc := service.NewProjectService(projectRepo, phaseRepo, recurringRepo, uow, policy, clock, observer)
	timelineSvc := service.NewTimelineService(projectRepo, phaseRepo, recurringRepo, eventRepo, calendarSvc, cache, policy, clock, observer)

	app := &cli.App{
		Projects: projectSvc,
		Phases:   service.NewPhaseService(phaseRepo, uow, policy, clock, observer),
		Events:   service.NewEventService(eventRepo, uow, observer),
		Calendar: calendarSvc,
		Timeline: timelineSvc,
		Import:   service.NewImportService(uow, policy, clock, observer),
		Now:      clock,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	app.Serve = func(ctx context.Context, addr string) error {
		if addr == "" {
			addr = cfg.Server.Addr
		}
		apiCfg := &api.Config{
			Address:    addr,
			RateLimit:  cfg.Server.RateLimit,
			RateBurst:  cfg.Server.RateBurst,
			TrustProxy: cfg.Server.TrustProxy,
		}
		srv, err := api.New(apiCfg,
			api.Services{Timeline: timelineSvc, Projects: projectSvc}, logger, database.SQL)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	}

	return cli.NewRootCmd(app).Execute()
}
