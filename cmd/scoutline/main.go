package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/scoutline/internal/cache"
	"github.com/alexanderramin/scoutline/internal/cli"
	"github.com/alexanderramin/scoutline/internal/cli/formatter"
	"github.com/alexanderramin/scoutline/internal/config"
	"github.com/alexanderramin/scoutline/internal/db"
	"github.com/alexanderramin/scoutline/internal/repository"
	"github.com/alexanderramin/scoutline/internal/rules"
	"github.com/alexanderramin/scoutline/internal/service"
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
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	formatter.SetColorEnabled(colorEnabled(os.Stdout))

	database, err := db.OpenDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sb := db.Builder(cfg.Database.Driver)
	uow := db.NewUnitOfWorkForDriver(database, cfg.Database.Driver)

	// Wire repositories
	athleteRepo := repository.NewSQLAthleteRepo(database, sb)
	schoolRepo := repository.NewSQLSchoolRepo(database, sb)
	interactionRepo := repository.NewSQLInteractionRepo(database, sb)
	taskRepo := cache.NewTaskCatalog(repository.NewSQLTaskRepo(database, sb), cfg.TaskCache.Size, cfg.TaskCache.TTL)
	videoRepo := repository.NewSQLVideoRepo(database, sb)
	eventRepo := repository.NewSQLEventRepo(database, sb)
	suggestionRepo := repository.NewSQLSuggestionRepo(database, sb)

	// Wire services
	policy := service.SuggestionPolicy{
		DuplicateWindowDays:   cfg.Suggestions.DuplicateWindowDays,
		DismissalCooldownDays: cfg.Suggestions.DismissalCooldownDays,
		SurfaceLimit:          cfg.Suggestions.SurfaceLimit,
		StrictAutoComplete:    cfg.Suggestions.StrictAutoComplete,
	}
	observer := service.NewSlogUseCaseObserver(logger)
	engine := rules.NewDefaultEngine(logger, rules.WithConcurrency(cfg.Suggestions.RuleConcurrency))
	loader := service.NewContextLoader(athleteRepo, schoolRepo, interactionRepo, taskRepo, videoRepo, eventRepo)

	suggestions := service.NewSuggestionService(suggestionRepo, engine, uow, sb,
		service.WithSuggestionPolicy(policy),
		service.WithSuggestionLogger(logger),
		service.WithSuggestionObserver(observer),
	)
	trigger := service.NewTriggerService(loader, suggestions, athleteRepo,
		service.WithTriggerPolicy(policy),
		service.WithRefreshConcurrency(cfg.Suggestions.RefreshConcurrency),
		service.WithTriggerLogger(logger),
		service.WithTriggerObserver(observer),
	)

	app := &cli.App{
		Athletes:    service.NewAthleteService(athleteRepo, taskRepo, trigger),
		Schools:     service.NewSchoolService(schoolRepo, trigger),
		Activity:    service.NewActivityService(interactionRepo, videoRepo, eventRepo, taskRepo, trigger),
		Suggestions: suggestions,
		Trigger:     trigger,
		Import:      service.NewImportService(uow, sb, taskRepo, trigger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// colorEnabled reports whether styled output should be emitted to f.
func colorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
