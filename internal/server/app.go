// Package server wires the journal server: database keeper, migrations,
// services and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	"github.com/dmitrijs2005/shiftjournal/internal/server/config"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shiftjournal/internal/server/services"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/shiftjournal/internal/server/grpc"
)

// openDB returns the opener the keeper uses to (re)connect.
var openDB = func(dsn string) dbx.Opener {
	return func(ctx context.Context) (*sql.DB, error) {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}
}

type App struct {
	config         *config.Config
	logger         logging.Logger
	keeper         *dbx.Keeper
	userService    *services.UserService
	journalService *services.JournalService
	reportService  *services.ReportService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONSlogLogger(os.Stdout, slog.LevelInfo)

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	keeper, err := dbx.NewKeeper(ctx, openDB(c.DatabaseDSN), logger.With("module", "db"))
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	db, err := keeper.DB(ctx)
	if err != nil {
		_ = keeper.Close()
		return nil, err
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = keeper.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	clock := shiftclock.SystemClock{Location: loc}

	return &App{
		config:         c,
		logger:         logger,
		keeper:         keeper,
		userService:    services.NewUserService(keeper, m, c),
		journalService: services.NewJournalService(keeper, m, clock, c.SearchPageSize, logger.With("module", "journal")),
		reportService:  services.NewReportService(keeper, m, c, logger.With("module", "reports")),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves gRPC and watches the database connection until a signal
// arrives or either of them fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "tz", app.config.TimeZone)

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService,
			app.journalService, app.reportService, app.config.SecretKey)
		return s.Run(ctx)
	})

	g.Go(func() error {
		app.keeper.Watch(ctx, app.config.HealthCheckInterval)
		return nil
	})

	err := g.Wait()
	if cerr := app.keeper.Close(); cerr != nil {
		app.logger.Warn(context.Background(), "closing database", "error", cerr)
	}
	return err
}
