// Package server wires the Sense & Say document server: configuration,
// PostgreSQL storage with migrations, S3 sound links and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/senseandsay/internal/logging"
	"github.com/dmitrijs2005/senseandsay/internal/server/config"
	gs "github.com/dmitrijs2005/senseandsay/internal/server/grpc"
	"github.com/dmitrijs2005/senseandsay/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/senseandsay/internal/server/services"
	"github.com/dmitrijs2005/senseandsay/internal/server/sounds"
	"golang.org/x/sync/errgroup"
)

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	userService     *services.UserService
	documentService *services.DocumentService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		repomanager:     rm,
		userService:     services.NewUserService(db, rm, c),
		documentService: services.NewDocumentService(db, rm, sounds.NewPresigner(c)),
	}, nil
}

func (app *App) notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run applies migrations and serves gRPC until a termination signal arrives
// or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	ctx, stop := app.notifyContext(ctx)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.documentService, app.config.SecretKey)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "Stopped")
	return nil
}
