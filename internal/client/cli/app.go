package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/senseandsay/internal/client/board"
	"github.com/dmitrijs2005/senseandsay/internal/client/client"
	"github.com/dmitrijs2005/senseandsay/internal/client/config"
	"github.com/dmitrijs2005/senseandsay/internal/client/services"
	"github.com/dmitrijs2005/senseandsay/internal/client/state"
	"github.com/dmitrijs2005/senseandsay/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	repos    *client.Repositories
	api      client.Client
	state    *state.AppState
	services *services.Services
	board    *board.Board
	player   *consolePlayer
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewText(os.Stderr, c.LogLevel)

	repos, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RemoteTimeout)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	return newApp(c, logger, repos, api, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, logger logging.Logger, repos *client.Repositories, api client.Client, reader *bufio.Reader, out io.Writer) *App {
	st := state.New()
	return &App{
		config:   c,
		logger:   logger,
		repos:    repos,
		api:      api,
		state:    st,
		services: services.New(api, repos.Metadata, st, logger),
		board:    board.New(&consoleSpeaker{out: out}),
		player:   &consolePlayer{out: out},
		reader:   reader,
		out:      out,
	}
}

// Run resumes the saved session, watches connectivity and serves the REPL
// until the user quits or a termination signal arrives. Pending remote
// writes get up to one remote timeout to finish.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(a.out, "Welcome to Sense & Say (type 'help' for commands)")

	if resumed, err := a.services.Auth.Resume(ctx); err != nil {
		a.logger.Warn(ctx, "could not resume session", "error", err)
	} else if resumed {
		fmt.Fprintln(a.out, "Welcome back!")
	}

	unsubscribe := a.state.Subscribe(a.onStateChange)
	defer unsubscribe()

	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		a.services.Auth.WatchOnline(ctx, a.config.OnlineCheckInterval)
	}()

	runREPL(ctx, a, a.status, a.reader)

	stop()
	<-watcherDone

	waitCtx, cancel := context.WithTimeout(context.Background(), a.config.RemoteTimeout)
	defer cancel()
	if err := a.services.Phrases.Wait(waitCtx); err != nil {
		a.logger.Warn(waitCtx, "pending phrase updates abandoned", "error", err)
	}
	return nil
}

func (a *App) close() {
	if err := a.api.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing client", "error", err)
	}
	if err := a.repos.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing database", "error", err)
	}
}

func (a *App) onStateChange(c state.Change) {
	if c.Field == state.FieldMode {
		fmt.Fprintf(a.out, "Switched to %s mode\n", a.state.Mode())
	}
}

func (a *App) isLoggedIn() bool {
	return a.services.Auth.IsAuthenticated()
}

func (a *App) status() string {
	return string(a.state.Mode())
}
