package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/brianndofor/diffhtml/internal/config"
	"github.com/brianndofor/diffhtml/internal/store"
	"github.com/brianndofor/diffhtml/internal/vcs"
)

type appKey struct{}

type App struct {
	Config     config.Config
	ConfigPath string
	VCS        *vcs.Client
	Logger     *slog.Logger
	// Mock is set when VCS output comes from fixtures.
	Mock bool

	storePath string
	store     *store.Store
}

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func getApp(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return app, nil
}

func initApp(configPath string, verbose bool, logOut io.Writer) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	var runner vcs.Runner = vcs.RealRunner{}
	mock := os.Getenv(config.EnvPrefix+"_MOCK") == "1"
	if mock {
		fixtures := os.Getenv(config.EnvPrefix + "_MOCK_DIR")
		if fixtures == "" {
			fixtures = filepath.Join("testdata", "vcs")
		}
		runner = vcs.NewFixtureRunner(fixtures)
	}

	storePath := os.Getenv(config.EnvPrefix + "_DB_PATH")
	if storePath == "" {
		storePath = cfg.Store.Path
	}
	if storePath == "" {
		storePath = filepath.Join(config.Dir(), "reports.db")
	}

	return &App{
		Config:     cfg,
		ConfigPath: configPath,
		VCS:        vcs.NewClient(runner),
		Logger:     logger,
		Mock:       mock,
		storePath:  storePath,
	}, nil
}

// Store opens the report archive on first use.
func (a *App) Store() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	st, err := store.Open(a.storePath)
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
