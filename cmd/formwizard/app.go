package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/account"
	"github.com/goliatone/go-formwizard/pkg/account/sqlstore"
	"github.com/goliatone/go-formwizard/pkg/session"
	"github.com/goliatone/go-formwizard/pkg/steps"
)

// app is the wiring shared by the serve and prompt commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	runtime *session.Runtime
	closers []func() error
}

// loggerFunc builds the command logger once the configuration is known.
type loggerFunc func(cfg *config.Config) (*zap.Logger, error)

func defaultLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogDevelopment)
}

func newApp(cmd *cobra.Command, buildLogger loggerFunc) (*app, error) {
	cfg, err := config.Load(rootFlags.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if buildLogger == nil {
		buildLogger = defaultLogger
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	registry, err := loadRegistry(cfg.StepsFile)
	if err != nil {
		a.Close()
		return nil, err
	}

	store, err := a.openStore()
	if err != nil {
		a.Close()
		return nil, err
	}

	materializer := account.NewMaterializer(store,
		account.WithPolicy(cfg.Policy()),
		account.WithEmailDomain(cfg.EmailDomain),
		account.WithLogger(logger),
	)
	a.runtime = session.NewRuntime(registry,
		session.WithMaterializer(materializer),
		session.WithLogger(logger),
	)

	logger.Debug("wizard ready",
		zap.Int("steps", registry.Count()),
		zap.String("username_policy", string(cfg.Policy())),
		zap.String("database", cfg.Database),
	)
	return a, nil
}

func (a *app) openStore() (account.Store, error) {
	if a.cfg.Database == "" {
		return account.NewMemoryStore(), nil
	}
	store, err := sqlstore.Open(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.Close)
	return store, nil
}

// Close releases the account store and flushes the logger.
func (a *app) Close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// loadRegistry returns the built-in registration steps unless path names a
// step document.
func loadRegistry(path string) (*steps.Registry, error) {
	if path == "" {
		return steps.Registration(), nil
	}
	registry, err := steps.LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("loading steps: %w", err)
	}
	return registry, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
