package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/LeJamon/goPriceRelay/internal/config"
	"github.com/LeJamon/goPriceRelay/internal/core/feed"
	"github.com/LeJamon/goPriceRelay/internal/core/ledger/state"
	"github.com/LeJamon/goPriceRelay/internal/core/tx"
	"github.com/LeJamon/goPriceRelay/internal/logger"
	"github.com/LeJamon/goPriceRelay/internal/rpcclient"
	"github.com/LeJamon/goPriceRelay/internal/storage/database"
	"github.com/LeJamon/goPriceRelay/internal/storage/database/memory"
	"github.com/LeJamon/goPriceRelay/internal/storage/database/pebble"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ledgerDB is the database holding ledger accounts
const ledgerDB = "accounts"

// app is what every command runs against: the loaded configuration, a
// logger, and lazily the local ledger.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	manager database.Manager
	engine  *tx.Engine
}

func (o *rootOptions) setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	if o.ledgerPath != "" {
		cfg.Ledger.Path = o.ledgerPath
	}
	if o.ephemeral {
		cfg.Ledger.Ephemeral = true
	}

	log, err := logger.New(cfg.Log, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}

	source := cfg.GetConfigPath()
	if source == "" {
		source = "defaults"
	}
	log.Debug("configuration loaded", zap.String("source", source))

	return &app{cfg: cfg, logger: log}, nil
}

// Engine opens the local ledger on first use.
func (a *app) Engine() (*tx.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}

	if a.cfg.Ledger.Ephemeral {
		a.manager = memory.NewManager()
	} else {
		a.manager = pebble.NewManager(a.cfg.Ledger.Path)
	}
	db, err := a.manager.OpenDB(ledgerDB)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	engine, err := a.newEngine(db)
	if err != nil {
		return nil, err
	}
	a.engine = engine

	a.logger.Debug("ledger opened",
		zap.String("path", a.cfg.Ledger.Path),
		zap.Bool("ephemeral", a.cfg.Ledger.Ephemeral),
		zap.Stringer("program", engine.Config().ProgramID),
	)
	return a.engine, nil
}

// ScratchEngine returns an engine over an empty in-memory ledger, for
// commands that must leave the local ledger alone.
func (a *app) ScratchEngine() (*tx.Engine, error) {
	return a.newEngine(memory.NewDB())
}

func (a *app) newEngine(db database.DB) (*tx.Engine, error) {
	programID, err := a.cfg.ProgramKey()
	if err != nil {
		return nil, err
	}
	store, err := state.NewStore(db, a.cfg.Ledger.CacheSize)
	if err != nil {
		return nil, err
	}
	return tx.NewEngine(store, tx.EngineConfig{
		ProgramID: programID,
		Rent:      a.cfg.RentParams(),
	}, a.logger), nil
}

// RPC returns a client for the configured endpoint.
func (a *app) RPC() (*rpcclient.Client, error) {
	commitment, err := rpcclient.ParseCommitment(a.cfg.RPC.Commitment)
	if err != nil {
		return nil, err
	}
	return rpcclient.New(a.cfg.RPC.Endpoint, commitment, a.cfg.RPC.Timeout, a.logger), nil
}

// LoadFeed returns the configured feed account, from file when feedFile
// is set and over RPC otherwise.
func (a *app) LoadFeed(ctx context.Context, feedFile string) (feed.Account, error) {
	key, err := a.cfg.FeedKey()
	if err != nil {
		return feed.Account{}, err
	}

	if feedFile != "" {
		data, err := os.ReadFile(feedFile)
		if err != nil {
			return feed.Account{}, fmt.Errorf("read feed file: %w", err)
		}
		return feed.Account{Key: key, Data: data}, nil
	}

	client, err := a.RPC()
	if err != nil {
		return feed.Account{}, err
	}
	return client.FetchFeed(ctx, key)
}

func (a *app) Close() {
	if a.manager != nil {
		if err := a.manager.Close(); err != nil {
			a.logger.Warn("failed to close ledger", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// withApp wraps a command body with setup and teardown.
func withApp(opts *rootOptions, run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := opts.setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}
