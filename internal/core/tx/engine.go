package tx

import (
	"context"
	"fmt"
	"sync"

	"github.com/LeJamon/goPriceRelay/internal/core/ledger/state"
	"go.uber.org/zap"
)

// Engine applies instructions to a ledger store. Each instruction runs
// against its own ApplyStateTable, and its changes are committed in a
// single batch only if it succeeds.
type Engine struct {
	store  *state.Store
	config EngineConfig
	logger *zap.Logger

	// Mutating instructions are serialised; the last writer wins.
	writeMu sync.Mutex
}

// NewEngine creates an engine over store.
func NewEngine(store *state.Store, config EngineConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Config returns the engine's deployment constants.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// Store returns the underlying ledger store.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Apply runs ins. Errors leave the ledger exactly as it was.
func (e *Engine) Apply(ctx context.Context, ins Instruction) error {
	if ins.Mutates() {
		e.writeMu.Lock()
		defer e.writeMu.Unlock()
	}

	table := state.NewApplyStateTable(e.store.View(ctx))
	actx := &ApplyContext{
		View:   table,
		Config: e.config,
		Logger: e.logger.With(zap.String("instruction", ins.Name())),
	}

	if err := ins.Apply(actx); err != nil {
		e.logger.Debug("instruction failed",
			zap.String("instruction", ins.Name()),
			zap.Error(err),
		)
		return err
	}

	changes := table.Changes()
	if len(changes) > 0 && !ins.Mutates() {
		return fmt.Errorf("%s: read-only instruction produced %d changes", ins.Name(), len(changes))
	}
	if err := e.store.Commit(ctx, changes); err != nil {
		return fmt.Errorf("%s: %w", ins.Name(), err)
	}

	e.logger.Debug("instruction applied",
		zap.String("instruction", ins.Name()),
		zap.Int("changes", len(changes)),
	)
	return nil
}
