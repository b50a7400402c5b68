package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"eulerScope/internal/aggregate"
	"eulerScope/internal/chain"
	"eulerScope/internal/changeset"
	"eulerScope/internal/euler"
	"eulerScope/internal/extract"
	"eulerScope/internal/model"
	"eulerScope/internal/registry"
	"eulerScope/internal/storage"
)

// RunConfig holds runtime settings for the processing loop.
type RunConfig struct {
	CheckpointPath    string
	CheckpointEnabled bool
}

// Runner drives the per-block stage pipeline: component discovery, registry
// writes, balance delta extraction, absolute aggregation and change-set
// assembly. The registry and balance stores are the only carriers of
// cross-block state.
type Runner struct {
	cfg        RunConfig
	proto      *euler.Protocol
	source     chain.BlockSource
	sink       storage.Storage
	logger     *zap.Logger
	registry   *registry.Store
	balances   *aggregate.BalanceStore
	checkpoint *CheckpointStore
	lastHeight uint64
	started    bool
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, proto *euler.Protocol, source chain.BlockSource, sink storage.Storage, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		proto:      proto,
		source:     source,
		sink:       sink,
		logger:     logger,
		registry:   registry.NewStore(),
		balances:   aggregate.NewBalanceStore(),
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
	}
}

// Run consumes the block stream to exhaustion.
func (r *Runner) Run(ctx context.Context) error {
	if r.source == nil {
		return fmt.Errorf("block source is nil")
	}
	if r.sink == nil {
		return fmt.Errorf("storage is nil")
	}
	if r.proto == nil {
		return fmt.Errorf("protocol config is nil")
	}

	var resumeAfter uint64
	if cp, ok, err := r.checkpoint.Load(); err != nil {
		return err
	} else if ok {
		resumeAfter = cp.LastProcessedBlock
		r.logger.Info("resume from checkpoint, replaying earlier blocks into state",
			zap.Uint64("last_processed", resumeAfter))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		block, err := r.source.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if block.Number <= resumeAfter {
			if err := r.replayBlock(block); err != nil {
				return fmt.Errorf("replay block %d: %w", block.Number, err)
			}
			r.lastHeight = block.Number
			r.started = true
			continue
		}
		if r.started && block.Number <= r.lastHeight {
			r.logger.Warn("skipping out-of-order or duplicate block",
				zap.Uint64("number", block.Number),
				zap.Uint64("last_height", r.lastHeight),
			)
			continue
		}

		changes, err := r.ProcessBlock(block)
		if err != nil {
			return fmt.Errorf("process block %d: %w", block.Number, err)
		}

		if err := r.sink.PutChanges(ctx, changes); err != nil {
			return fmt.Errorf("store changes for block %d: %w", block.Number, err)
		}
		if err := r.checkpoint.Save(block.Number, block.Hash); err != nil {
			return err
		}

		r.lastHeight = block.Number
		r.started = true
		r.logger.Info("block complete",
			zap.Uint64("number", block.Number),
			zap.Int("change_sets", len(changes)),
		)
	}
}

// replayBlock re-runs the state-carrying stages for a block that was emitted
// before a restart. The registry and balance stores live only in memory, so
// every checkpointed block must still flow through them or a resumed run
// would diverge from a continuous one. Nothing is emitted for replayed blocks.
func (r *Runner) replayBlock(block *model.Block) error {
	newComponents, err := extract.BuildComponents(block, r.proto)
	if err != nil {
		return err
	}
	for _, txComponents := range newComponents {
		registry.Apply(r.registry, txComponents.Components)
	}
	deltas := extract.ExtractBalanceDeltas(block, r.registry, r.logger)
	r.balances.ApplyBlock(block.Number, deltas)
	return nil
}

// ProcessBlock runs the stage pipeline for one block in strict dependency
// order and returns its change-sets sorted by transaction index.
func (r *Runner) ProcessBlock(block *model.Block) ([]model.TransactionChanges, error) {
	newComponents, err := extract.BuildComponents(block, r.proto)
	if err != nil {
		return nil, err
	}
	for _, txComponents := range newComponents {
		registry.Apply(r.registry, txComponents.Components)
	}

	deltas := extract.ExtractBalanceDeltas(block, r.registry, r.logger)
	txBalances := r.balances.ApplyBlock(block.Number, deltas)
	snapshots := extract.ExtractVaultCash(block, r.registry)

	return changeset.BuildBlockChanges(block, newComponents, r.registry, txBalances, snapshots, r.proto, r.logger), nil
}
