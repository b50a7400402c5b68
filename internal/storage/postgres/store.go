package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eulerScope/internal/model"
)

// Store provides Postgres persistence for change-sets.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutChanges persists a batch of change-sets: components and balances are
// upserted into their own tables and the full change-set is kept as JSONB for
// downstream consumers.
func (s *Store) PutChanges(ctx context.Context, changes []model.TransactionChanges) error {
	if len(changes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	queued := 0
	for _, change := range changes {
		for _, component := range change.Components {
			attributes, err := json.Marshal(component.Attributes)
			if err != nil {
				return fmt.Errorf("marshal attributes: %w", err)
			}
			batch.Queue(`
				INSERT INTO components (
					component_id, token0, token1, contracts, protocol_type, static_attributes, created_block, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
				ON CONFLICT (component_id)
				DO UPDATE SET updated_at = now()
			`,
				component.ID,
				component.Tokens[0],
				component.Tokens[1],
				component.Contracts,
				component.ProtocolType,
				attributes,
				int64(change.BlockNumber),
			)
			queued++
		}

		for _, balance := range change.BalanceChanges {
			batch.Queue(`
				INSERT INTO component_balances (
					component_id, token, balance, block_number, tx_index, updated_at
				) VALUES ($1, $2, $3, $4, $5, now())
				ON CONFLICT (component_id, token)
				DO UPDATE SET
					balance = EXCLUDED.balance,
					block_number = EXCLUDED.block_number,
					tx_index = EXCLUDED.tx_index,
					updated_at = now()
			`,
				balance.ComponentID,
				balance.Token,
				balance.Balance,
				int64(change.BlockNumber),
				int64(change.TxIndex),
			)
			queued++
		}

		payload, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("marshal change-set: %w", err)
		}
		batch.Queue(`
			INSERT INTO transaction_changes (
				block_number, tx_index, tx_hash, payload, created_at
			) VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (block_number, tx_index) DO NOTHING
		`,
			int64(change.BlockNumber),
			int64(change.TxIndex),
			change.TxHash,
			payload,
		)
		queued++
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
