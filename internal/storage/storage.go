package storage

import (
	"context"

	"eulerScope/internal/model"
)

// Storage defines a sink for finalized per-transaction change-sets.
type Storage interface {
	PutChanges(ctx context.Context, changes []model.TransactionChanges) error
}
