package extract

import (
	"testing"

	"eulerScope/internal/model"
	"eulerScope/internal/registry"
)

func TestExtractBalanceDeltasSwap(t *testing.T) {
	store := registeredStore()

	block := &model.Block{Number: 1, Transactions: []model.Transaction{{
		Index: 2,
		Logs:  []model.Log{swapLog(t, testPool, 7, 50, 0, 0, 30)},
	}}}

	deltas := ExtractBalanceDeltas(block, store, nil)
	if len(deltas) != 2 {
		t.Fatalf("expected two deltas, got %d", len(deltas))
	}

	in := deltas[0]
	if in.Token != canonical(testAsset0) || in.Delta.Int64() != 50 {
		t.Fatalf("inflow mismatch: %+v", in)
	}
	out := deltas[1]
	if out.Token != canonical(testAsset1) || out.Delta.Int64() != -30 {
		t.Fatalf("outflow mismatch: %+v", out)
	}
	for _, delta := range deltas {
		if delta.ComponentID != canonical(testPool) {
			t.Fatalf("component mismatch: %s", delta.ComponentID)
		}
		if delta.Ordinal != 7 || delta.TxIndex != 2 {
			t.Fatalf("ordering metadata mismatch: %+v", delta)
		}
	}
}

func TestExtractBalanceDeltasUnknownPool(t *testing.T) {
	store := registry.NewStore()

	block := &model.Block{Number: 1, Transactions: []model.Transaction{{
		Index: 0,
		Logs:  []model.Log{swapLog(t, testPool, 7, 50, 0, 0, 30)},
	}}}

	if deltas := ExtractBalanceDeltas(block, store, nil); len(deltas) != 0 {
		t.Fatalf("unknown pool must not emit deltas, got %d", len(deltas))
	}
}

func TestExtractBalanceDeltasInitialReserves(t *testing.T) {
	store := registeredStore()

	block := &model.Block{Number: 1, Transactions: []model.Transaction{{
		Index: 0,
		Logs: []model.Log{
			poolDeployedLog(t, 3),
			poolConfigLog(t, 4, 100, 0),
		},
	}}}

	deltas := ExtractBalanceDeltas(block, store, nil)
	if len(deltas) != 1 {
		t.Fatalf("expected one delta (zero reserve suppressed), got %d", len(deltas))
	}
	delta := deltas[0]
	if delta.Token != canonical(testAsset0) || delta.Delta.Int64() != 100 {
		t.Fatalf("reserve delta mismatch: %+v", delta)
	}
	if delta.Ordinal != 3 {
		t.Fatalf("ordinal must come from the deployment log: %d", delta.Ordinal)
	}
}

func TestExtractBalanceDeltasZeroSwapSuppressed(t *testing.T) {
	store := registeredStore()

	block := &model.Block{Number: 1, Transactions: []model.Transaction{{
		Index: 0,
		Logs:  []model.Log{swapLog(t, testPool, 7, 0, 0, 0, 0)},
	}}}

	if deltas := ExtractBalanceDeltas(block, store, nil); len(deltas) != 0 {
		t.Fatalf("zero magnitudes must emit nothing, got %d", len(deltas))
	}
}
