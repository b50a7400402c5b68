package extract

import (
	"bytes"
	"testing"

	"eulerScope/internal/model"
)

func TestDecodeCashValue(t *testing.T) {
	slot := make([]byte, 32)
	for i := range slot {
		slot[i] = byte(i + 1)
	}

	cash, ok := DecodeCashValue(slot)
	if !ok {
		t.Fatalf("expected decode")
	}
	if len(cash) != 32 {
		t.Fatalf("length mismatch: %d", len(cash))
	}
	for i := 0; i < 18; i++ {
		if cash[i] != 0 {
			t.Fatalf("leading byte %d not zero: %x", i, cash[i])
		}
	}
	if !bytes.Equal(cash[18:], slot[12:26]) {
		t.Fatalf("cash field mismatch: %x != %x", cash[18:], slot[12:26])
	}
}

func TestDecodeCashValueWrongLength(t *testing.T) {
	if _, ok := DecodeCashValue(make([]byte, 31)); ok {
		t.Fatalf("short slot must not decode")
	}
	if _, ok := DecodeCashValue(nil); ok {
		t.Fatalf("nil slot must not decode")
	}
}

func cashValue(fill byte) [32]byte {
	var slot [32]byte
	for i := 12; i < 26; i++ {
		slot[i] = fill
	}
	return slot
}

func TestExtractVaultCashLastWriteWins(t *testing.T) {
	store := registeredStore()

	block := &model.Block{Number: 1, Transactions: []model.Transaction{{
		Index: 0,
		Calls: []model.Call{{
			Index: 1,
			Input: depositInput(t),
			StorageChanges: []model.StorageChange{
				cashWrite(testVault0, 5, cashValue(0xAA)),
				cashWrite(testVault0, 9, cashValue(0xBB)),
			},
		}},
	}}}

	snapshots := ExtractVaultCash(block, store)
	if len(snapshots) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(snapshots))
	}
	snapshot := snapshots[0]
	if snapshot.Ordinal != 9 {
		t.Fatalf("ordinal mismatch: %d", snapshot.Ordinal)
	}
	want := cashValue(0xBB)
	expected, _ := DecodeCashValue(want[:])
	if !bytes.Equal(snapshot.Value, expected) {
		t.Fatalf("value mismatch: %x", snapshot.Value)
	}
	if snapshot.Vault != canonical(testVault0) || snapshot.Token != canonical(testAsset0) {
		t.Fatalf("attribution mismatch: %+v", snapshot)
	}
}

func TestExtractVaultCashEqualValueKeepsOrdinal(t *testing.T) {
	store := registeredStore()

	block := &model.Block{Number: 1, Transactions: []model.Transaction{{
		Index: 0,
		Calls: []model.Call{{
			Index: 1,
			Input: depositInput(t),
			StorageChanges: []model.StorageChange{
				cashWrite(testVault0, 5, cashValue(0xAA)),
				cashWrite(testVault0, 9, cashValue(0xAA)),
			},
		}},
	}}}

	snapshots := ExtractVaultCash(block, store)
	if len(snapshots) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(snapshots))
	}
	if snapshots[0].Ordinal != 5 {
		t.Fatalf("equal value must not advance ordinal: %d", snapshots[0].Ordinal)
	}
}

func TestExtractVaultCashWrongSlot(t *testing.T) {
	store := registeredStore()

	write := cashWrite(testVault0, 5, cashValue(0xAA))
	write.Key = "0x0000000000000000000000000000000000000000000000000000000000000007"

	block := &model.Block{Number: 1, Transactions: []model.Transaction{{
		Index: 0,
		Calls: []model.Call{{
			Index:          1,
			Input:          depositInput(t),
			StorageChanges: []model.StorageChange{write},
		}},
	}}}

	if snapshots := ExtractVaultCash(block, store); len(snapshots) != 0 {
		t.Fatalf("expected no snapshot for foreign slot, got %d", len(snapshots))
	}
}

func TestExtractVaultCashSkipsRevertedAndUnknown(t *testing.T) {
	store := registeredStore()

	reverted := model.Call{
		Index:          1,
		Input:          depositInput(t),
		StateReverted:  true,
		StorageChanges: []model.StorageChange{cashWrite(testVault0, 5, cashValue(0xAA))},
	}
	nonMutator := model.Call{
		Index:          2,
		Input:          "0xdeadbeef",
		StorageChanges: []model.StorageChange{cashWrite(testVault0, 6, cashValue(0xBB))},
	}
	unknownVault := model.Call{
		Index:          3,
		Input:          depositInput(t),
		StorageChanges: []model.StorageChange{cashWrite(testEVC, 7, cashValue(0xCC))},
	}

	block := &model.Block{Number: 1, Transactions: []model.Transaction{{
		Index: 0,
		Calls: []model.Call{reverted, nonMutator, unknownVault},
	}}}

	if snapshots := ExtractVaultCash(block, store); len(snapshots) != 0 {
		t.Fatalf("expected no snapshots, got %d", len(snapshots))
	}
}
