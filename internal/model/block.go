package model

// StorageChange is a raw storage-slot write recorded during a call.
// Key and values are 32-byte quantities in "0x" hex form.
type StorageChange struct {
	Address  string `json:"address"`
	Key      string `json:"key"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
	Ordinal  uint64 `json:"ordinal"`
}

// Call is one message call executed inside a transaction, flattened in
// execution order. StateReverted marks calls whose effects were rolled back.
type Call struct {
	Index          uint64          `json:"index"`
	Address        string          `json:"address"`
	Input          string          `json:"input"`
	StateReverted  bool            `json:"state_reverted"`
	StorageChanges []StorageChange `json:"storage_changes,omitempty"`
}

// Log is an event emitted during a transaction. Ordinal orders logs, calls and
// storage writes causally within the block; CallIndex points at the emitting call.
type Log struct {
	Index     uint64   `json:"index"`
	Ordinal   uint64   `json:"ordinal"`
	CallIndex uint64   `json:"call_index"`
	Address   string   `json:"address"`
	Topics    []string `json:"topics"`
	Data      string   `json:"data"`
}

// Transaction is one transaction with its ordered logs and calls.
type Transaction struct {
	Index uint64 `json:"index"`
	Hash  string `json:"hash"`
	From  string `json:"from"`
	To    string `json:"to"`
	Logs  []Log  `json:"logs,omitempty"`
	Calls []Call `json:"calls,omitempty"`
}

// Block is the fully-materialized per-block input to the pipeline. It is
// immutable once handed to a stage; the host delivering blocks guarantees
// strictly increasing heights.
type Block struct {
	Number       uint64        `json:"number"`
	Hash         string        `json:"hash"`
	ParentHash   string        `json:"parent_hash"`
	Timestamp    uint64        `json:"timestamp"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// CallByIndex returns the call with the given index, or nil.
func (tx *Transaction) CallByIndex(index uint64) *Call {
	for i := range tx.Calls {
		if tx.Calls[i].Index == index {
			return &tx.Calls[i]
		}
	}
	return nil
}
