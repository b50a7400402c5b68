package model

// ChangeType marks whether a record was created or updated in this block.
type ChangeType string

const (
	ChangeCreation ChangeType = "creation"
	ChangeUpdate   ChangeType = "update"
)

// Attribute is a named static or entity attribute. Values are strings:
// canonical addresses, decimal integers, or JSON arrays of decimal integers.
type Attribute struct {
	Name   string     `json:"name"`
	Value  string     `json:"value"`
	Change ChangeType `json:"change"`
}

// Component is one protocol component: a deployed pool contract together with
// its token pair, related contracts and static attributes. The id is the
// canonical pool address and is assigned exactly once, at deployment.
type Component struct {
	ID           string      `json:"id"`
	Tokens       []string    `json:"tokens"`
	Contracts    []string    `json:"contracts"`
	Attributes   []Attribute `json:"static_attributes,omitempty"`
	ProtocolType string      `json:"protocol_type"`
	Change       ChangeType  `json:"change"`
}

// EntityChanges carries mutable attribute changes for one component.
type EntityChanges struct {
	ComponentID string      `json:"component_id"`
	Attributes  []Attribute `json:"attributes"`
}

// BalanceChange reports the absolute balance of one token held by a component
// after this transaction. Balance is a decimal integer string.
type BalanceChange struct {
	ComponentID string `json:"component_id"`
	Token       string `json:"token"`
	Balance     string `json:"balance"`
}

// SlotChange is the final value written to one storage slot within a transaction.
type SlotChange struct {
	Slot    string `json:"slot"`
	Value   string `json:"value"`
	Ordinal uint64 `json:"ordinal"`
}

// ContractChange groups raw storage changes and token balance overwrites for
// one contract within a transaction.
type ContractChange struct {
	Address       string            `json:"address"`
	Slots         []SlotChange      `json:"slots,omitempty"`
	TokenBalances map[string]string `json:"token_balances,omitempty"`
	Change        ChangeType        `json:"change"`
}

// TransactionChanges is the finalized change-set for one transaction. A block
// emits one of these per transaction with any activity, sorted by tx index.
type TransactionChanges struct {
	BlockNumber     uint64           `json:"block_number"`
	TxIndex         uint64           `json:"tx_index"`
	TxHash          string           `json:"tx_hash"`
	Components      []Component      `json:"components,omitempty"`
	EntityChanges   []EntityChanges  `json:"entity_changes,omitempty"`
	BalanceChanges  []BalanceChange  `json:"balance_changes,omitempty"`
	ContractChanges []ContractChange `json:"contract_changes,omitempty"`
}
