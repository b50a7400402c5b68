package changeset

import (
	"sort"

	"eulerScope/internal/model"
)

// Builder accumulates the changes attached to one transaction and finalizes
// them into a deterministic TransactionChanges record.
type Builder struct {
	blockNumber uint64
	txIndex     uint64
	txHash      string

	components   []model.Component
	createdHere  map[string]struct{}
	entity       map[string]map[string]model.Attribute
	balances     map[string]map[string]model.BalanceChange
	contracts    map[string]*contractState
}

type contractState struct {
	slots         map[string]model.SlotChange
	tokenBalances map[string]string
	change        model.ChangeType
}

// NewBuilder returns a builder for the given transaction.
func NewBuilder(block *model.Block, tx *model.Transaction) *Builder {
	return &Builder{
		blockNumber: block.Number,
		txIndex:     tx.Index,
		txHash:      tx.Hash,
		createdHere: make(map[string]struct{}),
		entity:      make(map[string]map[string]model.Attribute),
		balances:    make(map[string]map[string]model.BalanceChange),
		contracts:   make(map[string]*contractState),
	}
}

// AddComponent attaches a newly created component.
func (b *Builder) AddComponent(component model.Component) {
	b.components = append(b.components, component)
	b.createdHere[component.ID] = struct{}{}
}

// AddEntityChange merges attribute changes for one component. A later write
// to the same attribute name wins.
func (b *Builder) AddEntityChange(componentID string, attributes []model.Attribute) {
	byName, ok := b.entity[componentID]
	if !ok {
		byName = make(map[string]model.Attribute)
		b.entity[componentID] = byName
	}
	for _, attribute := range attributes {
		byName[attribute.Name] = attribute
	}
}

// AddBalanceChange attaches an absolute balance for a (component, token) pair.
func (b *Builder) AddBalanceChange(change model.BalanceChange) {
	byToken, ok := b.balances[change.ComponentID]
	if !ok {
		byToken = make(map[string]model.BalanceChange)
		b.balances[change.ComponentID] = byToken
	}
	byToken[change.Token] = change
}

// AddContractSlots attaches final slot values for one contract.
func (b *Builder) AddContractSlots(address string, slots []model.SlotChange) {
	state := b.contract(address)
	for _, slot := range slots {
		if held, ok := state.slots[slot.Slot]; ok && held.Ordinal >= slot.Ordinal {
			continue
		}
		state.slots[slot.Slot] = slot
	}
}

// UpsertTokenBalance attaches an absolute contract-level token balance
// overwrite, replacing any previous value for the token.
func (b *Builder) UpsertTokenBalance(address, token, balance string) {
	b.contract(address).tokenBalances[token] = balance
}

// MarkComponentAsUpdated records the mutable "updated" marker for a component
// touched through one of its owned contracts. Components created in this same
// transaction already carry their creation attributes and are left alone.
func (b *Builder) MarkComponentAsUpdated(componentID string) {
	if _, ok := b.createdHere[componentID]; ok {
		return
	}
	b.AddEntityChange(componentID, []model.Attribute{{
		Name:   "update_marker",
		Value:  "0x01",
		Change: model.ChangeUpdate,
	}})
}

// ChangedContracts returns the addresses with attached contract changes.
func (b *Builder) ChangedContracts() []string {
	addresses := make([]string, 0, len(b.contracts))
	for address := range b.contracts {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}

// Build finalizes the change-set, or returns nil when nothing was attached.
func (b *Builder) Build() *model.TransactionChanges {
	if len(b.components) == 0 && len(b.entity) == 0 && len(b.balances) == 0 && len(b.contracts) == 0 {
		return nil
	}

	changes := &model.TransactionChanges{
		BlockNumber: b.blockNumber,
		TxIndex:     b.txIndex,
		TxHash:      b.txHash,
		Components:  b.components,
	}

	entityIDs := sortedKeys(b.entity)
	for _, componentID := range entityIDs {
		byName := b.entity[componentID]
		names := sortedKeys(byName)
		attributes := make([]model.Attribute, 0, len(names))
		for _, name := range names {
			attributes = append(attributes, byName[name])
		}
		changes.EntityChanges = append(changes.EntityChanges, model.EntityChanges{
			ComponentID: componentID,
			Attributes:  attributes,
		})
	}

	for _, componentID := range sortedKeys(b.balances) {
		byToken := b.balances[componentID]
		for _, token := range sortedKeys(byToken) {
			changes.BalanceChanges = append(changes.BalanceChanges, byToken[token])
		}
	}

	for _, address := range b.ChangedContracts() {
		state := b.contracts[address]
		contractChange := model.ContractChange{
			Address: address,
			Change:  state.change,
		}
		slots := make([]model.SlotChange, 0, len(state.slots))
		for _, slot := range state.slots {
			slots = append(slots, slot)
		}
		sort.Slice(slots, func(a, b int) bool { return slots[a].Ordinal < slots[b].Ordinal })
		contractChange.Slots = slots
		if len(state.tokenBalances) > 0 {
			contractChange.TokenBalances = state.tokenBalances
		}
		changes.ContractChanges = append(changes.ContractChanges, contractChange)
	}

	return changes
}

func (b *Builder) contract(address string) *contractState {
	state, ok := b.contracts[address]
	if !ok {
		state = &contractState{
			slots:         make(map[string]model.SlotChange),
			tokenBalances: make(map[string]string),
			change:        model.ChangeUpdate,
		}
		b.contracts[address] = state
	}
	return state
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
