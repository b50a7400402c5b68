package euler

import (
	"github.com/ethereum/go-ethereum/common"

	"eulerScope/internal/addr"
)

// Protocol holds the fixed protocol addresses and the protocol type name.
// These are supplied at initialization and never change at runtime.
type Protocol struct {
	Factory              common.Address
	EVC                  common.Address
	Periphery            common.Address
	Implementation       common.Address
	EVaultImpl           common.Address
	VaultModuleImpl      common.Address
	BorrowingModuleImpl  common.Address
	GovernanceModuleImpl common.Address
	GenericFactory       common.Address
	Permit2              common.Address
	ProtocolTypeName     string
}

// DefaultProtocol returns the Ethereum mainnet deployment.
func DefaultProtocol() *Protocol {
	return &Protocol{
		Factory:              common.HexToAddress("0xF75548aF02f1928CbE9015985D4Fcbf96d728544"),
		EVC:                  common.HexToAddress("0x0C9a3dd6b8F28529d72d7f9cE918D493519EE383"),
		Periphery:            common.HexToAddress("0x4fE0547e7Be0e9a9cED3aC948B83146996f899aE"),
		Implementation:       common.HexToAddress("0x270e7d14f304c0df91e50996072525b24978e17f"),
		EVaultImpl:           common.HexToAddress("0x8ff1c814719096b61abf00bb46ead0c9a529dd7d"),
		VaultModuleImpl:      common.HexToAddress("0xb4ad4d9c02c01b01cf586c16f01c58c73c7f0188"),
		BorrowingModuleImpl:  common.HexToAddress("0x639156f8feb0cd88205e4861a0224ec169605acf"),
		GovernanceModuleImpl: common.HexToAddress("0xa61f5016f2cd5cec12d091f871fce1e1df5f0b67"),
		GenericFactory:       common.HexToAddress("0x29a56a1b8214d9cf7c5561811750d5cbdb45cc8e"),
		Permit2:              common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3"),
		ProtocolTypeName:     "eulerswap",
	}
}

// FactoryID returns the canonical factory address string.
func (p *Protocol) FactoryID() string {
	return addr.Encode(p.Factory.Bytes())
}

// IsInfrastructure reports whether the address belongs to the fixed
// protocol-infrastructure allow-list used when filtering contract diffs.
func (p *Protocol) IsInfrastructure(address string) bool {
	for _, fixed := range []common.Address{
		p.EVC,
		p.Periphery,
		p.Implementation,
		p.EVaultImpl,
		p.VaultModuleImpl,
		p.BorrowingModuleImpl,
		p.GovernanceModuleImpl,
		p.GenericFactory,
	} {
		if address == addr.Encode(fixed.Bytes()) {
			return true
		}
	}
	return false
}

// StatelessContracts returns the shared stateless contract addresses attached
// to every component as default attributes, in their fixed order.
func (p *Protocol) StatelessContracts() []common.Address {
	return []common.Address{
		p.EVaultImpl,
		p.VaultModuleImpl,
		p.BorrowingModuleImpl,
		p.GovernanceModuleImpl,
		p.Permit2,
		p.Implementation,
	}
}
