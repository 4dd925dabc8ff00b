// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial state of a LOCK token economy.
// A preset decides who holds the supply, who governs the contracts and
// how the vesting and staking programs are parameterized at launch.
package genesis

import (
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/state"
)

// Genesis describes a presettled genesis state.
type Genesis struct {
	builder *Builder
	id      lockon.Bytes32
	name    string
}

// Build builds the genesis state.
func (g *Genesis) Build() (*state.State, error) {
	return g.builder.Build()
}

// ID returns the genesis ID, which identifies the network.
func (g *Genesis) ID() lockon.Bytes32 {
	return g.id
}

// Name returns the name of the network.
func (g *Genesis) Name() string {
	return g.name
}

// Timestamp returns the launch time of the network.
func (g *Genesis) Timestamp() uint64 {
	return g.builder.timestamp
}

// ChainTag extracts the chain tag from the genesis ID. Claim requests
// sign over the tag, so two networks never accept each other's grants.
func (g *Genesis) ChainTag() byte {
	return g.id[31]
}
