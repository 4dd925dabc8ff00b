// Copyright (c) 2026 The Lockon developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity provides storage abstractions for built-in contracts,
// mirroring the layout primitives of a Solidity contract.
package solidity

import (
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/state"
)

// Context binds storage primitives to the owning contract address.
type Context struct {
	address lockon.Address
	state   *state.State
}

func NewContext(address lockon.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) Address() lockon.Address {
	return c.address
}
