// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/state"
)

// Event is an entry logged by a contract during execution.
type Event struct {
	Address lockon.Address
	Name    string
	Data    any
}

// Receipt summarizes the outcome of one transaction.
type Receipt struct {
	Reverted     bool
	RevertReason string
	// RevertData carries the reason ABI-encoded as an Error(string) payload.
	RevertData []byte
	Events     []Event
}

// Environment is the execution context handed to contract methods.
// Deriving an environment via WithCaller shares the latch set and the
// receipt, only the caller changes.
type Environment struct {
	state     *state.State
	chainTag  byte
	blockTime uint64
	origin    lockon.Address
	caller    lockon.Address
	latches   map[lockon.Address]struct{}
	receipt   *Receipt
}

func (env *Environment) State() *state.State    { return env.state }
func (env *Environment) ChainTag() byte         { return env.chainTag }
func (env *Environment) BlockTime() uint64      { return env.blockTime }
func (env *Environment) Origin() lockon.Address { return env.origin }
func (env *Environment) Caller() lockon.Address { return env.caller }

// WithCaller derives an environment for a nested contract-to-contract call.
func (env *Environment) WithCaller(caller lockon.Address) *Environment {
	derived := *env
	derived.caller = caller
	return &derived
}

// Latch marks the contract at addr busy until the returned release runs.
// A second latch on the same address within one transaction reverts.
func (env *Environment) Latch(addr lockon.Address) (func(), error) {
	if _, held := env.latches[addr]; held {
		return nil, reverts.ErrReentrancy
	}
	env.latches[addr] = struct{}{}
	return func() {
		delete(env.latches, addr)
	}, nil
}

// Log records a contract event on the transaction receipt.
func (env *Environment) Log(address lockon.Address, name string, data any) {
	env.receipt.Events = append(env.receipt.Events, Event{
		Address: address,
		Name:    name,
		Data:    data,
	})
}
