// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package airdrop implements the two airdrop distributors. The list
// variant pays allocations the owner loaded on chain, the merkle
// variant pays allocations proven against an owner set tree root. Both
// open at a configurable start time, pay each grant exactly once and
// forward the payout into the vesting escrow instead of transferring it
// to the claimer directly.
package airdrop

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/builtin/locktoken"
	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/runtime"
	"github.com/lockon-finance/lock-contracts/state"
)

var (
	slotAllocations = lockon.BytesToBytes32([]byte("airdrop-allocations"))
	slotClaimed     = lockon.BytesToBytes32([]byte("airdrop-claimed"))
)

// Airdrop is the list based distributor.
type Airdrop struct {
	distributor
	allocations *solidity.Mapping[lockon.Address, *big.Int]
	claimed     *solidity.Mapping[lockon.Address, bool]
}

// New creates a new instance bound to the contract address.
func New(addr lockon.Address, state *state.State, token locktoken.Ledger, escrow Escrow) *Airdrop {
	sctx := solidity.NewContext(addr, state)

	return &Airdrop{
		distributor: newDistributor(addr, sctx, token, escrow),
		allocations: solidity.NewMapping[lockon.Address, *big.Int](sctx, slotAllocations),
		claimed:     solidity.NewMapping[lockon.Address, bool](sctx, slotClaimed),
	}
}

// Allocation returns the loaded grant of a recipient, zero when none.
func (a *Airdrop) Allocation(recipient lockon.Address) (*big.Int, error) {
	return a.allocations.Get(recipient)
}

// HasClaimed reports whether a recipient already took their grant.
func (a *Airdrop) HasClaimed(recipient lockon.Address) (bool, error) {
	return a.claimed.Get(recipient)
}

// SetAllocations batch loads grants, overwriting existing entries. A
// zero amount clears a recipient. Owner only.
func (a *Airdrop) SetAllocations(env *runtime.Environment, allocations []Allocation) error {
	logger.Debug("setting allocations", "count", len(allocations))

	if err := a.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	total := new(big.Int)
	for _, alloc := range allocations {
		if alloc.Recipient.IsZero() {
			return reverts.ErrZeroAddress
		}
		if alloc.Amount == nil || alloc.Amount.Sign() < 0 {
			return reverts.ErrZeroAmount
		}
		if err := a.allocations.Set(alloc.Recipient, alloc.Amount); err != nil {
			return err
		}
		total.Add(total, alloc.Amount)
	}

	env.Log(a.addr, "AllocationsSet", &AllocationsSetEvent{Count: uint64(len(allocations)), Total: total})
	logger.Info("allocations set", "count", len(allocations), "total", total)
	return nil
}

// Claim pays the caller's grant once the claim window is open. The
// grant vests in the escrow under the configured category, a second
// claim finds nothing left.
func (a *Airdrop) Claim(env *runtime.Environment) error {
	logger.Debug("claiming airdrop", "user", env.Caller())

	return a.gate.Guarded(env, func() error {
		user := env.Caller()
		if err := a.requireStarted(env.BlockTime()); err != nil {
			logger.Info("claim rejected", "user", user, "error", err)
			return err
		}
		claimed, err := a.claimed.Get(user)
		if err != nil {
			return err
		}
		if claimed {
			return reverts.ErrNothingToClaim
		}
		amount, err := a.allocations.Get(user)
		if err != nil {
			return err
		}
		if amount.Sign() == 0 {
			return reverts.ErrNothingToClaim
		}

		if err := a.claimed.Set(user, true); err != nil {
			return err
		}
		if err := a.forward(env, user, amount); err != nil {
			logger.Info("claim forward failed", "user", user, "error", err)
			return err
		}

		env.Log(a.addr, "Claimed", &ClaimedEvent{User: user, Amount: amount})
		countOp("list", "claim")
		logger.Info("airdrop claimed", "user", user, "amount", amount)
		return nil
	})
}
