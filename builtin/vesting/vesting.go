// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vesting implements the vesting escrow contract. Principal
// enters through privileged deposits from allow-listed contracts or
// the owner, releases linearly over a per category schedule and leaves
// through beneficiary claims. Every new deposit restarts the schedule
// for the combined principal while the part already released under the
// old schedule carries over without being locked again.
package vesting

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/builtin/gate"
	"github.com/lockon-finance/lock-contracts/builtin/locktoken"
	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
	"github.com/lockon-finance/lock-contracts/runtime"
	"github.com/lockon-finance/lock-contracts/state"
)

var logger = log.WithContext("pkg", "vesting")

// Vesting implements methods of the vesting escrow contract.
type Vesting struct {
	addr    lockon.Address
	gate    *gate.Gate
	service *Service
	token   locktoken.Ledger
}

// New creates a new instance bound to the contract address.
func New(addr lockon.Address, state *state.State, token locktoken.Ledger) *Vesting {
	sctx := solidity.NewContext(addr, state)

	return &Vesting{
		addr:    addr,
		gate:    gate.New(sctx),
		service: NewService(sctx),
		token:   token,
	}
}

// Address returns the contract address.
func (v *Vesting) Address() lockon.Address {
	return v.addr
}

// InitOwner writes the initial owner. Genesis only, before any
// transaction runs.
func (v *Vesting) InitOwner(owner lockon.Address) {
	v.gate.InitOwner(owner)
}

//
// Getters - no state change
//

// Owner returns the current contract owner.
func (v *Vesting) Owner() (lockon.Address, error) {
	return v.gate.Owner()
}

// Paused reports whether deposits and claims are suspended.
func (v *Vesting) Paused() (bool, error) {
	return v.gate.Paused()
}

// GetWallet returns the wallet of user in a category.
func (v *Vesting) GetWallet(user lockon.Address, category *big.Int) (*Wallet, error) {
	return v.service.GetWallet(user, category)
}

// Payable returns what a claim by user in a category would pay at now.
func (v *Vesting) Payable(user lockon.Address, category *big.Int, now uint64) (*big.Int, error) {
	return v.service.Payable(user, category, now)
}

// CategoryDuration returns the schedule duration of a category.
func (v *Vesting) CategoryDuration(category *big.Int) (uint64, error) {
	return v.service.CategoryDuration(category)
}

// IsDepositor reports whether addr may deposit for beneficiaries.
func (v *Vesting) IsDepositor(addr lockon.Address) (bool, error) {
	return v.service.IsDepositor(addr)
}

// IsBanned reports whether user is banned.
func (v *Vesting) IsBanned(user lockon.Address) (bool, error) {
	return v.service.IsBanned(user)
}

//
// Setters - state change
//

// SetCategory configures the release duration of a category. Owner only.
func (v *Vesting) SetCategory(env *runtime.Environment, category *big.Int, duration uint64) error {
	logger.Debug("setting category", "category", category, "duration", duration)

	if err := v.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if err := v.service.SetCategory(category, duration); err != nil {
		return err
	}
	env.Log(v.addr, "CategorySet", &CategorySetEvent{Category: category, Duration: duration})
	logger.Info("category set", "category", category, "duration", duration)
	return nil
}

// SetDepositor updates the depositor allow-list. Owner only.
func (v *Vesting) SetDepositor(env *runtime.Environment, depositor lockon.Address, allowed bool) error {
	logger.Debug("setting depositor", "depositor", depositor, "allowed", allowed)

	if err := v.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if err := v.service.SetDepositor(depositor, allowed); err != nil {
		return err
	}
	env.Log(v.addr, "DepositorSet", &DepositorSetEvent{Depositor: depositor, Allowed: allowed})
	logger.Info("depositor set", "depositor", depositor, "allowed", allowed)
	return nil
}

// SetBanned flips the ban flag of a user. Owner only.
func (v *Vesting) SetBanned(env *runtime.Environment, user lockon.Address, banned bool) error {
	logger.Debug("setting ban flag", "user", user, "banned", banned)

	if err := v.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if err := v.service.SetBanned(user, banned); err != nil {
		return err
	}
	env.Log(v.addr, "BannedSet", &BannedSetEvent{User: user, Banned: banned})
	logger.Info("ban flag set", "user", user, "banned", banned)
	return nil
}

// SetPaused suspends or resumes deposits and claims. Owner only.
func (v *Vesting) SetPaused(env *runtime.Environment, paused bool) error {
	if err := v.gate.SetPaused(env.Caller(), paused); err != nil {
		return err
	}
	env.Log(v.addr, "PausedSet", &PausedSetEvent{Paused: paused})
	logger.Info("paused set", "paused", paused)
	return nil
}

// TransferOwnership starts the two step ownership handover. Owner only.
func (v *Vesting) TransferOwnership(env *runtime.Environment, newOwner lockon.Address) error {
	if err := v.gate.TransferOwnership(env.Caller(), newOwner); err != nil {
		return err
	}
	env.Log(v.addr, "OwnershipTransferStarted", &OwnershipTransferStartedEvent{NewOwner: newOwner})
	return nil
}

// AcceptOwnership completes the handover. Pending owner only.
func (v *Vesting) AcceptOwnership(env *runtime.Environment) error {
	if err := v.gate.AcceptOwnership(env.Caller()); err != nil {
		return err
	}
	env.Log(v.addr, "OwnershipTransferred", &OwnershipTransferredEvent{Owner: env.Caller()})
	return nil
}

// Deposit locks amount for the beneficiary under a category, pulling
// the tokens from the caller. Callable by allow-listed depositors and
// the owner.
func (v *Vesting) Deposit(env *runtime.Environment, beneficiary lockon.Address, amount, category *big.Int) error {
	logger.Debug("depositing", "caller", env.Caller(), "beneficiary", beneficiary, "amount", amount, "category", category)

	return v.gate.Guarded(env, func() error {
		caller := env.Caller()
		allowed, err := v.service.IsDepositor(caller)
		if err != nil {
			return err
		}
		if !allowed {
			owner, err := v.gate.Owner()
			if err != nil {
				return err
			}
			if caller != owner {
				logger.Info("deposit rejected", "caller", caller, "error", reverts.ErrNotDepositor)
				return reverts.ErrNotDepositor
			}
		}

		wallet, err := v.service.Deposit(beneficiary, amount, category, env.BlockTime())
		if err != nil {
			logger.Info("deposit failed", "beneficiary", beneficiary, "error", err)
			return err
		}
		if err := v.token.TransferFrom(v.addr, caller, v.addr, amount); err != nil {
			logger.Info("deposit transfer failed", "caller", caller, "error", err)
			return err
		}

		env.Log(v.addr, "Deposited", &DepositedEvent{
			Depositor:     caller,
			Beneficiary:   beneficiary,
			Category:      category,
			Amount:        amount,
			VestingAmount: wallet.VestingAmount,
			Carryover:     wallet.ClaimableAmount,
		})
		countOp("deposit")
		logger.Info("deposited", "beneficiary", beneficiary, "amount", amount, "category", category)
		return nil
	})
}

// Claim pays out everything currently releasable to the caller from a
// category.
func (v *Vesting) Claim(env *runtime.Environment, category *big.Int) error {
	logger.Debug("claiming", "user", env.Caller(), "category", category)

	return v.gate.Guarded(env, func() error {
		user := env.Caller()
		_, payable, err := v.service.Claim(user, category, env.BlockTime())
		if err != nil {
			logger.Info("claim failed", "user", user, "error", err)
			return err
		}
		if err := v.token.Transfer(v.addr, user, payable); err != nil {
			return err
		}

		env.Log(v.addr, "Claimed", &ClaimedEvent{User: user, Category: category, Amount: payable})
		countOp("claim")
		logger.Info("claimed", "user", user, "category", category, "amount", payable)
		return nil
	})
}
