// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package airdrop

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/builtin/gate"
	"github.com/lockon-finance/lock-contracts/builtin/locktoken"
	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
	"github.com/lockon-finance/lock-contracts/runtime"
)

var logger = log.WithContext("pkg", "airdrop")

var (
	slotClaimStart = lockon.BytesToBytes32([]byte("airdrop-claim-start"))
	slotCategory   = lockon.BytesToBytes32([]byte("vesting-category"))
)

// Escrow is the vesting contract surface claimed airdrops are forwarded
// to.
type Escrow interface {
	Address() lockon.Address
	Deposit(env *runtime.Environment, beneficiary lockon.Address, amount, category *big.Int) error
}

// distributor carries what both airdrop variants share: the guard, the
// token custody, the claim window and the escrow forwarding.
type distributor struct {
	addr       lockon.Address
	gate       *gate.Gate
	token      locktoken.Ledger
	escrow     Escrow
	claimStart *solidity.Uint256
	category   *solidity.Uint256
}

func newDistributor(addr lockon.Address, sctx *solidity.Context, token locktoken.Ledger, escrow Escrow) distributor {
	return distributor{
		addr:       addr,
		gate:       gate.New(sctx),
		token:      token,
		escrow:     escrow,
		claimStart: solidity.NewUint256(sctx, slotClaimStart),
		category:   solidity.NewUint256(sctx, slotCategory),
	}
}

// Address returns the contract address.
func (d *distributor) Address() lockon.Address {
	return d.addr
}

// InitOwner writes the initial owner. Genesis only, before any
// transaction runs.
func (d *distributor) InitOwner(owner lockon.Address) {
	d.gate.InitOwner(owner)
}

// Owner returns the current contract owner.
func (d *distributor) Owner() (lockon.Address, error) {
	return d.gate.Owner()
}

// Paused reports whether claims are suspended.
func (d *distributor) Paused() (bool, error) {
	return d.gate.Paused()
}

// ClaimStart returns the time claims open.
func (d *distributor) ClaimStart() (uint64, error) {
	start, err := d.claimStart.Get()
	if err != nil {
		return 0, err
	}
	return start.Uint64(), nil
}

// VestingCategory returns the escrow category claims vest under.
func (d *distributor) VestingCategory() (*big.Int, error) {
	return d.category.Get()
}

// SetClaimStart sets the time claims open. Owner only.
func (d *distributor) SetClaimStart(env *runtime.Environment, start uint64) error {
	if err := d.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	d.claimStart.Set(new(big.Int).SetUint64(start))
	env.Log(d.addr, "ClaimStartSet", &ClaimStartSetEvent{Start: start})
	logger.Info("claim start set", "start", start)
	return nil
}

// SetVestingCategory sets the escrow category claims vest under. Owner only.
func (d *distributor) SetVestingCategory(env *runtime.Environment, category *big.Int) error {
	if err := d.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	d.category.Set(category)
	env.Log(d.addr, "VestingCategorySet", &VestingCategorySetEvent{Category: category})
	logger.Info("vesting category set", "category", category)
	return nil
}

// SetPaused suspends or resumes claims. Owner only.
func (d *distributor) SetPaused(env *runtime.Environment, paused bool) error {
	if err := d.gate.SetPaused(env.Caller(), paused); err != nil {
		return err
	}
	env.Log(d.addr, "PausedSet", &PausedSetEvent{Paused: paused})
	logger.Info("paused set", "paused", paused)
	return nil
}

// TransferOwnership starts the two step ownership handover. Owner only.
func (d *distributor) TransferOwnership(env *runtime.Environment, newOwner lockon.Address) error {
	if err := d.gate.TransferOwnership(env.Caller(), newOwner); err != nil {
		return err
	}
	env.Log(d.addr, "OwnershipTransferStarted", &OwnershipTransferStartedEvent{NewOwner: newOwner})
	return nil
}

// AcceptOwnership completes the handover. Pending owner only.
func (d *distributor) AcceptOwnership(env *runtime.Environment) error {
	if err := d.gate.AcceptOwnership(env.Caller()); err != nil {
		return err
	}
	env.Log(d.addr, "OwnershipTransferred", &OwnershipTransferredEvent{Owner: env.Caller()})
	return nil
}

// Recover moves unclaimed funding out of the contract. Owner only.
func (d *distributor) Recover(env *runtime.Environment, recipient lockon.Address, amount *big.Int) error {
	logger.Debug("recovering funds", "recipient", recipient, "amount", amount)

	if err := d.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if recipient.IsZero() {
		return reverts.ErrZeroAddress
	}
	if err := d.token.Transfer(d.addr, recipient, amount); err != nil {
		return err
	}
	env.Log(d.addr, "Recovered", &RecoveredEvent{Recipient: recipient, Amount: amount})
	logger.Info("funds recovered", "recipient", recipient, "amount", amount)
	return nil
}

func (d *distributor) requireStarted(now uint64) error {
	start, err := d.claimStart.Get()
	if err != nil {
		return err
	}
	if now < start.Uint64() {
		return reverts.ErrClaimNotStarted
	}
	return nil
}

// forward vests the claimed amount for the beneficiary: the escrow
// pulls the tokens out of the distributor against a one-shot allowance.
func (d *distributor) forward(env *runtime.Environment, beneficiary lockon.Address, amount *big.Int) error {
	category, err := d.category.Get()
	if err != nil {
		return err
	}
	if err := d.token.Approve(d.addr, d.escrow.Address(), amount); err != nil {
		return err
	}
	return d.escrow.Deposit(env.WithCaller(d.addr), beneficiary, amount, category)
}
