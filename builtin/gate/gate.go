// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package gate holds the administrative state every token-economics
// contract carries: a two-step transferable owner and a pause switch.
// Entry points wrap themselves with Guarded to get the pause check and
// the reentrancy latch in one place.
package gate

import (
	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/runtime"
)

var (
	slotOwner        = lockon.BytesToBytes32([]byte("gate-owner"))
	slotPendingOwner = lockon.BytesToBytes32([]byte("gate-pending-owner"))
	slotPaused       = lockon.BytesToBytes32([]byte("gate-paused"))
)

type Gate struct {
	address      lockon.Address
	owner        *solidity.Address
	pendingOwner *solidity.Address
	paused       *solidity.Bool
}

func New(sctx *solidity.Context) *Gate {
	return &Gate{
		address:      sctx.Address(),
		owner:        solidity.NewAddress(sctx, slotOwner),
		pendingOwner: solidity.NewAddress(sctx, slotPendingOwner),
		paused:       solidity.NewBool(sctx, slotPaused),
	}
}

func (g *Gate) Owner() (lockon.Address, error) {
	owner, err := g.owner.Get()
	if err != nil {
		return lockon.Address{}, errors.Wrap(err, "failed to get owner")
	}
	return owner, nil
}

func (g *Gate) PendingOwner() (lockon.Address, error) {
	pending, err := g.pendingOwner.Get()
	if err != nil {
		return lockon.Address{}, errors.Wrap(err, "failed to get pending owner")
	}
	return pending, nil
}

// InitOwner installs the first owner without authorization checks.
// Genesis only.
func (g *Gate) InitOwner(owner lockon.Address) {
	g.owner.Set(&owner)
}

// RequireOwner rejects callers other than the current owner.
func (g *Gate) RequireOwner(caller lockon.Address) error {
	owner, err := g.Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		return reverts.ErrNotOwner
	}
	return nil
}

// TransferOwnership nominates a new owner. The nominee takes over only
// after calling AcceptOwnership, until then the current owner stays in
// charge and may nominate someone else.
func (g *Gate) TransferOwnership(caller, newOwner lockon.Address) error {
	if err := g.RequireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.ErrZeroAddress
	}
	g.pendingOwner.Set(&newOwner)
	return nil
}

// AcceptOwnership completes a pending ownership transfer.
func (g *Gate) AcceptOwnership(caller lockon.Address) error {
	pending, err := g.PendingOwner()
	if err != nil {
		return err
	}
	if pending.IsZero() || caller != pending {
		return reverts.ErrNotOwner
	}
	g.owner.Set(&caller)
	g.pendingOwner.Set(nil)
	return nil
}

func (g *Gate) Paused() (bool, error) {
	paused, err := g.paused.Get()
	if err != nil {
		return false, errors.Wrap(err, "failed to get pause flag")
	}
	return paused, nil
}

// SetPaused flips the pause switch. Owner only.
func (g *Gate) SetPaused(caller lockon.Address, paused bool) error {
	if err := g.RequireOwner(caller); err != nil {
		return err
	}
	g.paused.Set(paused)
	return nil
}

// Guarded runs fn behind the pause check and the contract's reentrancy
// latch. State-mutating entry points go through here.
func (g *Gate) Guarded(env *runtime.Environment, fn func() error) error {
	paused, err := g.Paused()
	if err != nil {
		return err
	}
	if paused {
		return reverts.ErrPaused
	}

	release, err := env.Latch(g.address)
	if err != nil {
		return err
	}
	defer release()

	return fn()
}
