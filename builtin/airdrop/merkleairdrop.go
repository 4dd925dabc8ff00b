// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

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
	slotRoot     = lockon.BytesToBytes32([]byte("airdrop-merkle-root"))
	slotConsumed = lockon.BytesToBytes32([]byte("airdrop-consumed-leaves"))
)

// MerkleAirdrop is the proof based distributor. Allocations live off
// chain, only the tree root is stored and every paid leaf is consumed.
type MerkleAirdrop struct {
	distributor
	root     *solidity.Bytes32
	consumed *solidity.Mapping[lockon.Bytes32, bool]
}

// NewMerkle creates a new instance bound to the contract address.
func NewMerkle(addr lockon.Address, state *state.State, token locktoken.Ledger, escrow Escrow) *MerkleAirdrop {
	sctx := solidity.NewContext(addr, state)

	return &MerkleAirdrop{
		distributor: newDistributor(addr, sctx, token, escrow),
		root:        solidity.NewBytes32(sctx, slotRoot),
		consumed:    solidity.NewMapping[lockon.Bytes32, bool](sctx, slotConsumed),
	}
}

// Root returns the active tree root, zero while unset.
func (m *MerkleAirdrop) Root() (lockon.Bytes32, error) {
	return m.root.Get()
}

// Consumed reports whether the grant of recipient/amount was paid.
func (m *MerkleAirdrop) Consumed(recipient lockon.Address, amount *big.Int) (bool, error) {
	return m.consumed.Get(Leaf(recipient, amount))
}

// SetRoot replaces the tree root. Owner only. Consumed leaves stay
// consumed across root changes, a new tree cannot revive a paid grant
// unless the amount differs.
func (m *MerkleAirdrop) SetRoot(env *runtime.Environment, root lockon.Bytes32) error {
	logger.Debug("setting merkle root", "root", root)

	if err := m.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	m.root.Set(&root)
	env.Log(m.addr, "RootSet", &RootSetEvent{Root: root})
	logger.Info("merkle root set", "root", root)
	return nil
}

// Claim pays the caller's grant after proving it against the root. The
// grant vests in the escrow under the configured category and its leaf
// is consumed.
func (m *MerkleAirdrop) Claim(env *runtime.Environment, amount *big.Int, proof []lockon.Bytes32) error {
	logger.Debug("claiming merkle airdrop", "user", env.Caller(), "amount", amount)

	return m.gate.Guarded(env, func() error {
		user := env.Caller()
		if amount == nil || amount.Sign() <= 0 {
			return reverts.ErrZeroAmount
		}
		if err := m.requireStarted(env.BlockTime()); err != nil {
			logger.Info("claim rejected", "user", user, "error", err)
			return err
		}
		root, err := m.root.Get()
		if err != nil {
			return err
		}
		leaf := Leaf(user, amount)
		if !VerifyProof(leaf, proof, root) {
			logger.Info("claim rejected", "user", user, "error", reverts.ErrInvalidProof)
			return reverts.ErrInvalidProof
		}
		consumed, err := m.consumed.Get(leaf)
		if err != nil {
			return err
		}
		if consumed {
			return reverts.ErrNothingToClaim
		}

		if err := m.consumed.Set(leaf, true); err != nil {
			return err
		}
		if err := m.forward(env, user, amount); err != nil {
			logger.Info("claim forward failed", "user", user, "error", err)
			return err
		}

		env.Log(m.addr, "Claimed", &ClaimedEvent{User: user, Amount: amount})
		countOp("merkle", "claim")
		logger.Info("merkle airdrop claimed", "user", user, "amount", amount)
		return nil
	})
}
