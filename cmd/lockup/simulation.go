// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin"
	"github.com/lockon-finance/lock-contracts/builtin/claims"
	"github.com/lockon-finance/lock-contracts/builtin/indexstaking"
	"github.com/lockon-finance/lock-contracts/builtin/lockstaking"
	"github.com/lockon-finance/lock-contracts/genesis"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
	"github.com/lockon-finance/lock-contracts/runtime"
)

// simulation owns a freshly built deployment and a virtual clock, and
// pushes transactions through a shared runtime. The authority key signs
// claim grants the way the off-chain reward service would.
type simulation struct {
	gene         *genesis.Genesis
	rt           *runtime.Runtime
	now          atomic.Uint64
	authorityKey *ecdsa.PrivateKey
}

func newSimulation(gene *genesis.Genesis, authorityKey *ecdsa.PrivateKey) (*simulation, error) {
	st, err := gene.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build genesis state")
	}
	sim := &simulation{gene: gene, authorityKey: authorityKey}
	sim.now.Store(gene.Timestamp())
	sim.rt = runtime.New(st, gene.ChainTag(), sim.now.Load)
	return sim, nil
}

// advanceTo moves the clock to offset seconds after launch.
// The clock never rewinds.
func (sim *simulation) advanceTo(offset uint64) error {
	target := sim.gene.Timestamp() + offset
	for {
		now := sim.now.Load()
		if target < now {
			return errors.Errorf("cannot rewind the clock to launch+%ds", offset)
		}
		if sim.now.CompareAndSwap(now, target) {
			return nil
		}
	}
}

// tick advances the clock by step seconds.
func (sim *simulation) tick(step uint64) {
	sim.now.Add(step)
}

// transact submits one transaction and reports its outcome to the log.
// Reverts are part of normal operation and do not fail the simulation.
func (sim *simulation) transact(origin lockon.Address, action string, fn func(env *runtime.Environment) error) (*runtime.Receipt, error) {
	receipt, err := sim.rt.Transact(origin, fn)
	if err != nil {
		return nil, errors.Wrap(err, action)
	}
	if receipt.Reverted {
		log.Warn("reverted", "action", action, "origin", origin, "reason", receipt.RevertReason)
		return receipt, nil
	}
	for _, ev := range receipt.Events {
		log.Debug(ev.Name, "action", action, "origin", origin)
	}
	return receipt, nil
}

// lockClaim signs a lock-staking grant of amount for user and submits
// it, settling the accrued bonus along the way.
func (sim *simulation) lockClaim(user lockon.Address, amount *big.Int) (*runtime.Receipt, error) {
	req := &claims.Request{
		RequestID:   uuid.New(),
		Beneficiary: user,
		StakeToken:  builtin.LockToken.Address,
		ClaimAmount: amount,
	}
	auth := lockstaking.ClaimAuthorizer(sim.rt.ChainTag(), builtin.LockStaking.Address)
	sig, err := auth.Sign(req, sim.authorityKey)
	if err != nil {
		return nil, errors.Wrap(err, "sign lock claim")
	}
	return sim.transact(user, "lock-claim", func(env *runtime.Environment) error {
		return builtin.LockStaking.WithState(env.State()).Claim(env, req.StakeToken, req.RequestID, req.ClaimAmount, sig)
	})
}

// indexClaim reads the pending reward of user, attests it in a signed
// request and claims it together with an extra grant of amount.
func (sim *simulation) indexClaim(user lockon.Address, amount *big.Int) (*runtime.Receipt, error) {
	var cumulative *big.Int
	if err := sim.rt.Query(func(env *runtime.Environment) error {
		pending, err := builtin.IndexStaking.WithState(env.State()).PendingReward(user, builtin.LockToken.Address, env.BlockTime())
		if err != nil {
			return err
		}
		cumulative = pending
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "query pending reward")
	}

	req := &claims.Request{
		RequestID:               uuid.New(),
		Beneficiary:             user,
		StakeToken:              builtin.LockToken.Address,
		CumulativePendingReward: cumulative,
		ClaimAmount:             amount,
	}
	auth := indexstaking.ClaimAuthorizer(sim.rt.ChainTag(), builtin.IndexStaking.Address)
	sig, err := auth.Sign(req, sim.authorityKey)
	if err != nil {
		return nil, errors.Wrap(err, "sign index claim")
	}
	return sim.transact(user, "index-claim", func(env *runtime.Environment) error {
		return builtin.IndexStaking.WithState(env.State()).Claim(env, req.StakeToken, req.RequestID, req.CumulativePendingReward, req.ClaimAmount, sig)
	})
}

type namedAccount struct {
	Name    string
	Address lockon.Address
}

// contractAccounts lists the token custody points of the economy.
var contractAccounts = []namedAccount{
	{"lock-staking", builtin.LockStaking.Address},
	{"index-staking", builtin.IndexStaking.Address},
	{"vesting", builtin.Vesting.Address},
	{"airdrop", builtin.Airdrop.Address},
	{"merkle-airdrop", builtin.MerkleAirdrop.Address},
}

type balanceEntry struct {
	Name    string
	Balance *big.Int
}

// holdings reports the balance of every given account followed by the
// contract custody balances, plus the sum over all of them. Repeated
// addresses count once. With the full holder set the sum equals the
// initial supply.
func (sim *simulation) holdings(accounts []namedAccount) ([]balanceEntry, *big.Int, error) {
	entries := make([]balanceEntry, 0, len(accounts)+len(contractAccounts))
	total := new(big.Int)
	seen := make(map[lockon.Address]bool)
	err := sim.rt.Query(func(env *runtime.Environment) error {
		token := builtin.LockToken.WithState(env.State())
		for _, acc := range append(append([]namedAccount(nil), accounts...), contractAccounts...) {
			if seen[acc.Address] {
				continue
			}
			seen[acc.Address] = true
			balance, err := token.BalanceOf(acc.Address)
			if err != nil {
				return err
			}
			entries = append(entries, balanceEntry{acc.Name, balance})
			total.Add(total, balance)
		}
		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "query holdings")
	}
	return entries, total, nil
}
