// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the contracts of the LOCK token economy to
// their well-known addresses and wires them to each other.
package builtin

import (
	"github.com/lockon-finance/lock-contracts/builtin/airdrop"
	"github.com/lockon-finance/lock-contracts/builtin/indexstaking"
	"github.com/lockon-finance/lock-contracts/builtin/lockstaking"
	"github.com/lockon-finance/lock-contracts/builtin/locktoken"
	"github.com/lockon-finance/lock-contracts/builtin/params"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/builtin/vesting"
	"github.com/lockon-finance/lock-contracts/state"
)

// Builtin contracts binding.
var (
	Params        = &paramsContract{newContract("Params")}
	LockToken     = &lockTokenContract{newContract("LockToken")}
	Vesting       = &vestingContract{newContract("Vesting")}
	LockStaking   = &lockStakingContract{newContract("LockStaking")}
	IndexStaking  = &indexStakingContract{newContract("IndexStaking")}
	Airdrop       = &airdropContract{newContract("Airdrop")}
	MerkleAirdrop = &merkleAirdropContract{newContract("MerkleAirdrop")}
)

type (
	paramsContract        struct{ *contract }
	lockTokenContract     struct{ *contract }
	vestingContract       struct{ *contract }
	lockStakingContract   struct{ *contract }
	indexStakingContract  struct{ *contract }
	airdropContract       struct{ *contract }
	merkleAirdropContract struct{ *contract }
)

func (p *paramsContract) WithState(state *state.State) *params.Params {
	return params.New(solidity.NewContext(p.Address, state))
}

func (l *lockTokenContract) WithState(state *state.State) *locktoken.Token {
	return locktoken.New(solidity.NewContext(l.Address, state))
}

func (v *vestingContract) WithState(state *state.State) *vesting.Vesting {
	return vesting.New(v.Address, state, LockToken.WithState(state))
}

func (s *lockStakingContract) WithState(state *state.State) *lockstaking.Staking {
	return lockstaking.New(s.Address, state, Params.WithState(state), LockToken.WithState(state), Vesting.WithState(state))
}

func (s *indexStakingContract) WithState(state *state.State) *indexstaking.Staking {
	return indexstaking.New(s.Address, state, LockToken.WithState(state), Vesting.WithState(state))
}

func (a *airdropContract) WithState(state *state.State) *airdrop.Airdrop {
	return airdrop.New(a.Address, state, LockToken.WithState(state), Vesting.WithState(state))
}

func (m *merkleAirdropContract) WithState(state *state.State) *airdrop.MerkleAirdrop {
	return airdrop.NewMerkle(m.Address, state, LockToken.WithState(state), Vesting.WithState(state))
}
