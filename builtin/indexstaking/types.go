// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package indexstaking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lockon-finance/lock-contracts/builtin/accrual"
	"github.com/lockon-finance/lock-contracts/state"
)

type (
	// Pool is the per-stake-token accrual state. Rewards are shared by
	// raw staked amount, there is no lock and no score. Pools are
	// created by the owner and never deleted.
	Pool struct {
		StartTime     uint64   // opening time
		LastAccrual   uint64   // time of the last accumulator update
		BonusRate     *big.Int // reward emission per second
		TotalStaked   *big.Int
		RewardPerUnit *big.Int // precision-scaled, never decreases
		Budget        *big.Int // remaining reward budget
	}

	// Position is one user's stake in one pool.
	Position struct {
		Amount     *big.Int
		RewardDebt *big.Int
		Pending    *big.Int // banked, not yet claimed reward
		LastAction uint64
	}
)

var (
	_ state.StorageEncoder = (*Pool)(nil)
	_ state.StorageDecoder = (*Pool)(nil)

	_ state.StorageEncoder = (*Position)(nil)
	_ state.StorageDecoder = (*Position)(nil)
)

func (p *Pool) Encode() ([]byte, error) {
	return rlp.EncodeToBytes(p)
}

func (p *Pool) Decode(data []byte) error {
	if len(data) == 0 {
		*p = Pool{0, 0, &big.Int{}, &big.Int{}, &big.Int{}, &big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, p)
}

// Update rolls the accumulator forward to now. With nothing staked only
// the clock advances, unstaked time is lost rather than banked.
func (p *Pool) Update(now uint64) {
	if now <= p.LastAccrual {
		return
	}
	if p.TotalStaked.Sign() == 0 {
		p.LastAccrual = now
		return
	}
	distributed := accrual.Distribute(p.LastAccrual, now, p.BonusRate, p.Budget)
	p.RewardPerUnit.Add(p.RewardPerUnit, accrual.PerUnitDelta(distributed, p.TotalStaked))
	p.Budget.Sub(p.Budget, distributed)
	p.LastAccrual = now
}

func (pos *Position) Encode() ([]byte, error) {
	if pos.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(pos)
}

func (pos *Position) Decode(data []byte) error {
	if len(data) == 0 {
		*pos = Position{&big.Int{}, &big.Int{}, &big.Int{}, 0}
		return nil
	}
	return rlp.DecodeBytes(data, pos)
}

func (pos *Position) IsEmpty() bool {
	return pos.Amount.Sign() == 0 &&
		pos.RewardDebt.Sign() == 0 &&
		pos.Pending.Sign() == 0 &&
		pos.LastAction == 0
}

// Bank recognizes the reward accrued since the last checkpoint into
// the pending bucket. The caller rebaselines RewardDebt after any
// amount change.
func (pos *Position) Bank(rewardPerUnit *big.Int) {
	pos.Pending.Add(pos.Pending, accrual.Pending(pos.Amount, rewardPerUnit, pos.RewardDebt))
}
