// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockstaking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lockon-finance/lock-contracts/builtin/accrual"
	"github.com/lockon-finance/lock-contracts/state"
)

type (
	// Pool is the per-stake-token accrual state. Pools are created by
	// the owner and never deleted.
	Pool struct {
		StartTime     uint64   // opening time, anchors the basic rate curve
		LastAccrual   uint64   // time of the last accumulator update
		BonusRate     *big.Int // reward emission per second
		PenaltyRate   *big.Int // early-withdraw penalty, precision-scaled
		TotalStaked   *big.Int
		TotalScore    *big.Int
		RewardPerUnit *big.Int // precision-scaled, never decreases
		Budget        *big.Int // remaining reward budget
	}

	// Position is one user's stake in one pool. Created lazily on the
	// first deposit, zeroed amounts persist as tombstones.
	Position struct {
		Amount        *big.Int
		Score         *big.Int
		RewardDebt    *big.Int
		Pending       *big.Int // banked, not yet claimed reward
		LockEnd       uint64
		LockDuration  uint64
		LastBasicRate *big.Int // basic rate captured at the last deposit or extend
		LastAction    uint64
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
		*p = Pool{0, 0, &big.Int{}, &big.Int{}, &big.Int{}, &big.Int{}, &big.Int{}, &big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, p)
}

// Update rolls the accumulator forward to now. With no score in the
// pool only the clock advances, unstaked time is lost rather than
// banked.
func (p *Pool) Update(now uint64) {
	if now <= p.LastAccrual {
		return
	}
	if p.TotalScore.Sign() == 0 {
		p.LastAccrual = now
		return
	}
	distributed := accrual.Distribute(p.LastAccrual, now, p.BonusRate, p.Budget)
	p.RewardPerUnit.Add(p.RewardPerUnit, accrual.PerUnitDelta(distributed, p.TotalScore))
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
		*pos = Position{&big.Int{}, &big.Int{}, &big.Int{}, &big.Int{}, 0, 0, &big.Int{}, 0}
		return nil
	}
	return rlp.DecodeBytes(data, pos)
}

func (pos *Position) IsEmpty() bool {
	return pos.Amount.Sign() == 0 &&
		pos.Score.Sign() == 0 &&
		pos.RewardDebt.Sign() == 0 &&
		pos.Pending.Sign() == 0 &&
		pos.LockEnd == 0 &&
		pos.LockDuration == 0 &&
		pos.LastBasicRate.Sign() == 0 &&
		pos.LastAction == 0
}

// Bank recognizes the reward accrued since the last checkpoint into
// the pending bucket. The caller rebaselines RewardDebt after any
// score change.
func (pos *Position) Bank(rewardPerUnit *big.Int) {
	pos.Pending.Add(pos.Pending, accrual.Pending(pos.Score, rewardPerUnit, pos.RewardDebt))
}

// Remaining returns the time left on the lock at now.
func (pos *Position) Remaining(now uint64) uint64 {
	if pos.LockEnd <= now {
		return 0
	}
	return pos.LockEnd - now
}
