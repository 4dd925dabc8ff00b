// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual holds the fixed-point arithmetic shared by the
// staking pools and the vesting escrow. Every ratio is scaled by
// lockon.PrecisionFactor, every division truncates toward zero and
// multiplications always run before divisions.
package accrual

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/lockon"
)

var precision = lockon.PrecisionFactor

// Duration tiers for the lock-staking multiplier curve. Lower bounds
// are inclusive, locks under 100 days earn no score.
var (
	tier100  = big.NewInt(1_000_000_000_000)  // 1.0x
	tier300  = big.NewInt(3_500_000_000_000)  // 3.5x
	tier600  = big.NewInt(8_000_000_000_000)  // 8.0x
	tier1000 = big.NewInt(16_000_000_000_000) // 16.0x
)

// Distribute returns the reward paid out over [from, to] at a flat
// per-second rate, capped at the remaining budget. The final interval
// before exhaustion silently truncates to whatever budget remains.
func Distribute(from, to uint64, ratePerSecond, budget *big.Int) *big.Int {
	if to <= from || ratePerSecond.Sign() <= 0 || budget.Sign() <= 0 {
		return new(big.Int)
	}
	distributed := new(big.Int).SetUint64(to - from)
	distributed.Mul(distributed, ratePerSecond)
	if distributed.Cmp(budget) > 0 {
		return new(big.Int).Set(budget)
	}
	return distributed
}

// PerUnitDelta returns the accumulator increment for a distributed
// amount spread over the denominator, scaled by the precision factor.
// A zero denominator yields zero, the caller keeps the clock moving.
func PerUnitDelta(distributed, denominator *big.Int) *big.Int {
	if denominator.Sign() == 0 {
		return new(big.Int)
	}
	delta := new(big.Int).Mul(distributed, precision)
	return delta.Div(delta, denominator)
}

// DurationMultiplier maps a lock duration in seconds to its
// precision-scaled tier multiplier.
func DurationMultiplier(duration uint64) *big.Int {
	switch {
	case duration >= 1000*lockon.Day:
		return new(big.Int).Set(tier1000)
	case duration >= 600*lockon.Day:
		return new(big.Int).Set(tier600)
	case duration >= 300*lockon.Day:
		return new(big.Int).Set(tier300)
	case duration >= 100*lockon.Day:
		return new(big.Int).Set(tier100)
	default:
		return new(big.Int)
	}
}

// BasicRate returns the precision-scaled basic rate of a pool at time
// now. The rate starts at exactly the precision base when the pool
// starts and grows by one base per divider seconds. A zero divider
// pins the rate at the base.
func BasicRate(startTime, now uint64, divider *big.Int) *big.Int {
	if now <= startTime || divider == nil || divider.Sign() == 0 {
		return new(big.Int).Set(precision)
	}
	bonus := new(big.Int).SetUint64(now - startTime)
	bonus.Mul(bonus, precision)
	bonus.Div(bonus, divider)
	return bonus.Add(bonus, precision)
}

// Score returns the time-weighted stake unit of a lock position:
// amount scaled by both the basic rate and the duration multiplier.
func Score(amount, basicRate, durationMultiplier *big.Int) *big.Int {
	score := new(big.Int).Mul(amount, basicRate)
	score.Mul(score, durationMultiplier)
	score.Div(score, precision)
	return score.Div(score, precision)
}

// Debt returns the checkpoint baseline of a position, the value of its
// score against the accumulator at the moment of the checkpoint.
func Debt(score, rewardPerUnit *big.Int) *big.Int {
	debt := new(big.Int).Mul(score, rewardPerUnit)
	return debt.Div(debt, precision)
}

// Pending returns the reward a position accrued since its last
// checkpoint. The debt is always rebaselined right after a score
// change, so the difference never goes negative.
func Pending(score, rewardPerUnit, rewardDebt *big.Int) *big.Int {
	pending := Debt(score, rewardPerUnit)
	return pending.Sub(pending, rewardDebt)
}

// LinearUnlocked returns the portion of total released after elapsed
// seconds of a linear schedule. It saturates at total once the
// duration has passed, a zero duration releases everything at once.
func LinearUnlocked(total *big.Int, elapsed, duration uint64) *big.Int {
	if duration == 0 || elapsed >= duration {
		return new(big.Int).Set(total)
	}
	unlocked := new(big.Int).Mul(total, new(big.Int).SetUint64(elapsed))
	return unlocked.Div(unlocked, new(big.Int).SetUint64(duration))
}
