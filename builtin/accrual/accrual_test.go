// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockon-finance/lock-contracts/lockon"
)

func bigExp(base, exp int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(base), big.NewInt(exp), nil)
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name   string
		from   uint64
		to     uint64
		rate   *big.Int
		budget *big.Int
		want   *big.Int
	}{
		{"empty window", 100, 100, big.NewInt(5), big.NewInt(1000), big.NewInt(0)},
		{"backwards window", 200, 100, big.NewInt(5), big.NewInt(1000), big.NewInt(0)},
		{"zero rate", 100, 200, big.NewInt(0), big.NewInt(1000), big.NewInt(0)},
		{"zero budget", 100, 200, big.NewInt(5), big.NewInt(0), big.NewInt(0)},
		{"within budget", 100, 200, big.NewInt(5), big.NewInt(1000), big.NewInt(500)},
		{"capped at budget", 100, 200, big.NewInt(5), big.NewInt(300), big.NewInt(300)},
		{"exactly budget", 100, 200, big.NewInt(5), big.NewInt(500), big.NewInt(500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distribute(tt.from, tt.to, tt.rate, tt.budget))
		})
	}
}

func TestDistributeDoesNotAliasBudget(t *testing.T) {
	budget := big.NewInt(300)
	got := Distribute(0, 100, big.NewInt(5), budget)
	got.Sub(got, big.NewInt(1))
	assert.Equal(t, big.NewInt(300), budget)
}

func TestPerUnitDelta(t *testing.T) {
	// zero denominator distributes nothing
	assert.Equal(t, big.NewInt(0), PerUnitDelta(big.NewInt(100), big.NewInt(0)))

	// 100 reward over 3 units: 100e12/3 truncated
	want, _ := new(big.Int).SetString("33333333333333", 10)
	assert.Equal(t, want, PerUnitDelta(big.NewInt(100), big.NewInt(3)))
}

func TestDurationMultiplier(t *testing.T) {
	tests := []struct {
		days uint64
		want *big.Int
	}{
		{0, big.NewInt(0)},
		{99, big.NewInt(0)},
		{100, big.NewInt(1_000_000_000_000)},
		{299, big.NewInt(1_000_000_000_000)},
		{300, big.NewInt(3_500_000_000_000)},
		{599, big.NewInt(3_500_000_000_000)},
		{600, big.NewInt(8_000_000_000_000)},
		{999, big.NewInt(8_000_000_000_000)},
		{1000, big.NewInt(16_000_000_000_000)},
		{5000, big.NewInt(16_000_000_000_000)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationMultiplier(tt.days*lockon.Day), "days=%d", tt.days)
	}

	// one second under the tier boundary stays in the lower tier
	assert.Equal(t, big.NewInt(0), DurationMultiplier(100*lockon.Day-1))
	assert.Equal(t, big.NewInt(1_000_000_000_000), DurationMultiplier(300*lockon.Day-1))
}

func TestBasicRate(t *testing.T) {
	p := lockon.PrecisionFactor
	divider := big.NewInt(int64(360 * lockon.Day))

	// at pool start the rate is exactly the precision base
	assert.Equal(t, p, BasicRate(1000, 1000, divider))
	// before pool start as well
	assert.Equal(t, p, BasicRate(1000, 999, divider))
	// zero divider pins the rate
	assert.Equal(t, p, BasicRate(1000, 9_999_999, big.NewInt(0)))
	assert.Equal(t, p, BasicRate(1000, 9_999_999, nil))

	// after one divider interval the rate doubles
	assert.Equal(t, new(big.Int).Mul(p, big.NewInt(2)), BasicRate(0, 360*lockon.Day, divider))
	// half way through it grows by half the base
	want := new(big.Int).Add(p, new(big.Int).Div(p, big.NewInt(2)))
	assert.Equal(t, want, BasicRate(0, 180*lockon.Day, divider))
}

func TestScore(t *testing.T) {
	p := lockon.PrecisionFactor

	// 1 token at base rate in the 200-day tier scores its own amount
	amount := bigExp(10, 18)
	score := Score(amount, p, DurationMultiplier(200*lockon.Day))
	assert.Equal(t, amount, score)

	// the 300-day tier multiplies by 3.5
	score = Score(amount, p, DurationMultiplier(300*lockon.Day))
	want, _ := new(big.Int).SetString("3500000000000000000", 10)
	assert.Equal(t, want, score)

	// a sub-100-day lock earns no score
	assert.Equal(t, big.NewInt(0), Score(amount, p, DurationMultiplier(10*lockon.Day)))

	// doubled basic rate doubles the score
	score = Score(amount, new(big.Int).Mul(p, big.NewInt(2)), DurationMultiplier(100*lockon.Day))
	assert.Equal(t, new(big.Int).Mul(amount, big.NewInt(2)), score)
}

func TestPendingTelescopes(t *testing.T) {
	// banking pending at every checkpoint must pay exactly the same
	// total as banking once at the end
	score, _ := new(big.Int).SetString("123456789123456789", 10)
	steps := []*big.Int{
		big.NewInt(1_000_000_007),
		big.NewInt(2_000_000_011),
		big.NewInt(5_000_000_023),
		big.NewInt(9_000_000_041),
	}

	banked := new(big.Int)
	debt := Debt(score, big.NewInt(0))
	for _, rpu := range steps {
		banked.Add(banked, Pending(score, rpu, debt))
		debt = Debt(score, rpu)
	}

	once := Pending(score, steps[len(steps)-1], Debt(score, big.NewInt(0)))
	assert.Equal(t, once, banked)
}

func TestPendingNeverNegative(t *testing.T) {
	f := fuzz.New()
	for i := 0; i < 500; i++ {
		var score, rpu1, rpu2 uint64
		f.Fuzz(&score)
		f.Fuzz(&rpu1)
		f.Fuzz(&rpu2)
		if rpu2 < rpu1 {
			rpu1, rpu2 = rpu2, rpu1
		}

		s := new(big.Int).SetUint64(score)
		debt := Debt(s, new(big.Int).SetUint64(rpu1))
		pending := Pending(s, new(big.Int).SetUint64(rpu2), debt)
		require.True(t, pending.Sign() >= 0,
			"score=%d rpu1=%d rpu2=%d pending=%s", score, rpu1, rpu2, pending)
	}
}

func TestDistributeBudgetBound(t *testing.T) {
	// adversarial draw sequences can never pay out more than the
	// initial budget in total
	f := fuzz.New()
	for i := 0; i < 200; i++ {
		initial := big.NewInt(1_000_000)
		budget := new(big.Int).Set(initial)
		total := new(big.Int)
		clock := uint64(0)

		for step := 0; step < 50; step++ {
			var dt, rate uint64
			f.Fuzz(&dt)
			f.Fuzz(&rate)
			dt %= 1000
			rate %= 100

			distributed := Distribute(clock, clock+dt, new(big.Int).SetUint64(rate), budget)
			budget.Sub(budget, distributed)
			total.Add(total, distributed)
			clock += dt

			require.True(t, budget.Sign() >= 0, "budget went negative at step %d", step)
		}
		require.True(t, total.Cmp(initial) <= 0)
	}
}

func TestLinearUnlocked(t *testing.T) {
	total := new(big.Int).Mul(big.NewInt(100), bigExp(10, 18))

	// 40 seconds into a 300-day schedule
	duration := 300 * lockon.Day
	want := new(big.Int).Mul(total, big.NewInt(40))
	want.Div(want, new(big.Int).SetUint64(duration))
	assert.Equal(t, want, LinearUnlocked(total, 40, duration))

	// nothing elapsed, nothing unlocked
	assert.Equal(t, big.NewInt(0), LinearUnlocked(total, 0, duration))

	// saturates at the full amount
	assert.Equal(t, total, LinearUnlocked(total, duration, duration))
	assert.Equal(t, total, LinearUnlocked(total, duration+1, duration))

	// zero duration releases everything immediately
	assert.Equal(t, total, LinearUnlocked(total, 0, 0))
}

func TestLinearUnlockedDoesNotAliasTotal(t *testing.T) {
	total := big.NewInt(1000)
	got := LinearUnlocked(total, 10, 10)
	got.Sub(got, big.NewInt(1))
	assert.Equal(t, big.NewInt(1000), total)
}
