// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockstaking

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/builtin/accrual"
	"github.com/lockon-finance/lock-contracts/builtin/params"
	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
)

// Service applies the lock staking rules on top of the raw pool and
// position records. Every mutating method settles the pool accrual for
// the elapsed interval before touching stake, so reward arithmetic only
// ever sees a pool whose clock equals the current block time.
type Service struct {
	repo   *Storage
	params *params.Params
}

func NewService(sctx *solidity.Context, params *params.Params) *Service {
	return &Service{
		repo:   NewStorage(sctx),
		params: params,
	}
}

func (s *Service) basicRateDivider() (*big.Int, error) {
	return s.params.Get(lockon.KeyBasicRateDivider)
}

func (s *Service) requirePool(stakeToken lockon.Address) (*Pool, error) {
	has, err := s.repo.hasPool(stakeToken)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, reverts.ErrUnknownPool
	}
	return s.repo.getPool(stakeToken)
}

// AddPool registers a staking pool for stakeToken. The pool starts
// accruing at startTime with an empty budget.
func (s *Service) AddPool(stakeToken lockon.Address, startTime uint64, bonusRate, penaltyRate *big.Int) error {
	if stakeToken.IsZero() {
		return reverts.ErrZeroAddress
	}
	if penaltyRate.Cmp(lockon.PrecisionFactor) > 0 {
		return reverts.ErrRateTooHigh
	}
	has, err := s.repo.hasPool(stakeToken)
	if err != nil {
		return err
	}
	if has {
		return reverts.ErrPoolExists
	}
	pool := &Pool{
		StartTime:     startTime,
		LastAccrual:   startTime,
		BonusRate:     new(big.Int).Set(bonusRate),
		PenaltyRate:   new(big.Int).Set(penaltyRate),
		TotalStaked:   &big.Int{},
		TotalScore:    &big.Int{},
		RewardPerUnit: &big.Int{},
		Budget:        &big.Int{},
	}
	return s.repo.setPool(stakeToken, pool)
}

// SetRates replaces the emission and early withdrawal rates of an
// existing pool. The interval up to now is settled at the old rates
// first, so the change never applies retroactively.
func (s *Service) SetRates(stakeToken lockon.Address, bonusRate, penaltyRate *big.Int, now uint64) (*Pool, error) {
	if penaltyRate.Cmp(lockon.PrecisionFactor) > 0 {
		return nil, reverts.ErrRateTooHigh
	}
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, err
	}
	pool.Update(now)
	pool.BonusRate = new(big.Int).Set(bonusRate)
	pool.PenaltyRate = new(big.Int).Set(penaltyRate)
	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// Allocate credits amount to the pool budget. The caller is expected to
// have moved the matching tokens into custody already.
func (s *Service) Allocate(stakeToken lockon.Address, amount *big.Int, now uint64) (*Pool, error) {
	if amount.Sign() <= 0 {
		return nil, reverts.ErrZeroAmount
	}
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, err
	}
	pool.Update(now)
	pool.Budget.Add(pool.Budget, amount)
	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// Deallocate removes amount from the pool budget. Accrual owed up to
// now is settled first and cannot be clawed back.
func (s *Service) Deallocate(stakeToken lockon.Address, amount *big.Int, now uint64) (*Pool, error) {
	if amount.Sign() <= 0 {
		return nil, reverts.ErrZeroAmount
	}
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, err
	}
	pool.Update(now)
	if pool.Budget.Cmp(amount) < 0 {
		return nil, reverts.ErrBudgetExceeded
	}
	pool.Budget.Sub(pool.Budget, amount)
	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// Deposit adds amount to the caller's position and locks the whole
// position for duration seconds from now. The new lock may not end
// before the existing one.
func (s *Service) Deposit(user, stakeToken lockon.Address, amount *big.Int, duration, now uint64) (*Pool, *Position, error) {
	if amount.Sign() <= 0 {
		return nil, nil, reverts.ErrZeroAmount
	}
	return s.restake(user, stakeToken, amount, duration, now)
}

// Extend relocks the caller's existing position for duration seconds
// from now without adding stake.
func (s *Service) Extend(user, stakeToken lockon.Address, duration, now uint64) (*Pool, *Position, error) {
	pos, err := s.repo.getPosition(user, stakeToken)
	if err != nil {
		return nil, nil, err
	}
	if pos.Amount.Sign() == 0 {
		return nil, nil, reverts.ErrInsufficientStake
	}
	return s.restake(user, stakeToken, &big.Int{}, duration, now)
}

func (s *Service) restake(user, stakeToken lockon.Address, amount *big.Int, duration, now uint64) (*Pool, *Position, error) {
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, nil, err
	}
	if now < pool.StartTime {
		return nil, nil, reverts.ErrPoolNotStarted
	}
	pos, err := s.repo.getPosition(user, stakeToken)
	if err != nil {
		return nil, nil, err
	}

	pool.Update(now)
	pos.Bank(pool.RewardPerUnit)
	pool.TotalScore.Sub(pool.TotalScore, pos.Score)

	if duration < pos.Remaining(now) {
		return nil, nil, reverts.ErrInvalidDuration
	}
	divider, err := s.basicRateDivider()
	if err != nil {
		return nil, nil, err
	}
	basicRate := accrual.BasicRate(pool.StartTime, now, divider)

	pos.Amount.Add(pos.Amount, amount)
	pos.Score = accrual.Score(pos.Amount, basicRate, accrual.DurationMultiplier(duration))
	pos.RewardDebt = accrual.Debt(pos.Score, pool.RewardPerUnit)
	pos.LockEnd = now + duration
	pos.LockDuration = duration
	pos.LastBasicRate = basicRate
	pos.LastAction = now

	pool.TotalStaked.Add(pool.TotalStaked, amount)
	pool.TotalScore.Add(pool.TotalScore, pos.Score)

	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, nil, err
	}
	if err := s.repo.setPosition(user, stakeToken, pos); err != nil {
		return nil, nil, err
	}
	return pool, pos, nil
}

// Withdraw removes amount of stake from the caller's position and
// returns the payout owed to the staker and the penalty owed to the fee
// receiver. A withdrawal before the lock end forfeits the penalty share
// of the withdrawn amount.
func (s *Service) Withdraw(user, stakeToken lockon.Address, amount *big.Int, now uint64) (*Pool, *Position, *big.Int, *big.Int, error) {
	if amount.Sign() <= 0 {
		return nil, nil, nil, nil, reverts.ErrZeroAmount
	}
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	pos, err := s.repo.getPosition(user, stakeToken)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if pos.Amount.Cmp(amount) < 0 {
		return nil, nil, nil, nil, reverts.ErrInsufficientStake
	}

	pool.Update(now)
	pos.Bank(pool.RewardPerUnit)
	pool.TotalScore.Sub(pool.TotalScore, pos.Score)

	// The remaining stake keeps the rate captured when the lock was
	// last set. Re-deriving it from the current time would let a
	// withdrawal inflate the score of what stays behind.
	pos.Amount.Sub(pos.Amount, amount)
	pos.Score = accrual.Score(pos.Amount, pos.LastBasicRate, accrual.DurationMultiplier(pos.LockDuration))
	pos.RewardDebt = accrual.Debt(pos.Score, pool.RewardPerUnit)
	pos.LastAction = now

	pool.TotalStaked.Sub(pool.TotalStaked, amount)
	pool.TotalScore.Add(pool.TotalScore, pos.Score)

	payout := new(big.Int).Set(amount)
	penalty := &big.Int{}
	if now < pos.LockEnd {
		penalty.Div(new(big.Int).Mul(amount, pool.PenaltyRate), lockon.PrecisionFactor)
		payout.Sub(payout, penalty)
	}

	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := s.repo.setPosition(user, stakeToken, pos); err != nil {
		return nil, nil, nil, nil, err
	}
	return pool, pos, payout, penalty, nil
}

// Collect settles and zeroes the accumulated reward of the caller's
// position, returning the collected total. Stake is untouched.
func (s *Service) Collect(user, stakeToken lockon.Address, now uint64) (*Pool, *Position, *big.Int, error) {
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, nil, nil, err
	}
	pos, err := s.repo.getPosition(user, stakeToken)
	if err != nil {
		return nil, nil, nil, err
	}

	pool.Update(now)
	pos.Bank(pool.RewardPerUnit)

	collected := pos.Pending
	pos.Pending = &big.Int{}
	pos.RewardDebt = accrual.Debt(pos.Score, pool.RewardPerUnit)
	pos.LastAction = now

	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, nil, nil, err
	}
	if err := s.repo.setPosition(user, stakeToken, pos); err != nil {
		return nil, nil, nil, err
	}
	return pool, pos, collected, nil
}

// UpdatePool settles the pool accrual up to now without touching any
// position.
func (s *Service) UpdatePool(stakeToken lockon.Address, now uint64) (*Pool, error) {
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, err
	}
	pool.Update(now)
	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// GetPool returns the stored pool record.
func (s *Service) GetPool(stakeToken lockon.Address) (*Pool, error) {
	return s.requirePool(stakeToken)
}

// GetPosition returns the stored position record, zero valued when the
// user never staked.
func (s *Service) GetPosition(user, stakeToken lockon.Address) (*Position, error) {
	return s.repo.getPosition(user, stakeToken)
}

// PendingReward computes the reward the position would collect at now,
// including accrual not yet settled into the pool. Storage is left
// untouched.
func (s *Service) PendingReward(user, stakeToken lockon.Address, now uint64) (*big.Int, error) {
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, err
	}
	pos, err := s.repo.getPosition(user, stakeToken)
	if err != nil {
		return nil, err
	}
	pool.Update(now)
	pending := accrual.Pending(pos.Score, pool.RewardPerUnit, pos.RewardDebt)
	return pending.Add(pending, pos.Pending), nil
}
