// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package indexstaking

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/builtin/accrual"
	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
)

// Service applies the index staking rules on top of the raw pool and
// position records. Rewards are shared in proportion to the raw staked
// amount, stake can enter and leave at any time.
type Service struct {
	repo *Storage
}

func NewService(sctx *solidity.Context) *Service {
	return &Service{repo: NewStorage(sctx)}
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
func (s *Service) AddPool(stakeToken lockon.Address, startTime uint64, bonusRate *big.Int) error {
	if stakeToken.IsZero() {
		return reverts.ErrZeroAddress
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
		TotalStaked:   &big.Int{},
		RewardPerUnit: &big.Int{},
		Budget:        &big.Int{},
	}
	return s.repo.setPool(stakeToken, pool)
}

// SetRate replaces the emission rate of an existing pool. The interval
// up to now is settled at the old rate first, so the change never
// applies retroactively.
func (s *Service) SetRate(stakeToken lockon.Address, bonusRate *big.Int, now uint64) (*Pool, error) {
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, err
	}
	pool.Update(now)
	pool.BonusRate = new(big.Int).Set(bonusRate)
	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// Allocate credits amount to the pool budget.
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

// DeductBudget takes an authority granted claim amount out of the pool
// budget. The pool is expected to be settled to the current time.
func (s *Service) DeductBudget(stakeToken lockon.Address, amount *big.Int) (*Pool, error) {
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, err
	}
	if pool.Budget.Cmp(amount) < 0 {
		return nil, reverts.ErrBudgetExceeded
	}
	pool.Budget.Sub(pool.Budget, amount)
	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// Deposit adds amount to the caller's position.
func (s *Service) Deposit(user, stakeToken lockon.Address, amount *big.Int, now uint64) (*Pool, *Position, error) {
	if amount.Sign() <= 0 {
		return nil, nil, reverts.ErrZeroAmount
	}
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

	pos.Amount.Add(pos.Amount, amount)
	pos.RewardDebt = accrual.Debt(pos.Amount, pool.RewardPerUnit)
	pos.LastAction = now
	pool.TotalStaked.Add(pool.TotalStaked, amount)

	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, nil, err
	}
	if err := s.repo.setPosition(user, stakeToken, pos); err != nil {
		return nil, nil, err
	}
	return pool, pos, nil
}

// Withdraw removes amount of stake from the caller's position. There
// is no lock, the full amount is always paid back.
func (s *Service) Withdraw(user, stakeToken lockon.Address, amount *big.Int, now uint64) (*Pool, *Position, error) {
	if amount.Sign() <= 0 {
		return nil, nil, reverts.ErrZeroAmount
	}
	pool, err := s.requirePool(stakeToken)
	if err != nil {
		return nil, nil, err
	}
	pos, err := s.repo.getPosition(user, stakeToken)
	if err != nil {
		return nil, nil, err
	}
	if pos.Amount.Cmp(amount) < 0 {
		return nil, nil, reverts.ErrInsufficientStake
	}

	pool.Update(now)
	pos.Bank(pool.RewardPerUnit)

	pos.Amount.Sub(pos.Amount, amount)
	pos.RewardDebt = accrual.Debt(pos.Amount, pool.RewardPerUnit)
	pos.LastAction = now
	pool.TotalStaked.Sub(pool.TotalStaked, amount)

	if err := s.repo.setPool(stakeToken, pool); err != nil {
		return nil, nil, err
	}
	if err := s.repo.setPosition(user, stakeToken, pos); err != nil {
		return nil, nil, err
	}
	return pool, pos, nil
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
	pos.RewardDebt = accrual.Debt(pos.Amount, pool.RewardPerUnit)
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
	pending := accrual.Pending(pos.Amount, pool.RewardPerUnit, pos.RewardDebt)
	return pending.Add(pending, pos.Pending), nil
}
