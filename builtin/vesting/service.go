// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
)

// Service implements the vesting schedule logic on top of the contract
// storage. Token custody and authorization stay with the facade.
type Service struct {
	repo *Storage
}

func NewService(sctx *solidity.Context) *Service {
	return &Service{repo: NewStorage(sctx)}
}

func (s *Service) requireCategory(category *big.Int) (uint64, error) {
	duration, ok, err := s.repo.getCategory(category)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, reverts.ErrUnknownCategory
	}
	return duration, nil
}

func (s *Service) requireNotBanned(user lockon.Address) error {
	banned, err := s.repo.isBanned(user)
	if err != nil {
		return err
	}
	if banned {
		return reverts.ErrUserBanned
	}
	return nil
}

// SetCategory configures the linear release duration of a category. A
// zero duration makes deposits under the category release instantly.
func (s *Service) SetCategory(category *big.Int, duration uint64) error {
	if category == nil || category.Sign() < 0 {
		return reverts.ErrUnknownCategory
	}
	return s.repo.setCategory(category, duration)
}

// SetDepositor adds addr to or removes it from the allow-list of
// accounts that may deposit on behalf of beneficiaries.
func (s *Service) SetDepositor(addr lockon.Address, allowed bool) error {
	if addr.IsZero() {
		return reverts.ErrZeroAddress
	}
	return s.repo.setDepositor(addr, allowed)
}

// SetBanned flips the ban flag of a user. A banned user can neither
// receive deposits nor claim.
func (s *Service) SetBanned(user lockon.Address, banned bool) error {
	if user.IsZero() {
		return reverts.ErrZeroAddress
	}
	return s.repo.setBanned(user, banned)
}

// Deposit adds amount to the beneficiary's wallet in a category and
// restarts the linear schedule for the combined principal. Whatever the
// old schedule had already released is moved into the carryover bucket
// first so it is neither locked again nor counted twice.
func (s *Service) Deposit(beneficiary lockon.Address, amount, category *big.Int, now uint64) (*Wallet, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.ErrZeroAmount
	}
	if beneficiary.IsZero() {
		return nil, reverts.ErrZeroAddress
	}
	if err := s.requireNotBanned(beneficiary); err != nil {
		return nil, err
	}
	duration, err := s.requireCategory(category)
	if err != nil {
		return nil, err
	}
	wallet, err := s.repo.getWallet(beneficiary, category)
	if err != nil {
		return nil, err
	}

	unlocked := wallet.Unlocked(now, duration)
	claimable := new(big.Int).Add(unlocked, wallet.ClaimableAmount)
	claimable.Sub(claimable, wallet.ClaimedAmount)

	wallet.VestingAmount.Add(wallet.VestingAmount, amount)
	wallet.VestingAmount.Sub(wallet.VestingAmount, unlocked)
	wallet.ClaimableAmount = claimable
	wallet.ClaimedAmount = new(big.Int)
	wallet.StartTime = now

	if err := s.repo.setWallet(beneficiary, category, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// Claim releases everything payable at now from the user's wallet in a
// category, returning the paid amount. The claimed marker moves up to
// the currently released point of the active schedule and the carryover
// bucket drains to zero.
func (s *Service) Claim(user lockon.Address, category *big.Int, now uint64) (*Wallet, *big.Int, error) {
	if err := s.requireNotBanned(user); err != nil {
		return nil, nil, err
	}
	duration, err := s.requireCategory(category)
	if err != nil {
		return nil, nil, err
	}
	wallet, err := s.repo.getWallet(user, category)
	if err != nil {
		return nil, nil, err
	}

	unlocked := wallet.Unlocked(now, duration)
	payable := new(big.Int).Add(unlocked, wallet.ClaimableAmount)
	payable.Sub(payable, wallet.ClaimedAmount)
	if payable.Sign() == 0 {
		return nil, nil, reverts.ErrNothingToClaim
	}

	wallet.ClaimedAmount = unlocked
	wallet.ClaimableAmount = new(big.Int)

	if err := s.repo.setWallet(user, category, wallet); err != nil {
		return nil, nil, err
	}
	return wallet, payable, nil
}

//
// Read only accessors, all state stays untouched.
//

// GetWallet returns the wallet of user in a category, zero valued when
// the user never received a deposit there.
func (s *Service) GetWallet(user lockon.Address, category *big.Int) (*Wallet, error) {
	return s.repo.getWallet(user, category)
}

// Payable returns what a claim at now would pay out.
func (s *Service) Payable(user lockon.Address, category *big.Int, now uint64) (*big.Int, error) {
	duration, err := s.requireCategory(category)
	if err != nil {
		return nil, err
	}
	wallet, err := s.repo.getWallet(user, category)
	if err != nil {
		return nil, err
	}
	return wallet.Payable(now, duration), nil
}

// CategoryDuration returns the configured schedule duration of a category.
func (s *Service) CategoryDuration(category *big.Int) (uint64, error) {
	return s.requireCategory(category)
}

// IsDepositor reports whether addr is on the depositor allow-list.
func (s *Service) IsDepositor(addr lockon.Address) (bool, error) {
	return s.repo.isDepositor(addr)
}

// IsBanned reports whether user is banned.
func (s *Service) IsBanned(user lockon.Address) (bool, error) {
	return s.repo.isBanned(user)
}
