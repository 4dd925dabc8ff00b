// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
)

var (
	slotWallets    = lockon.BytesToBytes32([]byte("vesting-wallets"))
	slotCategories = lockon.BytesToBytes32([]byte("vesting-categories"))
	slotDepositors = lockon.BytesToBytes32([]byte("vesting-depositors"))
	slotBanned     = lockon.BytesToBytes32([]byte("vesting-banned"))
)

type Storage struct {
	wallets    *solidity.Mapping[lockon.Bytes32, Wallet]
	categories *solidity.Mapping[lockon.Bytes32, uint64]
	depositors *solidity.Mapping[lockon.Address, bool]
	banned     *solidity.Mapping[lockon.Address, bool]
}

func NewStorage(sctx *solidity.Context) *Storage {
	return &Storage{
		wallets:    solidity.NewMapping[lockon.Bytes32, Wallet](sctx, slotWallets),
		categories: solidity.NewMapping[lockon.Bytes32, uint64](sctx, slotCategories),
		depositors: solidity.NewMapping[lockon.Address, bool](sctx, slotDepositors),
		banned:     solidity.NewMapping[lockon.Address, bool](sctx, slotBanned),
	}
}

func categoryKey(category *big.Int) lockon.Bytes32 {
	return lockon.BytesToBytes32(category.Bytes())
}

func walletKey(user lockon.Address, category *big.Int) lockon.Bytes32 {
	ck := categoryKey(category)
	return lockon.Blake2b(user.Bytes(), ck.Bytes())
}

func (s *Storage) getWallet(user lockon.Address, category *big.Int) (*Wallet, error) {
	wallet, err := s.wallets.Get(walletKey(user, category))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get wallet")
	}
	return &wallet, nil
}

func (s *Storage) setWallet(user lockon.Address, category *big.Int, wallet *Wallet) error {
	if err := s.wallets.Set(walletKey(user, category), *wallet); err != nil {
		return errors.Wrap(err, "failed to set wallet")
	}
	return nil
}

// getCategory returns the schedule duration of a category and whether
// the category has been configured at all. A configured zero duration
// is a valid, instantly releasing category.
func (s *Storage) getCategory(category *big.Int) (uint64, bool, error) {
	key := categoryKey(category)
	has, err := s.categories.Has(key)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to check category")
	}
	if !has {
		return 0, false, nil
	}
	duration, err := s.categories.Get(key)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to get category")
	}
	return duration, true, nil
}

func (s *Storage) setCategory(category *big.Int, duration uint64) error {
	if err := s.categories.Set(categoryKey(category), duration); err != nil {
		return errors.Wrap(err, "failed to set category")
	}
	return nil
}

func (s *Storage) isDepositor(addr lockon.Address) (bool, error) {
	allowed, err := s.depositors.Get(addr)
	if err != nil {
		return false, errors.Wrap(err, "failed to get depositor flag")
	}
	return allowed, nil
}

func (s *Storage) setDepositor(addr lockon.Address, allowed bool) error {
	if err := s.depositors.Set(addr, allowed); err != nil {
		return errors.Wrap(err, "failed to set depositor flag")
	}
	return nil
}

func (s *Storage) isBanned(user lockon.Address) (bool, error) {
	banned, err := s.banned.Get(user)
	if err != nil {
		return false, errors.Wrap(err, "failed to get ban flag")
	}
	return banned, nil
}

func (s *Storage) setBanned(user lockon.Address, banned bool) error {
	if err := s.banned.Set(user, banned); err != nil {
		return errors.Wrap(err, "failed to set ban flag")
	}
	return nil
}
