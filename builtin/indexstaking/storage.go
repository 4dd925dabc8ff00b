// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package indexstaking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
)

var (
	slotPools     = lockon.BytesToBytes32([]byte("staking-pools"))
	slotPositions = lockon.BytesToBytes32([]byte("staking-positions"))
	slotAuthority = lockon.BytesToBytes32([]byte("claim-authority"))
	slotCategory  = lockon.BytesToBytes32([]byte("vesting-category"))
)

// Storage is the raw record store of the index staking contract.
type Storage struct {
	pools     *solidity.Mapping[lockon.Address, Pool]
	positions *solidity.Mapping[lockon.Bytes32, Position]
	authority *solidity.Address
	category  *solidity.Uint256
}

func NewStorage(sctx *solidity.Context) *Storage {
	return &Storage{
		pools:     solidity.NewMapping[lockon.Address, Pool](sctx, slotPools),
		positions: solidity.NewMapping[lockon.Bytes32, Position](sctx, slotPositions),
		authority: solidity.NewAddress(sctx, slotAuthority),
		category:  solidity.NewUint256(sctx, slotCategory),
	}
}

func positionKey(user, stakeToken lockon.Address) lockon.Bytes32 {
	return lockon.Blake2b(user.Bytes(), stakeToken.Bytes())
}

func (s *Storage) hasPool(stakeToken lockon.Address) (bool, error) {
	has, err := s.pools.Has(stakeToken)
	if err != nil {
		return false, errors.Wrap(err, "failed to check pool")
	}
	return has, nil
}

func (s *Storage) getPool(stakeToken lockon.Address) (*Pool, error) {
	pool, err := s.pools.Get(stakeToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	return &pool, nil
}

func (s *Storage) setPool(stakeToken lockon.Address, pool *Pool) error {
	if err := s.pools.Set(stakeToken, *pool); err != nil {
		return errors.Wrap(err, "failed to set pool")
	}
	return nil
}

func (s *Storage) getPosition(user, stakeToken lockon.Address) (*Position, error) {
	pos, err := s.positions.Get(positionKey(user, stakeToken))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get position")
	}
	return &pos, nil
}

func (s *Storage) setPosition(user, stakeToken lockon.Address, pos *Position) error {
	if err := s.positions.Set(positionKey(user, stakeToken), *pos); err != nil {
		return errors.Wrap(err, "failed to set position")
	}
	return nil
}

func (s *Storage) getAuthority() (lockon.Address, error) {
	authority, err := s.authority.Get()
	if err != nil {
		return lockon.Address{}, errors.Wrap(err, "failed to get authority")
	}
	return authority, nil
}

func (s *Storage) setAuthority(authority lockon.Address) {
	s.authority.Set(&authority)
}

func (s *Storage) getCategory() (*big.Int, error) {
	category, err := s.category.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vesting category")
	}
	return category, nil
}

func (s *Storage) setCategory(category *big.Int) {
	s.category.Set(category)
}
