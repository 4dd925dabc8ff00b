// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/runtime"
	"github.com/lockon-finance/lock-contracts/state"
)

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	launchTime := gen.LaunchTime

	if gen.Treasury.IsZero() {
		return nil, errors.New("treasury must be set")
	}
	var executor lockon.Address
	if gen.Params.ExecutorAddress != nil {
		executor = *gen.Params.ExecutorAddress
	} else {
		executor = gen.Treasury
	}

	builder := new(Builder).
		Timestamp(launchTime).
		State(func(st *state.State) error {
			token := builtin.LockToken.WithState(st)
			if err := token.MintGenesis(gen.Treasury, lockon.InitialSupply); err != nil {
				return err
			}
			for _, a := range gen.Accounts {
				if a.Balance == nil {
					return fmt.Errorf("%s: balance must be set", a.Address)
				}
				balance := (*big.Int)(a.Balance)
				if balance.Sign() < 1 {
					return fmt.Errorf("%s: balance must be a non-zero integer", a.Address)
				}
				if err := token.Transfer(gen.Treasury, a.Address, balance); err != nil {
					return err
				}
			}

			ps := builtin.Params.WithState(st)
			ps.InitExecutor(executor)
			divider := lockon.InitialBasicRateDivider
			if gen.Params.BasicRateDivider != nil {
				divider = (*big.Int)(gen.Params.BasicRateDivider)
			}
			ps.Set(lockon.KeyBasicRateDivider, divider)

			builtin.Vesting.WithState(st).InitOwner(executor)
			builtin.LockStaking.WithState(st).InitOwner(executor)
			builtin.IndexStaking.WithState(st).InitOwner(executor)
			builtin.Airdrop.WithState(st).InitOwner(executor)
			builtin.MerkleAirdrop.WithState(st).InitOwner(executor)
			return nil
		}).
		Call(executor, func(env *runtime.Environment) error {
			vesting := builtin.Vesting.WithState(env.State())
			for _, c := range gen.Vesting.Categories {
				if c.Category == nil {
					return errors.New("vesting: category must be set")
				}
				if err := vesting.SetCategory(env, (*big.Int)(c.Category), c.Duration); err != nil {
					return err
				}
			}
			for _, depositor := range gen.Vesting.Depositors {
				if err := vesting.SetDepositor(env, depositor, true); err != nil {
					return err
				}
			}
			return nil
		})

	if p := gen.LockStaking; p != nil {
		builder.Call(executor, func(env *runtime.Environment) error {
			staking := builtin.LockStaking.WithState(env.State())
			if err := staking.SetAuthority(env, p.Authority); err != nil {
				return err
			}
			receiver := gen.Treasury
			if p.FeeReceiver != nil {
				receiver = *p.FeeReceiver
			}
			if err := staking.SetFeeReceiver(env, receiver); err != nil {
				return err
			}
			if p.VestingCategory != nil {
				if err := staking.SetVestingCategory(env, (*big.Int)(p.VestingCategory)); err != nil {
					return err
				}
			}
			bonusRate := new(big.Int)
			if p.BonusRate != nil {
				bonusRate = (*big.Int)(p.BonusRate)
			}
			penaltyRate := new(big.Int)
			if p.PenaltyRate != nil {
				penaltyRate = (*big.Int)(p.PenaltyRate)
			}
			if err := staking.AddPool(env, builtin.LockToken.Address, launchTime, bonusRate, penaltyRate); err != nil {
				return err
			}
			if p.Budget == nil {
				return nil
			}
			return staking.Allocate(env, builtin.LockToken.Address, (*big.Int)(p.Budget))
		})
	}

	if p := gen.IndexStaking; p != nil {
		builder.Call(executor, func(env *runtime.Environment) error {
			staking := builtin.IndexStaking.WithState(env.State())
			if err := staking.SetAuthority(env, p.Authority); err != nil {
				return err
			}
			if p.VestingCategory != nil {
				if err := staking.SetVestingCategory(env, (*big.Int)(p.VestingCategory)); err != nil {
					return err
				}
			}
			bonusRate := new(big.Int)
			if p.BonusRate != nil {
				bonusRate = (*big.Int)(p.BonusRate)
			}
			if err := staking.AddPool(env, builtin.LockToken.Address, launchTime, bonusRate); err != nil {
				return err
			}
			if p.Budget == nil {
				return nil
			}
			return staking.Allocate(env, builtin.LockToken.Address, (*big.Int)(p.Budget))
		})
	}

	if p := gen.Airdrop; p != nil {
		builder.Call(executor, func(env *runtime.Environment) error {
			for _, drop := range []interface {
				SetClaimStart(env *runtime.Environment, start uint64) error
				SetVestingCategory(env *runtime.Environment, category *big.Int) error
			}{
				builtin.Airdrop.WithState(env.State()),
				builtin.MerkleAirdrop.WithState(env.State()),
			} {
				if err := drop.SetClaimStart(env, p.ClaimStart); err != nil {
					return err
				}
				if p.VestingCategory == nil {
					continue
				}
				if err := drop.SetVestingCategory(env, (*big.Int)(p.VestingCategory)); err != nil {
					return err
				}
			}
			return nil
		})
	}

	var extra [28]byte
	copy(extra[:], gen.ExtraData)
	builder.ExtraData(extra)

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, id, "customnet"}, nil
}
