// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lockon-finance/lock-contracts/builtin"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/runtime"
	"github.com/lockon-finance/lock-contracts/state"
)

// DevAccount account for development.
type DevAccount struct {
	Address    lockon.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode. The first
// account is the treasury and governs every contract.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"247dd84d9e69034ee9c42fa94b08602fb10be34dd10c114b34223d83f1027915",
		"e65b4e09fa5caae9acd605f7408dbcb21d7f74308cefc602da6459d9f55d6c40",
		"19d3cd926b3766e43ffd559a1c4a76eb605453d8a57257385c8b5975806b5ace",
		"af81354ecf55ade53556ed83cc209ae2905fd189fa03be5c08bd5fd8586edcb7",
		"215c4004af4e24cb2d584b47bcd62ee8c071ef85b1d4f4962027c266f0ac4f7d",
		"6dfc0ed224446143bf7dbc47e85714ba3253cdce0f03c3df0669b2f9c8ae7550",
		"f9504423d0cc1bb9468844b9c9ab15b971d7ca71858b7a177f055e7d1adaa8ec",
		"aa641bf2fd7a694350230e91ef40e48ec2f284197384d266c07ce26dfd3d84b9",
		"1925d4385ba55fd1bd3bcc6da8f669056d29e99122cde327b8bc18c78bfcd717",
		"b2df67c67f639f632f7bfb060b21b5c24114b95c1e14e3500e6fae186eb19180",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{lockon.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

func lockAmount(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

// NewDevnet create genesis for solo mode. The treasury holds the supply
// left over after endowing the dev accounts and funding both staking
// budgets, and doubles as executor, owner, authority and fee receiver.
func NewDevnet() *Genesis {
	launchTime := uint64(1767225600) // 'Thu Jan 01 2026 00:00:00 GMT+0000'

	treasury := DevAccounts()[0].Address

	endowment := lockAmount(1_000_000)
	lockStakingBudget := lockAmount(100_000_000)
	indexStakingBudget := lockAmount(50_000_000)

	lockBonusRate := lockAmount(3) // 3 LOCK per second
	indexBonusRate := lockAmount(1)
	penaltyRate := big.NewInt(1e11) // 10% early-withdraw fee

	builder := new(Builder).
		Timestamp(launchTime).
		State(func(st *state.State) error {
			token := builtin.LockToken.WithState(st)
			if err := token.MintGenesis(treasury, lockon.InitialSupply); err != nil {
				return err
			}
			for _, a := range DevAccounts()[1:] {
				if err := token.Transfer(treasury, a.Address, endowment); err != nil {
					return err
				}
			}

			ps := builtin.Params.WithState(st)
			ps.InitExecutor(treasury)
			ps.Set(lockon.KeyBasicRateDivider, lockon.InitialBasicRateDivider)

			builtin.Vesting.WithState(st).InitOwner(treasury)
			builtin.LockStaking.WithState(st).InitOwner(treasury)
			builtin.IndexStaking.WithState(st).InitOwner(treasury)
			builtin.Airdrop.WithState(st).InitOwner(treasury)
			builtin.MerkleAirdrop.WithState(st).InitOwner(treasury)
			return nil
		}).
		Call(treasury, func(env *runtime.Environment) error {
			vesting := builtin.Vesting.WithState(env.State())
			for category, duration := range []uint64{30 * lockon.Day, 90 * lockon.Day, 180 * lockon.Day, 360 * lockon.Day} {
				if err := vesting.SetCategory(env, big.NewInt(int64(category)+1), duration); err != nil {
					return err
				}
			}
			for _, depositor := range []lockon.Address{
				builtin.LockStaking.Address,
				builtin.IndexStaking.Address,
				builtin.Airdrop.Address,
				builtin.MerkleAirdrop.Address,
			} {
				if err := vesting.SetDepositor(env, depositor, true); err != nil {
					return err
				}
			}
			return nil
		}).
		Call(treasury, func(env *runtime.Environment) error {
			staking := builtin.LockStaking.WithState(env.State())
			if err := staking.SetAuthority(env, treasury); err != nil {
				return err
			}
			if err := staking.SetFeeReceiver(env, treasury); err != nil {
				return err
			}
			if err := staking.SetVestingCategory(env, big.NewInt(4)); err != nil {
				return err
			}
			if err := staking.AddPool(env, builtin.LockToken.Address, launchTime, lockBonusRate, penaltyRate); err != nil {
				return err
			}
			return staking.Allocate(env, builtin.LockToken.Address, lockStakingBudget)
		}).
		Call(treasury, func(env *runtime.Environment) error {
			staking := builtin.IndexStaking.WithState(env.State())
			if err := staking.SetAuthority(env, treasury); err != nil {
				return err
			}
			if err := staking.SetVestingCategory(env, big.NewInt(3)); err != nil {
				return err
			}
			if err := staking.AddPool(env, builtin.LockToken.Address, launchTime, indexBonusRate); err != nil {
				return err
			}
			return staking.Allocate(env, builtin.LockToken.Address, indexStakingBudget)
		}).
		Call(treasury, func(env *runtime.Environment) error {
			for _, drop := range []interface {
				SetClaimStart(env *runtime.Environment, start uint64) error
				SetVestingCategory(env *runtime.Environment, category *big.Int) error
			}{
				builtin.Airdrop.WithState(env.State()),
				builtin.MerkleAirdrop.WithState(env.State()),
			} {
				if err := drop.SetClaimStart(env, launchTime); err != nil {
					return err
				}
				if err := drop.SetVestingCategory(env, big.NewInt(2)); err != nil {
					return err
				}
			}
			return nil
		})

	id, err := builder.ComputeID()
	if err != nil {
		panic(err)
	}

	return &Genesis{builder, id, "devnet"}
}
