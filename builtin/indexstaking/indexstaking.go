// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package indexstaking implements the index staking contract. Stake
// enters and leaves freely, rewards accrue in proportion to the raw
// staked amount. On top of the pool accrual the claim authority can
// grant extra reward out of the pool budget, bound into the claim
// signature as the cumulative pending reward.
package indexstaking

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/builtin/claims"
	"github.com/lockon-finance/lock-contracts/builtin/gate"
	"github.com/lockon-finance/lock-contracts/builtin/locktoken"
	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
	"github.com/lockon-finance/lock-contracts/runtime"
	"github.com/lockon-finance/lock-contracts/state"
)

// domainName identifies this contract in claim signatures.
const domainName = "LOCK Index Staking"

// ClaimAuthorizer builds the claim signature scheme of a deployment.
// Off-chain authority tooling signs with the same parameters the
// contract verifies with.
func ClaimAuthorizer(chainTag byte, contract lockon.Address) *claims.Authorizer {
	return claims.NewAuthorizer(domainName, chainTag, contract, claims.SchemaIndex)
}

var logger = log.WithContext("pkg", "indexstaking")

// Escrow is the vesting contract surface the staking contract forwards
// claimed rewards to.
type Escrow interface {
	Address() lockon.Address
	Deposit(env *runtime.Environment, beneficiary lockon.Address, amount, category *big.Int) error
}

// Staking implements methods of the index staking contract.
type Staking struct {
	addr     lockon.Address
	gate     *gate.Gate
	service  *Service
	requests *claims.RequestSet
	token    locktoken.Ledger
	escrow   Escrow
}

// New creates a new instance bound to the contract address.
func New(addr lockon.Address, state *state.State, token locktoken.Ledger, escrow Escrow) *Staking {
	sctx := solidity.NewContext(addr, state)

	return &Staking{
		addr:     addr,
		gate:     gate.New(sctx),
		service:  NewService(sctx),
		requests: claims.NewRequestSet(sctx),
		token:    token,
		escrow:   escrow,
	}
}

// Address returns the contract address.
func (s *Staking) Address() lockon.Address {
	return s.addr
}

// InitOwner writes the initial owner. Genesis only, before any
// transaction runs.
func (s *Staking) InitOwner(owner lockon.Address) {
	s.gate.InitOwner(owner)
}

//
// Getters - no state change
//

// Owner returns the current contract owner.
func (s *Staking) Owner() (lockon.Address, error) {
	return s.gate.Owner()
}

// Paused reports whether user entry points are suspended.
func (s *Staking) Paused() (bool, error) {
	return s.gate.Paused()
}

// Authority returns the claim signing authority.
func (s *Staking) Authority() (lockon.Address, error) {
	return s.service.repo.getAuthority()
}

// VestingCategory returns the escrow category claimed rewards vest under.
func (s *Staking) VestingCategory() (*big.Int, error) {
	return s.service.repo.getCategory()
}

// GetPool returns the pool for stakeToken.
func (s *Staking) GetPool(stakeToken lockon.Address) (*Pool, error) {
	return s.service.GetPool(stakeToken)
}

// GetPosition returns the position of user in the stakeToken pool.
func (s *Staking) GetPosition(user, stakeToken lockon.Address) (*Position, error) {
	return s.service.GetPosition(user, stakeToken)
}

// PendingReward returns the reward the position would collect at now.
func (s *Staking) PendingReward(user, stakeToken lockon.Address, now uint64) (*big.Int, error) {
	return s.service.PendingReward(user, stakeToken, now)
}

// Processed reports whether a claim request id has been consumed.
func (s *Staking) Processed(requestID string) (bool, error) {
	return s.requests.Processed(requestID)
}

//
// Setters - state change
//

// AddPool registers a staking pool for stakeToken. Owner only.
func (s *Staking) AddPool(env *runtime.Environment, stakeToken lockon.Address, startTime uint64, bonusRate *big.Int) error {
	logger.Debug("adding pool", "token", stakeToken, "start", startTime, "bonusRate", bonusRate)

	if err := s.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if err := s.service.AddPool(stakeToken, startTime, bonusRate); err != nil {
		logger.Info("add pool failed", "token", stakeToken, "error", err)
		return err
	}

	env.Log(s.addr, "PoolAdded", &PoolAddedEvent{
		StakeToken: stakeToken,
		StartTime:  startTime,
		BonusRate:  bonusRate,
	})
	countOp("addPool")
	logger.Info("added pool", "token", stakeToken)
	return nil
}

// SetPoolRate replaces the emission rate of a pool after settling
// accrual at the old rate. Owner only.
func (s *Staking) SetPoolRate(env *runtime.Environment, stakeToken lockon.Address, bonusRate *big.Int) error {
	logger.Debug("setting pool rate", "token", stakeToken, "bonusRate", bonusRate)

	if err := s.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if _, err := s.service.SetRate(stakeToken, bonusRate, env.BlockTime()); err != nil {
		logger.Info("set pool rate failed", "token", stakeToken, "error", err)
		return err
	}

	env.Log(s.addr, "PoolRateSet", &PoolRateSetEvent{
		StakeToken: stakeToken,
		BonusRate:  bonusRate,
	})
	countOp("setPoolRate")
	return nil
}

// Allocate moves amount of reward funds from the caller into the pool
// budget. Owner only.
func (s *Staking) Allocate(env *runtime.Environment, stakeToken lockon.Address, amount *big.Int) error {
	logger.Debug("allocating budget", "token", stakeToken, "amount", amount)

	if err := s.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	pool, err := s.service.Allocate(stakeToken, amount, env.BlockTime())
	if err != nil {
		logger.Info("allocate failed", "token", stakeToken, "error", err)
		return err
	}
	if err := s.token.Transfer(env.Caller(), s.addr, amount); err != nil {
		return err
	}

	env.Log(s.addr, "BudgetAllocated", &BudgetAllocatedEvent{
		StakeToken: stakeToken,
		Amount:     amount,
		Budget:     pool.Budget,
	})
	countOp("allocate")
	logger.Info("allocated budget", "token", stakeToken, "budget", pool.Budget)
	return nil
}

// Deallocate returns amount of unspent budget from the pool to the
// recipient. Owner only.
func (s *Staking) Deallocate(env *runtime.Environment, stakeToken, recipient lockon.Address, amount *big.Int) error {
	logger.Debug("deallocating budget", "token", stakeToken, "recipient", recipient, "amount", amount)

	if err := s.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	pool, err := s.service.Deallocate(stakeToken, amount, env.BlockTime())
	if err != nil {
		logger.Info("deallocate failed", "token", stakeToken, "error", err)
		return err
	}
	if err := s.token.Transfer(s.addr, recipient, amount); err != nil {
		return err
	}

	env.Log(s.addr, "BudgetDeallocated", &BudgetDeallocatedEvent{
		StakeToken: stakeToken,
		Recipient:  recipient,
		Amount:     amount,
		Budget:     pool.Budget,
	})
	countOp("deallocate")
	logger.Info("deallocated budget", "token", stakeToken, "budget", pool.Budget)
	return nil
}

// SetAuthority replaces the claim signing authority. Owner only.
func (s *Staking) SetAuthority(env *runtime.Environment, authority lockon.Address) error {
	if err := s.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if authority.IsZero() {
		return reverts.ErrZeroAddress
	}
	s.service.repo.setAuthority(authority)
	env.Log(s.addr, "AuthoritySet", &AuthoritySetEvent{Authority: authority})
	return nil
}

// SetVestingCategory selects the escrow category claimed rewards vest
// under. Owner only.
func (s *Staking) SetVestingCategory(env *runtime.Environment, category *big.Int) error {
	if err := s.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	s.service.repo.setCategory(category)
	env.Log(s.addr, "VestingCategorySet", &VestingCategorySetEvent{Category: category})
	return nil
}

// SetPaused suspends or resumes user entry points. Owner only.
func (s *Staking) SetPaused(env *runtime.Environment, paused bool) error {
	if err := s.gate.SetPaused(env.Caller(), paused); err != nil {
		return err
	}
	env.Log(s.addr, "PausedSet", &PausedSetEvent{Paused: paused})
	return nil
}

// TransferOwnership nominates a new contract owner. Owner only.
func (s *Staking) TransferOwnership(env *runtime.Environment, newOwner lockon.Address) error {
	if err := s.gate.TransferOwnership(env.Caller(), newOwner); err != nil {
		return err
	}
	env.Log(s.addr, "OwnershipTransferStarted", &OwnershipTransferStartedEvent{NewOwner: newOwner})
	return nil
}

// AcceptOwnership completes a pending ownership transfer.
func (s *Staking) AcceptOwnership(env *runtime.Environment) error {
	if err := s.gate.AcceptOwnership(env.Caller()); err != nil {
		return err
	}
	env.Log(s.addr, "OwnershipTransferred", &OwnershipTransferredEvent{Owner: env.Caller()})
	return nil
}

// Deposit stakes amount of the stake token. Stake is pulled from the
// caller.
func (s *Staking) Deposit(env *runtime.Environment, stakeToken lockon.Address, amount *big.Int) error {
	logger.Debug("deposit", "user", env.Caller(), "token", stakeToken, "amount", amount)

	return s.gate.Guarded(env, func() error {
		user := env.Caller()
		pool, _, err := s.service.Deposit(user, stakeToken, amount, env.BlockTime())
		if err != nil {
			logger.Info("deposit failed", "user", user, "error", err)
			return err
		}
		if err := s.token.Transfer(user, s.addr, amount); err != nil {
			logger.Info("deposit transfer failed", "user", user, "error", err)
			return err
		}

		env.Log(s.addr, "Deposited", &DepositedEvent{
			User:       user,
			StakeToken: stakeToken,
			Amount:     amount,
		})
		countOp("deposit")
		logger.Info("deposited", "user", user, "token", stakeToken, "totalStaked", pool.TotalStaked)
		return nil
	})
}

// Withdraw removes amount of stake and pays it back to the caller in
// full, there is no lock and no penalty.
func (s *Staking) Withdraw(env *runtime.Environment, stakeToken lockon.Address, amount *big.Int) error {
	logger.Debug("withdraw", "user", env.Caller(), "token", stakeToken, "amount", amount)

	return s.gate.Guarded(env, func() error {
		user := env.Caller()
		pool, _, err := s.service.Withdraw(user, stakeToken, amount, env.BlockTime())
		if err != nil {
			logger.Info("withdraw failed", "user", user, "error", err)
			return err
		}
		if err := s.token.Transfer(s.addr, user, amount); err != nil {
			return err
		}

		env.Log(s.addr, "Withdrawn", &WithdrawnEvent{
			User:       user,
			StakeToken: stakeToken,
			Amount:     amount,
		})
		countOp("withdraw")
		logger.Info("withdrawn", "user", user, "token", stakeToken, "totalStaked", pool.TotalStaked)
		return nil
	})
}

// Claim settles the caller's accrued reward plus the authority granted
// claim amount and deposits the total into the vesting escrow. The
// granted amount is taken out of the pool budget. The request id is
// consumed before the signature is checked, a replayed id fails
// regardless of the signature carried.
func (s *Staking) Claim(env *runtime.Environment, stakeToken lockon.Address, requestID string, cumulativePendingReward, claimAmount *big.Int, signature []byte) error {
	logger.Debug("claim", "user", env.Caller(), "token", stakeToken, "request", requestID, "amount", claimAmount)

	return s.gate.Guarded(env, func() error {
		user := env.Caller()
		if err := s.requests.Consume(requestID); err != nil {
			logger.Info("claim failed", "user", user, "request", requestID, "error", err)
			return err
		}
		if err := s.verifyClaim(env, &claims.Request{
			RequestID:               requestID,
			Beneficiary:             user,
			StakeToken:              stakeToken,
			CumulativePendingReward: cumulativePendingReward,
			ClaimAmount:             claimAmount,
		}, signature); err != nil {
			logger.Info("claim rejected", "user", user, "request", requestID, "error", err)
			return err
		}

		_, _, collected, err := s.service.Collect(user, stakeToken, env.BlockTime())
		if err != nil {
			return err
		}
		if claimAmount.Sign() > 0 {
			if _, err := s.service.DeductBudget(stakeToken, claimAmount); err != nil {
				logger.Info("claim grant rejected", "user", user, "request", requestID, "error", err)
				return err
			}
		}
		total := new(big.Int).Add(collected, claimAmount)
		if total.Sign() == 0 {
			return reverts.ErrNothingToClaim
		}

		category, err := s.service.repo.getCategory()
		if err != nil {
			return err
		}
		if err := s.token.Approve(s.addr, s.escrow.Address(), total); err != nil {
			return err
		}
		if err := s.escrow.Deposit(env.WithCaller(s.addr), user, total, category); err != nil {
			logger.Info("claim escrow deposit failed", "user", user, "error", err)
			return err
		}

		env.Log(s.addr, "RewardClaimed", &RewardClaimedEvent{
			User:       user,
			StakeToken: stakeToken,
			RequestID:  requestID,
			Amount:     total,
		})
		countOp("claim")
		logger.Info("claimed", "user", user, "token", stakeToken, "request", requestID, "amount", total)
		return nil
	})
}

// CancelClaim burns an authorized claim request without paying it out.
// Only the beneficiary the signature was issued for can cancel it.
func (s *Staking) CancelClaim(env *runtime.Environment, stakeToken lockon.Address, requestID string, cumulativePendingReward, claimAmount *big.Int, signature []byte) error {
	logger.Debug("cancel claim", "user", env.Caller(), "token", stakeToken, "request", requestID)

	return s.gate.Guarded(env, func() error {
		user := env.Caller()
		if err := s.requests.Consume(requestID); err != nil {
			logger.Info("cancel claim failed", "user", user, "request", requestID, "error", err)
			return err
		}
		if err := s.verifyClaim(env, &claims.Request{
			RequestID:               requestID,
			Beneficiary:             user,
			StakeToken:              stakeToken,
			CumulativePendingReward: cumulativePendingReward,
			ClaimAmount:             claimAmount,
		}, signature); err != nil {
			logger.Info("cancel claim rejected", "user", user, "request", requestID, "error", err)
			return err
		}

		env.Log(s.addr, "ClaimCancelled", &ClaimCancelledEvent{
			User:       user,
			StakeToken: stakeToken,
			RequestID:  requestID,
		})
		countOp("cancelClaim")
		logger.Info("claim cancelled", "user", user, "request", requestID)
		return nil
	})
}

func (s *Staking) verifyClaim(env *runtime.Environment, req *claims.Request, signature []byte) error {
	authority, err := s.service.repo.getAuthority()
	if err != nil {
		return err
	}
	return ClaimAuthorizer(env.ChainTag(), s.addr).Verify(req, signature, authority)
}
