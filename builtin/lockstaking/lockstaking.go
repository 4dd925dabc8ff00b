// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lockstaking implements the lock staking contract. Users lock
// the stake token for a chosen duration and accrue rewards on a score
// that grows with both the lock length and the age of the pool. Accrued
// rewards leave the contract only through authority signed claims which
// forward the payout into the vesting escrow.
package lockstaking

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/builtin/claims"
	"github.com/lockon-finance/lock-contracts/builtin/gate"
	"github.com/lockon-finance/lock-contracts/builtin/locktoken"
	"github.com/lockon-finance/lock-contracts/builtin/params"
	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
	"github.com/lockon-finance/lock-contracts/runtime"
	"github.com/lockon-finance/lock-contracts/state"
)

// domainName identifies this contract in claim signatures.
const domainName = "LOCK Staking"

// ClaimAuthorizer builds the claim signature scheme of a deployment.
// Off-chain authority tooling signs with the same parameters the
// contract verifies with.
func ClaimAuthorizer(chainTag byte, contract lockon.Address) *claims.Authorizer {
	return claims.NewAuthorizer(domainName, chainTag, contract, claims.SchemaLock)
}

var logger = log.WithContext("pkg", "lockstaking")

// Escrow is the vesting contract surface the staking contract forwards
// claimed rewards to.
type Escrow interface {
	Address() lockon.Address
	Deposit(env *runtime.Environment, beneficiary lockon.Address, amount, category *big.Int) error
}

// Staking implements methods of the lock staking contract.
type Staking struct {
	addr     lockon.Address
	gate     *gate.Gate
	service  *Service
	requests *claims.RequestSet
	token    locktoken.Ledger
	escrow   Escrow
}

// New creates a new instance bound to the contract address.
func New(addr lockon.Address, state *state.State, params *params.Params, token locktoken.Ledger, escrow Escrow) *Staking {
	sctx := solidity.NewContext(addr, state)

	return &Staking{
		addr:     addr,
		gate:     gate.New(sctx),
		service:  NewService(sctx, params),
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

// FeeReceiver returns the account collecting early withdrawal penalties.
func (s *Staking) FeeReceiver() (lockon.Address, error) {
	return s.service.repo.getFeeReceiver()
}

// VestingCategory returns the escrow category claimed rewards vest under.
func (s *Staking) VestingCategory() (*big.Int, error) {
	return s.service.repo.getCategory()
}

// GetPool returns the pool for stakeToken.
func (s *Staking) GetPool(stakeToken lockon.Address) (*Pool, error) {
	return s.service.GetPool(stakeToken)
}

// GetPosition returns the position of user in the stakeToken pool,
// zero valued when the user never staked.
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
func (s *Staking) AddPool(env *runtime.Environment, stakeToken lockon.Address, startTime uint64, bonusRate, penaltyRate *big.Int) error {
	logger.Debug("adding pool", "token", stakeToken, "start", startTime, "bonusRate", bonusRate, "penaltyRate", penaltyRate)

	if err := s.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if err := s.service.AddPool(stakeToken, startTime, bonusRate, penaltyRate); err != nil {
		logger.Info("add pool failed", "token", stakeToken, "error", err)
		return err
	}

	env.Log(s.addr, "PoolAdded", &PoolAddedEvent{
		StakeToken:  stakeToken,
		StartTime:   startTime,
		BonusRate:   bonusRate,
		PenaltyRate: penaltyRate,
	})
	countOp("addPool")
	logger.Info("added pool", "token", stakeToken)
	return nil
}

// SetPoolRates replaces the emission and penalty rates of a pool after
// settling accrual at the old rates. Owner only.
func (s *Staking) SetPoolRates(env *runtime.Environment, stakeToken lockon.Address, bonusRate, penaltyRate *big.Int) error {
	logger.Debug("setting pool rates", "token", stakeToken, "bonusRate", bonusRate, "penaltyRate", penaltyRate)

	if err := s.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if _, err := s.service.SetRates(stakeToken, bonusRate, penaltyRate, env.BlockTime()); err != nil {
		logger.Info("set pool rates failed", "token", stakeToken, "error", err)
		return err
	}

	env.Log(s.addr, "PoolRatesSet", &PoolRatesSetEvent{
		StakeToken:  stakeToken,
		BonusRate:   bonusRate,
		PenaltyRate: penaltyRate,
	})
	countOp("setPoolRates")
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
// recipient. Accrual owed up to now is settled first. Owner only.
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

// SetFeeReceiver replaces the penalty collector. Owner only.
func (s *Staking) SetFeeReceiver(env *runtime.Environment, receiver lockon.Address) error {
	if err := s.gate.RequireOwner(env.Caller()); err != nil {
		return err
	}
	if receiver.IsZero() {
		return reverts.ErrZeroAddress
	}
	s.service.repo.setFeeReceiver(receiver)
	env.Log(s.addr, "FeeReceiverSet", &FeeReceiverSetEvent{FeeReceiver: receiver})
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

// Deposit locks amount of the stake token for duration seconds from
// the current block time. Stake is pulled from the caller.
func (s *Staking) Deposit(env *runtime.Environment, stakeToken lockon.Address, amount *big.Int, duration uint64) error {
	logger.Debug("deposit", "user", env.Caller(), "token", stakeToken, "amount", amount, "duration", duration)

	return s.gate.Guarded(env, func() error {
		user := env.Caller()
		pool, pos, err := s.service.Deposit(user, stakeToken, amount, duration, env.BlockTime())
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
			Duration:   duration,
			LockEnd:    pos.LockEnd,
			Score:      pos.Score,
		})
		countOp("deposit")
		logger.Info("deposited", "user", user, "token", stakeToken, "score", pos.Score, "totalScore", pool.TotalScore)
		return nil
	})
}

// Extend relocks the caller's position for duration seconds from the
// current block time without adding stake.
func (s *Staking) Extend(env *runtime.Environment, stakeToken lockon.Address, duration uint64) error {
	logger.Debug("extend", "user", env.Caller(), "token", stakeToken, "duration", duration)

	return s.gate.Guarded(env, func() error {
		user := env.Caller()
		_, pos, err := s.service.Extend(user, stakeToken, duration, env.BlockTime())
		if err != nil {
			logger.Info("extend failed", "user", user, "error", err)
			return err
		}

		env.Log(s.addr, "Extended", &ExtendedEvent{
			User:       user,
			StakeToken: stakeToken,
			Duration:   duration,
			LockEnd:    pos.LockEnd,
			Score:      pos.Score,
		})
		countOp("extend")
		logger.Info("extended", "user", user, "token", stakeToken, "lockEnd", pos.LockEnd)
		return nil
	})
}

// Withdraw removes amount of stake and pays it back to the caller. A
// withdrawal before the lock end forfeits the penalty share to the fee
// receiver.
func (s *Staking) Withdraw(env *runtime.Environment, stakeToken lockon.Address, amount *big.Int) error {
	logger.Debug("withdraw", "user", env.Caller(), "token", stakeToken, "amount", amount)

	return s.gate.Guarded(env, func() error {
		user := env.Caller()
		_, _, payout, penalty, err := s.service.Withdraw(user, stakeToken, amount, env.BlockTime())
		if err != nil {
			logger.Info("withdraw failed", "user", user, "error", err)
			return err
		}
		if err := s.token.Transfer(s.addr, user, payout); err != nil {
			return err
		}
		if penalty.Sign() > 0 {
			receiver, err := s.service.repo.getFeeReceiver()
			if err != nil {
				return err
			}
			if err := s.token.Transfer(s.addr, receiver, penalty); err != nil {
				return err
			}
		}

		env.Log(s.addr, "Withdrawn", &WithdrawnEvent{
			User:       user,
			StakeToken: stakeToken,
			Amount:     amount,
			Payout:     payout,
			Penalty:    penalty,
		})
		countOp("withdraw")
		logger.Info("withdrawn", "user", user, "token", stakeToken, "payout", payout, "penalty", penalty)
		return nil
	})
}

// Claim settles the caller's accrued reward plus the authority granted
// claim amount and deposits the total into the vesting escrow. The
// request id is consumed before the signature is checked, a replayed id
// fails regardless of the signature carried.
func (s *Staking) Claim(env *runtime.Environment, stakeToken lockon.Address, requestID string, claimAmount *big.Int, signature []byte) error {
	logger.Debug("claim", "user", env.Caller(), "token", stakeToken, "request", requestID, "amount", claimAmount)

	return s.gate.Guarded(env, func() error {
		user := env.Caller()
		if err := s.requests.Consume(requestID); err != nil {
			logger.Info("claim failed", "user", user, "request", requestID, "error", err)
			return err
		}
		if err := s.verifyClaim(env, &claims.Request{
			RequestID:   requestID,
			Beneficiary: user,
			StakeToken:  stakeToken,
			ClaimAmount: claimAmount,
		}, signature); err != nil {
			logger.Info("claim rejected", "user", user, "request", requestID, "error", err)
			return err
		}

		_, _, collected, err := s.service.Collect(user, stakeToken, env.BlockTime())
		if err != nil {
			return err
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
func (s *Staking) CancelClaim(env *runtime.Environment, stakeToken lockon.Address, requestID string, claimAmount *big.Int, signature []byte) error {
	logger.Debug("cancel claim", "user", env.Caller(), "token", stakeToken, "request", requestID)

	return s.gate.Guarded(env, func() error {
		user := env.Caller()
		if err := s.requests.Consume(requestID); err != nil {
			logger.Info("cancel claim failed", "user", user, "request", requestID, "error", err)
			return err
		}
		if err := s.verifyClaim(env, &claims.Request{
			RequestID:   requestID,
			Beneficiary: user,
			StakeToken:  stakeToken,
			ClaimAmount: claimAmount,
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
