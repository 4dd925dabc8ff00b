// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockstaking

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/lockon"
)

// Event payloads logged by the staking contract.

type PoolAddedEvent struct {
	StakeToken  lockon.Address
	StartTime   uint64
	BonusRate   *big.Int
	PenaltyRate *big.Int
}

type PoolRatesSetEvent struct {
	StakeToken  lockon.Address
	BonusRate   *big.Int
	PenaltyRate *big.Int
}

type BudgetAllocatedEvent struct {
	StakeToken lockon.Address
	Amount     *big.Int
	Budget     *big.Int
}

type BudgetDeallocatedEvent struct {
	StakeToken lockon.Address
	Recipient  lockon.Address
	Amount     *big.Int
	Budget     *big.Int
}

type DepositedEvent struct {
	User       lockon.Address
	StakeToken lockon.Address
	Amount     *big.Int
	Duration   uint64
	LockEnd    uint64
	Score      *big.Int
}

type ExtendedEvent struct {
	User       lockon.Address
	StakeToken lockon.Address
	Duration   uint64
	LockEnd    uint64
	Score      *big.Int
}

type WithdrawnEvent struct {
	User       lockon.Address
	StakeToken lockon.Address
	Amount     *big.Int
	Payout     *big.Int
	Penalty    *big.Int
}

type RewardClaimedEvent struct {
	User       lockon.Address
	StakeToken lockon.Address
	RequestID  string
	Amount     *big.Int
}

type ClaimCancelledEvent struct {
	User       lockon.Address
	StakeToken lockon.Address
	RequestID  string
}

type AuthoritySetEvent struct {
	Authority lockon.Address
}

type FeeReceiverSetEvent struct {
	FeeReceiver lockon.Address
}

type VestingCategorySetEvent struct {
	Category *big.Int
}

type PausedSetEvent struct {
	Paused bool
}

type OwnershipTransferStartedEvent struct {
	NewOwner lockon.Address
}

type OwnershipTransferredEvent struct {
	Owner lockon.Address
}
