// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package indexstaking

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/lockon"
)

// Event payloads logged by the index staking contract.

type PoolAddedEvent struct {
	StakeToken lockon.Address
	StartTime  uint64
	BonusRate  *big.Int
}

type PoolRateSetEvent struct {
	StakeToken lockon.Address
	BonusRate  *big.Int
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
}

type WithdrawnEvent struct {
	User       lockon.Address
	StakeToken lockon.Address
	Amount     *big.Int
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
