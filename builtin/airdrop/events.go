// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package airdrop

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/lockon"
)

type (
	// ClaimedEvent is logged by both distributors when a grant pays out
	// into the escrow.
	ClaimedEvent struct {
		User   lockon.Address
		Amount *big.Int
	}

	AllocationsSetEvent struct {
		Count uint64
		Total *big.Int
	}

	RootSetEvent struct {
		Root lockon.Bytes32
	}

	ClaimStartSetEvent struct {
		Start uint64
	}

	VestingCategorySetEvent struct {
		Category *big.Int
	}

	RecoveredEvent struct {
		Recipient lockon.Address
		Amount    *big.Int
	}

	PausedSetEvent struct {
		Paused bool
	}

	OwnershipTransferStartedEvent struct {
		NewOwner lockon.Address
	}

	OwnershipTransferredEvent struct {
		Owner lockon.Address
	}
)
