// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/lockon"
)

type (
	// DepositedEvent is logged when principal enters a wallet and the
	// schedule re-baselines.
	DepositedEvent struct {
		Depositor     lockon.Address
		Beneficiary   lockon.Address
		Category      *big.Int
		Amount        *big.Int
		VestingAmount *big.Int // new schedule principal after the re-baseline
		Carryover     *big.Int // claimable frozen out of the old schedule
	}

	// ClaimedEvent is logged when a wallet pays out.
	ClaimedEvent struct {
		User     lockon.Address
		Category *big.Int
		Amount   *big.Int
	}

	CategorySetEvent struct {
		Category *big.Int
		Duration uint64
	}

	DepositorSetEvent struct {
		Depositor lockon.Address
		Allowed   bool
	}

	BannedSetEvent struct {
		User   lockon.Address
		Banned bool
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
