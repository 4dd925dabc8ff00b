// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockon

import "math/big"

// Constants of the token economy.
const (
	Day uint64 = 24 * 60 * 60 // (unit: second)

	TokenDecimals = 18
)

// Keys of governance params.
var (
	KeyExecutorAddress  = BytesToBytes32([]byte("executor-address"))
	KeyBasicRateDivider = BytesToBytes32([]byte("basic-rate-divider"))

	// PrecisionFactor scales every fixed-point rate in the system. A rate of
	// PrecisionFactor means 100%.
	PrecisionFactor = big.NewInt(1e12)

	// InitialSupply is the total LOCK supply minted at genesis, 1 billion
	// tokens with 18 decimals. The supply never changes afterwards.
	InitialSupply = new(big.Int).Mul(big.NewInt(1e9), big.NewInt(1e18))

	// InitialBasicRateDivider makes the lock-staking basic rate double every
	// 360 days of pool age.
	InitialBasicRateDivider = new(big.Int).SetUint64(360 * Day)
)
