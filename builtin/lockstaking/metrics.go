// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockstaking

import "github.com/lockon-finance/lock-contracts/metrics"

var metricOpCount = metrics.LazyLoadCounterVec("staking_operation_count", []string{"contract", "op"})

func countOp(op string) {
	metricOpCount().AddWithLabel(1, map[string]string{"contract": "lock", "op": op})
}
