// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package airdrop

import "github.com/lockon-finance/lock-contracts/metrics"

var metricOpCount = metrics.LazyLoadCounterVec("airdrop_operation_count", []string{"contract", "op"})

func countOp(contract, op string) {
	metricOpCount().AddWithLabel(1, map[string]string{"contract": contract, "op": op})
}
