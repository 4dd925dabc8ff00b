// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import "github.com/lockon-finance/lock-contracts/metrics"

var metricOpCount = metrics.LazyLoadCounterVec("vesting_operation_count", []string{"op"})

func countOp(op string) {
	metricOpCount().AddWithLabel(1, map[string]string{"op": op})
}
