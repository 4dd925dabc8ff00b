// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/lockon-finance/lock-contracts/metrics"

var (
	metricTxCounter  = metrics.LazyLoadCounterVec("transaction_count", []string{"status"})
	metricTxDuration = metrics.LazyLoadHistogram("transaction_duration_ms", metrics.Bucket10s)
)
