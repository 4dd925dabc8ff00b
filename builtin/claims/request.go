// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package claims verifies off-chain authorized claim requests. An
// authority service computes claim amounts off-chain and signs them
// over a typed, domain-separated digest, the contracts only check the
// signature, the replay set and the budget.
package claims

import (
	"math/big"

	"github.com/lockon-finance/lock-contracts/lockon"
)

// Request is the payload the authority signs. CumulativePendingReward
// rides along in the index-staking schema only, the lock schema leaves
// it nil.
type Request struct {
	RequestID               string
	Beneficiary             lockon.Address
	StakeToken              lockon.Address
	CumulativePendingReward *big.Int
	ClaimAmount             *big.Int
}

// Schema is the typed-struct layout a contract accepts. The request id
// is hashed as a dynamic string, addresses and amounts are packed as
// 32-byte words.
type Schema string

const (
	// SchemaLock authorizes lock-staking claims.
	SchemaLock Schema = "Claim(string requestId,address beneficiary,address stakeToken,uint256 claimAmount)"

	// SchemaIndex additionally binds the cumulative pending reward the
	// authority observed when issuing the claim.
	SchemaIndex Schema = "Claim(string requestId,address beneficiary,address stakeToken,uint256 cumulativePendingReward,uint256 claimAmount)"
)
