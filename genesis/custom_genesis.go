// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/lockon-finance/lock-contracts/lockon"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	LaunchTime   uint64          `json:"launchTime"`
	ExtraData    string          `json:"extraData"`
	Treasury     lockon.Address  `json:"treasury"`
	Accounts     []Account       `json:"accounts"`
	Params       Params          `json:"params"`
	Vesting      Vesting         `json:"vesting"`
	LockStaking  *StakingProgram `json:"lockStaking"`
	IndexStaking *StakingProgram `json:"indexStaking"`
	Airdrop      *AirdropProgram `json:"airdrop"`
}

// Account is an endowment transferred out of the treasury at genesis
type Account struct {
	Address lockon.Address   `json:"address"`
	Balance *HexOrDecimal256 `json:"balance"`
}

// Params means the chain params for params contract
type Params struct {
	ExecutorAddress  *lockon.Address  `json:"executorAddress"`
	BasicRateDivider *HexOrDecimal256 `json:"basicRateDivider"`
}

// Vesting configures the vesting escrow contract
type Vesting struct {
	Categories []VestingCategory `json:"categories"`
	Depositors []lockon.Address  `json:"depositors"`
}

// VestingCategory is one linear release schedule
type VestingCategory struct {
	Category *HexOrDecimal256 `json:"category"`
	Duration uint64           `json:"duration"`
}

// StakingProgram configures one staking pool over the LOCK token
type StakingProgram struct {
	Authority       lockon.Address   `json:"authority"`
	FeeReceiver     *lockon.Address  `json:"feeReceiver"`
	VestingCategory *HexOrDecimal256 `json:"vestingCategory"`
	BonusRate       *HexOrDecimal256 `json:"bonusRate"`
	PenaltyRate     *HexOrDecimal256 `json:"penaltyRate"`
	Budget          *HexOrDecimal256 `json:"budget"`
}

// AirdropProgram configures both airdrop distributors
type AirdropProgram struct {
	ClaimStart      uint64           `json:"claimStart"`
	VestingCategory *HexOrDecimal256 `json:"vestingCategory"`
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
// Copied from go-ethereum/common/math and implement json. Marshaler
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		if err = (*big.Int)(i).UnmarshalJSON(input); err != nil {
			return err
		}
		return nil
	}
	bigint, ok := math.ParseBig256(hex)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}
