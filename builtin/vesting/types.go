// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lockon-finance/lock-contracts/builtin/accrual"
	"github.com/lockon-finance/lock-contracts/state"
)

// Wallet is the vesting schedule of one user in one category. Created
// lazily on the first deposit, zeroed amounts persist as tombstones.
type Wallet struct {
	VestingAmount   *big.Int // principal releasing under the active schedule
	ClaimableAmount *big.Int // carried over from earlier schedules, frozen at the last deposit
	ClaimedAmount   *big.Int // already released under the active schedule
	StartTime       uint64   // active schedule start
}

var (
	_ state.StorageEncoder = (*Wallet)(nil)
	_ state.StorageDecoder = (*Wallet)(nil)
)

func (w *Wallet) Encode() ([]byte, error) {
	if w.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(w)
}

func (w *Wallet) Decode(data []byte) error {
	if len(data) == 0 {
		*w = Wallet{&big.Int{}, &big.Int{}, &big.Int{}, 0}
		return nil
	}
	return rlp.DecodeBytes(data, w)
}

func (w *Wallet) IsEmpty() bool {
	return w.VestingAmount.Sign() == 0 &&
		w.ClaimableAmount.Sign() == 0 &&
		w.ClaimedAmount.Sign() == 0 &&
		w.StartTime == 0
}

// Unlocked returns how much of the active schedule's principal has
// released at now, for a category of the given duration.
func (w *Wallet) Unlocked(now uint64, duration uint64) *big.Int {
	if now <= w.StartTime {
		return new(big.Int)
	}
	return accrual.LinearUnlocked(w.VestingAmount, now-w.StartTime, duration)
}

// Payable returns what a claim at now would transfer out: the released
// part of the active schedule not yet claimed, plus the carryover from
// earlier schedules.
func (w *Wallet) Payable(now uint64, duration uint64) *big.Int {
	payable := w.Unlocked(now, duration)
	payable.Add(payable, w.ClaimableAmount)
	payable.Sub(payable, w.ClaimedAmount)
	return payable
}
