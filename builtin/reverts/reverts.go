// Copyright (c) 2026 The Lockon developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the error type distinguishing a contract revert
// from an internal failure. A revert rolls the transaction back and reports
// the reason to the caller, an internal failure propagates as a plain error.
package reverts

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// RevertError aborts the current transaction with a reason.
type RevertError struct {
	category string
	message  string
}

func New(category, message string) *RevertError {
	return &RevertError{
		category: category,
		message:  message,
	}
}

// Validation flags rejected input.
func Validation(message string) *RevertError {
	return New("validation", message)
}

// Authorization flags a caller lacking the right to perform an operation.
func Authorization(message string) *RevertError {
	return New("authorization", message)
}

// State flags an operation invalid in the current contract state.
func State(message string) *RevertError {
	return New("state", message)
}

// Budget flags an operation exceeding an allocated reward budget.
func Budget(message string) *RevertError {
	return New("budget", message)
}

func (e *RevertError) Error() string {
	return e.category + ": " + e.message
}

func (e *RevertError) Category() string {
	return e.category
}

// Bytes returns the reason ABI-encoded the way Error(string) reverts are,
// so receipts carry the same payload an on-chain caller would see.
func (e *RevertError) Bytes() []byte {
	if e == nil {
		return nil
	}

	// 4-byte selector for Error(string)
	selector, _ := hex.DecodeString("08c379a0")
	msgBytes := []byte(e.Error())
	msgLen := uint64(len(msgBytes))

	// ABI-encode
	// selector + offset (32 bytes) + length (32 bytes) + data (padded to 32)
	encoded := make([]byte, 0, 4+32+32+((len(msgBytes)+31)/32)*32)
	encoded = append(encoded, selector...)

	// Offset is always 0x20 (32) after the selector
	offset := make([]byte, 32)
	binary.BigEndian.PutUint64(offset[24:], 32)
	encoded = append(encoded, offset...)

	// Length
	length := make([]byte, 32)
	binary.BigEndian.PutUint64(length[24:], msgLen)
	encoded = append(encoded, length...)

	// Message data padded
	data := make([]byte, ((len(msgBytes)+31)/32)*32)
	copy(data, msgBytes)
	encoded = append(encoded, data...)

	return encoded
}

// IsRevertErr tells whether err carries a contract revert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *RevertError
	if errors.As(e, &ve) {
		return ve != nil
	}
	return false
}

// Sentinels shared across contracts.
var (
	ErrZeroAmount   = Validation("amount is zero")
	ErrZeroAddress  = Validation("address is zero")
	ErrRateTooHigh  = Validation("rate exceeds the precision base")
	ErrNotExecutor  = Authorization("caller is not the executor")
	ErrNotOwner     = Authorization("caller is not the owner")
	ErrNotAuthority = Authorization("caller is not the claim authority")
	ErrNotDepositor = Authorization("caller is not an allowed depositor")
	ErrPaused       = State("contract is paused")
	ErrReentrancy   = State("reentrant call")

	ErrPoolNotStarted    = State("pool has not started")
	ErrUnknownPool       = State("pool does not exist")
	ErrPoolExists        = State("pool already exists")
	ErrInvalidDuration   = State("lock duration is too short")
	ErrInsufficientStake = State("insufficient staked amount")
	ErrNothingToClaim    = State("nothing to claim")
	ErrDuplicateRequest  = State("request already processed")
	ErrUnknownCategory   = State("vesting category does not exist")
	ErrUserBanned        = State("user is banned")
	ErrClaimNotStarted   = State("claiming has not started")

	ErrInvalidSignature = Authorization("invalid authority signature")
	ErrInvalidProof     = Authorization("invalid merkle proof")

	ErrBudgetExceeded    = Budget("amount exceeds remaining reward budget")
	ErrInsufficientFunds = Budget("insufficient token balance")
	ErrAllowanceExceeded = Budget("transfer exceeds allowance")
)
