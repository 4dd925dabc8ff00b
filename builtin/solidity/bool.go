// Copyright (c) 2026 The Lockon developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/lockon-finance/lock-contracts/lockon"
)

// Bool is a wrapper for storage and retrieval of a bool flag.
// An empty slot reads as false.
type Bool struct {
	context *Context
	pos     lockon.Bytes32
}

func NewBool(context *Context, pos lockon.Bytes32) *Bool {
	return &Bool{context: context, pos: pos}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.context.state.GetStorage(b.context.address, b.pos)
	if err != nil {
		return false, err
	}
	return !storage.IsZero(), nil
}

func (b *Bool) Set(v bool) {
	var storage lockon.Bytes32
	if v {
		storage[31] = 1
	}
	b.context.state.SetStorage(b.context.address, b.pos, storage)
}
