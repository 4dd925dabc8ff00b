// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/lockon-finance/lock-contracts/lockon"
)

func RandomHash() lockon.Bytes32 {
	var b32 lockon.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandBytes32() (b lockon.Bytes32) {
	rand.Read(b[:])
	return
}
