// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/lockon-finance/lock-contracts/lockon"
)

type contract struct {
	name    string
	Address lockon.Address
}

func newContract(name string) *contract {
	return &contract{name, lockon.BytesToAddress([]byte(name))}
}
