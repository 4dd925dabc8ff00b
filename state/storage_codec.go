// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// StorageEncoder is the interface of customized storage encoding.
// Encode returning nil bytes clears the slot.
type StorageEncoder interface {
	Encode() ([]byte, error)
}

// StorageDecoder is the interface of customized storage decoding.
// Decode is called with nil data when the slot is empty.
type StorageDecoder interface {
	Decode(data []byte) error
}
