// Copyright (c) 2026 The Lockon developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/state"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values implementing state.StorageEncoder/state.StorageDecoder use their own codec,
// everything else is stored as rlp. Keys are spread over slots by hashing the key
// with the mapping's base position.
type Mapping[K Key, V any] struct {
	context *Context
	basePos lockon.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos lockon.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) lockon.Bytes32 {
	return lockon.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if dec, ok := any(value).(state.StorageDecoder); ok {
			return dec.Decode(raw)
		}
		if dec, ok := any(&value).(state.StorageDecoder); ok {
			return dec.Decode(raw)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		if enc, ok := any(value).(state.StorageEncoder); ok {
			return enc.Encode()
		}
		if enc, ok := any(&value).(state.StorageEncoder); ok {
			return enc.Encode()
		}
		return rlp.EncodeToBytes(value)
	})
}

// Has tells whether the slot for key holds any value.
func (m *Mapping[K, V]) Has(key K) (bool, error) {
	raw, err := m.context.state.GetRawStorage(m.context.address, m.position(key))
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}
