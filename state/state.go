// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage.
// It follows the flow as below:
//
//	        o
//	        |
//	[ revertable state ]
//	        |
//	 [ stacked map ] -> [ journal ] -> [ committed store ]
//
// Every write lands in a checkpointed overlay first. RevertTo drops the
// overlay levels above a checkpoint, Commit plays the surviving journal
// back into the committed store.
package state

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/stackedmap"
)

// Error is the error type wrapping all state access failures.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return "state: " + e.cause.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr lockon.Address
	key  lockon.Bytes32
}

// State provides contract storage access with checkpoint/revert manner.
type State struct {
	store map[storageKey]rlp.RawValue
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New creates an empty in-memory state.
func New() *State {
	st := &State{store: make(map[storageKey]rlp.RawValue)}
	st.sm = stackedmap.New(func(key storageKey) (rlp.RawValue, bool) {
		v, ok := st.store[key]
		return v, ok
	})
	// the base level accepts writes made outside any checkpoint
	st.sm.Push()
	return st
}

// GetStorage returns storage value for the given key.
func (s *State) GetStorage(addr lockon.Address, key lockon.Bytes32) (lockon.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return lockon.Bytes32{}, &Error{err}
	}
	if len(raw) == 0 {
		return lockon.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return lockon.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return lockon.Blake2b(raw), nil
	}
	return lockon.BytesToBytes32(content), nil
}

// SetStorage sets storage value for the given key.
// Setting a zero value clears the slot.
func (s *State) SetStorage(addr lockon.Address, key, value lockon.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw form.
func (s *State) GetRawStorage(addr lockon.Address, key lockon.Bytes32) (rlp.RawValue, error) {
	metricStorageCounter().AddWithLabel(1, map[string]string{"type": "read"})
	data, _ := s.sm.Get(storageKey{addr, key})
	return data, nil
}

// SetRawStorage sets storage value in rlp raw form.
func (s *State) SetRawStorage(addr lockon.Address, key lockon.Bytes32, raw rlp.RawValue) {
	metricStorageCounter().AddWithLabel(1, map[string]string{"type": "write"})
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// An empty encoded value clears the slot.
func (s *State) EncodeStorage(addr lockon.Address, key lockon.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// The dec method is called with nil raw when the slot is empty.
func (s *State) DecodeStorage(addr lockon.Address, key lockon.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return &Error{err}
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts state to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit merges all checkpointed writes into the committed store and resets
// the checkpoint stack.
func (s *State) Commit() {
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		if len(v) == 0 {
			delete(s.store, k)
		} else {
			s.store[k] = v
		}
		return true
	})
	s.sm.PopTo(0)
	s.sm.Push()
}

// Digest computes the checksum of the whole state, committed and pending
// writes included. States with identical content produce identical digests
// regardless of write order.
func (s *State) Digest() lockon.Bytes32 {
	flat := make(map[storageKey]rlp.RawValue, len(s.store))
	for k, v := range s.store {
		flat[k] = v
	}
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		if len(v) == 0 {
			delete(flat, k)
		} else {
			flat[k] = v
		}
		return true
	})

	keys := make([]storageKey, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := bytes.Compare(keys[i].addr[:], keys[j].addr[:]); c != 0 {
			return c < 0
		}
		return bytes.Compare(keys[i].key[:], keys[j].key[:]) < 0
	})

	return lockon.Blake2bFn(func(w io.Writer) {
		var n [4]byte
		for _, k := range keys {
			w.Write(k.addr[:])
			w.Write(k.key[:])
			// length prefix keeps entry boundaries unambiguous
			binary.BigEndian.PutUint32(n[:], uint32(len(flat[k])))
			w.Write(n[:])
			w.Write(flat[k])
		}
	})
}
