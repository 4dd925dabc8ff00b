// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claims

import (
	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
)

var slotProcessed = lockon.BytesToBytes32([]byte("processed-requests"))

// RequestSet tracks consumed request ids for one contract. An id is
// consumed at most once, by either a claim or a cancel, and stays
// consumed forever.
type RequestSet struct {
	processed *solidity.Mapping[lockon.Bytes32, bool]
}

func NewRequestSet(sctx *solidity.Context) *RequestSet {
	return &RequestSet{
		processed: solidity.NewMapping[lockon.Bytes32, bool](sctx, slotProcessed),
	}
}

func requestKey(requestID string) lockon.Bytes32 {
	return lockon.Blake2b([]byte(requestID))
}

// Processed tells whether the request id has already been consumed.
func (s *RequestSet) Processed(requestID string) (bool, error) {
	used, err := s.processed.Has(requestKey(requestID))
	if err != nil {
		return false, errors.Wrap(err, "failed to check request")
	}
	return used, nil
}

// Consume marks the request id processed, rejecting reuse.
func (s *RequestSet) Consume(requestID string) error {
	used, err := s.Processed(requestID)
	if err != nil {
		return err
	}
	if used {
		return reverts.ErrDuplicateRequest
	}
	if err := s.processed.Set(requestKey(requestID), true); err != nil {
		return errors.Wrap(err, "failed to mark request processed")
	}
	return nil
}
