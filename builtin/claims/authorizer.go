// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claims

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/cache"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
)

const domainType = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"

// domainVersion is fixed, deployments are distinguished by chain tag
// and contract address.
const domainVersion = "1"

var (
	logger = log.WithContext("pkg", "claims")

	signerCacheSize = 1024
	signerCache, _  = cache.NewLRU(signerCacheSize)
	signerStats     cache.Stats
)

// Authorizer computes digests for one contract's claim schema and
// recovers the signer identity from request signatures.
type Authorizer struct {
	typeHash        lockon.Bytes32
	domainSeparator lockon.Bytes32
}

// NewAuthorizer binds a schema to a deployment. The domain separator
// commits to the contract name, the chain tag and the contract
// address, so a signature for one contract never verifies on another.
func NewAuthorizer(name string, chainTag byte, contract lockon.Address, schema Schema) *Authorizer {
	return &Authorizer{
		typeHash: lockon.Keccak256([]byte(schema)),
		domainSeparator: lockon.Keccak256(
			lockon.Keccak256([]byte(domainType)).Bytes(),
			lockon.Keccak256([]byte(name)).Bytes(),
			lockon.Keccak256([]byte(domainVersion)).Bytes(),
			uintWord(new(big.Int).SetUint64(uint64(chainTag))),
			addressWord(contract),
		),
	}
}

func uintWord(v *big.Int) []byte {
	word, _ := uint256.FromBig(v)
	b := word.Bytes32()
	return b[:]
}

func addressWord(addr lockon.Address) []byte {
	var word [32]byte
	copy(word[12:], addr.Bytes())
	return word[:]
}

func (a *Authorizer) structHash(req *Request) lockon.Bytes32 {
	if req.CumulativePendingReward != nil {
		return lockon.Keccak256(
			a.typeHash.Bytes(),
			lockon.Keccak256([]byte(req.RequestID)).Bytes(),
			addressWord(req.Beneficiary),
			addressWord(req.StakeToken),
			uintWord(req.CumulativePendingReward),
			uintWord(req.ClaimAmount),
		)
	}
	return lockon.Keccak256(
		a.typeHash.Bytes(),
		lockon.Keccak256([]byte(req.RequestID)).Bytes(),
		addressWord(req.Beneficiary),
		addressWord(req.StakeToken),
		uintWord(req.ClaimAmount),
	)
}

// Digest returns the signable digest of a request:
// keccak(0x19 ‖ 0x01 ‖ domainSeparator ‖ structHash).
func (a *Authorizer) Digest(req *Request) lockon.Bytes32 {
	structHash := a.structHash(req)
	return lockon.Keccak256(
		[]byte{0x19, 0x01},
		a.domainSeparator.Bytes(),
		structHash.Bytes(),
	)
}

// Sign signs the request digest with the given key, producing the
// 65-byte [R ‖ S ‖ V] signature the contracts verify.
func (a *Authorizer) Sign(req *Request, key *ecdsa.PrivateKey) ([]byte, error) {
	digest := a.Digest(req)
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign request")
	}
	return sig, nil
}

// RecoverSigner returns the address that signed the request. Recovery
// results are cached, repeated verification of the same signature is a
// lookup.
func (a *Authorizer) RecoverSigner(req *Request, sig []byte) (lockon.Address, error) {
	if len(sig) != 65 {
		return lockon.Address{}, errors.Errorf("invalid signature length %d", len(sig))
	}
	digest := a.Digest(req)

	cacheKey := lockon.Blake2b(digest.Bytes(), sig)
	if cached, ok := signerCache.Get(cacheKey); ok {
		if signerStats.Hit()%2000 == 0 {
			shouldLog, hit, miss := signerStats.Stats()
			if shouldLog {
				logger.Debug("signer cache", "hit", hit, "miss", miss,
					"hitrate", float64(hit)/float64(hit+miss))
			}
		}
		return cached.(lockon.Address), nil
	}
	signerStats.Miss()

	pub, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return lockon.Address{}, errors.Wrap(err, "failed to recover signer")
	}
	signer := lockon.Address(crypto.PubkeyToAddress(*pub))
	signerCache.Add(cacheKey, signer)
	return signer, nil
}

// Verify checks that the request was signed by the expected authority.
// Any malformed or mismatched signature rejects the claim.
func (a *Authorizer) Verify(req *Request, sig []byte, authority lockon.Address) error {
	if authority.IsZero() {
		return reverts.ErrInvalidSignature
	}
	signer, err := a.RecoverSigner(req, sig)
	if err != nil {
		logger.Debug("signature recovery failed", "requestID", req.RequestID, "err", err)
		return reverts.ErrInvalidSignature
	}
	if signer != authority {
		return reverts.ErrInvalidSignature
	}
	return nil
}
