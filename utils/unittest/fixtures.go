package unittest

import (
	"crypto/rand"
	"time"

	"github.com/oraclenet/offchain-worker/model/chain"
)

// TagFixture is the application key tag used throughout the tests.
var TagFixture = mustKeyTag("orcl")

func mustKeyTag(s string) chain.KeyTag {
	tag, err := chain.ParseKeyTag(s)
	if err != nil {
		panic(err)
	}
	return tag
}

// IdentifierFixture returns a random identifier.
func IdentifierFixture() chain.Identifier {
	var id chain.Identifier
	_, _ = rand.Read(id[:])
	return id
}

// HeaderFixture returns a block header at the given height with a random
// parent.
func HeaderFixture(height uint64) *chain.Header {
	return &chain.Header{
		Height:    height,
		ParentID:  IdentifierFixture(),
		Timestamp: time.Now().UTC(),
	}
}

// PublicKeyFixture returns a random public key.
func PublicKeyFixture() chain.PublicKey {
	var pub chain.PublicKey
	_, _ = rand.Read(pub[:])
	return pub
}

// KeyHandleFixture returns a key handle for a random public key under the
// test tag.
func KeyHandleFixture() chain.KeyHandle {
	pub := PublicKeyFixture()
	return chain.KeyHandle{
		Tag:     TagFixture,
		Public:  pub,
		Account: chain.AccountIDFromPublicKey(pub),
	}
}

// SignatureFixture returns a random (non-verifying) signature.
func SignatureFixture() chain.Signature {
	var sig chain.Signature
	_, _ = rand.Read(sig[:])
	return sig
}

// DatumFixture returns a datum with the given payload.
func DatumFixture(payload string) *chain.Datum {
	return &chain.Datum{
		Payload:   []byte(payload),
		FetchedAt: time.Now().UTC(),
	}
}
