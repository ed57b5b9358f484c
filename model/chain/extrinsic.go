package chain

import (
	"fmt"
)

// PendingExtrinsic is the unsigned body of a data-submission extrinsic. It
// binds one fetched datum to one account at that account's current nonce.
type PendingExtrinsic struct {
	// Account is the submitting account; it pays the inclusion fee.
	Account AccountID

	// Nonce is the account's sequence number as read from runtime state when
	// the extrinsic was built. The runtime increments the authoritative nonce
	// only when the extrinsic is included in a block.
	Nonce uint64

	// Call is the datum payload embedded as the extrinsic's call data.
	Call []byte
}

// SigningPayload returns the canonical encoding of the extrinsic body. This
// is the exact byte sequence the keystore signs; any change to the body
// changes the payload.
func (p PendingExtrinsic) SigningPayload() ([]byte, error) {
	enc, err := CanonicalEncoding(p)
	if err != nil {
		return nil, fmt.Errorf("could not encode extrinsic body: %w", err)
	}
	return enc, nil
}

// SignedExtrinsic is a pending extrinsic together with the signature
// produced over its signing payload. Signing is terminal: a signed extrinsic
// is immutable and submitted to the transaction pool exactly once.
type SignedExtrinsic struct {
	Body      PendingExtrinsic
	Public    PublicKey
	Signature Signature
}

// ID returns a unique identifier for the signed extrinsic.
func (s SignedExtrinsic) ID() Identifier {
	return MakeID(s)
}
