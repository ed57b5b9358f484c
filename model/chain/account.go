package chain

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// AccountIDLen is the byte length of on-chain account identifiers.
const AccountIDLen = 32

// AccountID identifies an on-chain account. Accounts own a monotonically
// increasing nonce, maintained by the runtime, which sequences the account's
// extrinsics.
type AccountID [AccountIDLen]byte

// AccountIDFromPublicKey derives the account controlled by the given key.
func AccountIDFromPublicKey(pub PublicKey) AccountID {
	return AccountID(blake2b.Sum256(pub[:]))
}

func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// ShortString returns an abbreviated representation for log fields.
func (a AccountID) ShortString() string {
	return hex.EncodeToString(a[:5])
}
