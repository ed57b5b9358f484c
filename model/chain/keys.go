package chain

import (
	"encoding/hex"
	"fmt"
)

const (
	// KeyTagLen is the byte length of application key tags.
	KeyTagLen = 4

	// PublicKeyLen is the byte length of ed25519 public keys.
	PublicKeyLen = 32

	// SignatureLen is the byte length of ed25519 signatures.
	SignatureLen = 64
)

// KeyTag is the application-specific label that selects a subset of the keys
// held by the node's keystore. Tags are short fixed-size strings, e.g. "dia!".
type KeyTag [KeyTagLen]byte

// ParseKeyTag converts a 4-character string into a KeyTag.
func ParseKeyTag(s string) (KeyTag, error) {
	var tag KeyTag
	if len(s) != KeyTagLen {
		return tag, fmt.Errorf("invalid key tag %q: must be exactly %d characters", s, KeyTagLen)
	}
	copy(tag[:], s)
	return tag, nil
}

func (t KeyTag) String() string {
	return string(t[:])
}

// PublicKey is an ed25519 public key held by the keystore.
type PublicKey [PublicKeyLen]byte

// BytesToPublicKey converts raw key bytes into a PublicKey.
func BytesToPublicKey(b []byte) (PublicKey, error) {
	var pub PublicKey
	if len(b) != PublicKeyLen {
		return pub, fmt.Errorf("invalid public key length %d, expected %d", len(b), PublicKeyLen)
	}
	copy(pub[:], b)
	return pub, nil
}

func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

func (pk PublicKey) String() string {
	return hex.EncodeToString(pk[:])
}

// Signature is an ed25519 signature produced by the keystore.
type Signature [SignatureLen]byte

// BytesToSignature converts raw signature bytes into a Signature.
func BytesToSignature(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureLen {
		return sig, fmt.Errorf("invalid signature length %d, expected %d", len(b), SignatureLen)
	}
	copy(sig[:], b)
	return sig, nil
}

func (s Signature) Bytes() []byte {
	return s[:]
}

// KeyHandle references a key held by the keystore, without owning the key
// material. Handles are valid for the scheduler invocation that discovered
// them and must not be cached across blocks: the keystore remains the source
// of truth and its contents may change between blocks.
type KeyHandle struct {
	// Tag is the application tag the key was registered under.
	Tag KeyTag

	// Public is the key's public half; it is the reference used for signing
	// requests back to the keystore.
	Public PublicKey

	// Account is the on-chain account derived from the public key. The
	// account pays fees for extrinsics signed with this key.
	Account AccountID
}
