package chain

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// IdentifierLen is the byte length of entity identifiers.
const IdentifierLen = 32

// Identifier is the type of chain entity identifiers (block IDs, extrinsic
// IDs). It is the blake2b-256 digest of the entity's canonical encoding.
type Identifier [IdentifierLen]byte

// ZeroID is the lowest value in the 32-byte ID space.
var ZeroID = Identifier{}

// canonicalEncMode encodes entities deterministically so that identifiers
// and signing payloads are stable across processes.
var canonicalEncMode cbor.EncMode

func init() {
	var err error
	canonicalEncMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("could not create canonical cbor encoder: %v", err))
	}
}

// CanonicalEncoding returns the deterministic encoding of the given entity.
func CanonicalEncoding(entity interface{}) ([]byte, error) {
	enc, err := canonicalEncMode.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("could not encode entity: %w", err)
	}
	return enc, nil
}

// MakeID creates an identifier from the canonical encoding of the entity.
// Encoding failures indicate a programming error (non-encodable entity) and
// cause a panic, mirroring how entity IDs are computed everywhere else.
func MakeID(entity interface{}) Identifier {
	enc, err := CanonicalEncoding(entity)
	if err != nil {
		panic(err)
	}
	return HashToID(enc)
}

// HashToID hashes arbitrary bytes into the identifier space.
func HashToID(data []byte) Identifier {
	return Identifier(blake2b.Sum256(data))
}

// HexStringToIdentifier parses a 64-character hex string into an Identifier.
func HexStringToIdentifier(s string) (Identifier, error) {
	var id Identifier
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("could not decode identifier hex: %w", err)
	}
	if len(b) != IdentifierLen {
		return id, fmt.Errorf("invalid identifier length %d, expected %d", len(b), IdentifierLen)
	}
	copy(id[:], b)
	return id, nil
}

func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}
