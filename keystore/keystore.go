// Package keystore provides a tagged ed25519 keystore implementing the
// narrow discovery and signing interface consumed by the offchain worker.
// Keys are registered under a 4-character application tag; the worker only
// ever sees handles, never private key material.
package keystore

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/rs/zerolog"

	"github.com/oraclenet/offchain-worker/model/chain"
	"github.com/oraclenet/offchain-worker/module"
)

// KeyFileExt is the extension of key files recognized by LoadDir. A key file
// is named <tag>_<name>.key and contains the hex-encoded 64-byte ed25519
// private key.
const KeyFileExt = ".key"

// ErrKeyNotFound is returned by Sign when the requested key is not (or no
// longer) held by the keystore.
var ErrKeyNotFound = errors.New("signing key not found in keystore")

type entry struct {
	tag  chain.KeyTag
	priv ed25519.PrivateKey
}

// Keystore is an in-memory tagged ed25519 keystore. It is safe for
// concurrent use; keys may be inserted and removed while the worker is
// discovering and signing.
type Keystore struct {
	mu   sync.RWMutex
	keys map[chain.PublicKey]entry
}

var _ module.Keystore = (*Keystore)(nil)

// New returns an empty keystore.
func New() *Keystore {
	return &Keystore{
		keys: make(map[chain.PublicKey]entry),
	}
}

// LoadDir loads all key files from the given directory into a new keystore.
// Files that fail to parse are skipped and reported in the aggregated error
// alongside the (possibly partially populated) keystore, so one corrupt file
// does not take down the rest of the keys.
func LoadDir(log zerolog.Logger, dir string) (*Keystore, error) {
	ks := New()

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read keystore directory %s: %w", dir, err)
	}

	var loadErr *multierror.Error
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), KeyFileExt) {
			continue
		}
		tag, priv, err := readKeyFile(filepath.Join(dir, f.Name()))
		if err != nil {
			loadErr = multierror.Append(loadErr, fmt.Errorf("key file %s: %w", f.Name(), err))
			continue
		}
		handle, err := ks.Insert(tag, priv)
		if err != nil {
			loadErr = multierror.Append(loadErr, fmt.Errorf("key file %s: %w", f.Name(), err))
			continue
		}
		log.Info().
			Str("tag", tag.String()).
			Str("account", handle.Account.ShortString()).
			Str("file", f.Name()).
			Msg("loaded signing key")
	}

	return ks, loadErr.ErrorOrNil()
}

// readKeyFile parses one <tag>_<name>.key file into its tag and private key.
func readKeyFile(path string) (chain.KeyTag, ed25519.PrivateKey, error) {
	name := filepath.Base(path)
	base := strings.TrimSuffix(name, KeyFileExt)
	tagStr, _, found := strings.Cut(base, "_")
	if !found {
		return chain.KeyTag{}, nil, fmt.Errorf("file name %q does not match <tag>_<name>%s", name, KeyFileExt)
	}
	tag, err := chain.ParseKeyTag(tagStr)
	if err != nil {
		return chain.KeyTag{}, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return chain.KeyTag{}, nil, fmt.Errorf("failed to open key file: %w", err)
	}
	data = bytes.TrimSpace(data)

	if n := hex.DecodedLen(len(data)); n != ed25519.PrivateKeySize {
		return chain.KeyTag{}, nil, fmt.Errorf("invalid key size %d/%d", n, ed25519.PrivateKeySize)
	}
	priv := make([]byte, ed25519.PrivateKeySize)
	if _, err := hex.Decode(priv, data); err != nil {
		return chain.KeyTag{}, nil, fmt.Errorf("decoding private key: %w", err)
	}

	return tag, ed25519.PrivateKey(priv), nil
}

// Generate creates a new key under the given tag and returns its handle.
func (ks *Keystore) Generate(tag chain.KeyTag) (chain.KeyHandle, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return chain.KeyHandle{}, fmt.Errorf("could not generate key pair: %w", err)
	}
	return ks.Insert(tag, priv)
}

// Insert registers an existing private key under the given tag. The private
// and public halves must be consistent.
func (ks *Keystore) Insert(tag chain.KeyTag, priv ed25519.PrivateKey) (chain.KeyHandle, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return chain.KeyHandle{}, fmt.Errorf("invalid private key length %d, expected %d", len(priv), ed25519.PrivateKeySize)
	}
	keyPair := ed25519.NewKeyFromSeed(priv[:ed25519.SeedSize])
	if !bytes.Equal(keyPair[ed25519.SeedSize:], priv.Public().(ed25519.PublicKey)) {
		return chain.KeyHandle{}, errors.New("private and public key do not match")
	}

	pub, err := chain.BytesToPublicKey(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return chain.KeyHandle{}, err
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.keys[pub] = entry{tag: tag, priv: priv}

	return handle(tag, pub), nil
}

// Remove deletes the key identified by the given public key. Removing a key
// that is not held is a no-op.
func (ks *Keystore) Remove(public chain.PublicKey) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	delete(ks.keys, public)
}

// KeysByTag returns handles for all keys registered under the given tag.
// The order is deterministic (sorted by public key) but callers must not
// rely on it.
func (ks *Keystore) KeysByTag(tag chain.KeyTag) ([]chain.KeyHandle, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	var handles []chain.KeyHandle
	for pub, e := range ks.keys {
		if e.tag == tag {
			handles = append(handles, handle(tag, pub))
		}
	}
	sort.Slice(handles, func(i, j int) bool {
		return bytes.Compare(handles[i].Public[:], handles[j].Public[:]) < 0
	})
	return handles, nil
}

// Sign signs the message with the key identified by the given public key.
// Returns ErrKeyNotFound if the key is not (or no longer) held.
func (ks *Keystore) Sign(public chain.PublicKey, msg []byte) (chain.Signature, error) {
	ks.mu.RLock()
	e, ok := ks.keys[public]
	ks.mu.RUnlock()
	if !ok {
		return chain.Signature{}, ErrKeyNotFound
	}
	return chain.BytesToSignature(ed25519.Sign(e.priv, msg))
}

// Verify reports whether sig is a valid signature of msg by the given public
// key.
func Verify(public chain.PublicKey, msg []byte, sig chain.Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(public.Bytes()), msg, sig.Bytes())
}

func handle(tag chain.KeyTag, pub chain.PublicKey) chain.KeyHandle {
	return chain.KeyHandle{
		Tag:     tag,
		Public:  pub,
		Account: chain.AccountIDFromPublicKey(pub),
	}
}
