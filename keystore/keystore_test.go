package keystore

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraclenet/offchain-worker/model/chain"
	"github.com/oraclenet/offchain-worker/utils/unittest"
)

func TestGenerateAndSign(t *testing.T) {
	ks := New()

	handle, err := ks.Generate(unittest.TagFixture)
	require.NoError(t, err)
	assert.Equal(t, unittest.TagFixture, handle.Tag)
	assert.Equal(t, chain.AccountIDFromPublicKey(handle.Public), handle.Account)

	msg := []byte("message to sign")
	sig, err := ks.Sign(handle.Public, msg)
	require.NoError(t, err)
	assert.True(t, Verify(handle.Public, msg, sig))
	assert.False(t, Verify(handle.Public, []byte("different message"), sig))
}

func TestKeysByTagFiltersAndSorts(t *testing.T) {
	ks := New()
	otherTag, err := chain.ParseKeyTag("misc")
	require.NoError(t, err)

	var expected []chain.PublicKey
	for i := 0; i < 5; i++ {
		handle, err := ks.Generate(unittest.TagFixture)
		require.NoError(t, err)
		expected = append(expected, handle.Public)
	}
	_, err = ks.Generate(otherTag)
	require.NoError(t, err)

	handles, err := ks.KeysByTag(unittest.TagFixture)
	require.NoError(t, err)
	require.Len(t, handles, 5)
	for _, handle := range handles {
		assert.Equal(t, unittest.TagFixture, handle.Tag)
		assert.Contains(t, expected, handle.Public)
	}

	// discovery order is deterministic
	again, err := ks.KeysByTag(unittest.TagFixture)
	require.NoError(t, err)
	assert.Equal(t, handles, again)

	// unknown tags yield zero keys without error
	unknown, err := chain.ParseKeyTag("xxxx")
	require.NoError(t, err)
	none, err := ks.KeysByTag(unknown)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRemove(t *testing.T) {
	ks := New()
	handle, err := ks.Generate(unittest.TagFixture)
	require.NoError(t, err)

	ks.Remove(handle.Public)

	handles, err := ks.KeysByTag(unittest.TagFixture)
	require.NoError(t, err)
	assert.Empty(t, handles)

	// signing with a removed key fails with the sentinel
	_, err = ks.Sign(handle.Public, []byte("msg"))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestInsertRejectsInconsistentKey(t *testing.T) {
	ks := New()

	_, privA, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	pubB, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	// splice the seed of one key with the public half of another
	forged := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	copy(forged, privA[:ed25519.SeedSize])
	copy(forged[ed25519.SeedSize:], pubB)

	_, err = ks.Insert(unittest.TagFixture, forged)
	assert.Error(t, err)

	_, err = ks.Insert(unittest.TagFixture, privA[:16])
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	writeFile(t, dir, "orcl_alice.key", hex.EncodeToString(priv)+"\n")

	// corrupt and misnamed files are reported but do not abort the load
	writeFile(t, dir, "orcl_corrupt.key", "this is not a hex key")
	writeFile(t, dir, "noseparator.key", hex.EncodeToString(priv))

	// unrelated files and directories are ignored entirely
	writeFile(t, dir, "README.md", "not a key")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.key"), 0o755))

	ks, err := LoadDir(unittest.Logger(), dir)
	require.Error(t, err)
	require.NotNil(t, ks)

	handles, err := ks.KeysByTag(unittest.TagFixture)
	require.NoError(t, err)
	require.Len(t, handles, 1)

	expectedPub, err := chain.BytesToPublicKey(priv.Public().(ed25519.PublicKey))
	require.NoError(t, err)
	assert.Equal(t, expectedPub, handles[0].Public)
}

func TestLoadDirMissing(t *testing.T) {
	ks, err := LoadDir(unittest.Logger(), filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Nil(t, ks)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}
