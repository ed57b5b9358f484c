package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingFixture() PendingExtrinsic {
	return PendingExtrinsic{
		Account: AccountID{1, 2, 3},
		Nonce:   7,
		Call:    []byte(`{"Symbol":"BTC","Price":42}`),
	}
}

// TestSigningPayloadStable verifies that the signing payload is a pure
// function of the extrinsic body.
func TestSigningPayloadStable(t *testing.T) {
	pending := pendingFixture()

	first, err := pending.SigningPayload()
	require.NoError(t, err)
	second, err := pending.SigningPayload()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestSigningPayloadBindsBody verifies that changing any field of the body
// changes the signing payload.
func TestSigningPayloadBindsBody(t *testing.T) {
	base, err := pendingFixture().SigningPayload()
	require.NoError(t, err)

	modified := pendingFixture()
	modified.Nonce++
	payload, err := modified.SigningPayload()
	require.NoError(t, err)
	assert.NotEqual(t, base, payload)

	modified = pendingFixture()
	modified.Account[0]++
	payload, err = modified.SigningPayload()
	require.NoError(t, err)
	assert.NotEqual(t, base, payload)

	modified = pendingFixture()
	modified.Call = append(modified.Call, '!')
	payload, err = modified.SigningPayload()
	require.NoError(t, err)
	assert.NotEqual(t, base, payload)
}

// TestSignedExtrinsicID verifies that the extrinsic identifier covers the
// signature, so the same body signed by different keys yields different IDs.
func TestSignedExtrinsicID(t *testing.T) {
	signed := SignedExtrinsic{
		Body:      pendingFixture(),
		Public:    PublicKey{9},
		Signature: Signature{1},
	}
	other := signed
	other.Signature = Signature{2}

	assert.Equal(t, signed.ID(), signed.ID())
	assert.NotEqual(t, signed.ID(), other.ID())
}
