package walletkey

import (
	"crypto/ed25519"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func pubkeyB64(t *testing.T) string {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(pub)
}

func TestMultisigAddressDeterministic(t *testing.T) {
	keys := []string{pubkeyB64(t), pubkeyB64(t), pubkeyB64(t)}
	weights := []uint8{1, 1, 1}

	a1, err := MultisigAddress(keys, weights, 2)
	require.NoError(t, err)
	a2, err := MultisigAddress(keys, weights, 2)
	require.NoError(t, err)
	require.Equal(t, a1, a2)
	require.True(t, len(a1) > 2 && a1[:2] == "0x")
}

func TestMultisigAddressDiffersWithThreshold(t *testing.T) {
	keys := []string{pubkeyB64(t), pubkeyB64(t)}
	weights := []uint8{1, 1}

	a1, err := MultisigAddress(keys, weights, 1)
	require.NoError(t, err)
	a2, err := MultisigAddress(keys, weights, 2)
	require.NoError(t, err)
	require.NotEqual(t, a1, a2)
}

func TestMultisigAddressRejectsThresholdAboveWeightSum(t *testing.T) {
	keys := []string{pubkeyB64(t)}
	weights := []uint8{1}
	_, err := MultisigAddress(keys, weights, 5)
	require.ErrorIs(t, err, ErrThresholdExceedsWeights)
}

func TestMultisigAddressRejectsWeightsMismatch(t *testing.T) {
	keys := []string{pubkeyB64(t), pubkeyB64(t)}
	weights := []uint8{1}
	_, err := MultisigAddress(keys, weights, 1)
	require.ErrorIs(t, err, ErrWeightsLengthMismatch)
}

func TestMultisigAddressRejectsEmptyKeys(t *testing.T) {
	_, err := MultisigAddress(nil, nil, 0)
	require.ErrorIs(t, err, ErrNoPublicKeys)
}
