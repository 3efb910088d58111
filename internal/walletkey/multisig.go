package walletkey

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// multiSigFlag and ed25519Flag are the scheme tags the address
// derivation embeds: multiSigFlag once at the start of the serialized
// group, ed25519Flag ahead of each public key.
const (
	multiSigFlag = byte(0x03)
	ed25519Flag  = byte(0x00)
)

var (
	ErrThresholdExceedsWeights = errors.New("walletkey: multisig threshold exceeds the sum of signer weights")
	ErrNoPublicKeys            = errors.New("walletkey: multisig requires at least one public key")
	ErrWeightsLengthMismatch   = errors.New("walletkey: weights length must match public key count")
)

// MultisigAddress derives the on-chain address for a weighted
// multisig group from base64-encoded Ed25519 public keys, their
// weights and the signing threshold. The address is the Blake2b-256
// digest of the scheme flag, the threshold and each (flag, key,
// weight) triple in order.
func MultisigAddress(pubkeysB64 []string, weights []uint8, threshold uint16) (string, error) {
	if len(pubkeysB64) == 0 {
		return "", ErrNoPublicKeys
	}
	if len(weights) != len(pubkeysB64) {
		return "", ErrWeightsLengthMismatch
	}
	var total uint32
	for _, w := range weights {
		total += uint32(w)
	}
	if uint32(threshold) > total {
		return "", ErrThresholdExceedsWeights
	}

	buf := make([]byte, 0, 1+2+len(pubkeysB64)*(1+32+1))
	buf = append(buf, multiSigFlag)
	thresholdLE := make([]byte, 2)
	binary.LittleEndian.PutUint16(thresholdLE, threshold)
	buf = append(buf, thresholdLE...)

	for i, pkB64 := range pubkeysB64 {
		pk, err := base64.StdEncoding.DecodeString(pkB64)
		if err != nil {
			return "", fmt.Errorf("walletkey: decode public key %d: %w", i, err)
		}
		buf = append(buf, ed25519Flag)
		buf = append(buf, pk...)
		buf = append(buf, weights[i])
	}

	digest := blake2b.Sum256(buf)
	return "0x" + hex.EncodeToString(digest[:]), nil
}
