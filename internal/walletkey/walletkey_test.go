package walletkey

import (
	"crypto/ed25519"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

func validMnemonic(t *testing.T) string {
	t.Helper()
	entropy := make([]byte, 16)
	m, err := bip39.NewMnemonic(entropy, nil)
	require.NoError(t, err)
	return m
}

func validBase64Key(t *testing.T) string {
	t.Helper()
	raw := make([]byte, 33)
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	copy(raw[1:], priv.Seed())
	return base64.StdEncoding.EncodeToString(raw)
}

func TestValidateMnemonicAcceptsWellFormedPhrase(t *testing.T) {
	require.NoError(t, ValidateMnemonic(validMnemonic(t)))
}

func TestValidateMnemonicRejectsGarbage(t *testing.T) {
	require.ErrorIs(t, ValidateMnemonic("not a real mnemonic phrase at all"), ErrInvalidMnemonic)
}

func TestValidateBase64KeyAcceptsWellFormedKey(t *testing.T) {
	raw, err := ValidateBase64Key(validBase64Key(t))
	require.NoError(t, err)
	require.Len(t, raw, 33)
	require.Equal(t, byte(0x00), raw[0])
}

func TestValidateBase64KeyRejectsWrongLength(t *testing.T) {
	short := base64.StdEncoding.EncodeToString([]byte{0, 1, 2, 3})
	_, err := ValidateBase64Key(short)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestValidateBase64KeyRejectsNonEd25519Flag(t *testing.T) {
	raw := make([]byte, 33)
	raw[0] = 0x01
	_, err := ValidateBase64Key(base64.StdEncoding.EncodeToString(raw))
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestDerivePrefersMnemonicOverKey(t *testing.T) {
	mnemonic := validMnemonic(t)
	c := Credentials{Mnemonic: mnemonic, Key: validBase64Key(t)}
	priv, err := Derive(c)
	require.NoError(t, err)
	require.Len(t, priv, ed25519.PrivateKeySize)

	fromMnemonic, err := Derive(Credentials{Mnemonic: mnemonic})
	require.NoError(t, err)
	require.Equal(t, fromMnemonic, priv)
}

func TestDeriveFromKeyAlone(t *testing.T) {
	c := Credentials{Key: validBase64Key(t)}
	priv, err := Derive(c)
	require.NoError(t, err)
	require.Len(t, priv, ed25519.PrivateKeySize)
}

func TestDeriveFailsWithNoCredentials(t *testing.T) {
	_, err := Derive(Credentials{})
	require.ErrorIs(t, err, ErrNoCredentials)
}

func TestResolvePrefersLaterSourcesWhenNonEmpty(t *testing.T) {
	interactive := Credentials{Mnemonic: "interactive-mnemonic"}
	env := Credentials{Key: "env-key"}
	flag := Credentials{Mnemonic: "flag-mnemonic"}

	got := Resolve(interactive, env, flag)
	require.Equal(t, "env-key", got.Key)
	require.Equal(t, "flag-mnemonic", got.Mnemonic)
}

func TestResolveFallsBackToInteractiveWhenOthersEmpty(t *testing.T) {
	interactive := Credentials{Key: "only-interactive"}
	got := Resolve(interactive, Credentials{}, Credentials{})
	require.Equal(t, "only-interactive", got.Key)
}

func TestPromptInteractiveRecognisesKeyVsMnemonic(t *testing.T) {
	key := validBase64Key(t)
	got := PromptInteractive(strings.NewReader(key + "\n"))
	require.Equal(t, key, got.Key)

	mnemonic := validMnemonic(t)
	got = PromptInteractive(strings.NewReader(mnemonic + "\n"))
	require.Equal(t, mnemonic, got.Mnemonic)
}

func TestPromptInteractiveEmptyInput(t *testing.T) {
	got := PromptInteractive(strings.NewReader(""))
	require.Equal(t, Credentials{}, got)
}
