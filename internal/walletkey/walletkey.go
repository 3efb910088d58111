// Package walletkey validates and derives the feeder's signing key
// material: a BIP-39 mnemonic or a raw base64 private key, sourced in
// priority order from an interactive prompt, the environment, and CLI
// flags.
package walletkey

import (
	"bufio"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

var (
	ErrInvalidMnemonic = errors.New("walletkey: mnemonic failed BIP-39 checksum validation")
	ErrInvalidKey      = errors.New("walletkey: base64 key must decode to 33 bytes with a leading zero byte")
	ErrNoCredentials   = errors.New("walletkey: no key or mnemonic provided by any source")
)

// Credentials holds whichever of the two accepted key forms was
// supplied; exactly one is expected to be non-empty by the time
// Derive is called.
type Credentials struct {
	Key      string
	Mnemonic string
}

// Resolve layers interactive, environment and flag-sourced credentials
// in increasing priority: a later, non-empty source overwrites an
// earlier one. This matches the documented resolution order —
// interactive prompt, then environment, then CLI flags.
func Resolve(interactive, env, flag Credentials) Credentials {
	out := interactive
	if env.Key != "" {
		out.Key = env.Key
	}
	if env.Mnemonic != "" {
		out.Mnemonic = env.Mnemonic
	}
	if flag.Key != "" {
		out.Key = flag.Key
	}
	if flag.Mnemonic != "" {
		out.Mnemonic = flag.Mnemonic
	}
	return out
}

// ValidateMnemonic reports whether phrase is a well-formed BIP-39
// English mnemonic.
func ValidateMnemonic(phrase string) error {
	if !bip39.IsMnemonicValid(strings.TrimSpace(phrase)) {
		return ErrInvalidMnemonic
	}
	return nil
}

// ValidateBase64Key reports whether s decodes to the expected 33-byte
// shape: a leading zero byte (the Ed25519 scheme flag) followed by a
// 32-byte seed.
func ValidateBase64Key(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(raw) != 33 || raw[0] != 0x00 {
		return nil, ErrInvalidKey
	}
	return raw, nil
}

// Derive produces an Ed25519 private key from whichever credential is
// set, preferring the mnemonic when both happen to be present.
func Derive(c Credentials) (ed25519.PrivateKey, error) {
	if c.Mnemonic != "" {
		if err := ValidateMnemonic(c.Mnemonic); err != nil {
			return nil, err
		}
		seed := bip39.NewSeed(strings.TrimSpace(c.Mnemonic), "")
		return ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize]), nil
	}
	if c.Key != "" {
		raw, err := ValidateBase64Key(c.Key)
		if err != nil {
			return nil, err
		}
		return ed25519.NewKeyFromSeed(raw[1:]), nil
	}
	return nil, ErrNoCredentials
}

// PromptInteractive reads a key or mnemonic from r, accepting either
// form on one line, matching the startup prompt the feeder offers
// before falling back to environment and flag sources.
func PromptInteractive(r io.Reader) Credentials {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return Credentials{}
	}
	line := strings.TrimSpace(scanner.Text())
	if line == "" {
		return Credentials{}
	}
	if _, err := ValidateBase64Key(line); err == nil {
		return Credentials{Key: line}
	}
	return Credentials{Mnemonic: line}
}
