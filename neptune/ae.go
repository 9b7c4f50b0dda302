package neptune

import (
	"fmt"

	"github.com/luxfi/zkhash/safe"
)

// Encrypt authenticated-encrypts plaintext under key and nonce via a
// Neptune-backed sponge, identical in structure to griffin.Encrypt.
func Encrypt[V any](params *ParameterSet[V], key, nonce V, plaintext []V) ([]V, error) {
	f := params.F
	mLen := len(plaintext)
	pattern := safe.AEPattern(mLen, 1, 1)

	sponge := safe.NewSponge[V](NewChip(params), R)
	if err := sponge.Start(pattern, aeDomainSeparator); err != nil {
		return nil, fmt.Errorf("neptune: ae start: %w", err)
	}
	if err := sponge.Absorb(1, []V{key}); err != nil {
		return nil, fmt.Errorf("neptune: ae absorb key: %w", err)
	}
	if err := sponge.Absorb(1, []V{nonce}); err != nil {
		return nil, fmt.Errorf("neptune: ae absorb nonce: %w", err)
	}

	ciphertext := make([]V, mLen)
	for i, p := range plaintext {
		ks, err := sponge.Squeeze(1)
		if err != nil {
			return nil, fmt.Errorf("neptune: ae squeeze keystream: %w", err)
		}
		ciphertext[i] = f.Add(p, ks[0])
		if err := sponge.Absorb(1, []V{p}); err != nil {
			return nil, fmt.Errorf("neptune: ae absorb plaintext: %w", err)
		}
	}

	tag, err := sponge.Squeeze(1)
	if err != nil {
		return nil, fmt.Errorf("neptune: ae squeeze tag: %w", err)
	}
	if err := sponge.Finish(); err != nil {
		return nil, fmt.Errorf("neptune: ae finish: %w", err)
	}

	return append(ciphertext, tag[0]), nil
}

// Decrypt recovers plaintext from ciphertext ++ [tag] under key and
// nonce, mirroring griffin.Decrypt.
func Decrypt[V any](params *ParameterSet[V], key, nonce V, ciphertextAndTag []V) ([]V, error) {
	f := params.F
	if len(ciphertextAndTag) == 0 {
		return nil, fmt.Errorf("neptune: ae decrypt: empty input")
	}
	ciphertext := ciphertextAndTag[:len(ciphertextAndTag)-1]
	expectedTag := ciphertextAndTag[len(ciphertextAndTag)-1]
	mLen := len(ciphertext)

	pattern := safe.AEPattern(mLen, 1, 1)
	sponge := safe.NewSponge[V](NewChip(params), R)
	if err := sponge.Start(pattern, aeDomainSeparator); err != nil {
		return nil, fmt.Errorf("neptune: ae start: %w", err)
	}
	if err := sponge.Absorb(1, []V{key}); err != nil {
		return nil, fmt.Errorf("neptune: ae absorb key: %w", err)
	}
	if err := sponge.Absorb(1, []V{nonce}); err != nil {
		return nil, fmt.Errorf("neptune: ae absorb nonce: %w", err)
	}

	plaintext := make([]V, mLen)
	for i, c := range ciphertext {
		ks, err := sponge.Squeeze(1)
		if err != nil {
			return nil, fmt.Errorf("neptune: ae squeeze keystream: %w", err)
		}
		p := f.Sub(c, ks[0])
		plaintext[i] = p
		if err := sponge.Absorb(1, []V{p}); err != nil {
			return nil, fmt.Errorf("neptune: ae absorb plaintext: %w", err)
		}
	}

	tag, err := sponge.Squeeze(1)
	if err != nil {
		return nil, fmt.Errorf("neptune: ae squeeze tag: %w", err)
	}
	if err := sponge.Finish(); err != nil {
		return nil, fmt.Errorf("neptune: ae finish: %w", err)
	}

	if !f.Equal(tag[0], expectedTag) {
		return nil, safe.ErrTagMismatch
	}
	return plaintext, nil
}
