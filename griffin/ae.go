package griffin

import (
	"fmt"

	"github.com/luxfi/zkhash/safe"
)

// Encrypt authenticated-encrypts plaintext under key and nonce (both
// single field elements), driving a Griffin-backed sponge through
// safe.AEPattern: start(ae_pattern(L,1,1)); absorb key; absorb nonce;
// for each block squeeze a keystream element and absorb the plaintext
// block; final squeeze is the tag. Returns ciphertext ++ [tag].
func Encrypt[V any](params *ParameterSet[V], key, nonce V, plaintext []V) ([]V, error) {
	f := params.F
	mLen := len(plaintext)
	pattern := safe.AEPattern(mLen, 1, 1)

	sponge := safe.NewSponge[V](NewChip(params), R)
	if err := sponge.Start(pattern, aeDomainSeparator); err != nil {
		return nil, fmt.Errorf("griffin: ae start: %w", err)
	}
	if err := sponge.Absorb(1, []V{key}); err != nil {
		return nil, fmt.Errorf("griffin: ae absorb key: %w", err)
	}
	if err := sponge.Absorb(1, []V{nonce}); err != nil {
		return nil, fmt.Errorf("griffin: ae absorb nonce: %w", err)
	}

	ciphertext := make([]V, mLen)
	for i, p := range plaintext {
		ks, err := sponge.Squeeze(1)
		if err != nil {
			return nil, fmt.Errorf("griffin: ae squeeze keystream: %w", err)
		}
		ciphertext[i] = f.Add(p, ks[0])
		if err := sponge.Absorb(1, []V{p}); err != nil {
			return nil, fmt.Errorf("griffin: ae absorb plaintext: %w", err)
		}
	}

	tag, err := sponge.Squeeze(1)
	if err != nil {
		return nil, fmt.Errorf("griffin: ae squeeze tag: %w", err)
	}
	if err := sponge.Finish(); err != nil {
		return nil, fmt.Errorf("griffin: ae finish: %w", err)
	}

	return append(ciphertext, tag[0]), nil
}

// Decrypt recovers plaintext from ciphertext (the last element of
// which is the tag) under key and nonce, by re-running the same
// sponge transcript keystream-first and recovering each plaintext
// block as ciphertext-minus-keystream before feeding it back in,
// exactly mirroring Encrypt's absorb order.
func Decrypt[V any](params *ParameterSet[V], key, nonce V, ciphertextAndTag []V) ([]V, error) {
	f := params.F
	if len(ciphertextAndTag) == 0 {
		return nil, fmt.Errorf("griffin: ae decrypt: empty input")
	}
	ciphertext := ciphertextAndTag[:len(ciphertextAndTag)-1]
	expectedTag := ciphertextAndTag[len(ciphertextAndTag)-1]
	mLen := len(ciphertext)

	pattern := safe.AEPattern(mLen, 1, 1)
	sponge := safe.NewSponge[V](NewChip(params), R)
	if err := sponge.Start(pattern, aeDomainSeparator); err != nil {
		return nil, fmt.Errorf("griffin: ae start: %w", err)
	}
	if err := sponge.Absorb(1, []V{key}); err != nil {
		return nil, fmt.Errorf("griffin: ae absorb key: %w", err)
	}
	if err := sponge.Absorb(1, []V{nonce}); err != nil {
		return nil, fmt.Errorf("griffin: ae absorb nonce: %w", err)
	}

	plaintext := make([]V, mLen)
	for i, c := range ciphertext {
		ks, err := sponge.Squeeze(1)
		if err != nil {
			return nil, fmt.Errorf("griffin: ae squeeze keystream: %w", err)
		}
		p := f.Sub(c, ks[0])
		plaintext[i] = p
		if err := sponge.Absorb(1, []V{p}); err != nil {
			return nil, fmt.Errorf("griffin: ae absorb plaintext: %w", err)
		}
	}

	tag, err := sponge.Squeeze(1)
	if err != nil {
		return nil, fmt.Errorf("griffin: ae squeeze tag: %w", err)
	}
	if err := sponge.Finish(); err != nil {
		return nil, fmt.Errorf("griffin: ae finish: %w", err)
	}

	if !f.Equal(tag[0], expectedTag) {
		return nil, safe.ErrTagMismatch
	}
	return plaintext, nil
}
