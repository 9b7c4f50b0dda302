package griffin

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
)

// HashCircuit mirrors rescueprime.HashCircuit for the Griffin
// permutation: Message is witness, Digest is public.
type HashCircuit struct {
	Curve ecc.ID `gnark:"-"`

	Message []frontend.Variable `gnark:",secret"`
	Digest  []frontend.Variable `gnark:",public"`
}

func (c *HashCircuit) Define(api frontend.API) error {
	params := CircuitParams(api, c.Curve)
	digest, err := Hash(params, c.Message, len(c.Digest))
	if err != nil {
		return err
	}
	for i, d := range c.Digest {
		api.AssertIsEqual(digest[i], d)
	}
	return nil
}

// AECircuit proves knowledge of Key and Plaintext such that encrypting
// Plaintext under (Key, Nonce) yields the public Ciphertext (ciphertext
// blocks plus trailing tag) and Nonce: key and plaintext are witness,
// ciphertext blocks and nonce are public.
type AECircuit struct {
	Curve ecc.ID `gnark:"-"`

	Key       frontend.Variable   `gnark:",secret"`
	Plaintext []frontend.Variable `gnark:",secret"`

	Ciphertext []frontend.Variable `gnark:",public"` // ciphertext blocks ++ tag
	Nonce      frontend.Variable   `gnark:",public"`
}

func (c *AECircuit) Define(api frontend.API) error {
	params := CircuitParams(api, c.Curve)
	computed, err := Encrypt(params, c.Key, c.Nonce, c.Plaintext)
	if err != nil {
		return err
	}
	for i, ct := range c.Ciphertext {
		api.AssertIsEqual(computed[i], ct)
	}
	return nil
}
