package neptune

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
)

// HashCircuit mirrors rescueprime.HashCircuit for the Neptune
// permutation.
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

// AECircuit mirrors griffin.AECircuit for the Neptune permutation.
type AECircuit struct {
	Curve ecc.ID `gnark:"-"`

	Key       frontend.Variable   `gnark:",secret"`
	Plaintext []frontend.Variable `gnark:",secret"`

	Ciphertext []frontend.Variable `gnark:",public"`
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
