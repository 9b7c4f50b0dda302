package ciminion

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
)

// Circuit proves knowledge of a master key pair (Key1, Key2) and
// Plaintext such that Ciminion-encrypting Plaintext under (Key1, Key2,
// Nonce) yields the public Ciphertext (blocks plus trailing tag) and
// Nonce.
type Circuit struct {
	Curve ecc.ID `gnark:"-"`

	Key1      frontend.Variable   `gnark:",secret"`
	Key2      frontend.Variable   `gnark:",secret"`
	Plaintext []frontend.Variable `gnark:",secret"`

	Ciphertext []frontend.Variable `gnark:",public"` // ciphertext blocks ++ tag
	Nonce      frontend.Variable   `gnark:",public"`
}

func (c *Circuit) Define(api frontend.API) error {
	params := CircuitParams(api, c.Curve)
	computed, err := Encrypt(params, c.Key1, c.Key2, c.Nonce, c.Plaintext)
	if err != nil {
		return err
	}
	for i, ct := range c.Ciphertext {
		api.AssertIsEqual(computed[i], ct)
	}
	return nil
}
