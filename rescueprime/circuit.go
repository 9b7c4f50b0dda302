package rescueprime

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
)

// HashCircuit proves knowledge of Message such that Hash(Message)
// equals the public Digest, using the same Chip/Sponge code path as
// the plain Hash function, instantiated over frontend.Variable.
//
// Curve is a plain Go field, not a circuit variable: it selects which
// curve-tagged parameter table CircuitParams loads and must be set
// before Define is called (normally to whatever curve frontend.Compile
// is invoked with).
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
