package field

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// Circuit implements Field[frontend.Variable], turning every
// permutation written against Field[V] into a gnark gadget for free.
// Constants (round constants, MDS entries, the tag) are plain
// frontend.Variable values holding a *big.Int; gnark folds those into
// the linear combinations of the gates that consume them, so they cost
// no witness allocation.
type Circuit struct {
	API frontend.API
}

var _ Field[frontend.Variable] = Circuit{}

func (c Circuit) Zero() frontend.Variable { return 0 }

func (c Circuit) One() frontend.Variable { return 1 }

func (c Circuit) Add(a, b frontend.Variable) frontend.Variable {
	return c.API.Add(a, b)
}

func (c Circuit) Sub(a, b frontend.Variable) frontend.Variable {
	return c.API.Sub(a, b)
}

func (c Circuit) Mul(a, b frontend.Variable) frontend.Variable {
	return c.API.Mul(a, b)
}

func (c Circuit) Square(a frontend.Variable) frontend.Variable {
	return c.API.Mul(a, a)
}

func (c Circuit) FromLimbs(limbs [4]uint64) frontend.Variable {
	return frontend.Variable(LimbsToBigInt(limbs))
}

func (c Circuit) FromTag(tag *big.Int) frontend.Variable {
	return frontend.Variable(new(big.Int).Set(tag))
}

// Equal panics: an in-circuit variable cannot be compared outside a
// constraint. Circuits assert equality via c.API.AssertIsEqual
// instead, never by calling this method.
func (c Circuit) Equal(a, b frontend.Variable) bool {
	panic("field: Circuit.Equal called outside a constraint; use api.AssertIsEqual")
}
