// Package field defines the arithmetic capability the rest of zkhash is
// generic over: the same permutation code runs once against plain field
// scalars and once against gnark circuit variables by instantiating
// Field[V] twice, rather than branching on a "mode" flag at run time.
package field

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// Field is the set of operations a permutation needs from its scalar
// type V. It is implemented once for plain field elements (per curve)
// and once for in-circuit variables; every permutation in this module
// is written against Field[V] and never against a concrete type.
type Field[V any] interface {
	Zero() V
	One() V

	Add(a, b V) V
	Sub(a, b V) V
	Mul(a, b V) V
	Square(a V) V

	// FromLimbs reduces a 256-bit value, given as four 64-bit
	// little-endian limbs, into F.
	FromLimbs(limbs [4]uint64) V

	// FromTag embeds a 128-bit SAFE tag into F.
	FromTag(tag *big.Int) V

	// Equal reports whether a and b are the same field element. Only
	// meaningful for plain instantiations: an in-circuit V cannot be
	// branched on outside a constraint, so Circuit's Equal panics if
	// ever called.
	Equal(a, b V) bool
}

// AddChainOp is one step of the square-and-multiply ladder used by
// PowByConstant: Square squares the accumulator in place, Mul
// multiplies the accumulator by the base value x.
type AddChainOp uint8

const (
	OpSquare AddChainOp = iota
	OpMul
)

// PowByConstant raises x to the power described by a 256-bit exponent
// (four 64-bit little-endian limbs), walking the exponent's bits from
// MSB to LSB. It is generic over V so the plain and circuit
// instantiations run the exact same ladder: same number of squarings,
// same positions of the conditional multiplies, which is what keeps
// their outputs, and their cost, in lockstep. It returns an error to
// leave room for Field[V] instantiations whose Mul/Square can fail
// (e.g. a hint-backed emulated field); the concrete fields in this
// module never do.
func PowByConstant[V any](f Field[V], x V, limbs [4]uint64) (V, error) {
	bs := limbsToBitSet(limbs)
	top := int(bs.Len()) - 1

	// Skip leading zero bits so the ladder starts at the highest set bit.
	for top >= 0 && !bs.Test(uint(top)) {
		top--
	}
	if top < 0 {
		return f.One(), nil
	}

	acc := x
	for i := top - 1; i >= 0; i-- {
		acc = f.Square(acc)
		if bs.Test(uint(i)) {
			acc = f.Mul(acc, x)
		}
	}
	return acc, nil
}

// limbsToBitSet decomposes four little-endian 64-bit limbs into a
// 256-bit bitset.BitSet, bit i holding the exponent's 2^i coefficient.
func limbsToBitSet(limbs [4]uint64) *bitset.BitSet {
	bs := bitset.New(256)
	for limbIdx, limb := range limbs {
		for b := 0; b < 64; b++ {
			if (limb>>uint(b))&1 == 1 {
				bs.Set(uint(limbIdx*64 + b))
			}
		}
	}
	return bs
}

// LimbsToBigInt interprets four 64-bit little-endian limbs as an
// unsigned 256-bit big.Int, the representation round-constant and
// exponent tables are stored in.
func LimbsToBigInt(limbs [4]uint64) *big.Int {
	out := new(big.Int)
	for i := 3; i >= 0; i-- {
		out.Lsh(out, 64)
		out.Or(out, new(big.Int).SetUint64(limbs[i]))
	}
	return out
}
