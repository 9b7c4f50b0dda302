package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// BLS12381 implements Field[fr.Element] over the BLS12-381 scalar
// field, the curve the original reference implementation targets.
type BLS12381 struct{}

var _ Field[fr.Element] = BLS12381{}

func (BLS12381) Zero() fr.Element { return fr.Element{} }

func (BLS12381) One() fr.Element {
	var one fr.Element
	one.SetOne()
	return one
}

func (BLS12381) Add(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Add(&a, &b)
	return out
}

func (BLS12381) Sub(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Sub(&a, &b)
	return out
}

func (BLS12381) Mul(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Mul(&a, &b)
	return out
}

func (BLS12381) Square(a fr.Element) fr.Element {
	var out fr.Element
	out.Square(&a)
	return out
}

func (BLS12381) FromLimbs(limbs [4]uint64) fr.Element {
	var out fr.Element
	out.SetBigInt(LimbsToBigInt(limbs))
	return out
}

func (BLS12381) FromTag(tag *big.Int) fr.Element {
	var out fr.Element
	out.SetBigInt(tag)
	return out
}

func (BLS12381) Equal(a, b fr.Element) bool { return a.Equal(&b) }
