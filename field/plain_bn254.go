package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// BN254 implements Field[fr.Element] over the BN254 scalar field.
type BN254 struct{}

var _ Field[fr.Element] = BN254{}

func (BN254) Zero() fr.Element { return fr.Element{} }

func (BN254) One() fr.Element {
	var one fr.Element
	one.SetOne()
	return one
}

func (BN254) Add(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Add(&a, &b)
	return out
}

func (BN254) Sub(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Sub(&a, &b)
	return out
}

func (BN254) Mul(a, b fr.Element) fr.Element {
	var out fr.Element
	out.Mul(&a, &b)
	return out
}

func (BN254) Square(a fr.Element) fr.Element {
	var out fr.Element
	out.Square(&a)
	return out
}

func (BN254) FromLimbs(limbs [4]uint64) fr.Element {
	var out fr.Element
	out.SetBigInt(LimbsToBigInt(limbs))
	return out
}

func (BN254) FromTag(tag *big.Int) fr.Element {
	var out fr.Element
	out.SetBigInt(tag)
	return out
}

func (BN254) Equal(a, b fr.Element) bool { return a.Equal(&b) }
