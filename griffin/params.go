// Package griffin implements the Griffin permutation: a
// non-linear layer mixing an alpha power, its inverse power, and a
// quadratic L-function, followed by a near-MDS affine mix.
package griffin

import (
	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc"
	bls12381fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	"golang.org/x/sync/singleflight"

	"github.com/luxfi/zkhash/field"
	"github.com/luxfi/zkhash/internal/constgen"
)

const (
	// M is the state width.
	M = 3
	// N is the number of rounds.
	N = 12
	// R is the sponge rate.
	R = 1

	// numRoundConstants is 3*(N-1): the final round applies the
	// non-linear layer and the mix but carries no round constants.
	numRoundConstants = 3 * (N - 1)
)

var (
	// alphaExp is lane1's forward power exponent, the small alpha
	// shared with Rescue-Prime's S-box convention.
	alphaExp = [4]uint64{5, 0, 0, 0}
	// alphaInvExp is lane0's paired inverse exponent, a large
	// 256-bit value like Rescue-Prime's alphaInv.
	alphaInvExp = constgen.Limbs256("griffin:alpha_inv_exp", 1)[0]
)

var version = semver.MustParse("1.0.0")

// ParameterSet is Griffin's curve-tagged immutable parameter table:
// 3*(N-1) round constants plus the two additive L-function constants
// alpha and beta, and the pair of exponents (1/alpha for lane0, alpha
// for lane1).
type ParameterSet[V any] struct {
	Curve          ecc.ID
	Version        semver.Version
	F              field.Field[V]
	RoundConstants []V
	Alpha          V // additive L-function constant
	Beta           V // additive L-function constant
	AlphaExp       [4]uint64 // lane1's forward power exponent
	AlphaInvExp    [4]uint64 // lane0's inverse power exponent
}

func newParameterSet[V any](curve ecc.ID, f field.Field[V]) *ParameterSet[V] {
	rcLimbs := constgen.Limbs256(curve.String()+":griffin:rc", numRoundConstants)
	abLimbs := constgen.Limbs256(curve.String()+":griffin:alpha_beta", 2)

	rc := make([]V, numRoundConstants)
	for i, l := range rcLimbs {
		rc[i] = f.FromLimbs(l)
	}

	return &ParameterSet[V]{
		Curve:          curve,
		Version:        version,
		F:              f,
		RoundConstants: rc,
		Alpha:          f.FromLimbs(abLimbs[0]),
		Beta:           f.FromLimbs(abLimbs[1]),
		AlphaExp:       alphaExp,
		AlphaInvExp:    alphaInvExp,
	}
}

var paramGroup singleflight.Group

// BN254Params returns the Griffin parameter set over BN254. Concurrent
// calls share one construction through paramGroup; results are not
// cached across calls.
func BN254Params() *ParameterSet[bn254fr.Element] {
	v, _, _ := paramGroup.Do("griffin:bn254", func() (interface{}, error) {
		return newParameterSet[bn254fr.Element](ecc.BN254, field.BN254{}), nil
	})
	return v.(*ParameterSet[bn254fr.Element])
}

// BLS12381Params returns the Griffin parameter set over BLS12-381.
// Concurrent calls share one construction through paramGroup; results
// are not cached across calls.
func BLS12381Params() *ParameterSet[bls12381fr.Element] {
	v, _, _ := paramGroup.Do("griffin:bls12381", func() (interface{}, error) {
		return newParameterSet[bls12381fr.Element](ecc.BLS12_381, field.BLS12381{}), nil
	})
	return v.(*ParameterSet[bls12381fr.Element])
}

// CircuitParams builds the in-circuit Griffin parameter set for the
// curve api is compiled against.
func CircuitParams(api frontend.API, curve ecc.ID) *ParameterSet[frontend.Variable] {
	return newParameterSet[frontend.Variable](curve, field.Circuit{API: api})
}
