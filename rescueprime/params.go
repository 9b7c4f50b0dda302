// Package rescueprime implements the Rescue-Prime permutation: a
// substitution-permutation network alternating an alpha power S-box
// with its inverse, each followed by an MDS mix, over a 3-element
// state.
package rescueprime

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
	// M is the permutation's state width.
	M = 3
	// N is the number of full rounds.
	N = 14
	// R is the sponge rate: one lane of the state is exposed to the
	// sponge, the rest is capacity.
	R = 1

	numRoundConstants = 2 * M * N
)

// alpha is Rescue-Prime's forward S-box exponent; alphaInv is its
// paired exponent for the inverse S-box half-round. Both are fixed,
// curve-independent 256-bit exponents walked bit by bit by
// field.PowByConstant.
var (
	alpha    = [4]uint64{5, 0, 0, 0}
	alphaInv = constgen.Limbs256("rescueprime:alpha_inv", 1)[0]
)

// version is bumped whenever the generated round-constant/MDS tables
// change shape or content, so a caller persisting a ParameterSet (e.g.
// via CBOR, see internal/paramgen's Table.WriteTo/ReadFrom) can detect
// staleness.
var version = semver.MustParse("1.0.0")

// ParameterSet is the immutable, curve-tagged table Rescue-Prime loads
// at construction: 2*M*N round constants plus the 3x3 MDS matrix,
// reduced into F once and never mutated afterward.
type ParameterSet[V any] struct {
	Curve          ecc.ID
	Version        semver.Version
	F              field.Field[V]
	RoundConstants []V
	MDS            [9]V
	Alpha          [4]uint64
	AlphaInv       [4]uint64
}

func newParameterSet[V any](curve ecc.ID, f field.Field[V]) *ParameterSet[V] {
	rcLimbs := constgen.Limbs256(curve.String()+":rescueprime:rc", numRoundConstants)
	mdsLimbs := constgen.Limbs256(curve.String()+":rescueprime:mds", 9)

	rc := make([]V, numRoundConstants)
	for i, l := range rcLimbs {
		rc[i] = f.FromLimbs(l)
	}
	var mds [9]V
	for i, l := range mdsLimbs {
		mds[i] = f.FromLimbs(l)
	}

	return &ParameterSet[V]{
		Curve:          curve,
		Version:        version,
		F:              f,
		RoundConstants: rc,
		MDS:            mds,
		Alpha:          alpha,
		AlphaInv:       alphaInv,
	}
}

// paramGroup deduplicates construction of the plain parameter sets:
// concurrent callers for the same curve share one construction instead
// of racing independent allocations. Results are not cached, so a call
// that does not overlap another builds a fresh set. This is unrelated
// to the single-threaded sponge contract.
var paramGroup singleflight.Group

// BN254Params returns the Rescue-Prime parameter set over the BN254
// scalar field, built through paramGroup (not cached across calls).
func BN254Params() *ParameterSet[bn254fr.Element] {
	v, _, _ := paramGroup.Do("rescueprime:bn254", func() (interface{}, error) {
		return newParameterSet[bn254fr.Element](ecc.BN254, field.BN254{}), nil
	})
	return v.(*ParameterSet[bn254fr.Element])
}

// BLS12381Params returns the Rescue-Prime parameter set over the
// BLS12-381 scalar field, the curve the reference implementation this
// package is modeled on targets. It is built through paramGroup (not
// cached across calls).
func BLS12381Params() *ParameterSet[bls12381fr.Element] {
	v, _, _ := paramGroup.Do("rescueprime:bls12381", func() (interface{}, error) {
		return newParameterSet[bls12381fr.Element](ecc.BLS12_381, field.BLS12381{}), nil
	})
	return v.(*ParameterSet[bls12381fr.Element])
}

// CircuitParams builds the in-circuit parameter set for the curve api
// is compiled against. Unlike the plain variants it does not go through
// paramGroup: it closes over api, which is unique to each Define call.
func CircuitParams(api frontend.API, curve ecc.ID) *ParameterSet[frontend.Variable] {
	return newParameterSet[frontend.Variable](curve, field.Circuit{API: api})
}
