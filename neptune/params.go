// Package neptune implements the Neptune permutation: external
// rounds built from a 2-input S-box and a 4x4 mix, internal rounds
// built from a single-lane power map and a diagonal-plus-rank-1 mix.
package neptune

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
	M = 4
	// R is the sponge rate.
	R = 1

	// NEB, NI, NEE are the external-beginning, internal, and
	// external-end round counts.
	NEB = 4
	NI  = 68
	NEE = 4

	totalRounds       = NEB + NI + NEE // 76
	numRoundConstants = totalRounds * M // 304
)

// ParameterSet is Neptune's curve-tagged immutable parameter table.
type ParameterSet[V any] struct {
	Curve          ecc.ID
	Version        semver.Version
	F              field.Field[V]
	RoundConstants []V // numRoundConstants elements, indexed block*M+i
	Gamma          V
	MatInternal    [4]V // diagonal entries of the internal mix matrix
	D              [4]uint64
}

var version = semver.MustParse("1.0.0")

var dExp = [4]uint64{5, 0, 0, 0}

func newParameterSet[V any](curve ecc.ID, f field.Field[V]) *ParameterSet[V] {
	rcLimbs := constgen.Limbs256(curve.String()+":neptune:rc", numRoundConstants)
	gammaLimbs := constgen.Limbs256(curve.String()+":neptune:gamma", 1)
	diagLimbs := constgen.Limbs256(curve.String()+":neptune:diag", M)

	rc := make([]V, numRoundConstants)
	for i, l := range rcLimbs {
		rc[i] = f.FromLimbs(l)
	}
	var diag [4]V
	for i, l := range diagLimbs {
		diag[i] = f.FromLimbs(l)
	}

	return &ParameterSet[V]{
		Curve:          curve,
		Version:        version,
		F:              f,
		RoundConstants: rc,
		Gamma:          f.FromLimbs(gammaLimbs[0]),
		MatInternal:    diag,
		D:              dExp,
	}
}

var paramGroup singleflight.Group

// BN254Params returns the Neptune parameter set over BN254. Concurrent
// calls share one construction through paramGroup; results are not
// cached across calls.
func BN254Params() *ParameterSet[bn254fr.Element] {
	v, _, _ := paramGroup.Do("neptune:bn254", func() (interface{}, error) {
		return newParameterSet[bn254fr.Element](ecc.BN254, field.BN254{}), nil
	})
	return v.(*ParameterSet[bn254fr.Element])
}

// BLS12381Params returns the Neptune parameter set over BLS12-381.
// Concurrent calls share one construction through paramGroup; results
// are not cached across calls.
func BLS12381Params() *ParameterSet[bls12381fr.Element] {
	v, _, _ := paramGroup.Do("neptune:bls12381", func() (interface{}, error) {
		return newParameterSet[bls12381fr.Element](ecc.BLS12_381, field.BLS12381{}), nil
	})
	return v.(*ParameterSet[bls12381fr.Element])
}

// CircuitParams builds the in-circuit Neptune parameter set for the
// curve api is compiled against.
func CircuitParams(api frontend.API, curve ecc.ID) *ParameterSet[frontend.Variable] {
	return newParameterSet[frontend.Variable](curve, field.Circuit{API: api})
}
