// Package ciminion implements the Ciminion authenticated-encryption
// primitive: a stateful, non-sponge construction built from two
// related permutations PC and PE (PE is a tail of PC) over a
// 3-element state, keyed by a subkey schedule derived once per master
// key, with a Horner-style MAC over the ciphertext.
package ciminion

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
	// RPC is PC's total round count; RPE is the length of PE's tail
	// of PC (PE = rounds RPC-RPE .. RPC-1 of PC).
	RPC = 6
	RPE = 3

	numRoundConstants = 4 * RPC
)

// ParameterSet is Ciminion's curve-tagged immutable parameter table.
type ParameterSet[V any] struct {
	Curve          ecc.ID
	Version        semver.Version
	F              field.Field[V]
	RoundConstants []V // 4*RPC elements, rc[4i..4i+3] per round i
}

var version = semver.MustParse("1.0.0")

func newParameterSet[V any](curve ecc.ID, f field.Field[V]) *ParameterSet[V] {
	rcLimbs := constgen.Limbs256(curve.String()+":ciminion:rc", numRoundConstants)
	rc := make([]V, numRoundConstants)
	for i, l := range rcLimbs {
		rc[i] = f.FromLimbs(l)
	}
	return &ParameterSet[V]{Curve: curve, Version: version, F: f, RoundConstants: rc}
}

var paramGroup singleflight.Group

// BN254Params returns the Ciminion parameter set over BN254.
// Concurrent calls share one construction through paramGroup; results
// are not cached across calls.
func BN254Params() *ParameterSet[bn254fr.Element] {
	v, _, _ := paramGroup.Do("ciminion:bn254", func() (interface{}, error) {
		return newParameterSet[bn254fr.Element](ecc.BN254, field.BN254{}), nil
	})
	return v.(*ParameterSet[bn254fr.Element])
}

// BLS12381Params returns the Ciminion parameter set over BLS12-381.
// Concurrent calls share one construction through paramGroup; results
// are not cached across calls.
func BLS12381Params() *ParameterSet[bls12381fr.Element] {
	v, _, _ := paramGroup.Do("ciminion:bls12381", func() (interface{}, error) {
		return newParameterSet[bls12381fr.Element](ecc.BLS12_381, field.BLS12381{}), nil
	})
	return v.(*ParameterSet[bls12381fr.Element])
}

// CircuitParams builds the in-circuit Ciminion parameter set for the
// curve api is compiled against.
func CircuitParams(api frontend.API, curve ecc.ID) *ParameterSet[frontend.Variable] {
	return newParameterSet[frontend.Variable](curve, field.Circuit{API: api})
}
