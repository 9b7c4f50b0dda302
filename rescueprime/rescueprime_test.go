package rescueprime

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	gnarktest "github.com/consensys/gnark/test"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/zkhash/field"
	"github.com/luxfi/zkhash/internal/testvec"
)

func TestHashDeterministic(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "rescueprime:deterministic")
	msg := stream.NextN(4)

	d1, err := Hash(params, msg, 1)
	require.NoError(t, err)
	d2, err := Hash(params, msg, 1)
	require.NoError(t, err)
	require.True(t, d1[0].Equal(&d2[0]), "hashing the same message twice must agree")
}

func TestHashVaryingLengthsProduceDistinctDigests(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "rescueprime:lengths")
	msg := stream.NextN(6)

	short, err := Hash(params, msg[:3], 1)
	require.NoError(t, err)
	long, err := Hash(params, msg[:6], 1)
	require.NoError(t, err)
	require.False(t, short[0].Equal(&long[0]), "different message lengths must not collide trivially")
}

// TestPlainCircuitAgreement is the Go realization of invariant 1: for
// every message, the plain Hash and the in-circuit HashCircuit agree
// on the digest, checked by asking gnark to solve the circuit with the
// plain result wired in as the public Digest.
func TestPlainCircuitAgreement(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "rescueprime:agreement")

	properties := gopter.NewProperties(nil)
	properties.Property("plain and circuit Rescue-Prime hashes agree", prop.ForAll(
		func(mLen int) bool {
			msg := stream.NextN(mLen)
			digest, err := Hash(params, msg, 1)
			if err != nil {
				return false
			}

			msgVars := make([]frontend.Variable, mLen)
			for i, m := range msg {
				msgVars[i] = m.String()
			}

			circuit := &HashCircuit{
				Curve:   ecc.BN254,
				Message: make([]frontend.Variable, mLen),
				Digest:  make([]frontend.Variable, 1),
			}
			assignment := &HashCircuit{
				Curve:   ecc.BN254,
				Message: msgVars,
				Digest:  []frontend.Variable{digest[0].String()},
			}

			assert := gnarktest.NewAssert(t)
			assert.SolvingSucceeded(circuit, assignment, gnarktest.WithBackends(backend.GROTH16), gnarktest.WithCurves(ecc.BN254))
			return true
		},
		gen.IntRange(1, 5),
	))
	properties.TestingRun(t)
}
