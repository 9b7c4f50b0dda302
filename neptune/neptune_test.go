package neptune

import (
	"math/big"
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
	"github.com/luxfi/zkhash/proof"
)

func TestHashDifferentMessagesDiffer(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "neptune:hash-distinct")
	a := stream.NextN(4)
	b := stream.NextN(4)

	da, err := Hash(params, a, 1)
	require.NoError(t, err)
	db, err := Hash(params, b, 1)
	require.NoError(t, err)
	require.False(t, da[0].Equal(&db[0]))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "neptune:ae-roundtrip")
	key, nonce := stream.Next(), stream.Next()
	plaintext := stream.NextN(6)

	ct, err := Encrypt(params, key, nonce, plaintext)
	require.NoError(t, err)

	recovered, err := Decrypt(params, key, nonce, ct)
	require.NoError(t, err)
	for i := range plaintext {
		require.True(t, plaintext[i].Equal(&recovered[i]))
	}
}

// TestPlainCircuitHashAgreement is invariant 1 for Neptune's hash mode.
func TestPlainCircuitHashAgreement(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "neptune:hash-agreement")

	properties := gopter.NewProperties(nil)
	properties.Property("plain and circuit Neptune hashes agree", prop.ForAll(
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

			circuit := &HashCircuit{Curve: ecc.BN254, Message: make([]frontend.Variable, mLen), Digest: make([]frontend.Variable, 1)}
			assignment := &HashCircuit{Curve: ecc.BN254, Message: msgVars, Digest: []frontend.Variable{digest[0].String()}}

			assert := gnarktest.NewAssert(t)
			assert.SolvingSucceeded(circuit, assignment, gnarktest.WithBackends(backend.GROTH16), gnarktest.WithCurves(ecc.BN254))
			return true
		},
		gen.IntRange(1, 3),
	))
	properties.TestingRun(t)
}

// TestPlainCircuitAEAgreement is invariant 1 for Neptune's AE mode.
func TestPlainCircuitAEAgreement(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "neptune:ae-circuit-agreement")

	properties := gopter.NewProperties(nil)
	properties.Property("plain and circuit Neptune AE agree", prop.ForAll(
		func(l int) bool {
			key, nonce := stream.Next(), stream.Next()
			plaintext := stream.NextN(l)

			ct, err := Encrypt(params, key, nonce, plaintext)
			if err != nil {
				return false
			}

			plaintextVars := make([]frontend.Variable, l)
			for i, p := range plaintext {
				plaintextVars[i] = p.String()
			}
			ciphertextVars := make([]frontend.Variable, len(ct))
			for i, c := range ct {
				ciphertextVars[i] = c.String()
			}

			circuit := &AECircuit{
				Curve:      ecc.BN254,
				Plaintext:  make([]frontend.Variable, l),
				Ciphertext: make([]frontend.Variable, len(ct)),
			}
			assignment := &AECircuit{
				Curve:      ecc.BN254,
				Key:        key.String(),
				Plaintext:  plaintextVars,
				Ciphertext: ciphertextVars,
				Nonce:      nonce.String(),
			}

			assert := gnarktest.NewAssert(t)
			assert.SolvingSucceeded(circuit, assignment, gnarktest.WithBackends(backend.GROTH16), gnarktest.WithCurves(ecc.BN254))
			return true
		},
		gen.IntRange(1, 3),
	))
	properties.TestingRun(t)
}

// TestAEProofRejectsBitFlippedNonce is scenario S4: Neptune AE with
// L = 1, same shape as Griffin's S3. Flipping one bit of n in the
// public input must make the verifier reject.
func TestAEProofRejectsBitFlippedNonce(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "neptune:ae-proof-reject")
	key, nonce := stream.Next(), stream.Next()
	plaintext := stream.NextN(1)

	ct, err := Encrypt(params, key, nonce, plaintext)
	require.NoError(t, err)

	flippedBig := nonce.BigInt(new(big.Int))
	flippedBig.Xor(flippedBig, big.NewInt(1))
	var flippedNonce bn254fr.Element
	flippedNonce.SetBigInt(flippedBig)

	circuit := &AECircuit{
		Curve:      ecc.BN254,
		Plaintext:  make([]frontend.Variable, 1),
		Ciphertext: make([]frontend.Variable, len(ct)),
	}
	assignment := &AECircuit{
		Curve:      ecc.BN254,
		Key:        key.String(),
		Plaintext:  []frontend.Variable{plaintext[0].String()},
		Ciphertext: []frontend.Variable{ct[0].String(), ct[1].String()},
		Nonce:      flippedNonce.String(),
	}

	_, err = proof.Prove(ecc.BN254, circuit, assignment)
	require.Error(t, err)
}

// TestAEProofRoundTrip is the positive counterpart of S4: a proof
// built against the correct witness verifies.
func TestAEProofRoundTrip(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "neptune:ae-proof-roundtrip")
	key, nonce := stream.Next(), stream.Next()
	plaintext := stream.NextN(1)

	ct, err := Encrypt(params, key, nonce, plaintext)
	require.NoError(t, err)

	circuit := &AECircuit{
		Curve:      ecc.BN254,
		Plaintext:  make([]frontend.Variable, 1),
		Ciphertext: make([]frontend.Variable, len(ct)),
	}
	assignment := &AECircuit{
		Curve:      ecc.BN254,
		Key:        key.String(),
		Plaintext:  []frontend.Variable{plaintext[0].String()},
		Ciphertext: []frontend.Variable{ct[0].String(), ct[1].String()},
		Nonce:      nonce.String(),
	}

	_, err = proof.Prove(ecc.BN254, circuit, assignment)
	require.NoError(t, err)
}
