package griffin

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

func TestEncryptDecryptRoundTrip(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "griffin:ae-roundtrip")
	key, nonce := stream.Next(), stream.Next()
	plaintext := stream.NextN(5)

	ct, err := Encrypt(params, key, nonce, plaintext)
	require.NoError(t, err)
	require.Len(t, ct, len(plaintext)+1)

	recovered, err := Decrypt(params, key, nonce, ct)
	require.NoError(t, err)
	require.Len(t, recovered, len(plaintext))
	for i := range plaintext {
		require.True(t, plaintext[i].Equal(&recovered[i]))
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "griffin:ae-tamper")
	key, nonce := stream.Next(), stream.Next()
	plaintext := stream.NextN(3)

	ct, err := Encrypt(params, key, nonce, plaintext)
	require.NoError(t, err)

	tampered := make([]bn254fr.Element, len(ct))
	copy(tampered, ct)
	tampered[0] = field.BN254{}.Add(tampered[0], field.BN254{}.One())

	_, err = Decrypt(params, key, nonce, tampered)
	require.Error(t, err)
}

// TestPlainCircuitHashAgreement is invariant 1 for Griffin's hash mode.
func TestPlainCircuitHashAgreement(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "griffin:hash-agreement")

	properties := gopter.NewProperties(nil)
	properties.Property("plain and circuit Griffin hashes agree", prop.ForAll(
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
		gen.IntRange(1, 4),
	))
	properties.TestingRun(t)
}

// TestPlainCircuitAEAgreement is invariant 1 for Griffin's AE mode: the
// plain and circuit encryptions agree for a range of message lengths.
func TestPlainCircuitAEAgreement(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "griffin:ae-circuit-agreement")

	properties := gopter.NewProperties(nil)
	properties.Property("plain and circuit Griffin AE agree", prop.ForAll(
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
		gen.IntRange(1, 4),
	))
	properties.TestingRun(t)
}

// TestAEProofRoundTrip is scenario S3: Griffin AE with L = 1, public
// input order [ct[0], ct[1], n]. A proof built against the correct
// witness verifies.
func TestAEProofRoundTrip(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "griffin:ae-proof-roundtrip")
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

// TestAEProofRejectsBitFlippedNonce flips one bit of the public nonce
// and expects the proof to fail rather than verify.
func TestAEProofRejectsBitFlippedNonce(t *testing.T) {
	params := BN254Params()
	stream := testvec.NewStream[bn254fr.Element](field.BN254{}, testvec.DefaultSeed, "griffin:ae-proof-reject")
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
