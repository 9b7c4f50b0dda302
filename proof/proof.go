// Package proof is a Groth16 harness: compile a circuit,
// generate its proving/verifying keys, and prove/verify an assignment
// against them, timing each phase at debug level.
package proof

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/rs/zerolog/log"
)

// Result carries the artifacts of a single compile-setup-prove-verify
// cycle, alongside how long each phase took.
type Result struct {
	CompileTime time.Duration
	SetupTime   time.Duration
	ProveTime   time.Duration
	VerifyTime  time.Duration
}

// Prove compiles circuit over curve's scalar field, runs Groth16
// setup, proves assignment, and verifies the proof against
// assignment's public inputs. It returns an error on the first phase
// that fails; a successful return means the proof verified.
func Prove(curve ecc.ID, circuit, assignment frontend.Circuit) (*Result, error) {
	var res Result

	t0 := time.Now()
	ccs, err := frontend.Compile(curve.ScalarField(), r1cs.NewBuilder, circuit)
	res.CompileTime = time.Since(t0)
	if err != nil {
		return nil, fmt.Errorf("proof: compile: %w", err)
	}
	log.Debug().Dur("elapsed", res.CompileTime).Int("constraints", ccs.GetNbConstraints()).Msg("proof: circuit compiled")

	t0 = time.Now()
	pk, vk, err := groth16.Setup(ccs)
	res.SetupTime = time.Since(t0)
	if err != nil {
		return nil, fmt.Errorf("proof: setup: %w", err)
	}
	log.Debug().Dur("elapsed", res.SetupTime).Msg("proof: groth16 setup complete")

	witness, err := frontend.NewWitness(assignment, curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("proof: new witness: %w", err)
	}
	publicWitness, err := witness.Public()
	if err != nil {
		return nil, fmt.Errorf("proof: public witness: %w", err)
	}

	t0 = time.Now()
	pf, err := groth16.Prove(ccs, pk, witness)
	res.ProveTime = time.Since(t0)
	if err != nil {
		return nil, fmt.Errorf("proof: prove: %w", err)
	}
	log.Debug().Dur("elapsed", res.ProveTime).Msg("proof: proof generated")

	t0 = time.Now()
	err = groth16.Verify(pf, vk, publicWitness)
	res.VerifyTime = time.Since(t0)
	if err != nil {
		return nil, fmt.Errorf("proof: verify: %w", err)
	}
	log.Debug().Dur("elapsed", res.VerifyTime).Msg("proof: proof verified")

	return &res, nil
}
