package rescueprime

import (
	"fmt"
	"math/big"

	"github.com/luxfi/zkhash/field"
	"github.com/luxfi/zkhash/safe"
)

// Chip is the Rescue-Prime permutation state, a 3-element array
// over V. It satisfies safe.ChipAPI[V] so a safe.Sponge can drive it
// without knowing whether V is a plain field element or a circuit
// variable.
type Chip[V any] struct {
	params *ParameterSet[V]
	state  [M]V
}

// NewChip builds a Rescue-Prime chip around params. The chip starts
// zeroed; call Init (normally via Sponge.Start) before using it.
func NewChip[V any](params *ParameterSet[V]) *Chip[V] {
	c := &Chip[V]{params: params}
	zero := params.F.Zero()
	for i := range c.state {
		c.state[i] = zero
	}
	return c
}

var _ safe.ChipAPI[struct{}] = (*Chip[struct{}])(nil)

func (c *Chip[V]) Init(tag *big.Int) error {
	f := c.params.F
	c.state[0] = f.Zero()
	c.state[1] = f.FromTag(tag)
	for i := 2; i < M; i++ {
		c.state[i] = f.Zero()
	}
	return nil
}

func (c *Chip[V]) Read() V { return c.state[0] }

func (c *Chip[V]) Add(val V) error {
	f := c.params.F
	c.state[0] = f.Add(c.state[0], val)
	return nil
}

// Permutation runs all N rounds of Rescue-Prime in place:
// forward S-box, MDS+constants, inverse S-box, MDS+constants.
func (c *Chip[V]) Permutation() error {
	f := c.params.F
	for round := 0; round < N; round++ {
		if err := c.sbox(f, c.params.Alpha); err != nil {
			return fmt.Errorf("rescueprime: forward s-box at round %d: %w", round, err)
		}
		c.mdsAndConstants(f, 2*round)

		if err := c.sbox(f, c.params.AlphaInv); err != nil {
			return fmt.Errorf("rescueprime: inverse s-box at round %d: %w", round, err)
		}
		c.mdsAndConstants(f, 2*round+1)
	}
	return nil
}

func (c *Chip[V]) sbox(f field.Field[V], exponent [4]uint64) error {
	for i := range c.state {
		v, err := field.PowByConstant(f, c.state[i], exponent)
		if err != nil {
			return fmt.Errorf("rescueprime: lane %d exponentiation: %w: %w", i, safe.ErrSynthesis, err)
		}
		c.state[i] = v
	}
	return nil
}

// mdsAndConstants multiplies the state by the MDS matrix, reading
// every input lane from a snapshot taken before any lane is
// overwritten, then adds the round constant block rcBlock (each block
// holds M consecutive round constants).
func (c *Chip[V]) mdsAndConstants(f field.Field[V], rcBlock int) {
	snapshot := c.state
	rc := c.params.RoundConstants[rcBlock*M : rcBlock*M+M]

	for i := 0; i < M; i++ {
		acc := f.Zero()
		for j := 0; j < M; j++ {
			acc = f.Add(acc, f.Mul(c.params.MDS[i*M+j], snapshot[j]))
		}
		c.state[i] = f.Add(acc, rc[i])
	}
}
