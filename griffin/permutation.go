package griffin

import (
	"fmt"
	"math/big"

	"github.com/luxfi/zkhash/field"
	"github.com/luxfi/zkhash/safe"
)

// Chip is the Griffin permutation state, a 3-element array over V.
type Chip[V any] struct {
	params *ParameterSet[V]
	state  [M]V
}

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

// Permutation applies the initial near-MDS mix, N-1 rounds of
// (non-linear layer, mix+constants), and a final round of (non-linear
// layer, mix without constants).
func (c *Chip[V]) Permutation() error {
	f := c.params.F

	c.mix(f, nil)

	for round := 0; round < N-1; round++ {
		if err := c.nonlinear(f); err != nil {
			return fmt.Errorf("griffin: non-linear layer at round %d: %w", round, err)
		}
		rc := c.params.RoundConstants[round*M : round*M+M]
		c.mix(f, rc)
	}

	if err := c.nonlinear(f); err != nil {
		return fmt.Errorf("griffin: non-linear layer at final round: %w", err)
	}
	c.mix(f, nil)
	return nil
}

// nonlinear applies lane0 <- lane0^(1/alpha), lane1 <- lane1^alpha,
// lane2 <- (lane0+lane1)^2 + alpha*(lane0+lane1) + beta, where the
// right-hand lane0/lane1 are the POST-power values: the L-function
// consumes the already-exponentiated lanes.
func (c *Chip[V]) nonlinear(f field.Field[V]) error {
	l0, err := field.PowByConstant(f, c.state[0], c.params.AlphaInvExp)
	if err != nil {
		return fmt.Errorf("griffin: lane0 exponentiation: %w: %w", safe.ErrSynthesis, err)
	}
	l1, err := field.PowByConstant(f, c.state[1], c.params.AlphaExp)
	if err != nil {
		return fmt.Errorf("griffin: lane1 exponentiation: %w: %w", safe.ErrSynthesis, err)
	}

	sum := f.Add(l0, l1)
	sq := f.Square(sum)
	l2 := f.Add(f.Add(sq, f.Mul(c.params.Alpha, sum)), c.params.Beta)

	c.state[0] = l0
	c.state[1] = l1
	c.state[2] = l2
	return nil
}

// mix applies s = lane0+lane1+lane2; lanei <- lanei + s (+ rc[i] if
// rc is non-nil). With rc == nil this realizes the initial (a+s,
// b+s, c+s) near-MDS map and the constant-free final mix; with rc
// set it realizes an interior round's linear layer.
func (c *Chip[V]) mix(f field.Field[V], rc []V) {
	s := f.Add(f.Add(c.state[0], c.state[1]), c.state[2])
	for i := 0; i < M; i++ {
		v := f.Add(c.state[i], s)
		if rc != nil {
			v = f.Add(v, rc[i])
		}
		c.state[i] = v
	}
}
