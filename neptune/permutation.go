package neptune

import (
	"fmt"
	"math/big"

	"github.com/luxfi/zkhash/field"
	"github.com/luxfi/zkhash/safe"
)

// Chip is the Neptune permutation state, a 4-element array over V.
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

// Permutation runs NEB external rounds (block 0..3), NI internal
// rounds (block 4..71), then NEE external rounds reusing block
// 68..71 rather than advancing to fresh blocks.
func (c *Chip[V]) Permutation() error {
	f := c.params.F

	for r := 0; r < NEB; r++ {
		c.externalRound(f, r)
	}
	for r := 0; r < NI; r++ {
		if err := c.internalRound(f, NEB+r); err != nil {
			return fmt.Errorf("neptune: internal round %d: %w", r, err)
		}
	}
	for r := 0; r < NEE; r++ {
		c.externalRound(f, NEB+NI-NEE+r)
	}
	return nil
}

// sBox is the 2-input S(x0,x1,gamma) map: t=(x0-x1)^2,
// u=(gamma+x0-2x1-t)^2, y0=2x0+x1+3t+u, y1=x0+3x1+4t+u.
func sBox[V any](f field.Field[V], gamma, x0, x1 V) (y0, y1 V) {
	two := f.Add(f.One(), f.One())
	three := f.Add(two, f.One())
	four := f.Add(two, two)

	t := f.Square(f.Sub(x0, x1))
	u := f.Square(f.Sub(f.Sub(f.Add(gamma, x0), f.Mul(two, x1)), t))

	y0 = f.Add(f.Add(f.Mul(two, x0), x1), f.Add(f.Mul(three, t), u))
	y1 = f.Add(f.Add(x0, f.Mul(three, x1)), f.Add(f.Mul(four, t), u))
	return y0, y1
}

func (c *Chip[V]) externalRound(f field.Field[V], blockIdx int) {
	y0, y1 := sBox(f, c.params.Gamma, c.state[0], c.state[1])
	y2, y3 := sBox(f, c.params.Gamma, c.state[2], c.state[3])

	two := f.Add(f.One(), f.One())
	rc := c.params.RoundConstants[blockIdx*M : blockIdx*M+M]

	c.state[0] = f.Add(f.Add(f.Mul(two, y0), y2), rc[0])
	c.state[1] = f.Add(f.Add(y1, f.Mul(two, y3)), rc[1])
	c.state[2] = f.Add(f.Add(y0, f.Mul(two, y2)), rc[2])
	c.state[3] = f.Add(f.Add(f.Mul(two, y1), y3), rc[3])
}

func (c *Chip[V]) internalRound(f field.Field[V], blockIdx int) error {
	lane0, err := field.PowByConstant(f, c.state[0], c.params.D)
	if err != nil {
		return fmt.Errorf("neptune: lane0 power map: %w: %w", safe.ErrSynthesis, err)
	}

	snapshot := [M]V{lane0, c.state[1], c.state[2], c.state[3]}
	s := f.Add(f.Add(snapshot[0], snapshot[1]), f.Add(snapshot[2], snapshot[3]))
	rc := c.params.RoundConstants[blockIdx*M : blockIdx*M+M]

	for i := 0; i < M; i++ {
		v := f.Add(f.Mul(snapshot[i], c.params.MatInternal[i]), f.Sub(s, snapshot[i]))
		c.state[i] = f.Add(v, rc[i])
	}
	return nil
}
