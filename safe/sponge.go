package safe

import (
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"
)

// ChipAPI is the minimal permutation-state facade a Sponge drives. A
// chip owns an array of field elements: lane 0 is the rate
// lane the sponge reads/writes, lane 1 holds the domain tag on init,
// and any remaining lanes are pure capacity never exposed outside the
// chip.
type ChipAPI[V any] interface {
	// Init zeroes the state and writes tag into lane 1. Called with 0
	// by Finish to zeroize the chip before it is released.
	Init(tag *big.Int) error

	// Read returns lane 0.
	Read() V

	// Add accumulates val into lane 0.
	Add(val V) error

	// Permutation applies the chip's fixed permutation in place.
	Permutation() error
}

// Sponge drives a ChipAPI through the SAFE start/absorb/squeeze/finish
// discipline. Rate is fixed at 1 for every chip in this module;
// the type keeps it as a field rather than a constant so a future
// chip that accepts nonzero add/read offsets only needs a wider
// ChipAPI, not a new Sponge implementation.
type Sponge[V any] struct {
	Chip    ChipAPI[V]
	Rate    int
	pattern IOPattern

	absorbPos  int
	squeezePos int
	opCount    int
}

// NewSponge builds a sponge around chip with the given rate. Call
// Start before any Absorb/Squeeze.
func NewSponge[V any](chip ChipAPI[V], rate int) *Sponge[V] {
	return &Sponge[V]{Chip: chip, Rate: rate}
}

// Start computes the pattern's tag, resets the chip and sponge
// position counters, and remembers pattern so later Absorb/Squeeze
// calls can be checked against it.
func (s *Sponge[V]) Start(pattern IOPattern, domainSeparator uint32) error {
	tag := pattern.Tag(domainSeparator)
	s.pattern = pattern
	s.opCount = 0

	if err := s.Chip.Init(tag); err != nil {
		return fmt.Errorf("safe: chip init failed: %w", err)
	}

	s.absorbPos = 0
	s.squeezePos = 0
	return nil
}

// Absorb feeds n field elements into the sponge, permuting whenever
// the rate lane fills up, then checks the step against the declared
// pattern.
func (s *Sponge[V]) Absorb(n uint32, xs []V) error {
	if int(n) != len(xs) {
		return fmt.Errorf("safe: absorb length %d does not match %d elements", n, len(xs))
	}

	for _, x := range xs {
		if s.absorbPos == s.Rate {
			if err := s.Chip.Permutation(); err != nil {
				return fmt.Errorf("safe: permutation failed during absorb: %w", err)
			}
			s.absorbPos = 0
		}
		if s.absorbPos != 0 {
			return fmt.Errorf("safe: add at offset %d outside of rate: %w", s.absorbPos, ErrPatternMismatch)
		}
		if err := s.Chip.Add(x); err != nil {
			return fmt.Errorf("safe: add failed during absorb: %w", err)
		}
		s.absorbPos++
	}

	if err := s.checkStep(Absorb(n)); err != nil {
		return err
	}
	s.squeezePos = s.Rate
	return nil
}

// Squeeze produces n field elements, permuting whenever the rate lane
// is exhausted, then checks the step against the declared pattern.
func (s *Sponge[V]) Squeeze(n uint32) ([]V, error) {
	out := make([]V, 0, n)

	for i := uint32(0); i < n; i++ {
		if s.squeezePos == s.Rate {
			if err := s.Chip.Permutation(); err != nil {
				return nil, fmt.Errorf("safe: permutation failed during squeeze: %w", err)
			}
			s.squeezePos = 0
			s.absorbPos = 0
		}
		out = append(out, s.Chip.Read())
		s.squeezePos++
	}

	if err := s.checkStep(Squeeze(n)); err != nil {
		return nil, err
	}
	return out, nil
}

// Finish zeroizes the chip and asserts that exactly as many steps ran
// as the declared pattern named.
func (s *Sponge[V]) Finish() error {
	if err := s.Chip.Init(new(big.Int)); err != nil {
		return fmt.Errorf("safe: chip zeroize failed: %w", err)
	}
	if s.opCount != s.pattern.Len() {
		log.Error().Int("op_count", s.opCount).Int("pattern_len", s.pattern.Len()).
			Msg("safe: sponge finished with incomplete IOPattern")
		return fmt.Errorf("safe: ran %d of %d declared steps: %w", s.opCount, s.pattern.Len(), ErrPatternMismatch)
	}
	return nil
}

func (s *Sponge[V]) checkStep(got Op) error {
	want, ok := s.pattern.OpAt(s.opCount)
	if !ok || want != got {
		log.Error().Int("step", s.opCount).Interface("declared", want).Interface("got", got).
			Msg("safe: sponge step disagreed with declared IOPattern")
		return fmt.Errorf("safe: step %d: declared %+v, got %+v: %w", s.opCount, want, got, ErrPatternMismatch)
	}
	s.opCount++
	return nil
}
