package griffin

import (
	"fmt"

	"github.com/luxfi/zkhash/safe"
)

const hashDomainSeparator uint32 = 0x47524631 // "GRF1"
const aeDomainSeparator uint32 = 0x47524132   // "GRA2"

// Hash absorbs msg and squeezes dLen elements of digest.
func Hash[V any](params *ParameterSet[V], msg []V, dLen int) ([]V, error) {
	mLen := len(msg)
	pattern := safe.HashPattern(mLen, dLen)

	sponge := safe.NewSponge[V](NewChip(params), R)
	if err := sponge.Start(pattern, hashDomainSeparator); err != nil {
		return nil, fmt.Errorf("griffin: start: %w", err)
	}
	if mLen > 0 {
		if err := sponge.Absorb(uint32(mLen), msg); err != nil {
			return nil, fmt.Errorf("griffin: absorb: %w", err)
		}
	}
	digest, err := sponge.Squeeze(uint32(dLen))
	if err != nil {
		return nil, fmt.Errorf("griffin: squeeze: %w", err)
	}
	if err := sponge.Finish(); err != nil {
		return nil, fmt.Errorf("griffin: finish: %w", err)
	}
	return digest, nil
}
