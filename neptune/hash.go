package neptune

import (
	"fmt"

	"github.com/luxfi/zkhash/safe"
)

const hashDomainSeparator uint32 = 0x4e505431 // "NPT1"
const aeDomainSeparator uint32 = 0x4e504132   // "NPA2"

// Hash absorbs msg and squeezes dLen elements of digest.
func Hash[V any](params *ParameterSet[V], msg []V, dLen int) ([]V, error) {
	mLen := len(msg)
	pattern := safe.HashPattern(mLen, dLen)

	sponge := safe.NewSponge[V](NewChip(params), R)
	if err := sponge.Start(pattern, hashDomainSeparator); err != nil {
		return nil, fmt.Errorf("neptune: start: %w", err)
	}
	if mLen > 0 {
		if err := sponge.Absorb(uint32(mLen), msg); err != nil {
			return nil, fmt.Errorf("neptune: absorb: %w", err)
		}
	}
	digest, err := sponge.Squeeze(uint32(dLen))
	if err != nil {
		return nil, fmt.Errorf("neptune: squeeze: %w", err)
	}
	if err := sponge.Finish(); err != nil {
		return nil, fmt.Errorf("neptune: finish: %w", err)
	}
	return digest, nil
}
