package rescueprime

import (
	"fmt"

	"github.com/luxfi/zkhash/safe"
)

// domainSeparator is folded into every Rescue-Prime sponge's tag so
// its transcripts never collide with another primitive's under the
// same parameters.
const domainSeparator uint32 = 0x52505f31 // "RP_1"

// Hash absorbs the mLen elements of msg and squeezes dLen elements of
// digest, driving a fresh Chip through a safe.Sponge under
// safe.HashPattern(mLen, dLen).
func Hash[V any](params *ParameterSet[V], msg []V, dLen int) ([]V, error) {
	mLen := len(msg)
	pattern := safe.HashPattern(mLen, dLen)

	sponge := safe.NewSponge[V](NewChip(params), R)
	if err := sponge.Start(pattern, domainSeparator); err != nil {
		return nil, fmt.Errorf("rescueprime: start: %w", err)
	}
	if mLen > 0 {
		if err := sponge.Absorb(uint32(mLen), msg); err != nil {
			return nil, fmt.Errorf("rescueprime: absorb: %w", err)
		}
	}
	digest, err := sponge.Squeeze(uint32(dLen))
	if err != nil {
		return nil, fmt.Errorf("rescueprime: squeeze: %w", err)
	}
	if err := sponge.Finish(); err != nil {
		return nil, fmt.Errorf("rescueprime: finish: %w", err)
	}
	return digest, nil
}
