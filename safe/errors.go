package safe

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("...: %w", Err...) at call
// sites so errors.Is keeps matching through the sponge -> driver ->
// circuit call chain.
var (
	// ErrPatternMismatch is returned by Finish when the sequence of
	// absorb/squeeze calls actually made disagreed with the declared
	// IOPattern, or by Absorb/Squeeze when a single step disagrees.
	ErrPatternMismatch = errors.New("safe: sponge call sequence does not match declared IOPattern")

	// ErrSynthesis surfaces a constraint-runtime failure (variable
	// allocation or in-circuit exponentiation).
	ErrSynthesis = errors.New("safe: circuit synthesis failed")

	// ErrTagMismatch is returned by AE decryption (Ciminion, Griffin,
	// Neptune) when the recomputed authentication tag does not match the
	// expected one.
	ErrTagMismatch = errors.New("safe: authentication tag mismatch")

	// ErrLengthBound is returned when a message is longer than a
	// Ciminion chip's precomputed subkey schedule supports.
	ErrLengthBound = errors.New("safe: message exceeds subkey schedule bound")
)
