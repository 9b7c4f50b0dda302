package ciminion

import (
	"fmt"

	"github.com/luxfi/zkhash/field"
	"github.com/luxfi/zkhash/safe"
)

// SubkeyCount returns K, the number of subkeys a message of L field
// blocks requires: L+3 if L is even, L+4 if L is odd.
func SubkeyCount(l int) int {
	if l%2 == 0 {
		return l + 3
	}
	return l + 4
}

// GenKeys derives the subkey schedule for (mk1, mk2): seed
// s = (1, mk1, mk2), apply PC count times, appending s[0] to the
// schedule after each full application.
func GenKeys[V any](params *ParameterSet[V], mk1, mk2 V, count int) []V {
	f := params.F
	s := [3]V{f.One(), mk1, mk2}
	keys := make([]V, count)
	for i := 0; i < count; i++ {
		s = pc(f, params, s)
		keys[i] = s[0]
	}
	return keys
}

// roundFunc applies one Ciminion round to (a,b,c) using round
// constants rc[0..3]:
//
//	tmp = c + a*b + b
//	a'  = c + a*b + rc[2]
//	b'  = a + rc[3]*tmp + rc[0]
//	c'  = tmp + rc[1]
func roundFunc[V any](f field.Field[V], state [3]V, rc []V) [3]V {
	a, b, c := state[0], state[1], state[2]
	ab := f.Mul(a, b)
	tmp := f.Add(c, f.Add(ab, b))

	return [3]V{
		f.Add(c, f.Add(ab, rc[2])),
		f.Add(a, f.Add(f.Mul(rc[3], tmp), rc[0])),
		f.Add(tmp, rc[1]),
	}
}

// pc applies all RPC rounds of the Ciminion permutation to state.
func pc[V any](f field.Field[V], params *ParameterSet[V], state [3]V) [3]V {
	for i := 0; i < RPC; i++ {
		state = roundFunc(f, state, params.RoundConstants[4*i:4*i+4])
	}
	return state
}

// pe applies PE, the tail of RPE rounds shared with PC (round indices
// RPC-RPE..RPC-1), to state. pc and pe are both pure: neither mutates
// its argument's backing state beyond the returned value, so a caller
// can peek at PE(s) without consuming s for its own subsequent steps.
func pe[V any](f field.Field[V], params *ParameterSet[V], state [3]V) [3]V {
	for i := RPC - RPE; i < RPC; i++ {
		state = roundFunc(f, state, params.RoundConstants[4*i:4*i+4])
	}
	return state
}

// authenticate computes the Horner MAC over ciphertext under key,
// folding in the plaintext length l and the seed value t1:
// tag = 0; for c in ct: tag = (tag+c)*key; tag = (tag+l)*key + t1.
func authenticate[V any](f field.Field[V], ciphertext []V, l int, key, t1 V) V {
	tag := f.Zero()
	for _, c := range ciphertext {
		tag = f.Mul(f.Add(tag, c), key)
	}
	lengthElem := f.FromLimbs([4]uint64{uint64(l), 0, 0, 0})
	return f.Add(f.Mul(f.Add(tag, lengthElem), key), t1)
}

// Encrypt authenticated-encrypts message under the master key pair
// (mk1, mk2) and nonce, using a freshly derived subkey schedule sized
// exactly to message's length. Returns ciphertext ++ [tag].
func Encrypt[V any](params *ParameterSet[V], mk1, mk2, nonce V, message []V) ([]V, error) {
	l := len(message)
	keys := GenKeys(params, mk1, mk2, SubkeyCount(l))
	return EncryptWithKeys(params, keys, nonce, message)
}

// EncryptWithKeys is Encrypt against an already-derived subkey
// schedule (e.g. one shared across several messages under the same
// master key). keys must hold at least SubkeyCount(len(message))
// elements; a shorter schedule returns ErrLengthBound rather than
// reading out of bounds.
func EncryptWithKeys[V any](params *ParameterSet[V], keys []V, nonce V, message []V) ([]V, error) {
	f := params.F
	l := len(message)
	required := SubkeyCount(l)
	if len(keys) < required {
		return nil, fmt.Errorf("ciminion: schedule has %d keys, need %d: %w", len(keys), required, safe.ErrLengthBound)
	}

	s := [3]V{nonce, keys[0], keys[1]}
	s = pc(f, params, s)
	t1 := pe(f, params, s)[0]

	ciphertext := make([]V, l)
	for i := 0; i < l; i += 2 {
		s[0] = f.Add(s[0], keys[i+3])
		s[1] = f.Add(s[1], keys[i+2])
		tmp := f.Add(s[2], f.Mul(s[1], s[0]))
		s = [3]V{tmp, s[0], s[1]}

		out := pe(f, params, s)
		ciphertext[i] = f.Add(message[i], out[0])
		if i+1 < l {
			ciphertext[i+1] = f.Add(message[i+1], out[1])
		}
	}

	tag := authenticate(f, ciphertext, l, keys[required-1], t1)
	return append(ciphertext, tag), nil
}

// Decrypt authenticated-decrypts ciphertextAndTag (ciphertext blocks
// followed by the tag) under (mk1, mk2) and nonce, deriving a fresh
// subkey schedule sized to the recovered plaintext length.
func Decrypt[V any](params *ParameterSet[V], mk1, mk2, nonce V, ciphertextAndTag []V) ([]V, error) {
	if len(ciphertextAndTag) == 0 {
		return nil, fmt.Errorf("ciminion: decrypt: empty input")
	}
	l := len(ciphertextAndTag) - 1
	keys := GenKeys(params, mk1, mk2, SubkeyCount(l))
	return DecryptWithKeys(params, keys, nonce, ciphertextAndTag)
}

// DecryptWithKeys is Decrypt against an already-derived subkey
// schedule. The authentication tag is checked against keys[K-1], where
// K = SubkeyCount(l) is derived from the recovered ciphertext length
// l, not the out-of-bounds keys[K] the original reference
// implementation's `ad` routine indexed.
func DecryptWithKeys[V any](params *ParameterSet[V], keys []V, nonce V, ciphertextAndTag []V) ([]V, error) {
	f := params.F
	if len(ciphertextAndTag) == 0 {
		return nil, fmt.Errorf("ciminion: decrypt: empty input")
	}
	ciphertext := ciphertextAndTag[:len(ciphertextAndTag)-1]
	expectedTag := ciphertextAndTag[len(ciphertextAndTag)-1]
	l := len(ciphertext)

	required := SubkeyCount(l)
	if len(keys) < required {
		return nil, fmt.Errorf("ciminion: schedule has %d keys, need %d: %w", len(keys), required, safe.ErrLengthBound)
	}

	s := [3]V{nonce, keys[0], keys[1]}
	s = pc(f, params, s)
	t1 := pe(f, params, s)[0]

	plaintext := make([]V, l)
	for i := 0; i < l; i += 2 {
		s[0] = f.Add(s[0], keys[i+3])
		s[1] = f.Add(s[1], keys[i+2])
		tmp := f.Add(s[2], f.Mul(s[1], s[0]))
		s = [3]V{tmp, s[0], s[1]}

		out := pe(f, params, s)
		plaintext[i] = f.Sub(ciphertext[i], out[0])
		if i+1 < l {
			plaintext[i+1] = f.Sub(ciphertext[i+1], out[1])
		}
	}

	tag := authenticate(f, ciphertext, l, keys[required-1], t1)
	if !f.Equal(tag, expectedTag) {
		return nil, safe.ErrTagMismatch
	}
	return plaintext, nil
}
