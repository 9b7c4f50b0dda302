// Package safe implements the SAFE (Sponge API for Field Elements)
// discipline: a caller declares an absorb/squeeze IOPattern up front,
// the pattern is folded into a 128-bit domain tag, and the sponge
// refuses any call sequence that disagrees with what was declared.
//
// See https://hackmd.io/bHgsH6mMStCVibM_wYvb2w for the SAFE paper this
// package follows.
package safe

import "math/big"

// OpKind distinguishes an absorb step from a squeeze step.
type OpKind uint8

const (
	KindAbsorb OpKind = iota
	KindSqueeze
)

// Op is one step of an IOPattern: absorb or squeeze Count field
// elements. Count must fit in 31 bits, since it is packed into a
// 32-bit op_value alongside a 1-bit absorb/squeeze flag.
type Op struct {
	Kind  OpKind
	Count uint32
}

func Absorb(n uint32) Op  { return Op{Kind: KindAbsorb, Count: n} }
func Squeeze(n uint32) Op { return Op{Kind: KindSqueeze, Count: n} }

func (o Op) matches(other Op) bool { return o.Kind == other.Kind }

func (o Op) combine(other Op) Op { return Op{Kind: o.Kind, Count: o.Count + other.Count} }

// value encodes o into the 32-bit op_value the tag hasher consumes:
// count | (1<<31) for Absorb, count for Squeeze.
func (o Op) value() uint32 {
	if o.Count>>31 != 0 {
		panic("safe: op count does not fit in 31 bits")
	}
	if o.Kind == KindAbsorb {
		return o.Count | (1 << 31)
	}
	return o.Count
}

// IOPattern is an ordered, immutable sequence of absorb/squeeze steps
// declared by a driver before calling Sponge.Start.
type IOPattern struct {
	ops []Op
}

// NewIOPattern builds a pattern from a literal op sequence.
func NewIOPattern(ops ...Op) IOPattern {
	out := make([]Op, len(ops))
	copy(out, ops)
	return IOPattern{ops: out}
}

// HashPattern is the IOPattern for a plain hash of mLen blocks
// squeezing dLen elements of digest.
func HashPattern(mLen, dLen int) IOPattern {
	return NewIOPattern(Absorb(uint32(mLen)), Squeeze(uint32(dLen)))
}

// AEPattern is the IOPattern for authenticated encryption of mLen
// plaintext blocks under a kLen-element key and an nLen-element nonce:
// absorb key, absorb nonce, then mLen repetitions of (squeeze
// keystream block, absorb the corresponding plaintext block), and a
// final squeeze for the tag.
func AEPattern(mLen, kLen, nLen int) IOPattern {
	ops := make([]Op, 0, 2+2*mLen+1)
	ops = append(ops, Absorb(uint32(kLen)), Absorb(uint32(nLen)))
	for i := 0; i < mLen; i++ {
		ops = append(ops, Squeeze(1), Absorb(1))
	}
	ops = append(ops, Squeeze(1))
	return IOPattern{ops: ops}
}

func (p IOPattern) OpAt(index int) (Op, bool) {
	if index < 0 || index >= len(p.ops) {
		return Op{}, false
	}
	return p.ops[index], true
}

func (p IOPattern) Len() int { return len(p.ops) }

// hasherModulus is X = 2^128 - 159, a 128-bit prime per
// https://primes.utm.edu/lists/2small/100bit.html.
var hasherModulus = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(159))

var mod128 = new(big.Int).Lsh(big.NewInt(1), 128)

// tagHasher accumulates a multilinear-style digest over 128-bit
// modular arithmetic: x_i <- x_i * X (mod 2^128); state <- state +
// x_i * a (mod 2^128).
type tagHasher struct {
	xi    *big.Int
	state *big.Int
	tmp   big.Int
}

func newTagHasher() *tagHasher {
	return &tagHasher{xi: big.NewInt(1), state: new(big.Int)}
}

func (h *tagHasher) update(a uint32) {
	h.xi.Mul(h.xi, hasherModulus)
	h.xi.Mod(h.xi, mod128)

	h.tmp.Mul(h.xi, big.NewInt(int64(a)))
	h.state.Add(h.state, &h.tmp)
	h.state.Mod(h.state, mod128)
}

// Tag folds the pattern's coalesced normal form and a 32-bit domain
// separator into a 128-bit tag. Adjacent ops of the same kind are
// summed together (Absorb and Squeeze never merge) before being fed
// to the hasher, so two different coalescings of the same logical
// pattern produce the same tag.
func (p IOPattern) Tag(domainSeparator uint32) *big.Int {
	h := newTagHasher()

	var current Op
	haveCurrent := false
	flush := func() {
		if haveCurrent && current.Count != 0 {
			h.update(current.value())
		}
	}

	for _, op := range p.ops {
		if haveCurrent && current.matches(op) {
			current = current.combine(op)
			continue
		}
		flush()
		current = op
		haveCurrent = true
	}
	flush()

	h.update(domainSeparator)
	return new(big.Int).Set(h.state)
}
