// Package paramgen is a CBOR codec for a primitive's generated
// parameter table: a table derived via internal/constgen can be
// serialized to a portable blob, so a deployment can pin it instead of
// recomputing it from the splitmix64 stream at every process start.
// The package does not derive tables itself; callers fill a Table.
package paramgen

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Table is the on-disk representation of one primitive's generated
// constants: round constants as 256-bit limb quadruples, plus any
// primitive-specific extra constants (Griffin's alpha/beta, Neptune's
// gamma/diagonal, ...), keyed by name.
type Table struct {
	Curve          string
	Primitive      string
	Version        string
	RoundConstants [][4]uint64
	Extra          map[string][4]uint64
}

// WriteTo CBOR-encodes t to w, mirroring the encode side of gnark's
// own constraint-system serializers.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	enc := cbor.NewEncoder(counter)
	if err := enc.Encode(t); err != nil {
		return counter.n, fmt.Errorf("paramgen: encode: %w", err)
	}
	return counter.n, nil
}

// ReadFrom CBOR-decodes a Table from r, bounding array sizes the same
// way gnark's deserializer bounds constraint-system arrays against a
// hostile or corrupt blob.
func (t *Table) ReadFrom(r io.Reader) (int64, error) {
	dm, err := cbor.DecOptions{MaxArrayElements: 1 << 20}.DecMode()
	if err != nil {
		return 0, fmt.Errorf("paramgen: dec mode: %w", err)
	}
	counter := &countingReader{r: r}
	if err := dm.NewDecoder(counter).Decode(t); err != nil {
		return counter.n, fmt.Errorf("paramgen: decode: %w", err)
	}
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
