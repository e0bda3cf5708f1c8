package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binReader decodes the compact encoding back into generic Go values so
// tests can compare structure instead of raw bytes.
type binReader struct {
	t   *testing.T
	buf []byte
	pos int
}

func newBinReader(t *testing.T, buf []byte) *binReader {
	t.Helper()

	r := &binReader{t: t, buf: buf}
	require.Equal(t, byte(BinaryVersion), r.byte(), "version byte")

	return r
}

func (r *binReader) byte() byte {
	require.Less(r.t, r.pos, len(r.buf), "truncated stream")
	b := r.buf[r.pos]
	r.pos++
	return b
}

func (r *binReader) uint32() uint32 {
	require.LessOrEqual(r.t, r.pos+4, len(r.buf), "truncated stream")
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

func (r *binReader) uint64() uint64 {
	require.LessOrEqual(r.t, r.pos+8, len(r.buf), "truncated stream")
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v
}

func (r *binReader) rawString() string {
	n := int(r.uint32())
	require.LessOrEqual(r.t, r.pos+n, len(r.buf), "truncated stream")
	s := string(r.buf[r.pos : r.pos+n])
	r.pos += n
	return s
}

func (r *binReader) value() any {
	switch m := r.byte(); m {
	case markerBool:
		return r.byte() == 1
	case markerInt:
		return int64(r.uint64())
	case markerFloat:
		return math.Float64frombits(r.uint64())
	case markerString:
		return r.rawString()
	case markerObject:
		n := int(r.uint32())
		obj := make(map[string]any, n)
		for i := 0; i < n; i++ {
			obj[r.rawString()] = r.value()
		}
		return obj
	case markerArray, markerTuple:
		n := int(r.uint32())
		arr := make([]any, 0, n)
		for i := 0; i < n; i++ {
			arr = append(arr, r.value())
		}
		return arr
	case markerVariant:
		tag := r.rawString()
		if r.byte() == 1 {
			return []any{tag, r.value()}
		}
		return []any{tag}
	default:
		r.t.Fatalf("unknown marker 0x%02x at offset %d", m, r.pos-1)
		return nil
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(NewBinaryEmitter(&buf))
	emitSample(w)
	require.NoError(t, w.Flush())

	r := newBinReader(t, buf.Bytes())
	got := r.value()
	assert.Equal(t, len(buf.Bytes()), r.pos, "trailing bytes")

	want := []any{"FunctionDecl", []any{
		map[string]any{
			"name":      "main",
			"is_inline": true,
			"params":    []any{},
		},
		[]any{"CompoundStmt"},
	}}
	assert.Equal(t, want, got)
}

func TestBinaryAtomValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(NewBinaryEmitter(&buf))
	arr := w.Array(5)
	w.Bool(false)
	w.Int(-7)
	w.Float(0.25)
	w.String("")
	w.String("héllo")
	arr.Close()
	require.NoError(t, w.Flush())

	r := newBinReader(t, buf.Bytes())
	got := r.value()
	assert.Equal(t, []any{false, int64(-7), 0.25, "", "héllo"}, got)
}

func TestBinaryCountsPrefixContainers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(NewBinaryEmitter(&buf))
	arr := w.Array(3)
	w.Int(1)
	w.Int(2)
	w.Int(3)
	arr.Close()
	require.NoError(t, w.Flush())

	b := buf.Bytes()
	require.Equal(t, byte(BinaryVersion), b[0])
	require.Equal(t, byte(markerArray), b[1])
	assert.Equal(t, uint32(3), binary.BigEndian.Uint32(b[2:6]))
}
