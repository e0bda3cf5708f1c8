package wire

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/treewire/treewire/pkg/safeconv"
)

// BinaryVersion is the first byte of every compact binary stream. Readers
// must reject streams with an unknown version.
const BinaryVersion = 0x01

// Marker bytes of the compact binary encoding. Every value starts with its
// marker; containers follow with a big-endian uint32 count.
const (
	markerBool    = 0x01
	markerInt     = 0x02
	markerFloat   = 0x03
	markerString  = 0x04
	markerObject  = 0x05
	markerArray   = 0x06
	markerTuple   = 0x07
	markerVariant = 0x08
)

type binaryEmitter struct {
	w   *bufio.Writer
	err error
}

// NewBinaryEmitter returns an Emitter producing the compact binary encoding
// on out. The version byte is written immediately.
func NewBinaryEmitter(out io.Writer) Emitter {
	e := &binaryEmitter{w: bufio.NewWriter(out)}
	e.writeByte(BinaryVersion)

	return e
}

func (e *binaryEmitter) writeByte(b byte) {
	if e.err == nil {
		e.err = e.w.WriteByte(b)
	}
}

func (e *binaryEmitter) writeUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.write(b[:])
}

func (e *binaryEmitter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.write(b[:])
}

func (e *binaryEmitter) write(b []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(b)
	}
}

// writeRawString writes a length-prefixed string with no marker. Used for
// object keys and variant tags, whose position makes the marker redundant.
func (e *binaryEmitter) writeRawString(s string) {
	e.writeUint32(safeconv.MustIntToUint32(len(s)))
	if e.err == nil {
		_, e.err = e.w.WriteString(s)
	}
}

func (e *binaryEmitter) Bool(v bool) {
	e.writeByte(markerBool)
	if v {
		e.writeByte(1)
	} else {
		e.writeByte(0)
	}
}

func (e *binaryEmitter) Int(v int64) {
	e.writeByte(markerInt)
	e.writeUint64(uint64(v))
}

func (e *binaryEmitter) Float(v float64) {
	e.writeByte(markerFloat)
	e.writeUint64(math.Float64bits(v))
}

func (e *binaryEmitter) String(v string) {
	e.writeByte(markerString)
	e.writeRawString(v)
}

func (e *binaryEmitter) BeginObject(size int) {
	e.writeByte(markerObject)
	e.writeUint32(safeconv.MustIntToUint32(size))
}

func (e *binaryEmitter) Key(name string) {
	e.writeRawString(name)
}

func (e *binaryEmitter) EndObject() {}

func (e *binaryEmitter) BeginArray(size int) {
	e.writeByte(markerArray)
	e.writeUint32(safeconv.MustIntToUint32(size))
}

func (e *binaryEmitter) EndArray() {}

func (e *binaryEmitter) BeginTuple(size int) {
	e.writeByte(markerTuple)
	e.writeUint32(safeconv.MustIntToUint32(size))
}

func (e *binaryEmitter) EndTuple() {}

func (e *binaryEmitter) BeginVariant(tag string, hasPayload bool) {
	e.writeByte(markerVariant)
	e.writeRawString(tag)
	if hasPayload {
		e.writeByte(1)
	} else {
		e.writeByte(0)
	}
}

func (e *binaryEmitter) EndVariant() {}

func (e *binaryEmitter) Flush() error {
	if e.err != nil {
		return e.err
	}

	return e.w.Flush()
}
