package wire

import (
	"bufio"
	"io"
	"strconv"
	"unicode/utf8"
)

// JSONOptions configures the textual emitter.
type JSONOptions struct {
	// Yojson enables the extended syntax: variants render as
	// <"Tag":payload> and tuples as (a,b). With Yojson off the output is
	// standard JSON, with variants as ["Tag",payload] (or a bare string
	// when payload-less) and tuples as arrays.
	Yojson bool
}

type jsonFrame struct {
	closer   byte
	count    int
	afterKey bool
}

type jsonEmitter struct {
	w    *bufio.Writer
	opts JSONOptions
	err  error

	stack []jsonFrame
}

// NewJSONEmitter returns an Emitter producing textual output on out.
func NewJSONEmitter(out io.Writer, opts JSONOptions) Emitter {
	return &jsonEmitter{
		w:     bufio.NewWriter(out),
		opts:  opts,
		stack: []jsonFrame{{}},
	}
}

func (e *jsonEmitter) top() *jsonFrame {
	return &e.stack[len(e.stack)-1]
}

func (e *jsonEmitter) writeByte(b byte) {
	if e.err == nil {
		e.err = e.w.WriteByte(b)
	}
}

func (e *jsonEmitter) writeString(s string) {
	if e.err == nil {
		_, e.err = e.w.WriteString(s)
	}
}

// sep writes the separating comma before a value when one is needed.
func (e *jsonEmitter) sep() {
	f := e.top()
	if f.afterKey {
		f.afterKey = false
		return
	}
	if f.count > 0 {
		e.writeByte(',')
	}
	f.count++
}

func (e *jsonEmitter) writeQuoted(s string) {
	e.writeByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				e.writeString(`\"`)
			case c == '\\':
				e.writeString(`\\`)
			case c == '\n':
				e.writeString(`\n`)
			case c == '\t':
				e.writeString(`\t`)
			case c == '\r':
				e.writeString(`\r`)
			case c < 0x20:
				e.writeString(`\u00`)
				const hex = "0123456789abcdef"
				e.writeByte(hex[c>>4])
				e.writeByte(hex[c&0xf])
			default:
				e.writeByte(c)
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid UTF-8 byte; keep the stream well-formed.
			e.writeString(`�`)
			i++
			continue
		}
		e.writeString(s[i : i+size])
		i += size
	}
	e.writeByte('"')
}

func (e *jsonEmitter) open(opener, closer byte) {
	e.sep()
	e.writeByte(opener)
	e.stack = append(e.stack, jsonFrame{closer: closer})
}

func (e *jsonEmitter) close() {
	f := e.top()
	e.stack = e.stack[:len(e.stack)-1]
	e.writeByte(f.closer)
}

func (e *jsonEmitter) Bool(v bool) {
	e.sep()
	if v {
		e.writeString("true")
	} else {
		e.writeString("false")
	}
}

func (e *jsonEmitter) Int(v int64) {
	e.sep()
	e.writeString(strconv.FormatInt(v, 10))
}

func (e *jsonEmitter) Float(v float64) {
	e.sep()
	e.writeString(strconv.FormatFloat(v, 'g', -1, 64))
}

func (e *jsonEmitter) String(v string) {
	e.sep()
	e.writeQuoted(v)
}

func (e *jsonEmitter) BeginObject(int) {
	e.open('{', '}')
}

func (e *jsonEmitter) Key(name string) {
	e.sep()
	e.writeQuoted(name)
	e.writeByte(':')
	e.top().afterKey = true
}

func (e *jsonEmitter) EndObject() {
	e.close()
}

func (e *jsonEmitter) BeginArray(int) {
	e.open('[', ']')
}

func (e *jsonEmitter) EndArray() {
	e.close()
}

func (e *jsonEmitter) BeginTuple(int) {
	if e.opts.Yojson {
		e.open('(', ')')
		return
	}
	e.open('[', ']')
}

func (e *jsonEmitter) EndTuple() {
	e.close()
}

func (e *jsonEmitter) BeginVariant(tag string, hasPayload bool) {
	if e.opts.Yojson {
		e.sep()
		e.writeByte('<')
		e.writeQuoted(tag)
		if hasPayload {
			e.writeByte(':')
		}
		e.stack = append(e.stack, jsonFrame{closer: '>', afterKey: hasPayload})
		return
	}

	if !hasPayload {
		// A payload-less variant degrades to a plain string.
		e.sep()
		e.writeQuoted(tag)
		e.stack = append(e.stack, jsonFrame{closer: 0})
		return
	}

	e.open('[', ']')
	e.writeQuoted(tag)
	e.top().count = 1
}

func (e *jsonEmitter) EndVariant() {
	f := e.top()
	e.stack = e.stack[:len(e.stack)-1]
	if f.closer != 0 {
		e.writeByte(f.closer)
	}
}

func (e *jsonEmitter) Flush() error {
	if e.err != nil {
		return e.err
	}

	return e.w.Flush()
}
