package wire

import "fmt"

type scopeKind int

const (
	scopeTop scopeKind = iota
	scopeObject
	scopeArray
	scopeTuple
	scopeVariant
)

func (k scopeKind) String() string {
	switch k {
	case scopeObject:
		return "object"
	case scopeArray:
		return "array"
	case scopeTuple:
		return "tuple"
	case scopeVariant:
		return "variant"
	default:
		return "top"
	}
}

type frame struct {
	kind     scopeKind
	declared int
	emitted  int
	// keyed is true inside an object scope after Key and before the
	// matching value.
	keyed bool
}

// Writer layers the scope discipline over an Emitter. All structural
// violations panic; see the package comment.
type Writer struct {
	em    Emitter
	stack []frame
}

// NewWriter returns a Writer emitting through em.
func NewWriter(em Emitter) *Writer {
	return &Writer{
		em:    em,
		stack: []frame{{kind: scopeTop, declared: -1}},
	}
}

func (w *Writer) top() *frame {
	return &w.stack[len(w.stack)-1]
}

func (w *Writer) fail(format string, args ...any) {
	panic(fmt.Sprintf("wire: "+format, args...))
}

// noteValue accounts for one value in the enclosing scope.
func (w *Writer) noteValue() {
	f := w.top()
	switch f.kind {
	case scopeObject:
		if !f.keyed {
			w.fail("value emitted in object scope without a key")
		}
		f.keyed = false
	case scopeVariant:
		if f.declared == 0 {
			w.fail("payload emitted for a payload-less variant")
		}
	}

	f.emitted++
	if f.declared >= 0 && f.emitted > f.declared {
		w.fail("%s scope overflow: declared %d values, emitting value %d",
			f.kind, f.declared, f.emitted)
	}
}

func (w *Writer) push(k scopeKind, declared int) {
	w.noteValue()
	w.stack = append(w.stack, frame{kind: k, declared: declared})
}

func (w *Writer) pop(k scopeKind) {
	f := w.top()
	if f.kind != k {
		w.fail("closing %s scope but innermost open scope is %s", k, f.kind)
	}
	if f.keyed {
		w.fail("object scope closed with a dangling key")
	}
	if f.declared >= 0 && f.emitted != f.declared {
		w.fail("%s scope underflow: declared %d values, emitted %d",
			k, f.declared, f.emitted)
	}

	w.stack = w.stack[:len(w.stack)-1]
}

// Bool emits a boolean value.
func (w *Writer) Bool(v bool) {
	w.noteValue()
	w.em.Bool(v)
}

// Int emits an integer value.
func (w *Writer) Int(v int64) {
	w.noteValue()
	w.em.Int(v)
}

// Float emits a floating-point value.
func (w *Writer) Float(v float64) {
	w.noteValue()
	w.em.Float(v)
}

// String emits a string value.
func (w *Writer) String(v string) {
	w.noteValue()
	w.em.String(v)
}

// Key emits the key of the next pair in the enclosing object scope.
func (w *Writer) Key(name string) {
	f := w.top()
	if f.kind != scopeObject {
		w.fail("key %q emitted outside an object scope", name)
	}
	if f.keyed {
		w.fail("key %q emitted while key already pending", name)
	}
	f.keyed = true

	w.em.Key(name)
}

// ObjectScope is an open object; Close ends it.
type ObjectScope struct{ w *Writer }

// ArrayScope is an open array; Close ends it.
type ArrayScope struct{ w *Writer }

// TupleScope is an open tuple; Close ends it.
type TupleScope struct{ w *Writer }

// VariantScope is an open variant; Close ends it.
type VariantScope struct{ w *Writer }

// Object opens an object scope holding exactly size key/value pairs.
func (w *Writer) Object(size int) ObjectScope {
	if size < 0 {
		w.fail("negative object size %d", size)
	}
	w.push(scopeObject, size)
	w.em.BeginObject(size)

	return ObjectScope{w}
}

// Close ends the object scope.
func (s ObjectScope) Close() {
	s.w.pop(scopeObject)
	s.w.em.EndObject()
}

// Array opens an array scope holding exactly size values.
func (w *Writer) Array(size int) ArrayScope {
	if size < 0 {
		w.fail("negative array size %d", size)
	}
	w.push(scopeArray, size)
	w.em.BeginArray(size)

	return ArrayScope{w}
}

// Close ends the array scope.
func (s ArrayScope) Close() {
	s.w.pop(scopeArray)
	s.w.em.EndArray()
}

// Tuple opens a tuple scope holding exactly size values.
func (w *Writer) Tuple(size int) TupleScope {
	if size < 0 {
		w.fail("negative tuple size %d", size)
	}
	w.push(scopeTuple, size)
	w.em.BeginTuple(size)

	return TupleScope{w}
}

// Close ends the tuple scope.
func (s TupleScope) Close() {
	s.w.pop(scopeTuple)
	s.w.em.EndTuple()
}

// Variant opens a variant scope whose single payload value must be emitted
// before Close.
func (w *Writer) Variant(tag string) VariantScope {
	w.push(scopeVariant, 1)
	w.em.BeginVariant(tag, true)

	return VariantScope{w}
}

// Close ends the variant scope.
func (s VariantScope) Close() {
	s.w.pop(scopeVariant)
	s.w.em.EndVariant()
}

// SimpleVariant emits a payload-less variant as a single value.
func (w *Writer) SimpleVariant(tag string) {
	w.noteValue()
	w.em.BeginVariant(tag, false)
	w.em.EndVariant()
}

// Flush asserts that every opened scope has been closed, then flushes the
// emitter and reports its first I/O error.
func (w *Writer) Flush() error {
	if len(w.stack) != 1 {
		w.fail("flush with %d scope(s) still open", len(w.stack)-1)
	}

	return w.em.Flush()
}
