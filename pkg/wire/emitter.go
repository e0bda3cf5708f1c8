// Package wire implements the streaming output layer of the exporter: a
// scope-disciplined Writer in front of interchangeable codec Emitters.
//
// The Writer enforces the structural contract every encoder relies on:
// scopes nest strictly, object and tuple scopes declare their exact size up
// front, and every declared slot is filled before the scope closes. A
// violation of that contract is a programmer error in the encoder, not a
// runtime condition, so the Writer panics rather than returning an error.
// I/O failures, by contrast, are sticky on the Emitter and surface from
// Flush.
package wire

// Emitter renders the value stream produced by a Writer into a concrete
// output syntax. Implementations do not validate structure; the Writer has
// already done so by the time a method is called.
type Emitter interface {
	// Bool, Int, Float, and String emit atomic values.
	Bool(v bool)
	Int(v int64)
	Float(v float64)
	String(v string)

	// BeginObject opens an object holding exactly size key/value pairs.
	BeginObject(size int)
	// Key emits the key of the next pair in the enclosing object.
	Key(name string)
	EndObject()

	// BeginArray opens an array holding exactly size elements.
	BeginArray(size int)
	EndArray()

	// BeginTuple opens a fixed-size heterogeneous tuple.
	BeginTuple(size int)
	EndTuple()

	// Variant emits a tagged value. When hasPayload is true exactly one
	// value follows before EndVariant; otherwise the variant is complete
	// and EndVariant must still be called to balance the scope.
	BeginVariant(tag string, hasPayload bool)
	EndVariant()

	// Flush writes any buffered output and returns the first I/O error
	// encountered since the emitter was created.
	Flush() error
}
