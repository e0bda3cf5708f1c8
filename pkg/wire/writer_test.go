package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) (*Writer, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	return NewWriter(NewJSONEmitter(&buf, JSONOptions{})), &buf
}

func mustPanic(t *testing.T, contains string, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		assert.Contains(t, r.(string), contains)
	}()
	fn()
}

func TestWriterNestedScopes(t *testing.T) {
	t.Parallel()

	w, buf := newTestWriter(t)

	obj := w.Object(2)
	w.Key("name")
	w.String("f")
	w.Key("args")
	arr := w.Array(2)
	w.Int(1)
	w.Int(2)
	arr.Close()
	obj.Close()

	require.NoError(t, w.Flush())
	assert.Equal(t, `{"name":"f","args":[1,2]}`, buf.String())
}

func TestWriterObjectUnderflowPanics(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	obj := w.Object(2)
	w.Key("only")
	w.Bool(true)

	mustPanic(t, "underflow", obj.Close)
}

func TestWriterObjectOverflowPanics(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	w.Object(1)
	w.Key("a")
	w.Int(1)

	mustPanic(t, "overflow", func() {
		w.Key("b")
		w.Int(2)
	})
}

func TestWriterTupleCountEnforced(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	tup := w.Tuple(3)
	w.String("a")
	w.String("b")

	mustPanic(t, "underflow", tup.Close)
}

func TestWriterValueWithoutKeyPanics(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	w.Object(1)

	mustPanic(t, "without a key", func() { w.Int(7) })
}

func TestWriterDanglingKeyPanics(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	obj := w.Object(1)
	w.Key("x")

	mustPanic(t, "dangling key", obj.Close)
}

func TestWriterKeyOutsideObjectPanics(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	w.Array(1)

	mustPanic(t, "outside an object", func() { w.Key("x") })
}

func TestWriterMismatchedClosePanics(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	w.Array(1)

	mustPanic(t, "innermost open scope", func() {
		TupleScope{w}.Close()
	})
}

func TestWriterVariantPayloadRequired(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	v := w.Variant("Tag")

	mustPanic(t, "underflow", v.Close)
}

func TestWriterFlushWithOpenScopePanics(t *testing.T) {
	t.Parallel()

	w, _ := newTestWriter(t)
	w.Array(1)

	mustPanic(t, "still open", func() { _ = w.Flush() })
}

func TestWriterSimpleVariantCountsAsOneValue(t *testing.T) {
	t.Parallel()

	w, buf := newTestWriter(t)
	arr := w.Array(2)
	w.SimpleVariant("A")
	w.SimpleVariant("B")
	arr.Close()

	require.NoError(t, w.Flush())
	assert.Equal(t, `["A","B"]`, buf.String())
}

func TestWriterDeepNesting(t *testing.T) {
	t.Parallel()

	w, buf := newTestWriter(t)

	const depth = 64
	scopes := make([]ArrayScope, 0, depth)
	for i := 0; i < depth; i++ {
		scopes = append(scopes, w.Array(1))
	}
	w.Int(0)
	for i := depth - 1; i >= 0; i-- {
		scopes[i].Close()
	}

	require.NoError(t, w.Flush())
	assert.Equal(t, strings.Repeat("[", depth)+"0"+strings.Repeat("]", depth), buf.String())
}
