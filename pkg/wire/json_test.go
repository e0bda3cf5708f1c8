package wire

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitSample(w *Writer) {
	v := w.Variant("FunctionDecl")
	tup := w.Tuple(2)

	obj := w.Object(3)
	w.Key("name")
	w.String("main")
	w.Key("is_inline")
	w.Bool(true)
	w.Key("params")
	arr := w.Array(0)
	arr.Close()
	obj.Close()

	w.SimpleVariant("CompoundStmt")
	tup.Close()
	v.Close()
}

func TestJSONEmitterStandardSyntax(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(NewJSONEmitter(&buf, JSONOptions{}))
	emitSample(w)
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Equal(t,
		`["FunctionDecl",[{"name":"main","is_inline":true,"params":[]},"CompoundStmt"]]`,
		out)

	// Standard mode must be parseable by any JSON decoder.
	var v any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
}

func TestJSONEmitterYojsonSyntax(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(NewJSONEmitter(&buf, JSONOptions{Yojson: true}))
	emitSample(w)
	require.NoError(t, w.Flush())

	assert.Equal(t,
		`<"FunctionDecl":({"name":"main","is_inline":true,"params":[]},<"CompoundStmt">)>`,
		buf.String())
}

func TestJSONEmitterStringEscaping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`quote " back \`, `"quote \" back \\"`},
		{"line\nbreak\ttab\r", `"line\nbreak\ttab\r"`},
		{"ctl\x01", `"ctl\u0001"`},
		{"unicode é世", "\"unicode é世\""},
		{"bad\xffbyte", `"bad�byte"`},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		w := NewWriter(NewJSONEmitter(&buf, JSONOptions{}))
		w.String(tc.in)
		require.NoError(t, w.Flush())
		assert.Equal(t, tc.want, buf.String(), "input %q", tc.in)
	}
}

func TestJSONEmitterNumbers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(NewJSONEmitter(&buf, JSONOptions{}))
	arr := w.Array(3)
	w.Int(-42)
	w.Int(0)
	w.Float(1.5)
	arr.Close()
	require.NoError(t, w.Flush())

	assert.Equal(t, `[-42,0,1.5]`, buf.String())
}

func TestJSONEmitterEmptyObject(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(NewJSONEmitter(&buf, JSONOptions{}))
	w.Object(0).Close()
	require.NoError(t, w.Flush())

	assert.Equal(t, `{}`, buf.String())
}
