package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/treewire/treewire/pkg/exporter"
)

func TestWireJSONSchema(t *testing.T) {
	t.Parallel()

	loader := gojsonschema.NewGoLoader(wireJSONSchema())

	tests := []struct {
		name  string
		doc   any
		valid bool
	}{
		{name: "translation unit", doc: []any{"TranslationUnitDecl", []any{}}, valid: true},
		{name: "unknown tag", doc: []any{"BogusDecl", []any{}}, valid: false},
		{name: "abstract tag", doc: []any{"NamedDecl", []any{}}, valid: false},
		{name: "not an array", doc: map[string]any{}, valid: false},
		{name: "missing payload", doc: []any{"TranslationUnitDecl"}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := gojsonschema.Validate(loader, gojsonschema.NewGoLoader(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid())
		})
	}
}

func TestValidateFileRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`["TranslationUnitDecl",`), 0o644))

	err := validateFile(path, gojsonschema.NewGoLoader(wireJSONSchema()), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestCheckCanonicalFlagsWhitespace(t *testing.T) {
	t.Parallel()

	compact := []byte(`["EmptyDecl",[{"pointer":0,"source_range":[{},{}]}]]`)
	require.NoError(t, checkCanonical(compact, io.Discard))

	pretty := []byte("[\"EmptyDecl\", [ {\"pointer\": 0} ]]")

	var buf bytes.Buffer

	err := checkCanonical(pretty, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not canonical")
}

func TestSchemaCommandOutput(t *testing.T) {
	t.Parallel()

	cmd := schemaCmd()

	var buf bytes.Buffer

	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var schema exporter.Schema
	require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))
	assert.Equal(t, exporter.SchemaVersion, schema.Version)
	assert.NotEmpty(t, schema.Decls)
	assert.NotEmpty(t, schema.Stmts)
}
