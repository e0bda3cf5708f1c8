package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pierrec/lz4/v4"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/treewire/treewire/pkg/exporter"
)

// exitCodeValidationFailure is the exit code for validation failures.
const exitCodeValidationFailure = 2

// maxDiffFragments bounds the number of diff fragments shown per file.
const maxDiffFragments = 5

func validateCmd() *cobra.Command {
	var nocolor bool

	cmd := &cobra.Command{
		Use:   "validate <dump.json...>",
		Short: "Validate exported JSON dumps against the wire schema",
		Long: `Validate exported JSON dumps: each file is checked against the
generated wire schema and round-tripped through a canonical JSON
encoder to detect non-canonical output.

Examples:
  treewire validate main.c.json
  treewire validate build/*.json
  treewire validate --no-color main.c.json.lz4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nocolor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			return runValidate(args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(paths []string, out io.Writer) error {
	schemaLoader := gojsonschema.NewGoLoader(wireJSONSchema())

	failures := 0
	for _, path := range paths {
		if err := validateFile(path, schemaLoader, out); err != nil {
			color.New(color.FgRed).Fprintf(out, "%s: %v\n", path, err)
			failures++

			continue
		}
		color.New(color.FgGreen).Fprintf(out, "%s: valid\n", path)
	}

	if failures > 0 {
		fmt.Fprintf(out, "\n%d of %d files failed validation\n", failures, len(paths))
		os.Exit(exitCodeValidationFailure)
	}

	return nil
}

func validateFile(path string, schemaLoader gojsonschema.JSONLoader, out io.Writer) error {
	data, err := readDump(path)
	if err != nil {
		return err
	}

	var doc any

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			color.New(color.FgYellow).Fprintf(out, "  - %s: %s\n", verr.Field(), verr.Description())
		}

		return fmt.Errorf("%d schema violations", len(result.Errors()))
	}

	return checkCanonical(data, out)
}

// checkCanonical compacts the original bytes and diffs the result against
// them. Exported output carries no insignificant whitespace, so any
// difference marks a non-canonical dump.
func checkCanonical(original []byte, out io.Writer) error {
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, original); err != nil {
		return fmt.Errorf("compact: %w", err)
	}

	canonical := compacted.Bytes()

	trimmed := bytes.TrimSpace(original)
	if bytes.Equal(trimmed, canonical) {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(trimmed), string(canonical), false)

	shown := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		if shown >= maxDiffFragments {
			fmt.Fprintf(out, "  ...\n")

			break
		}
		fmt.Fprintf(out, "  %s %q\n", diffMarker(d.Type), clip(d.Text, 60))
		shown++
	}

	return fmt.Errorf("output is not canonical (%d differing fragments)", shown)
}

func diffMarker(t diffmatchpatch.Operation) string {
	if t == diffmatchpatch.DiffDelete {
		return "-"
	}

	return "+"
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}

// readDump reads a dump file, transparently decompressing LZ4 sinks.
func readDump(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".lz4") {
		r = lz4.NewReader(f)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return data, nil
}

// wireJSONSchema builds a JSON schema for the verbose codec's top level from
// the generated wire schema: a two-element array of a known declaration tag
// and its payload tuple.
func wireJSONSchema() map[string]any {
	schema := exporter.BuildSchema()

	tags := make([]any, 0, len(schema.Decls))
	for _, k := range schema.Decls {
		if k.Abstract {
			continue
		}
		tags = append(tags, k.Name)
	}

	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "array",
		"items": []any{
			map[string]any{"type": "string", "enum": tags},
			map[string]any{"type": "array"},
		},
		"minItems":        2,
		"maxItems":        2,
		"additionalItems": false,
	}
}
