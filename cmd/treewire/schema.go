package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/treewire/treewire/pkg/exporter"
)

func schemaCmd() *cobra.Command {
	var (
		output string
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the wire schema for the current node tables",
		Long: `Print the wire schema derived from the node dispatch tables:
every declaration, statement, type and comment kind with its base kind
and tuple arity. Consumers use it to decode dumps without hardcoding
node layouts.

Examples:
  treewire schema
  treewire schema --yaml
  treewire schema -o schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema := exporter.BuildSchema()

			var (
				data []byte
				err  error
			)
			if asYAML {
				data, err = yaml.Marshal(schema)
			} else {
				data, err = json.MarshalIndent(schema, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			if !asYAML {
				data = append(data, '\n')
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write schema to file instead of stdout")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "emit YAML instead of JSON")

	return cmd
}
