package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/treewire/treewire/internal/config"
	"github.com/treewire/treewire/internal/lockfile"
)

// ErrNoTranslationDir is returned when record has no directory to write to.
var ErrNoTranslationDir = errors.New("no translation directory configured")

func recordCmd() *cobra.Command {
	var translationDir string

	cmd := &cobra.Command{
		Use:   "record <copied-file> <original-file>",
		Short: "Record that a copied source file stands in for an original",
		Long: `Record a copied-to-original mapping in the shared translation
directory. Exports that read the copied file then report its source
locations under the original path.

Examples:
  treewire record --translation-dir /tmp/td /tmp/build/a.c /repo/src/a.c`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("translation-dir") {
				cfg.Dedup.TranslationDir = translationDir
			}
			if cfg.Dedup.TranslationDir == "" {
				return ErrNoTranslationDir
			}

			return runRecord(cfg.Dedup.TranslationDir, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&translationDir, "translation-dir", "", "shared directory mapping copied files to originals")

	return cmd
}

func runRecord(dir, copied, original string) error {
	svc := lockfile.NewTranslationService(dir)
	if err := svc.RecordCopiedFile(copied, original); err != nil {
		return fmt.Errorf("record copied file: %w", err)
	}
	slog.Debug("recorded copied file", "copied", copied, "original", original)

	return nil
}
