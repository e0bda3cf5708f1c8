package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/cobra"

	"github.com/treewire/treewire/internal/config"
	"github.com/treewire/treewire/internal/frontend"
	"github.com/treewire/treewire/internal/lockfile"
	"github.com/treewire/treewire/pkg/exporter"
	"github.com/treewire/treewire/pkg/srcpath"
	"github.com/treewire/treewire/pkg/wire"
)

var (
	// ErrNoInputFiles is returned when the export command gets no inputs.
	ErrNoInputFiles = errors.New("no input files given")
	// ErrAmbiguousOutput indicates a fixed output path with several inputs.
	ErrAmbiguousOutput = errors.New("output pattern without '%' cannot serve multiple inputs")
)

func exportCmd() *cobra.Command {
	var (
		format         string
		output         string
		compress       bool
		workers        int
		stats          bool
		comments       bool
		textPointers   bool
		maxStringSize  int
		basePath       string
		repoRoot       string
		sysRoot        string
		keepExternal   bool
		allowSiblings  bool
		followSymlinks bool
		dedupDir       string
		recordKeys     bool
		translationDir string
	)

	cmd := &cobra.Command{
		Use:   "export [files...]",
		Short: "Parse C files and export their ASTs to the wire format",
		Long: `Parse C translation units and encode each one onto the wire format,
one output stream per input.

Examples:
  treewire export main.c                     # main.c -> main.c.json
  treewire export -f biniou main.c           # compact binary codec
  treewire export -o '%.ast.json' src/*.c    # '%' substitutes the input path
  treewire export --compress -w 8 src/*.c    # LZ4 sinks, 8 workers
  treewire export --dedup-dir /tmp/dd a.c b.c  # shared header dedup`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			applyLogging(cfg)

			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.Output.Format = format
			}
			if flags.Changed("output") {
				cfg.Output.Pattern = output
			}
			if flags.Changed("compress") {
				cfg.Output.Compress = compress
			}
			if flags.Changed("workers") {
				cfg.Export.Workers = workers
			}
			if flags.Changed("comments") {
				cfg.Export.DumpComments = comments
			}
			if flags.Changed("text-pointers") {
				cfg.Export.TextPointers = textPointers
			}
			if flags.Changed("max-string-size") {
				cfg.Export.MaxStringSize = maxStringSize
			}
			if flags.Changed("base-path") {
				cfg.Paths.BasePath = basePath
			}
			if flags.Changed("repo-root") {
				cfg.Paths.RepoRoot = repoRoot
			}
			if flags.Changed("sys-root") {
				cfg.Paths.SysRoot = sysRoot
			}
			if flags.Changed("keep-external-paths") {
				cfg.Paths.KeepExternalPaths = keepExternal
			}
			if flags.Changed("allow-siblings-to-root") {
				cfg.Paths.AllowSiblingsToRoot = allowSiblings
			}
			if flags.Changed("resolve-symlinks") {
				cfg.Paths.ResolveSymlinks = followSymlinks
			}
			if flags.Changed("dedup-dir") {
				cfg.Dedup.Dir = dedupDir
			}
			if flags.Changed("record-dedup-keys") {
				cfg.Dedup.RecordKeys = recordKeys
			}
			if flags.Changed("translation-dir") {
				cfg.Dedup.TranslationDir = translationDir
			}

			// Flags can override validated config values, so check the
			// merged result again.
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return runExport(cmd.Context(), cfg, args, stats, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatJSON, "output format (json, yjson, biniou)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path pattern; '%' substitutes the input path")
	cmd.Flags().BoolVar(&compress, "compress", false, "wrap output sinks in LZ4 framing")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of parallel workers (default from config)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print a per-file result table")
	cmd.Flags().BoolVar(&comments, "comments", false, "include documentation comments")
	cmd.Flags().BoolVar(&textPointers, "text-pointers", false, "render pointer fields as address text (unstable across runs)")
	cmd.Flags().IntVar(&maxStringSize, "max-string-size", 0, "string literal chunk bound")
	cmd.Flags().StringVar(&basePath, "base-path", "", "working directory used to absolutize relative paths")
	cmd.Flags().StringVar(&repoRoot, "repo-root", "", "repository root stripped from output paths")
	cmd.Flags().StringVar(&sysRoot, "sys-root", "", "system include root kept absolute in output paths")
	cmd.Flags().BoolVar(&keepExternal, "keep-external-paths", false, "keep absolute paths outside the repository")
	cmd.Flags().BoolVar(&allowSiblings, "allow-siblings-to-root", false, "relativize sibling directories of the repository root")
	cmd.Flags().BoolVar(&followSymlinks, "resolve-symlinks", false, "resolve symlinks before normalizing paths")
	cmd.Flags().StringVar(&dedupDir, "dedup-dir", "", "shared directory for header deduplication claims")
	cmd.Flags().BoolVar(&recordKeys, "record-dedup-keys", false, "record claimed keys inside lock files")
	cmd.Flags().StringVar(&translationDir, "translation-dir", "", "shared directory mapping copied files to originals")

	return cmd
}

// fileResult is one input's export outcome.
type fileResult struct {
	input    string
	output   string
	bytes    int64
	duration time.Duration
	err      error
}

// applyLogging reconfigures the default logger from config. The --verbose
// and --quiet flags take precedence.
func applyLogging(cfg *config.Config) {
	if verbose || quiet {
		return
	}

	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func runExport(ctx context.Context, cfg *config.Config, inputs []string, stats bool, out io.Writer) error {
	if len(inputs) == 0 {
		return ErrNoInputFiles
	}
	if cfg.Output.Pattern != "" && !strings.Contains(cfg.Output.Pattern, "%") && len(inputs) > 1 {
		return ErrAmbiguousOutput
	}

	parser := frontend.NewParser(frontend.Options{Comments: cfg.Export.DumpComments})
	normalizer := newNormalizer(cfg)

	var dedup exporter.ClaimService
	if cfg.Dedup.Dir != "" {
		dedup = lockfile.NewDedupService(cfg.Dedup.Dir, cfg.Dedup.RecordKeys)
	}

	workers := cfg.Export.Workers
	if workers > len(inputs) {
		workers = len(inputs)
	}

	results := make([]fileResult, len(inputs))
	fileCh := make(chan int, workers)

	var wg sync.WaitGroup
	var failed atomic.Int64

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for idx := range fileCh {
				input := inputs[idx]
				start := time.Now()

				written, outPath, err := exportOne(ctx, cfg, parser, normalizer, dedup, input)
				results[idx] = fileResult{
					input:    input,
					output:   outPath,
					bytes:    written,
					duration: time.Since(start),
					err:      err,
				}
				if err != nil {
					failed.Add(1)
					slog.Error("export failed", "input", input, "error", err)

					continue
				}
				slog.Debug("exported", "input", input, "output", outPath,
					"bytes", written, "duration", time.Since(start))
			}
		}()
	}

	for idx := range inputs {
		fileCh <- idx
	}
	close(fileCh)
	wg.Wait()

	if stats {
		printStats(out, results)
	}
	printSummary(out, results, failed.Load())

	if failed.Load() > 0 {
		return fmt.Errorf("%d of %d files failed", failed.Load(), len(inputs))
	}

	return nil
}

func newNormalizer(cfg *config.Config) *srcpath.Normalizer {
	var translator srcpath.Translator
	if cfg.Dedup.TranslationDir != "" {
		translator = lockfile.NewTranslationService(cfg.Dedup.TranslationDir)
	}

	return srcpath.NewNormalizer(srcpath.Options{
		BasePath:                cfg.Paths.BasePath,
		RepoRoot:                cfg.Paths.RepoRoot,
		SysRoot:                 cfg.Paths.SysRoot,
		KeepExternalPaths:       cfg.Paths.KeepExternalPaths,
		AllowSiblingsToRepoRoot: cfg.Paths.AllowSiblingsToRoot,
		ResolveSymlinks:         cfg.Paths.ResolveSymlinks,
	}, translator)
}

// exportOne parses one input and encodes it into its output sink. It returns
// the bytes written and the output path used.
func exportOne(ctx context.Context, cfg *config.Config, parser *frontend.Parser, normalizer *srcpath.Normalizer, dedup exporter.ClaimService, input string) (int64, string, error) {
	tu, err := parser.ParseFile(ctx, input)
	if err != nil {
		return 0, "", err
	}

	outPath := outputPathFor(cfg.Output.Pattern, input, cfg.Output.Format, cfg.Output.Compress)

	f, err := os.Create(outPath)
	if err != nil {
		return 0, outPath, fmt.Errorf("create output: %w", err)
	}

	counter := &countingWriter{w: f}

	var sink io.Writer = counter
	var lzw *lz4.Writer
	if cfg.Output.Compress {
		lzw = lz4.NewWriter(counter)
		sink = lzw
	}

	var em wire.Emitter
	switch cfg.Output.Format {
	case config.FormatBiniou:
		em = wire.NewBinaryEmitter(sink)
	case config.FormatYojson:
		em = wire.NewJSONEmitter(sink, wire.JSONOptions{Yojson: true})
	default:
		em = wire.NewJSONEmitter(sink, wire.JSONOptions{})
	}

	session := exporter.NewSession(wire.NewWriter(em), exporter.Options{
		Normalizer:    normalizer,
		Dedup:         dedup,
		BasePath:      cfg.Paths.BasePath,
		DumpComments:  cfg.Export.DumpComments,
		MaxStringSize: cfg.Export.MaxStringSize,
		TextPointers:  cfg.Export.TextPointers,
	})

	if err := session.ExportTranslationUnit(tu); err != nil {
		f.Close()

		return counter.n, outPath, fmt.Errorf("encode %s: %w", input, err)
	}
	if lzw != nil {
		if err := lzw.Close(); err != nil {
			f.Close()

			return counter.n, outPath, fmt.Errorf("close lz4 sink: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return counter.n, outPath, fmt.Errorf("close output: %w", err)
	}

	return counter.n, outPath, nil
}

// outputPathFor resolves the sink path for input. A '%' in the pattern is
// replaced with the input path; an empty pattern appends the codec extension.
func outputPathFor(pattern, input, format string, compress bool) string {
	var path string
	switch {
	case pattern == "":
		ext := ".json"
		switch format {
		case config.FormatBiniou:
			ext = ".bdump"
		case config.FormatYojson:
			ext = ".yjson"
		}
		path = input + ext
	case strings.Contains(pattern, "%"):
		path = strings.Replace(pattern, "%", input, 1)
	default:
		path = pattern
	}

	if compress {
		path += ".lz4"
	}

	return path
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}

func printStats(out io.Writer, results []fileResult) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"Input", "Output", "Size", "Duration", "Status"})

	for _, r := range results {
		status := "ok"
		if r.err != nil {
			status = r.err.Error()
		}
		tw.AppendRow(table.Row{
			r.input,
			r.output,
			humanize.Bytes(uint64(r.bytes)),
			r.duration.Round(time.Millisecond).String(),
			status,
		})
	}

	tw.Render()
}

func printSummary(out io.Writer, results []fileResult, failed int64) {
	if quiet {
		return
	}

	var totalBytes int64
	for _, r := range results {
		totalBytes += r.bytes
	}

	if failed > 0 {
		color.New(color.FgRed).Fprintf(out, "%d of %d files failed\n", failed, len(results))

		return
	}

	color.New(color.FgGreen).Fprintf(out, "exported %d files (%s)\n",
		len(results), humanize.Bytes(uint64(totalBytes)))
}
