// Package exporter encodes ast trees onto a wire.Writer. One Session covers
// one translation unit: the pointer interner and the location delta state it
// holds make surrogates and compressed locations meaningful only within a
// single output stream.
package exporter

import (
	"fmt"

	"github.com/treewire/treewire/pkg/ast"
	"github.com/treewire/treewire/pkg/srcpath"
	"github.com/treewire/treewire/pkg/wire"
)

// DefaultMaxStringSize bounds the size of a single string-literal chunk on
// the wire.
const DefaultMaxStringSize = 65535

// ClaimService hands out exclusive claims on keys shared across exporter
// processes. See internal/lockfile.
type ClaimService interface {
	Claim(key string) bool
}

// Options configures a Session.
type Options struct {
	// Normalizer rewrites source file paths on output. A nil Normalizer
	// leaves paths untouched.
	Normalizer *srcpath.Normalizer

	// Dedup, when non-nil, filters already-claimed header declarations
	// out of the translation unit's member list.
	Dedup ClaimService

	// BasePath absolutizes header file names before they are used as
	// deduplication keys.
	BasePath string

	// DumpComments includes documentation comments in declaration info.
	DumpComments bool

	// MaxStringSize is the string-literal chunk bound;
	// DefaultMaxStringSize when zero.
	MaxStringSize int

	// TextPointers renders pointer fields as address text instead of
	// interned integers. Surrogates are then stable only within one run.
	TextPointers bool
}

// Session is the run-scoped encoder state for a single translation unit.
type Session struct {
	w    *wire.Writer
	opts Options

	// Pointer interner. Surrogates start at 1; 0 encodes the null
	// pointer.
	ptrs    map[any]int
	nextPtr int

	// Source location delta compression state.
	lastLocFile string
	lastLocLine int

	// Per-unit claim results. The dedup service grants each key at most
	// once; caching the grant here keeps every declaration from a claimed
	// header inside the same unit, not just the first one.
	claims map[string]bool
}

// NewSession returns a Session writing through w.
func NewSession(w *wire.Writer, opts Options) *Session {
	if opts.MaxStringSize <= 0 {
		opts.MaxStringSize = DefaultMaxStringSize
	}

	return &Session{
		w:       w,
		opts:    opts,
		ptrs:    make(map[any]int),
		nextPtr: 1,
		claims:  make(map[string]bool),
	}
}

// claimFile resolves one dedup claim per key per unit.
func (s *Session) claimFile(key string) bool {
	if v, ok := s.claims[key]; ok {
		return v
	}

	v := s.opts.Dedup.Claim(key)
	s.claims[key] = v

	return v
}

// ExportTranslationUnit encodes tu as the stream's top-level value and
// flushes the writer.
func (s *Session) ExportTranslationUnit(tu *ast.TranslationUnitDecl) error {
	s.EncodeDecl(tu)

	return s.w.Flush()
}

// pointerOf interns node and returns its surrogate. The nil interface maps
// to 0.
func (s *Session) pointerOf(node any) int {
	if node == nil {
		return 0
	}
	if p, ok := s.ptrs[node]; ok {
		return p
	}

	p := s.nextPtr
	s.nextPtr++
	s.ptrs[node] = p

	return p
}

func (s *Session) emitPointer(node any) {
	if s.opts.TextPointers {
		if node == nil {
			s.w.String("0x0")
		} else {
			s.w.String(fmt.Sprintf("%p", node))
		}

		return
	}
	s.w.Int(int64(s.pointerOf(node)))
}

func (s *Session) normalizePath(path string) string {
	if s.opts.Normalizer == nil {
		return path
	}

	return s.opts.Normalizer.Normalize(path)
}
