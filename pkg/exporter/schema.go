package exporter

import (
	"sort"

	"github.com/treewire/treewire/pkg/ast"
)

// SchemaKind describes one node kind of the wire format: its tag, the kind
// it derives from, and the total tuple arity of its payload. Abstract kinds
// never appear on the wire themselves but contribute slots to derived kinds.
type SchemaKind struct {
	Name     string `json:"name" yaml:"name"`
	Base     string `json:"base,omitempty" yaml:"base,omitempty"`
	Arity    int    `json:"arity" yaml:"arity"`
	Abstract bool   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// Schema is the machine-readable description of the wire format, generated
// from the same dispatch tables that drive encoding. Downstream decoders can
// be regenerated from it whenever the taxonomy changes.
type Schema struct {
	Version  int          `json:"version" yaml:"version"`
	Decls    []SchemaKind `json:"decls" yaml:"decls"`
	Stmts    []SchemaKind `json:"stmts" yaml:"stmts"`
	Types    []SchemaKind `json:"types" yaml:"types"`
	Comments []SchemaKind `json:"comments" yaml:"comments"`
}

// SchemaVersion bumps whenever a kind, base relation, or arity changes.
const SchemaVersion = 1

// BuildSchema assembles the schema document from the dispatch tables. Kinds
// are sorted by name within each category so the output is deterministic.
func BuildSchema() Schema {
	s := Schema{Version: SchemaVersion}

	for k, op := range declOps {
		base := ""
		if b := k.Base(); b != ast.DeclNone {
			base = b.String()
		}
		s.Decls = append(s.Decls, SchemaKind{
			Name:     k.String(),
			Base:     base,
			Arity:    declArity(k),
			Abstract: op.visit == nil,
		})
	}
	for k, op := range stmtOps {
		base := ""
		if b := k.Base(); b != ast.StmtNone {
			base = b.String()
		}
		s.Stmts = append(s.Stmts, SchemaKind{
			Name:     k.String(),
			Base:     base,
			Arity:    stmtArity(k),
			Abstract: op.visit == nil,
		})
	}
	for k, op := range typeOps {
		base := ""
		if b := k.Base(); b != ast.TypeNone {
			base = b.String()
		}
		s.Types = append(s.Types, SchemaKind{
			Name:     k.String(),
			Base:     base,
			Arity:    typeArity(k),
			Abstract: op.visit == nil,
		})
	}
	for k, op := range commentOps {
		base := ""
		if b := k.Base(); b != ast.CommentNone {
			base = b.String()
		}
		s.Comments = append(s.Comments, SchemaKind{
			Name:     k.String(),
			Base:     base,
			Arity:    commentArity(k),
			Abstract: op.visit == nil,
		})
	}

	for _, kinds := range [][]SchemaKind{s.Decls, s.Stmts, s.Types, s.Comments} {
		sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name < kinds[j].Name })
	}

	return s
}
