// Package frontend parses C sources with tree-sitter and lowers the
// concrete syntax tree into the ast taxonomy. It stands in for the host
// compiler: the exporter only ever sees the trees this package produces.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/alexaandru/go-sitter-forest/c"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/treewire/treewire/pkg/ast"
)

var errNoRootNode = errors.New("frontend: no root node")

// Options tunes how much of the source survives lowering.
type Options struct {
	// Comments attaches documentation comments preceding top-level
	// declarations.
	Comments bool
}

// Parser turns C source files into translation units. It is safe for
// concurrent use; tree-sitter parser instances are pooled.
type Parser struct {
	lang *sitter.Language
	pool sync.Pool
	opts Options
}

// NewParser returns a Parser for the C grammar.
func NewParser(opts Options) *Parser {
	lang := sitter.NewLanguage(c.GetLanguage())

	p := &Parser{lang: lang, opts: opts}
	p.pool = sync.Pool{
		New: func() any {
			tsParser := sitter.NewParser()
			tsParser.SetLanguage(lang)

			return tsParser
		},
	}

	return p
}

// ParseFile reads and parses path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*ast.TranslationUnitDecl, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("frontend: read %s: %w", path, err)
	}

	return p.Parse(ctx, path, content)
}

// Parse parses content as the file named path and lowers it into a
// translation unit.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*ast.TranslationUnitDecl, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errors.New("frontend: parser pool type")
	}
	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("frontend: parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	lw := newLowerer(path, content, p.opts)

	return lw.lowerTranslationUnit(root), nil
}
