package exporter

import (
	"fmt"

	"github.com/treewire/treewire/pkg/ast"
)

// EncodeComment encodes c as a tagged tuple. A nil comment encodes as the
// NoComment sentinel.
func (s *Session) EncodeComment(c ast.Comment) {
	if c == nil {
		s.encodeNullComment()
		return
	}

	k := c.CommentKind()
	op, ok := commentOps[k]
	if !ok || op.visit == nil {
		panic(fmt.Sprintf("exporter: cannot encode abstract or unknown comment kind %s", k))
	}

	v := s.w.Variant(k.String())
	t := s.w.Tuple(commentArity(k))
	op.visit(s, c)
	t.Close()
	v.Close()
}

func (s *Session) encodeNullComment() {
	v := s.w.Variant(ast.CommentNoComment.String())
	t := s.w.Tuple(commentArity(ast.CommentNoComment))
	obj := s.w.Object(2)
	s.w.Key("pointer")
	s.emitPointer(nil)
	s.w.Key("source_range")
	s.emitSourceRange(ast.SourceRange{})
	obj.Close()
	s.w.Array(0).Close()
	t.Close()
	v.Close()
}

// visitCommentBase emits the info object and the child list shared by every
// comment node.
func (s *Session) visitCommentBase(c ast.Comment) {
	info := c.CommentInfo()

	obj := s.w.Object(2)
	s.w.Key("pointer")
	s.emitPointer(c)
	s.w.Key("source_range")
	s.emitSourceRange(info.Range)
	obj.Close()

	arr := s.w.Array(len(info.Kids))
	for _, kid := range info.Kids {
		s.EncodeComment(kid)
	}
	arr.Close()
}

func (s *Session) visitPlainComment(c ast.Comment) {
	s.visitCommentBase(c)
}

func (s *Session) visitTextComment(c ast.Comment) {
	tc := c.(*ast.TextComment)
	s.visitCommentBase(tc)
	s.w.String(tc.Text)
}

func (s *Session) visitBlockCommandComment(c ast.Comment) {
	bc := c.(*ast.BlockCommandComment)
	s.visitCommentBase(bc)
	s.w.String(bc.Command)
}

func (s *Session) visitVerbatimLineComment(c ast.Comment) {
	vc := c.(*ast.VerbatimLineComment)
	s.visitCommentBase(vc)
	s.w.String(vc.Text)
}
