package ast

// Comment is a node in a documentation comment tree attached to a
// declaration.
type Comment interface {
	CommentKind() CommentKind
	CommentInfo() *CommentBase
}

// CommentBase carries the fields common to every comment node.
type CommentBase struct {
	Range SourceRange
	Kids  []Comment
}

// CommentInfo returns the shared comment fields.
func (b *CommentBase) CommentInfo() *CommentBase {
	return b
}

// FullComment is the root of a declaration's documentation comment.
type FullComment struct {
	CommentBase
}

// CommentKind returns CommentFull.
func (*FullComment) CommentKind() CommentKind { return CommentFull }

// ParagraphComment groups a run of text lines.
type ParagraphComment struct {
	CommentBase
}

// CommentKind returns CommentParagraph.
func (*ParagraphComment) CommentKind() CommentKind { return CommentParagraph }

// TextComment is a single line of plain comment text.
type TextComment struct {
	CommentBase
	Text string
}

// CommentKind returns CommentText.
func (*TextComment) CommentKind() CommentKind { return CommentText }

// BlockCommandComment is a command like \param or \return with its argument
// paragraph as children.
type BlockCommandComment struct {
	CommentBase
	Command string
}

// CommentKind returns CommentBlockCommand.
func (*BlockCommandComment) CommentKind() CommentKind { return CommentBlockCommand }

// VerbatimLineComment is a single-line verbatim command payload.
type VerbatimLineComment struct {
	CommentBase
	Text string
}

// CommentKind returns CommentVerbatimLine.
func (*VerbatimLineComment) CommentKind() CommentKind { return CommentVerbatimLine }
