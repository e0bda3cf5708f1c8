package ast

// Stmt is the interface implemented by all statement and expression nodes.
type Stmt interface {
	StmtKind() StmtKind
	StmtInfo() *StmtBase
}

// StmtBase carries the fields shared by every statement: its source range
// and its child list. Children are tree edges and are deep-encoded.
type StmtBase struct {
	Range SourceRange
	Kids  []Stmt
}

// StmtInfo returns the shared statement fields.
func (b *StmtBase) StmtInfo() *StmtBase {
	return b
}

// ValueKind classifies an expression's value category.
type ValueKind int

// Value kinds. ValueRValue is the default and is omitted from output.
const (
	ValueRValue ValueKind = iota
	ValueLValue
	ValueXValue
)

// String returns the wire name of the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueLValue:
		return "LValue"
	case ValueXValue:
		return "XValue"
	default:
		return "RValue"
	}
}

// ObjectKind classifies what an lvalue expression refers to.
type ObjectKind int

// Object kinds. ObjectOrdinary is the default and is omitted from output.
const (
	ObjectOrdinary ObjectKind = iota
	ObjectBitField
	ObjectVectorComponent
)

// String returns the wire name of the object kind.
func (k ObjectKind) String() string {
	switch k {
	case ObjectBitField:
		return "BitField"
	case ObjectVectorComponent:
		return "VectorComponent"
	default:
		return "Ordinary"
	}
}

// ExprBase extends StmtBase with the expression field group.
type ExprBase struct {
	StmtBase
	Type       QualType
	ValueKind  ValueKind
	ObjectKind ObjectKind
}

// ExprInfo returns the expression fields.
func (b *ExprBase) ExprInfo() *ExprBase {
	return b
}

// Expr is implemented by every expression node.
type Expr interface {
	Stmt
	ExprInfo() *ExprBase
}

// CompoundStmt is a braced statement list; children are the statements.
type CompoundStmt struct {
	StmtBase
}

// StmtKind returns StmtCompound.
func (*CompoundStmt) StmtKind() StmtKind { return StmtCompound }

// NullStmt is an empty statement. It doubles as the wire encoding of a null
// statement reference.
type NullStmt struct {
	StmtBase
}

// StmtKind returns StmtNull.
func (*NullStmt) StmtKind() StmtKind { return StmtNull }

// DeclStmt carries declarations appearing in statement position.
type DeclStmt struct {
	StmtBase
	Decls []Decl
}

// StmtKind returns StmtDecl.
func (*DeclStmt) StmtKind() StmtKind { return StmtDecl }

// IfStmt children are condition, then-branch, and optional else-branch.
type IfStmt struct {
	StmtBase
}

// StmtKind returns StmtIf.
func (*IfStmt) StmtKind() StmtKind { return StmtIf }

// WhileStmt children are condition and body.
type WhileStmt struct {
	StmtBase
}

// StmtKind returns StmtWhile.
func (*WhileStmt) StmtKind() StmtKind { return StmtWhile }

// DoStmt children are body and condition.
type DoStmt struct {
	StmtBase
}

// StmtKind returns StmtDo.
func (*DoStmt) StmtKind() StmtKind { return StmtDo }

// ForStmt children are init, condition, increment, and body; absent clauses
// appear as NullStmt placeholders so positions stay fixed.
type ForStmt struct {
	StmtBase
}

// StmtKind returns StmtFor.
func (*ForStmt) StmtKind() StmtKind { return StmtFor }

// SwitchStmt children are the scrutinized expression and the body.
type SwitchStmt struct {
	StmtBase
}

// StmtKind returns StmtSwitch.
func (*SwitchStmt) StmtKind() StmtKind { return StmtSwitch }

// CaseStmt children are the case value and the labeled statement.
type CaseStmt struct {
	StmtBase
}

// StmtKind returns StmtCase.
func (*CaseStmt) StmtKind() StmtKind { return StmtCase }

// DefaultStmt child is the labeled statement.
type DefaultStmt struct {
	StmtBase
}

// StmtKind returns StmtDefault.
func (*DefaultStmt) StmtKind() StmtKind { return StmtDefault }

// BreakStmt terminates the innermost loop or switch.
type BreakStmt struct {
	StmtBase
}

// StmtKind returns StmtBreak.
func (*BreakStmt) StmtKind() StmtKind { return StmtBreak }

// ContinueStmt resumes the innermost loop.
type ContinueStmt struct {
	StmtBase
}

// StmtKind returns StmtContinue.
func (*ContinueStmt) StmtKind() StmtKind { return StmtContinue }

// ReturnStmt child is the optional return value.
type ReturnStmt struct {
	StmtBase
}

// StmtKind returns StmtReturn.
func (*ReturnStmt) StmtKind() StmtKind { return StmtReturn }

// LabelStmt attaches a label name to its child statement.
type LabelStmt struct {
	StmtBase
	Name string
}

// StmtKind returns StmtLabel.
func (*LabelStmt) StmtKind() StmtKind { return StmtLabel }

// GotoStmt transfers control to a label. Target is a non-owning reference.
type GotoStmt struct {
	StmtBase
	Label  string
	Target *LabelDecl
}

// StmtKind returns StmtGoto.
func (*GotoStmt) StmtKind() StmtKind { return StmtGoto }
