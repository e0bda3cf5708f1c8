package ast

// UnaryOpcode identifies a unary operator.
type UnaryOpcode int

// Unary opcodes.
const (
	UnaryPostInc UnaryOpcode = iota
	UnaryPostDec
	UnaryPreInc
	UnaryPreDec
	UnaryAddrOf
	UnaryDeref
	UnaryPlus
	UnaryMinus
	UnaryNot
	UnaryLNot
)

var unaryOpcodeNames = [...]string{
	UnaryPostInc: "PostInc",
	UnaryPostDec: "PostDec",
	UnaryPreInc:  "PreInc",
	UnaryPreDec:  "PreDec",
	UnaryAddrOf:  "AddrOf",
	UnaryDeref:   "Deref",
	UnaryPlus:    "Plus",
	UnaryMinus:   "Minus",
	UnaryNot:     "Not",
	UnaryLNot:    "LNot",
}

// String returns the wire variant name of the opcode.
func (o UnaryOpcode) String() string {
	if int(o) < len(unaryOpcodeNames) {
		return unaryOpcodeNames[o]
	}

	return "UnknownUnaryOp"
}

// IsPostfix reports whether the operator is written after its operand.
func (o UnaryOpcode) IsPostfix() bool {
	return o == UnaryPostInc || o == UnaryPostDec
}

// BinaryOpcode identifies a binary operator.
type BinaryOpcode int

// Binary opcodes, including the compound-assignment forms.
const (
	BinaryMul BinaryOpcode = iota
	BinaryDiv
	BinaryRem
	BinaryAdd
	BinarySub
	BinaryShl
	BinaryShr
	BinaryLT
	BinaryGT
	BinaryLE
	BinaryGE
	BinaryEQ
	BinaryNE
	BinaryAnd
	BinaryXor
	BinaryOr
	BinaryLAnd
	BinaryLOr
	BinaryAssign
	BinaryMulAssign
	BinaryDivAssign
	BinaryRemAssign
	BinaryAddAssign
	BinarySubAssign
	BinaryShlAssign
	BinaryShrAssign
	BinaryAndAssign
	BinaryXorAssign
	BinaryOrAssign
	BinaryComma
)

var binaryOpcodeNames = [...]string{
	BinaryMul:       "Mul",
	BinaryDiv:       "Div",
	BinaryRem:       "Rem",
	BinaryAdd:       "Add",
	BinarySub:       "Sub",
	BinaryShl:       "Shl",
	BinaryShr:       "Shr",
	BinaryLT:        "LT",
	BinaryGT:        "GT",
	BinaryLE:        "LE",
	BinaryGE:        "GE",
	BinaryEQ:        "EQ",
	BinaryNE:        "NE",
	BinaryAnd:       "And",
	BinaryXor:       "Xor",
	BinaryOr:        "Or",
	BinaryLAnd:      "LAnd",
	BinaryLOr:       "LOr",
	BinaryAssign:    "Assign",
	BinaryMulAssign: "MulAssign",
	BinaryDivAssign: "DivAssign",
	BinaryRemAssign: "RemAssign",
	BinaryAddAssign: "AddAssign",
	BinarySubAssign: "SubAssign",
	BinaryShlAssign: "ShlAssign",
	BinaryShrAssign: "ShrAssign",
	BinaryAndAssign: "AndAssign",
	BinaryXorAssign: "XorAssign",
	BinaryOrAssign:  "OrAssign",
	BinaryComma:     "Comma",
}

// String returns the wire variant name of the opcode.
func (o BinaryOpcode) String() string {
	if int(o) < len(binaryOpcodeNames) {
		return binaryOpcodeNames[o]
	}

	return "UnknownBinaryOp"
}

// IsCompoundAssign reports whether the opcode combines an operation with an
// assignment.
func (o BinaryOpcode) IsCompoundAssign() bool {
	return o >= BinaryMulAssign && o <= BinaryOrAssign
}

// CastKind identifies the conversion performed by a cast expression.
type CastKind int

// Cast kinds.
const (
	CastNoOp CastKind = iota
	CastLValueToRValue
	CastIntegralCast
	CastIntegralToFloating
	CastFloatingToIntegral
	CastFloatingCast
	CastArrayToPointerDecay
	CastFunctionToPointerDecay
	CastNullToPointer
	CastPointerToIntegral
	CastIntegralToPointer
	CastBitCast
	CastToVoid
	CastIntegralToBoolean
	CastPointerToBoolean
)

var castKindNames = [...]string{
	CastNoOp:                   "NoOp",
	CastLValueToRValue:         "LValueToRValue",
	CastIntegralCast:           "IntegralCast",
	CastIntegralToFloating:     "IntegralToFloating",
	CastFloatingToIntegral:     "FloatingToIntegral",
	CastFloatingCast:           "FloatingCast",
	CastArrayToPointerDecay:    "ArrayToPointerDecay",
	CastFunctionToPointerDecay: "FunctionToPointerDecay",
	CastNullToPointer:          "NullToPointer",
	CastPointerToIntegral:      "PointerToIntegral",
	CastIntegralToPointer:      "IntegralToPointer",
	CastBitCast:                "BitCast",
	CastToVoid:                 "ToVoid",
	CastIntegralToBoolean:      "IntegralToBoolean",
	CastPointerToBoolean:       "PointerToBoolean",
}

// String returns the wire variant name of the cast kind.
func (k CastKind) String() string {
	if int(k) < len(castKindNames) {
		return castKindNames[k]
	}

	return "UnknownCast"
}

// DeclRefExpr references a previously seen declaration. Ref is a non-owning
// edge encoded as a reference record, never deep-encoded.
type DeclRefExpr struct {
	ExprBase
	Ref Decl
}

// StmtKind returns StmtDeclRefExpr.
func (*DeclRefExpr) StmtKind() StmtKind { return StmtDeclRefExpr }

// IntegerLiteral preserves the literal's exact bit width and signedness
// alongside a decimal string rendering of the value.
type IntegerLiteral struct {
	ExprBase
	Value    string
	BitWidth int
	IsSigned bool
}

// StmtKind returns StmtIntegerLiteral.
func (*IntegerLiteral) StmtKind() StmtKind { return StmtIntegerLiteral }

// FloatingLiteral carries the canonical decimal rendering of the value.
type FloatingLiteral struct {
	ExprBase
	Value string
}

// StmtKind returns StmtFloatingLiteral.
func (*FloatingLiteral) StmtKind() StmtKind { return StmtFloatingLiteral }

// CharacterLiteral carries the code point value.
type CharacterLiteral struct {
	ExprBase
	Value int
}

// StmtKind returns StmtCharacterLiteral.
func (*CharacterLiteral) StmtKind() StmtKind { return StmtCharacterLiteral }

// StringLiteral carries the raw byte content; the exporter splits it into
// bounded chunks on the wire.
type StringLiteral struct {
	ExprBase
	Value string
}

// StmtKind returns StmtStringLiteral.
func (*StringLiteral) StmtKind() StmtKind { return StmtStringLiteral }

// UnaryOperator child is the operand.
type UnaryOperator struct {
	ExprBase
	Opcode UnaryOpcode
}

// StmtKind returns StmtUnaryOperator.
func (*UnaryOperator) StmtKind() StmtKind { return StmtUnaryOperator }

// BinaryOperator children are the left and right operands.
type BinaryOperator struct {
	ExprBase
	Opcode BinaryOpcode
}

// StmtKind returns StmtBinaryOperator.
func (*BinaryOperator) StmtKind() StmtKind { return StmtBinaryOperator }

// CompoundAssignOperator is a binary operator that also assigns. It
// contributes no wire fields beyond BinaryOperator's.
type CompoundAssignOperator struct {
	BinaryOperator
}

// StmtKind returns StmtCompoundAssignOperator.
func (*CompoundAssignOperator) StmtKind() StmtKind { return StmtCompoundAssignOperator }

// CallExpr children are the callee expression followed by the arguments.
type CallExpr struct {
	ExprBase
}

// StmtKind returns StmtCallExpr.
func (*CallExpr) StmtKind() StmtKind { return StmtCallExpr }

// MemberExpr accesses a member of its child expression. Ref is a non-owning
// reference to the member declaration.
type MemberExpr struct {
	ExprBase
	IsArrow bool
	Name    string
	Ref     Decl
}

// StmtKind returns StmtMemberExpr.
func (*MemberExpr) StmtKind() StmtKind { return StmtMemberExpr }

// ArraySubscriptExpr children are the base and index expressions.
type ArraySubscriptExpr struct {
	ExprBase
}

// StmtKind returns StmtArraySubscriptExpr.
func (*ArraySubscriptExpr) StmtKind() StmtKind { return StmtArraySubscriptExpr }

// ParenExpr wraps its single child in parentheses.
type ParenExpr struct {
	ExprBase
}

// StmtKind returns StmtParenExpr.
func (*ParenExpr) StmtKind() StmtKind { return StmtParenExpr }

// InitListExpr children are the initializer elements.
type InitListExpr struct {
	ExprBase
}

// StmtKind returns StmtInitListExpr.
func (*InitListExpr) StmtKind() StmtKind { return StmtInitListExpr }

// ConditionalOperator children are condition, true branch, and false branch.
type ConditionalOperator struct {
	ExprBase
}

// StmtKind returns StmtConditionalOperator.
func (*ConditionalOperator) StmtKind() StmtKind { return StmtConditionalOperator }

// CastExprBase extends ExprBase with the cast field group. The single child
// is the operand.
type CastExprBase struct {
	ExprBase
	Cast CastKind
}

// CastInfo returns the cast fields.
func (b *CastExprBase) CastInfo() *CastExprBase {
	return b
}

// ImplicitCastExpr is a compiler-inserted conversion.
type ImplicitCastExpr struct {
	CastExprBase
}

// StmtKind returns StmtImplicitCastExpr.
func (*ImplicitCastExpr) StmtKind() StmtKind { return StmtImplicitCastExpr }

// CStyleCastExpr is an explicit `(T)expr` conversion.
type CStyleCastExpr struct {
	CastExprBase
}

// StmtKind returns StmtCStyleCastExpr.
func (*CStyleCastExpr) StmtKind() StmtKind { return StmtCStyleCastExpr }
