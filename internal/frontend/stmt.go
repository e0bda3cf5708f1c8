package frontend

import (
	"strconv"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/treewire/treewire/pkg/ast"
)

var binaryOpcodes = map[string]ast.BinaryOpcode{
	"*":  ast.BinaryMul,
	"/":  ast.BinaryDiv,
	"%":  ast.BinaryRem,
	"+":  ast.BinaryAdd,
	"-":  ast.BinarySub,
	"<<": ast.BinaryShl,
	">>": ast.BinaryShr,
	"<":  ast.BinaryLT,
	">":  ast.BinaryGT,
	"<=": ast.BinaryLE,
	">=": ast.BinaryGE,
	"==": ast.BinaryEQ,
	"!=": ast.BinaryNE,
	"&":  ast.BinaryAnd,
	"^":  ast.BinaryXor,
	"|":  ast.BinaryOr,
	"&&": ast.BinaryLAnd,
	"||": ast.BinaryLOr,
	",":  ast.BinaryComma,
}

var compoundAssignOpcodes = map[string]ast.BinaryOpcode{
	"*=":  ast.BinaryMulAssign,
	"/=":  ast.BinaryDivAssign,
	"%=":  ast.BinaryRemAssign,
	"+=":  ast.BinaryAddAssign,
	"-=":  ast.BinarySubAssign,
	"<<=": ast.BinaryShlAssign,
	">>=": ast.BinaryShrAssign,
	"&=":  ast.BinaryAndAssign,
	"^=":  ast.BinaryXorAssign,
	"|=":  ast.BinaryOrAssign,
}

var unaryOpcodes = map[string]ast.UnaryOpcode{
	"-": ast.UnaryMinus,
	"+": ast.UnaryPlus,
	"~": ast.UnaryNot,
	"!": ast.UnaryLNot,
}

// lowerStmt lowers one statement node. Unknown constructs lower to a
// NullStmt so the surrounding tree shape is preserved.
func (lw *lowerer) lowerStmt(n sitter.Node) ast.Stmt {
	switch n.Type() {
	case "compound_statement":
		cs := &ast.CompoundStmt{}
		cs.Range = lw.rangeOf(n)
		lw.pushScope()
		for idx := range n.NamedChildCount() {
			child := n.NamedChild(idx)
			if child.Type() == "comment" {
				continue
			}
			if st := lw.lowerStmt(child); st != nil {
				cs.Kids = append(cs.Kids, st)
			}
		}
		lw.popScope()

		return cs
	case "expression_statement":
		if inner := firstNamedChild(n); !inner.IsNull() {
			return lw.lowerExpr(inner)
		}

		ns := &ast.NullStmt{}
		ns.Range = lw.rangeOf(n)

		return ns
	case "declaration":
		ds := &ast.DeclStmt{Decls: lw.lowerDeclaration(n, false)}
		ds.Range = lw.rangeOf(n)

		return ds
	case "if_statement":
		st := &ast.IfStmt{}
		st.Range = lw.rangeOf(n)
		st.Kids = lw.lowerFields(n, "condition", "consequence", "alternative")

		return st
	case "while_statement":
		st := &ast.WhileStmt{}
		st.Range = lw.rangeOf(n)
		st.Kids = lw.lowerFields(n, "condition", "body")

		return st
	case "do_statement":
		st := &ast.DoStmt{}
		st.Range = lw.rangeOf(n)
		st.Kids = lw.lowerFields(n, "body", "condition")

		return st
	case "for_statement":
		return lw.lowerForStmt(n)
	case "switch_statement":
		st := &ast.SwitchStmt{}
		st.Range = lw.rangeOf(n)
		st.Kids = lw.lowerFields(n, "condition", "body")

		return st
	case "case_statement":
		return lw.lowerCaseStmt(n)
	case "break_statement":
		st := &ast.BreakStmt{}
		st.Range = lw.rangeOf(n)

		return st
	case "continue_statement":
		st := &ast.ContinueStmt{}
		st.Range = lw.rangeOf(n)

		return st
	case "return_statement":
		st := &ast.ReturnStmt{}
		st.Range = lw.rangeOf(n)
		if value := firstNamedChild(n); !value.IsNull() {
			if e := lw.lowerExpr(value); e != nil {
				st.Kids = []ast.Stmt{e}
			}
		}

		return st
	case "labeled_statement":
		return lw.lowerLabeledStmt(n)
	case "goto_statement":
		return lw.lowerGotoStmt(n)
	case "comment":
		return nil
	default:
		if e := lw.lowerExpr(n); e != nil {
			return e
		}

		ns := &ast.NullStmt{}
		ns.Range = lw.rangeOf(n)

		return ns
	}
}

// lowerFields lowers the named fields that are present, in order.
func (lw *lowerer) lowerFields(n sitter.Node, fields ...string) []ast.Stmt {
	var kids []ast.Stmt
	for _, f := range fields {
		child := n.ChildByFieldName(f)
		if child.IsNull() {
			continue
		}
		// Parenthesized conditions unwrap to the expression itself.
		if child.Type() == "parenthesized_expression" {
			if inner := firstNamedChild(child); !inner.IsNull() {
				child = inner
			}
		}
		if st := lw.lowerStmt(child); st != nil {
			kids = append(kids, st)
		}
	}

	return kids
}

func (lw *lowerer) lowerForStmt(n sitter.Node) ast.Stmt {
	st := &ast.ForStmt{}
	st.Range = lw.rangeOf(n)
	lw.pushScope()
	st.Kids = lw.lowerFields(n, "initializer", "condition", "update", "body")
	lw.popScope()

	return st
}

// lowerCaseStmt lowers both `case X:` and `default:`; the grammar uses one
// node for the two forms.
func (lw *lowerer) lowerCaseStmt(n sitter.Node) ast.Stmt {
	value := n.ChildByFieldName("value")

	var kids []ast.Stmt
	if !value.IsNull() {
		if e := lw.lowerExpr(value); e != nil {
			kids = append(kids, e)
		}
	}
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if !value.IsNull() && child.StartByte() == value.StartByte() {
			continue
		}
		if child.Type() == "comment" {
			continue
		}
		if st := lw.lowerStmt(child); st != nil {
			kids = append(kids, st)
		}
	}

	if value.IsNull() {
		st := &ast.DefaultStmt{}
		st.Range = lw.rangeOf(n)
		st.Kids = kids

		return st
	}

	st := &ast.CaseStmt{}
	st.Range = lw.rangeOf(n)
	st.Kids = kids

	return st
}

func (lw *lowerer) lowerLabeledStmt(n sitter.Node) ast.Stmt {
	labelNode := n.ChildByFieldName("label")
	name := ""
	if !labelNode.IsNull() {
		name = lw.text(labelNode)
	}

	if lw.labels != nil && name != "" {
		if _, ok := lw.labels[name]; !ok {
			ld := &ast.LabelDecl{}
			ld.Range = lw.rangeOf(n)
			ld.Name = name
			ld.QualName = qualName(name)
			lw.labels[name] = ld
		}
	}

	st := &ast.LabelStmt{Name: name}
	st.Range = lw.rangeOf(n)
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if !labelNode.IsNull() && child.StartByte() == labelNode.StartByte() {
			continue
		}
		if body := lw.lowerStmt(child); body != nil {
			st.Kids = append(st.Kids, body)
		}
	}

	return st
}

func (lw *lowerer) lowerGotoStmt(n sitter.Node) ast.Stmt {
	labelNode := n.ChildByFieldName("label")
	name := ""
	if !labelNode.IsNull() {
		name = lw.text(labelNode)
	}

	st := &ast.GotoStmt{Label: name}
	st.Range = lw.rangeOf(n)
	if lw.labels != nil {
		if ld, ok := lw.labels[name]; ok {
			st.Target = ld
		}
	}

	return st
}

// lowerExpr lowers one expression node, or returns nil when the node is not
// an expression this taxonomy represents.
func (lw *lowerer) lowerExpr(n sitter.Node) ast.Expr {
	switch n.Type() {
	case "identifier":
		e := &ast.DeclRefExpr{Ref: lw.lookup(lw.text(n))}
		e.Range = lw.rangeOf(n)
		e.ValueKind = ast.ValueLValue
		if vd, ok := e.Ref.(ast.ValueDecl); ok {
			e.Type = vd.ValueInfo().Type
		}

		return e
	case "number_literal":
		return lw.lowerNumberLiteral(n)
	case "string_literal", "concatenated_string":
		e := &ast.StringLiteral{Value: stringLiteralValue(lw.text(n))}
		e.Range = lw.rangeOf(n)

		return e
	case "char_literal":
		e := &ast.CharacterLiteral{Value: charLiteralValue(lw.text(n))}
		e.Range = lw.rangeOf(n)
		e.Type = ast.QualType{Type: lw.types.builtin(ast.BuiltinInt)}

		return e
	case "binary_expression":
		return lw.lowerBinaryExpr(n)
	case "assignment_expression":
		return lw.lowerAssignmentExpr(n)
	case "unary_expression":
		return lw.lowerUnaryExpr(n, unaryOpcodes)
	case "pointer_expression":
		return lw.lowerPointerExpr(n)
	case "update_expression":
		return lw.lowerUpdateExpr(n)
	case "call_expression":
		return lw.lowerCallExpr(n)
	case "field_expression":
		return lw.lowerFieldExpr(n)
	case "subscript_expression":
		e := &ast.ArraySubscriptExpr{}
		e.Range = lw.rangeOf(n)
		e.Kids = lw.lowerExprFields(n, "argument", "index")

		return e
	case "parenthesized_expression":
		e := &ast.ParenExpr{}
		e.Range = lw.rangeOf(n)
		if inner := firstNamedChild(n); !inner.IsNull() {
			if ie := lw.lowerExpr(inner); ie != nil {
				e.Kids = []ast.Stmt{ie}
				e.Type = ie.ExprInfo().Type
			}
		}

		return e
	case "conditional_expression":
		e := &ast.ConditionalOperator{}
		e.Range = lw.rangeOf(n)
		e.Kids = lw.lowerExprFields(n, "condition", "consequence", "alternative")

		return e
	case "cast_expression":
		e := &ast.CStyleCastExpr{}
		e.Range = lw.rangeOf(n)
		e.Cast = ast.CastBitCast
		e.Type = lw.lowerTypeDescriptor(n.ChildByFieldName("type"))
		if value := n.ChildByFieldName("value"); !value.IsNull() {
			if ve := lw.lowerExpr(value); ve != nil {
				e.Kids = []ast.Stmt{ve}
			}
		}

		return e
	case "initializer_list":
		e := &ast.InitListExpr{}
		e.Range = lw.rangeOf(n)
		for idx := range n.NamedChildCount() {
			child := n.NamedChild(idx)
			if ie := lw.lowerExpr(child); ie != nil {
				e.Kids = append(e.Kids, ie)
			}
		}

		return e
	default:
		return nil
	}
}

func (lw *lowerer) lowerExprFields(n sitter.Node, fields ...string) []ast.Stmt {
	var kids []ast.Stmt
	for _, f := range fields {
		child := n.ChildByFieldName(f)
		if child.IsNull() {
			continue
		}
		if e := lw.lowerExpr(child); e != nil {
			kids = append(kids, e)
		}
	}

	return kids
}

func (lw *lowerer) lowerNumberLiteral(n sitter.Node) ast.Expr {
	text := lw.text(n)
	lower := strings.ToLower(text)

	isFloat := !strings.HasPrefix(lower, "0x") &&
		(strings.ContainsAny(lower, ".e") || strings.HasSuffix(lower, "f"))
	if isFloat {
		e := &ast.FloatingLiteral{Value: strings.TrimRight(text, "fFlL")}
		e.Range = lw.rangeOf(n)
		e.Type = ast.QualType{Type: lw.types.builtin(ast.BuiltinDouble)}

		return e
	}

	value := strings.TrimRight(text, "uUlL")
	unsigned := strings.ContainsAny(text, "uU")
	long := strings.Count(lower, "l") > 0

	bitWidth := 32
	if long {
		bitWidth = 64
	}
	if v, err := strconv.ParseUint(value, 0, 64); err == nil && v >= 1<<31 {
		bitWidth = 64
	}

	kind := ast.BuiltinInt
	switch {
	case unsigned && bitWidth == 64:
		kind = ast.BuiltinULong
	case unsigned:
		kind = ast.BuiltinUInt
	case bitWidth == 64:
		kind = ast.BuiltinLong
	}

	e := &ast.IntegerLiteral{Value: value, BitWidth: bitWidth, IsSigned: !unsigned}
	e.Range = lw.rangeOf(n)
	e.Type = ast.QualType{Type: lw.types.builtin(kind)}

	return e
}

func stringLiteralValue(text string) string {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text[1 : len(text)-1]
	}

	return text
}

func charLiteralValue(text string) int {
	body := strings.TrimSuffix(strings.TrimPrefix(text, "'"), "'")
	if body == "" {
		return 0
	}
	if body[0] != '\\' {
		return int(body[0])
	}
	if len(body) < 2 {
		return 0
	}

	switch body[1] {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case '"':
		return '"'
	case 'x':
		if v, err := strconv.ParseInt(body[2:], 16, 32); err == nil {
			return int(v)
		}
	}

	return int(body[1])
}

func (lw *lowerer) lowerBinaryExpr(n sitter.Node) ast.Expr {
	opNode := n.ChildByFieldName("operator")
	op := ast.BinaryAdd
	if !opNode.IsNull() {
		if mapped, ok := binaryOpcodes[lw.text(opNode)]; ok {
			op = mapped
		}
	}

	e := &ast.BinaryOperator{Opcode: op}
	e.Range = lw.rangeOf(n)
	e.Kids = lw.lowerExprFields(n, "left", "right")

	return e
}

func (lw *lowerer) lowerAssignmentExpr(n sitter.Node) ast.Expr {
	opNode := n.ChildByFieldName("operator")
	opText := "="
	if !opNode.IsNull() {
		opText = lw.text(opNode)
	}

	kids := lw.lowerExprFields(n, "left", "right")

	if op, ok := compoundAssignOpcodes[opText]; ok {
		e := &ast.CompoundAssignOperator{}
		e.Opcode = op
		e.Range = lw.rangeOf(n)
		e.Kids = kids
		e.ValueKind = ast.ValueLValue

		return e
	}

	e := &ast.BinaryOperator{Opcode: ast.BinaryAssign}
	e.Range = lw.rangeOf(n)
	e.Kids = kids
	e.ValueKind = ast.ValueLValue

	return e
}

func (lw *lowerer) lowerUnaryExpr(n sitter.Node, table map[string]ast.UnaryOpcode) ast.Expr {
	opNode := n.ChildByFieldName("operator")
	op := ast.UnaryMinus
	if !opNode.IsNull() {
		if mapped, ok := table[lw.text(opNode)]; ok {
			op = mapped
		}
	}

	e := &ast.UnaryOperator{Opcode: op}
	e.Range = lw.rangeOf(n)
	e.Kids = lw.lowerExprFields(n, "argument")

	return e
}

func (lw *lowerer) lowerPointerExpr(n sitter.Node) ast.Expr {
	opNode := n.ChildByFieldName("operator")
	op := ast.UnaryDeref
	if !opNode.IsNull() && lw.text(opNode) == "&" {
		op = ast.UnaryAddrOf
	}

	e := &ast.UnaryOperator{Opcode: op}
	e.Range = lw.rangeOf(n)
	e.Kids = lw.lowerExprFields(n, "argument")
	if op == ast.UnaryDeref {
		e.ValueKind = ast.ValueLValue
	}

	return e
}

func (lw *lowerer) lowerUpdateExpr(n sitter.Node) ast.Expr {
	opNode := n.ChildByFieldName("operator")
	argNode := n.ChildByFieldName("argument")

	inc := true
	if !opNode.IsNull() {
		inc = lw.text(opNode) == "++"
	}
	postfix := !opNode.IsNull() && !argNode.IsNull() &&
		opNode.StartByte() > argNode.StartByte()

	var op ast.UnaryOpcode
	switch {
	case inc && postfix:
		op = ast.UnaryPostInc
	case inc:
		op = ast.UnaryPreInc
	case postfix:
		op = ast.UnaryPostDec
	default:
		op = ast.UnaryPreDec
	}

	e := &ast.UnaryOperator{Opcode: op}
	e.Range = lw.rangeOf(n)
	e.Kids = lw.lowerExprFields(n, "argument")

	return e
}

func (lw *lowerer) lowerCallExpr(n sitter.Node) ast.Expr {
	e := &ast.CallExpr{}
	e.Range = lw.rangeOf(n)

	if fn := n.ChildByFieldName("function"); !fn.IsNull() {
		if fe := lw.lowerExpr(fn); fe != nil {
			e.Kids = append(e.Kids, fe)
			if dre, ok := fe.(*ast.DeclRefExpr); ok {
				if fd, isFn := dre.Ref.(*ast.FunctionDecl); isFn {
					if fpt, isProto := fd.Type.Type.(*ast.FunctionProtoType); isProto {
						e.Type = fpt.Return
					}
				}
			}
		}
	}
	if args := n.ChildByFieldName("arguments"); !args.IsNull() {
		for idx := range args.NamedChildCount() {
			child := args.NamedChild(idx)
			if ae := lw.lowerExpr(child); ae != nil {
				e.Kids = append(e.Kids, ae)
			}
		}
	}

	return e
}

func (lw *lowerer) lowerFieldExpr(n sitter.Node) ast.Expr {
	fieldNode := n.ChildByFieldName("field")
	name := ""
	if !fieldNode.IsNull() {
		name = lw.text(fieldNode)
	}

	opNode := n.ChildByFieldName("operator")
	isArrow := !opNode.IsNull() && lw.text(opNode) == "->"

	e := &ast.MemberExpr{Name: name, IsArrow: isArrow}
	e.Range = lw.rangeOf(n)
	e.ValueKind = ast.ValueLValue
	e.Kids = lw.lowerExprFields(n, "argument")
	e.Ref = lw.resolveMember(e, name)

	return e
}

// resolveMember finds the field declaration behind a member access when the
// base expression's record type is known.
func (lw *lowerer) resolveMember(me *ast.MemberExpr, name string) ast.Decl {
	if len(me.Kids) == 0 {
		return nil
	}
	base, ok := me.Kids[0].(ast.Expr)
	if !ok {
		return nil
	}

	ty := base.ExprInfo().Type.Type
	if me.IsArrow {
		pt, isPtr := ty.(*ast.PointerType)
		if !isPtr {
			return nil
		}
		ty = pt.Pointee.Type
	}
	for {
		tt, isTypedef := ty.(*ast.TypedefType)
		if !isTypedef {
			break
		}
		ty = tt.Child.Type
	}

	rt, isRecord := ty.(*ast.RecordType)
	if !isRecord {
		return nil
	}
	rec, isDecl := rt.Decl.(*ast.RecordDecl)
	if !isDecl {
		return nil
	}
	for _, m := range rec.Members {
		if fd, isField := m.(*ast.FieldDecl); isField && fd.Name == name {
			me.Type = fd.Type

			return fd
		}
	}

	return nil
}

// lowerTypeDescriptor lowers the `(T)` part of a cast expression.
func (lw *lowerer) lowerTypeDescriptor(n sitter.Node) ast.QualType {
	if n.IsNull() {
		return ast.QualType{}
	}

	base := lw.lowerTypeSpecifier(n.ChildByFieldName("type"))
	base = lw.applyQualifiers(n, base)

	declarator := n.ChildByFieldName("declarator")
	if declarator.IsNull() {
		return base
	}

	qt, _ := lw.lowerAbstractDeclarator(declarator, base)

	return qt
}

func (lw *lowerer) lowerAbstractDeclarator(n sitter.Node, base ast.QualType) (ast.QualType, string) {
	switch n.Type() {
	case "abstract_pointer_declarator":
		wrapped := ast.QualType{Type: lw.types.pointerTo(base)}
		if inner := n.ChildByFieldName("declarator"); !inner.IsNull() {
			return lw.lowerAbstractDeclarator(inner, wrapped)
		}

		return wrapped, ""
	case "abstract_array_declarator":
		wrapped := ast.QualType{Type: lw.types.incompleteArray(base)}
		if size := n.ChildByFieldName("size"); !size.IsNull() {
			if v, err := strconv.ParseInt(lw.text(size), 0, 64); err == nil {
				wrapped = ast.QualType{Type: lw.types.constantArray(base, v)}
			}
		}
		if inner := n.ChildByFieldName("declarator"); !inner.IsNull() {
			return lw.lowerAbstractDeclarator(inner, wrapped)
		}

		return wrapped, ""
	default:
		return lw.lowerDeclaratorType(n, base)
	}
}
