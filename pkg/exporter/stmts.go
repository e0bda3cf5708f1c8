package exporter

import (
	"fmt"

	"github.com/treewire/treewire/pkg/ast"
)

// EncodeStmt encodes st as a tagged tuple. A nil statement encodes as the
// NullStmt sentinel with the 0 surrogate and no children.
func (s *Session) EncodeStmt(st ast.Stmt) {
	if st == nil {
		s.encodeNullStmt()
		return
	}

	k := st.StmtKind()
	op, ok := stmtOps[k]
	if !ok || op.visit == nil {
		panic(fmt.Sprintf("exporter: cannot encode abstract or unknown stmt kind %s", k))
	}

	v := s.w.Variant(k.String())
	t := s.w.Tuple(stmtArity(k))
	op.visit(s, st)
	t.Close()
	v.Close()
}

func (s *Session) encodeNullStmt() {
	v := s.w.Variant(ast.StmtNull.String())
	t := s.w.Tuple(stmtArity(ast.StmtNull))
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

// visitStmtBase emits the two slots shared by every statement: the info
// object and the child list.
func (s *Session) visitStmtBase(st ast.Stmt) {
	info := st.StmtInfo()

	obj := s.w.Object(2)
	s.w.Key("pointer")
	s.emitPointer(st)
	s.w.Key("source_range")
	s.emitSourceRange(info.Range)
	obj.Close()

	arr := s.w.Array(len(info.Kids))
	for _, kid := range info.Kids {
		s.EncodeStmt(kid)
	}
	arr.Close()
}

func (s *Session) visitPlainStmt(st ast.Stmt) {
	s.visitStmtBase(st)
}

func (s *Session) visitDeclStmt(st ast.Stmt) {
	ds := st.(*ast.DeclStmt)
	s.visitStmtBase(ds)

	arr := s.w.Array(len(ds.Decls))
	for _, d := range ds.Decls {
		s.EncodeDecl(d)
	}
	arr.Close()
}

func (s *Session) visitLabelStmt(st ast.Stmt) {
	ls := st.(*ast.LabelStmt)
	s.visitStmtBase(ls)
	s.w.String(ls.Name)
}

func (s *Session) visitGotoStmt(st ast.Stmt) {
	gs := st.(*ast.GotoStmt)
	s.visitStmtBase(gs)

	obj := s.w.Object(2)
	s.w.Key("label")
	s.w.String(gs.Label)
	s.w.Key("pointer")
	if gs.Target != nil {
		s.emitPointer(gs.Target)
	} else {
		s.emitPointer(nil)
	}
	obj.Close()
}

// visitExprBase emits the statement slots plus the expression info. The
// default value and object kinds are encoded by absence.
func (s *Session) visitExprBase(e ast.Expr) {
	s.visitStmtBase(e)

	info := e.ExprInfo()
	hasValueKind := info.ValueKind != ast.ValueRValue
	hasObjectKind := info.ObjectKind != ast.ObjectOrdinary

	size := 1
	if hasValueKind {
		size++
	}
	if hasObjectKind {
		size++
	}

	obj := s.w.Object(size)
	s.w.Key("qual_type")
	s.emitQualType(info.Type)
	if hasValueKind {
		s.w.Key("value_kind")
		s.w.SimpleVariant(info.ValueKind.String())
	}
	if hasObjectKind {
		s.w.Key("object_kind")
		s.w.SimpleVariant(info.ObjectKind.String())
	}
	obj.Close()
}

func (s *Session) visitPlainExpr(st ast.Stmt) {
	s.visitExprBase(st.(ast.Expr))
}

func (s *Session) visitDeclRefExpr(st ast.Stmt) {
	dre := st.(*ast.DeclRefExpr)
	s.visitExprBase(dre)

	size := 0
	if dre.Ref != nil {
		size++
	}
	obj := s.w.Object(size)
	if dre.Ref != nil {
		s.w.Key("decl_ref")
		s.emitDeclRef(dre.Ref)
	}
	obj.Close()
}

func (s *Session) visitIntegerLiteral(st ast.Stmt) {
	il := st.(*ast.IntegerLiteral)
	s.visitExprBase(il)

	size := 2
	if il.IsSigned {
		size++
	}
	obj := s.w.Object(size)
	s.emitFlag("is_signed", il.IsSigned)
	s.w.Key("bitwidth")
	s.w.Int(int64(il.BitWidth))
	s.w.Key("value")
	s.w.String(il.Value)
	obj.Close()
}

func (s *Session) visitFloatingLiteral(st ast.Stmt) {
	fl := st.(*ast.FloatingLiteral)
	s.visitExprBase(fl)
	s.w.String(fl.Value)
}

func (s *Session) visitCharacterLiteral(st ast.Stmt) {
	cl := st.(*ast.CharacterLiteral)
	s.visitExprBase(cl)
	s.w.Int(int64(cl.Value))
}

// visitStringLiteral splits the literal bytes into bounded chunks; an empty
// literal is a single empty chunk.
func (s *Session) visitStringLiteral(st ast.Stmt) {
	sl := st.(*ast.StringLiteral)
	s.visitExprBase(sl)

	max := s.opts.MaxStringSize
	chunks := 1
	if len(sl.Value) > 0 {
		chunks = 1 + (len(sl.Value)-1)/max
	}

	arr := s.w.Array(chunks)
	for i := 0; i < chunks; i++ {
		end := (i + 1) * max
		if end > len(sl.Value) {
			end = len(sl.Value)
		}
		s.w.String(sl.Value[i*max : end])
	}
	arr.Close()
}

func (s *Session) visitUnaryOperator(st ast.Stmt) {
	uo := st.(*ast.UnaryOperator)
	s.visitExprBase(uo)

	isPostfix := uo.Opcode.IsPostfix()
	size := 1
	if isPostfix {
		size++
	}
	obj := s.w.Object(size)
	s.w.Key("kind")
	s.w.SimpleVariant(uo.Opcode.String())
	s.emitFlag("is_postfix", isPostfix)
	obj.Close()
}

func (s *Session) visitBinaryOperator(st ast.Stmt) {
	s.emitBinaryOperatorInfo(st.(*ast.BinaryOperator))
}

func (s *Session) visitCompoundAssignOperator(st ast.Stmt) {
	s.emitBinaryOperatorInfo(&st.(*ast.CompoundAssignOperator).BinaryOperator)
}

func (s *Session) emitBinaryOperatorInfo(bo *ast.BinaryOperator) {
	s.visitExprBase(bo)

	obj := s.w.Object(1)
	s.w.Key("kind")
	s.w.SimpleVariant(bo.Opcode.String())
	obj.Close()
}

func (s *Session) visitMemberExpr(st ast.Stmt) {
	me := st.(*ast.MemberExpr)
	s.visitExprBase(me)

	size := 1
	if me.IsArrow {
		size++
	}
	if me.Ref != nil {
		size++
	}
	obj := s.w.Object(size)
	s.emitFlag("is_arrow", me.IsArrow)
	s.w.Key("name")
	nameObj := s.w.Object(2)
	s.w.Key("name")
	s.w.String(me.Name)
	s.w.Key("qual_name")
	s.emitMemberQualName(me)
	nameObj.Close()
	if me.Ref != nil {
		s.w.Key("decl_ref")
		s.emitDeclRef(me.Ref)
	}
	obj.Close()
}

func (s *Session) emitMemberQualName(me *ast.MemberExpr) {
	if nd, ok := me.Ref.(ast.NamedDecl); ok {
		qual := nd.NamedInfo().QualName
		arr := s.w.Array(len(qual))
		for _, part := range qual {
			s.w.String(part)
		}
		arr.Close()
		return
	}

	arr := s.w.Array(1)
	s.w.String(me.Name)
	arr.Close()
}

func (s *Session) visitCastExprNode(st ast.Stmt) {
	type castCarrier interface {
		CastInfo() *ast.CastExprBase
	}

	s.visitExprBase(st.(ast.Expr))

	obj := s.w.Object(1)
	s.w.Key("cast_kind")
	s.w.SimpleVariant(st.(castCarrier).CastInfo().Cast.String())
	obj.Close()
}
