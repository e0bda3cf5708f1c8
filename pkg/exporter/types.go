package exporter

import (
	"fmt"

	"github.com/treewire/treewire/pkg/ast"
)

// EncodeType encodes t as a tagged tuple. A nil type encodes as the
// NoneType sentinel with the 0 surrogate; references to nil types elsewhere
// resolve against it.
func (s *Session) EncodeType(t ast.Type) {
	if t == nil {
		s.encodeNullType()
		return
	}

	k := t.TypeKind()
	op, ok := typeOps[k]
	if !ok || op.visit == nil {
		panic(fmt.Sprintf("exporter: cannot encode abstract or unknown type kind %s", k))
	}

	v := s.w.Variant(k.String())
	tup := s.w.Tuple(typeArity(k))
	op.visit(s, t)
	tup.Close()
	v.Close()
}

func (s *Session) encodeNullType() {
	v := s.w.Variant(ast.TypeNoneKind.String())
	tup := s.w.Tuple(typeArity(ast.TypeNoneKind))
	obj := s.w.Object(1)
	s.w.Key("pointer")
	s.emitPointer(nil)
	obj.Close()
	tup.Close()
	v.Close()
}

// visitTypeBase emits the info slot shared by every type: the surrogate
// plus a reference to the desugared form when one exists.
func (s *Session) visitTypeBase(t ast.Type) {
	desugared := t.TypeInfo().Desugared
	hasDesugared := desugared != nil && desugared != t

	size := 1
	if hasDesugared {
		size++
	}
	obj := s.w.Object(size)
	s.w.Key("pointer")
	s.emitPointer(t)
	if hasDesugared {
		s.w.Key("desugared_type")
		s.emitPointer(desugared)
	}
	obj.Close()
}

func (s *Session) visitNoneType(t ast.Type) {
	s.visitTypeBase(t)
}

func (s *Session) visitBuiltinType(t ast.Type) {
	bt := t.(*ast.BuiltinType)
	s.visitTypeBase(bt)
	s.w.SimpleVariant(bt.Kind.String())
}

func (s *Session) visitPointerType(t ast.Type) {
	pt := t.(*ast.PointerType)
	s.visitTypeBase(pt)
	s.emitQualType(pt.Pointee)
}

func (s *Session) visitParenType(t ast.Type) {
	pt := t.(*ast.ParenType)
	s.visitTypeBase(pt)
	s.emitQualType(pt.Inner)
}

func (s *Session) visitArrayTypeBase(t ast.Type, arr *ast.ArrayTypeBase) {
	s.visitTypeBase(t)

	obj := s.w.Object(1)
	s.w.Key("element_type")
	s.emitQualType(arr.Element)
	obj.Close()
}

func (s *Session) visitConstantArrayType(t ast.Type) {
	cat := t.(*ast.ConstantArrayType)
	s.visitArrayTypeBase(cat, &cat.ArrayTypeBase)
	s.w.Int(cat.Size)
}

func (s *Session) visitIncompleteArrayType(t ast.Type) {
	iat := t.(*ast.IncompleteArrayType)
	s.visitArrayTypeBase(iat, &iat.ArrayTypeBase)
}

func (s *Session) visitFunctionProtoType(t ast.Type) {
	fpt := t.(*ast.FunctionProtoType)
	s.visitTypeBase(fpt)

	retObj := s.w.Object(1)
	s.w.Key("return_type")
	s.emitQualType(fpt.Return)
	retObj.Close()

	hasParams := len(fpt.Params) > 0
	size := 0
	if hasParams {
		size++
	}
	if fpt.IsVariadic {
		size++
	}
	obj := s.w.Object(size)
	if hasParams {
		s.w.Key("params_type")
		arr := s.w.Array(len(fpt.Params))
		for _, p := range fpt.Params {
			s.emitQualType(p)
		}
		arr.Close()
	}
	s.emitFlag("is_variadic", fpt.IsVariadic)
	obj.Close()
}

func (s *Session) visitTagTypeNode(t ast.Type) {
	type tagCarrier interface {
		TagInfo() *ast.TagTypeBase
	}

	s.visitTypeBase(t)

	decl := t.(tagCarrier).TagInfo().Decl
	if decl != nil {
		s.emitPointer(decl)
	} else {
		s.emitPointer(nil)
	}
}

func (s *Session) visitTypedefType(t ast.Type) {
	tt := t.(*ast.TypedefType)
	s.visitTypeBase(tt)

	obj := s.w.Object(2)
	s.w.Key("child_type")
	s.emitQualType(tt.Child)
	s.w.Key("decl_ptr")
	if tt.Decl != nil {
		s.emitPointer(tt.Decl)
	} else {
		s.emitPointer(nil)
	}
	obj.Close()
}
