package frontend

import (
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/treewire/treewire/pkg/ast"
)

// typeTable interns canonical types by spelling so that every distinct type
// appears once in the unit's type table and references share surrogates.
type typeTable struct {
	byKey map[string]ast.Type
	order []ast.Type
}

func newTypeTable() *typeTable {
	return &typeTable{byKey: make(map[string]ast.Type)}
}

func (t *typeTable) intern(key string, build func() ast.Type) ast.Type {
	if ty, ok := t.byKey[key]; ok {
		return ty
	}

	ty := build()
	t.byKey[key] = ty
	t.order = append(t.order, ty)

	return ty
}

func (t *typeTable) all() []ast.Type {
	return t.order
}

var builtinKinds = map[string]ast.BuiltinKind{
	"void":               ast.BuiltinVoid,
	"_Bool":              ast.BuiltinBool,
	"bool":               ast.BuiltinBool,
	"char":               ast.BuiltinChar,
	"signed char":        ast.BuiltinSChar,
	"unsigned char":      ast.BuiltinUChar,
	"short":              ast.BuiltinShort,
	"short int":          ast.BuiltinShort,
	"unsigned short":     ast.BuiltinUShort,
	"unsigned short int": ast.BuiltinUShort,
	"int":                ast.BuiltinInt,
	"signed":             ast.BuiltinInt,
	"signed int":         ast.BuiltinInt,
	"unsigned":           ast.BuiltinUInt,
	"unsigned int":       ast.BuiltinUInt,
	"long":               ast.BuiltinLong,
	"long int":           ast.BuiltinLong,
	"unsigned long":      ast.BuiltinULong,
	"unsigned long int":  ast.BuiltinULong,
	"long long":          ast.BuiltinLongLong,
	"long long int":      ast.BuiltinLongLong,
	"unsigned long long": ast.BuiltinULongLong,
	"float":              ast.BuiltinFloat,
	"double":             ast.BuiltinDouble,
	"long double":        ast.BuiltinLongDouble,
	"size_t":             ast.BuiltinULong,
	"ssize_t":            ast.BuiltinLong,
}

func (t *typeTable) builtin(kind ast.BuiltinKind) *ast.BuiltinType {
	ty := t.intern("builtin "+kind.String(), func() ast.Type {
		return &ast.BuiltinType{Kind: kind}
	})

	return ty.(*ast.BuiltinType)
}

func (t *typeTable) pointerTo(pointee ast.QualType) *ast.PointerType {
	ty := t.intern("ptr "+qualKey(pointee), func() ast.Type {
		return &ast.PointerType{Pointee: pointee}
	})

	return ty.(*ast.PointerType)
}

func (t *typeTable) constantArray(element ast.QualType, size int64) *ast.ConstantArrayType {
	key := fmt.Sprintf("arr[%d] %s", size, qualKey(element))
	ty := t.intern(key, func() ast.Type {
		cat := &ast.ConstantArrayType{Size: size}
		cat.Element = element

		return cat
	})

	return ty.(*ast.ConstantArrayType)
}

func (t *typeTable) incompleteArray(element ast.QualType) *ast.IncompleteArrayType {
	ty := t.intern("arr[] "+qualKey(element), func() ast.Type {
		iat := &ast.IncompleteArrayType{}
		iat.Element = element

		return iat
	})

	return ty.(*ast.IncompleteArrayType)
}

func (t *typeTable) functionProto(ret ast.QualType, params []ast.QualType, variadic bool) *ast.FunctionProtoType {
	var sb strings.Builder
	sb.WriteString("fn ")
	sb.WriteString(qualKey(ret))
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(qualKey(p))
	}
	if variadic {
		sb.WriteString(",...")
	}
	sb.WriteByte(')')

	ty := t.intern(sb.String(), func() ast.Type {
		fpt := &ast.FunctionProtoType{Params: params, IsVariadic: variadic}
		fpt.Return = ret

		return fpt
	})

	return ty.(*ast.FunctionProtoType)
}

// tagType interns the type of a struct, union, or enum declaration. A later
// definition of a forward-declared tag adopts the same type node, so the
// type's Decl field tracks the most complete declaration seen.
func (t *typeTable) tagType(specifier, name string, decl ast.Decl) ast.Type {
	key := specifier + " " + name

	ty := t.intern(key, func() ast.Type {
		if specifier == "enum_specifier" {
			et := &ast.EnumType{}
			et.Decl = decl

			return et
		}

		rt := &ast.RecordType{}
		rt.Decl = decl

		return rt
	})

	switch tt := ty.(type) {
	case *ast.RecordType:
		if rec, ok := decl.(*ast.RecordDecl); ok && (tt.Decl == nil || rec.IsComplete) {
			tt.Decl = decl
		}
	case *ast.EnumType:
		if en, ok := decl.(*ast.EnumDecl); ok && (tt.Decl == nil || en.IsComplete) {
			tt.Decl = decl
		}
	}

	return ty
}

func (t *typeTable) typedefOf(name string, decl *ast.TypedefDecl, child ast.QualType) *ast.TypedefType {
	ty := t.intern("typedef "+name, func() ast.Type {
		tt := &ast.TypedefType{Child: child}
		tt.Desugared = child.Type

		return tt
	})

	tt := ty.(*ast.TypedefType)
	if tt.Decl == nil {
		tt.Decl = decl
	}

	return tt
}

// qualKey renders a qualified type reference as an interning key.
func qualKey(qt ast.QualType) string {
	var sb strings.Builder
	if qt.IsConst {
		sb.WriteString("const ")
	}
	if qt.IsVolatile {
		sb.WriteString("volatile ")
	}
	if qt.IsRestrict {
		sb.WriteString("restrict ")
	}
	if qt.Type == nil {
		sb.WriteString("<none>")
	} else {
		sb.WriteString(fmt.Sprintf("%p", qt.Type))
	}

	return sb.String()
}

// lowerTypeSpecifier maps a type specifier node to a qualified type. Unknown
// specifiers produce a nil type, which encodes as the null type reference.
func (lw *lowerer) lowerTypeSpecifier(n sitter.Node) ast.QualType {
	if n.IsNull() {
		return ast.QualType{}
	}

	switch n.Type() {
	case "primitive_type", "sized_type_specifier":
		spelling := strings.Join(strings.Fields(lw.text(n)), " ")
		if kind, ok := builtinKinds[spelling]; ok {
			return ast.QualType{Type: lw.types.builtin(kind)}
		}

		return ast.QualType{}
	case "type_identifier":
		name := lw.text(n)
		if kind, ok := builtinKinds[name]; ok {
			return ast.QualType{Type: lw.types.builtin(kind)}
		}
		if ty, ok := lw.types.byKey["typedef "+name]; ok {
			return ast.QualType{Type: ty}
		}

		return ast.QualType{}
	case "struct_specifier", "union_specifier", "enum_specifier":
		nameNode := n.ChildByFieldName("name")
		name := ""
		if !nameNode.IsNull() {
			name = lw.text(nameNode)
		}
		if ty, ok := lw.types.byKey[n.Type()+" "+name]; ok {
			return ast.QualType{Type: ty}
		}
		// Reference to a tag not yet lowered; the declaration pass fills
		// in the decl edge later.
		return ast.QualType{Type: lw.types.tagType(n.Type(), name, nil)}
	default:
		return ast.QualType{}
	}
}

// applyQualifiers folds the declaration's type qualifiers into qt.
func (lw *lowerer) applyQualifiers(n sitter.Node, qt ast.QualType) ast.QualType {
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() != "type_qualifier" {
			continue
		}
		switch lw.text(child) {
		case "const":
			qt.IsConst = true
		case "volatile":
			qt.IsVolatile = true
		case "restrict":
			qt.IsRestrict = true
		}
	}

	return qt
}

// lowerDeclaratorType unwraps a declarator around base, returning the full
// declared type and the declared name.
func (lw *lowerer) lowerDeclaratorType(n sitter.Node, base ast.QualType) (ast.QualType, string) {
	switch n.Type() {
	case "identifier", "field_identifier", "type_identifier":
		return base, lw.text(n)
	case "pointer_declarator":
		inner := n.ChildByFieldName("declarator")
		wrapped := ast.QualType{Type: lw.types.pointerTo(base)}
		if inner.IsNull() {
			return wrapped, ""
		}

		return lw.lowerDeclaratorType(inner, wrapped)
	case "array_declarator":
		inner := n.ChildByFieldName("declarator")
		sizeNode := n.ChildByFieldName("size")

		var wrapped ast.QualType
		if !sizeNode.IsNull() {
			if size, err := strconv.ParseInt(lw.text(sizeNode), 0, 64); err == nil {
				wrapped = ast.QualType{Type: lw.types.constantArray(base, size)}
			} else {
				wrapped = ast.QualType{Type: lw.types.incompleteArray(base)}
			}
		} else {
			wrapped = ast.QualType{Type: lw.types.incompleteArray(base)}
		}
		if inner.IsNull() {
			return wrapped, ""
		}

		return lw.lowerDeclaratorType(inner, wrapped)
	case "parenthesized_declarator":
		inner := firstNamedChild(n)
		if inner.IsNull() {
			return base, ""
		}

		return lw.lowerDeclaratorType(inner, base)
	case "function_declarator":
		inner := n.ChildByFieldName("declarator")
		params, variadic := lw.lowerParameterList(n.ChildByFieldName("parameters"))
		paramTypes := make([]ast.QualType, 0, len(params))
		for _, p := range params {
			paramTypes = append(paramTypes, p.Type)
		}
		wrapped := ast.QualType{Type: lw.types.functionProto(base, paramTypes, variadic)}
		if inner.IsNull() {
			return wrapped, ""
		}

		return lw.lowerDeclaratorType(inner, wrapped)
	default:
		return base, lw.text(n)
	}
}
