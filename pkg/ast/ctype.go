package ast

// Type is a node in the type graph. Types are shared: the same Type value may
// be referenced from many declarations and expressions, and the exporter
// interns them by identity.
type Type interface {
	TypeKind() TypeKind
	TypeInfo() *TypeBase
}

// TypeBase carries the fields common to every type node.
type TypeBase struct {
	// Desugared is the fully desugared form, or nil when the type is
	// already in canonical form.
	Desugared Type
}

// TypeInfo returns the shared type fields.
func (b *TypeBase) TypeInfo() *TypeBase {
	return b
}

// BuiltinKind identifies a builtin type.
type BuiltinKind int

// Builtin type kinds.
const (
	BuiltinVoid BuiltinKind = iota
	BuiltinBool
	BuiltinChar
	BuiltinSChar
	BuiltinUChar
	BuiltinShort
	BuiltinUShort
	BuiltinInt
	BuiltinUInt
	BuiltinLong
	BuiltinULong
	BuiltinLongLong
	BuiltinULongLong
	BuiltinFloat
	BuiltinDouble
	BuiltinLongDouble
)

var builtinKindNames = [...]string{
	BuiltinVoid:       "Void",
	BuiltinBool:       "Bool",
	BuiltinChar:       "Char",
	BuiltinSChar:      "SChar",
	BuiltinUChar:      "UChar",
	BuiltinShort:      "Short",
	BuiltinUShort:     "UShort",
	BuiltinInt:        "Int",
	BuiltinUInt:       "UInt",
	BuiltinLong:       "Long",
	BuiltinULong:      "ULong",
	BuiltinLongLong:   "LongLong",
	BuiltinULongLong:  "ULongLong",
	BuiltinFloat:      "Float",
	BuiltinDouble:     "Double",
	BuiltinLongDouble: "LongDouble",
}

// String returns the wire variant name of the builtin kind.
func (k BuiltinKind) String() string {
	if int(k) < len(builtinKindNames) {
		return builtinKindNames[k]
	}

	return "UnknownBuiltin"
}

// NoneType is the sentinel standing in for an absent type.
type NoneType struct {
	TypeBase
}

// TypeKind returns TypeNoneKind.
func (*NoneType) TypeKind() TypeKind { return TypeNoneKind }

// BuiltinType is a language-builtin scalar type.
type BuiltinType struct {
	TypeBase
	Kind BuiltinKind
}

// TypeKind returns TypeBuiltin.
func (*BuiltinType) TypeKind() TypeKind { return TypeBuiltin }

// PointerType points at Pointee.
type PointerType struct {
	TypeBase
	Pointee QualType
}

// TypeKind returns TypePointer.
func (*PointerType) TypeKind() TypeKind { return TypePointer }

// ParenType wraps Inner in sugar parentheses.
type ParenType struct {
	TypeBase
	Inner QualType
}

// TypeKind returns TypeParen.
func (*ParenType) TypeKind() TypeKind { return TypeParen }

// ArrayTypeBase carries the element type shared by the array forms.
type ArrayTypeBase struct {
	TypeBase
	Element QualType
}

// ArrayInfo returns the array fields.
func (b *ArrayTypeBase) ArrayInfo() *ArrayTypeBase {
	return b
}

// ConstantArrayType has a size fixed at compile time.
type ConstantArrayType struct {
	ArrayTypeBase
	Size int64
}

// TypeKind returns TypeConstantArray.
func (*ConstantArrayType) TypeKind() TypeKind { return TypeConstantArray }

// IncompleteArrayType has no declared size.
type IncompleteArrayType struct {
	ArrayTypeBase
}

// TypeKind returns TypeIncompleteArray.
func (*IncompleteArrayType) TypeKind() TypeKind { return TypeIncompleteArray }

// FunctionTypeBase carries the return type shared by the function forms.
type FunctionTypeBase struct {
	TypeBase
	Return QualType
}

// FunctionInfo returns the function type fields.
func (b *FunctionTypeBase) FunctionInfo() *FunctionTypeBase {
	return b
}

// FunctionProtoType is a function type with a parameter list.
type FunctionProtoType struct {
	FunctionTypeBase
	Params     []QualType
	IsVariadic bool
}

// TypeKind returns TypeFunctionProto.
func (*FunctionProtoType) TypeKind() TypeKind { return TypeFunctionProto }

// TagTypeBase carries the reference to the defining tag declaration.
type TagTypeBase struct {
	TypeBase
	Decl Decl
}

// TagInfo returns the tag type fields.
func (b *TagTypeBase) TagInfo() *TagTypeBase {
	return b
}

// RecordType names a struct or union declaration.
type RecordType struct {
	TagTypeBase
}

// TypeKind returns TypeRecord.
func (*RecordType) TypeKind() TypeKind { return TypeRecord }

// EnumType names an enum declaration.
type EnumType struct {
	TagTypeBase
}

// TypeKind returns TypeEnum.
func (*EnumType) TypeKind() TypeKind { return TypeEnum }

// TypedefType names a typedef declaration; Child is the aliased type.
type TypedefType struct {
	TypeBase
	Decl  *TypedefDecl
	Child QualType
}

// TypeKind returns TypeTypedef.
func (*TypedefType) TypeKind() TypeKind { return TypeTypedef }
