// Package ast defines the node taxonomy consumed by the wire exporter: the
// Decl, Stmt, Type, and Comment categories, each arranged in a closed
// single-inheritance lattice realized through struct embedding.
//
// Trees are produced by a frontend (see internal/frontend) and consumed
// read-only. The exporter never mutates or frees nodes; node identity (the
// pointer) is used only as an interning key and never appears in output.
package ast

// SourceLocation is a resolved position in a source file.
// A zero File marks the location as invalid.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the location points into a real file.
func (l SourceLocation) IsValid() bool {
	return l.File != ""
}

// SourceRange is a begin/end pair of source locations.
type SourceRange struct {
	Begin SourceLocation
	End   SourceLocation
}

// QualType is a reference to a type together with its local qualifiers.
// A nil Type means "no type" and encodes as the null type reference.
type QualType struct {
	Type       Type
	IsConst    bool
	IsVolatile bool
	IsRestrict bool
}

// AccessSpecifier is the member access level of a declaration.
type AccessSpecifier int

// Access specifier values. AccessNone is the default for non-member
// declarations and is omitted from output.
const (
	AccessNone AccessSpecifier = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

// String returns the wire name of the access specifier.
func (a AccessSpecifier) String() string {
	switch a {
	case AccessPublic:
		return "Public"
	case AccessProtected:
		return "Protected"
	case AccessPrivate:
		return "Private"
	default:
		return "None"
	}
}

// InputKind is the language family of a translation unit's input file.
type InputKind int

// Input kind values.
const (
	InputNone InputKind = iota
	InputC
	InputCXX
	InputObjC
	InputAsm
)

// String returns the wire name of the input kind.
func (k InputKind) String() string {
	switch k {
	case InputC:
		return "IK_C"
	case InputCXX:
		return "IK_CXX"
	case InputObjC:
		return "IK_ObjC"
	case InputAsm:
		return "IK_Asm"
	default:
		return "IK_None"
	}
}

// AttrKind identifies an attribute attached to a declaration.
type AttrKind int

// Attribute kinds.
const (
	AttrPacked AttrKind = iota
	AttrAligned
	AttrDeprecated
	AttrUnused
	AttrUsed
	AttrNoReturn
	AttrNoInline
	AttrAlwaysInline
	AttrConst
	AttrPure
	AttrWeak
	AttrVisibility
	AttrFormat
	AttrSection
	AttrCleanup
)

// String returns the wire variant name of the attribute kind.
func (k AttrKind) String() string {
	switch k {
	case AttrPacked:
		return "PackedAttr"
	case AttrAligned:
		return "AlignedAttr"
	case AttrDeprecated:
		return "DeprecatedAttr"
	case AttrUnused:
		return "UnusedAttr"
	case AttrUsed:
		return "UsedAttr"
	case AttrNoReturn:
		return "NoReturnAttr"
	case AttrNoInline:
		return "NoInlineAttr"
	case AttrAlwaysInline:
		return "AlwaysInlineAttr"
	case AttrConst:
		return "ConstAttr"
	case AttrPure:
		return "PureAttr"
	case AttrWeak:
		return "WeakAttr"
	case AttrVisibility:
		return "VisibilityAttr"
	case AttrFormat:
		return "FormatAttr"
	case AttrSection:
		return "SectionAttr"
	case AttrCleanup:
		return "CleanupAttr"
	default:
		return "UnknownAttr"
	}
}

// Attr is one attribute instance attached to a declaration.
type Attr struct {
	Kind        AttrKind
	Range       SourceRange
	Params      []string
	IsInherited bool
	IsImplicit  bool
}
