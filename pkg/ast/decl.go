package ast

// Decl is the interface implemented by all declaration nodes.
type Decl interface {
	DeclKind() DeclKind
	DeclInfo() *DeclBase
}

// DeclBase carries the fields shared by every declaration: the base-most
// field group of the decl tuple. Parent is the semantic declaration context;
// LexicalParent is set only when it differs from Parent. Previous links
// redeclarations of the same entity back to the earlier declaration.
type DeclBase struct {
	Parent        Decl
	LexicalParent Decl
	Previous      Decl
	Range         SourceRange
	OwningModule  string
	IsImplicit    bool
	IsUsed        bool
	IsReferenced  bool
	IsInvalid     bool
	Attrs         []*Attr
	Comment       Comment
	Access        AccessSpecifier
}

// DeclInfo returns the shared declaration fields.
func (b *DeclBase) DeclInfo() *DeclBase {
	return b
}

// DeclContext is the mixin carried by declarations that own other
// declarations. Members are stored in declaration order; the exporter
// deep-encodes them as tree edges.
type DeclContext struct {
	Members                   []Decl
	HasExternalLexicalStorage bool
	HasExternalVisibleStorage bool
}

// DeclContextOf returns the declaration's context mixin, or nil if the
// declaration does not own members.
func DeclContextOf(d Decl) *DeclContext {
	dc, ok := d.(interface{ declContext() *DeclContext })
	if !ok {
		return nil
	}

	return dc.declContext()
}

func (c *DeclContext) declContext() *DeclContext {
	return c
}

// NamedDeclBase extends DeclBase with a name. QualName is the fully
// qualified name, outermost component first.
type NamedDeclBase struct {
	DeclBase
	Name     string
	QualName []string
}

// NamedInfo returns the naming fields.
func (b *NamedDeclBase) NamedInfo() *NamedDeclBase {
	return b
}

// NamedDecl is implemented by every declaration that carries a name.
type NamedDecl interface {
	Decl
	NamedInfo() *NamedDeclBase
}

// TypeDeclBase extends NamedDeclBase for declarations that introduce a type.
type TypeDeclBase struct {
	NamedDeclBase
	DeclaredType Type
}

// TypeDeclInfo returns the type-declaration fields.
func (b *TypeDeclBase) TypeDeclInfo() *TypeDeclBase {
	return b
}

// TypeDecl is implemented by every declaration that introduces a type.
type TypeDecl interface {
	NamedDecl
	TypeDeclInfo() *TypeDeclBase
}

// ValueDeclBase extends NamedDeclBase for declarations that have a value
// type (variables, fields, functions, enum constants).
type ValueDeclBase struct {
	NamedDeclBase
	Type QualType
}

// ValueInfo returns the value-declaration fields.
func (b *ValueDeclBase) ValueInfo() *ValueDeclBase {
	return b
}

// ValueDecl is implemented by every declaration that has a value type.
type ValueDecl interface {
	NamedDecl
	ValueInfo() *ValueDeclBase
}

// DeclaratorDeclBase is the base of declarations introduced by declarators.
// It contributes no wire fields of its own.
type DeclaratorDeclBase struct {
	ValueDeclBase
}

// TagDeclBase is the base of struct/union/enum declarations.
type TagDeclBase struct {
	TypeDeclBase
	DeclContext
}

// TranslationUnitDecl is the root declaration of one input file.
type TranslationUnitDecl struct {
	DeclBase
	DeclContext
	InputPath string
	InputKind InputKind
	Types     []Type
}

// DeclKind returns DeclTranslationUnit.
func (*TranslationUnitDecl) DeclKind() DeclKind { return DeclTranslationUnit }

// EmptyDecl is a declaration with no content. It doubles as the wire
// encoding of a null declaration reference.
type EmptyDecl struct {
	DeclBase
}

// DeclKind returns DeclEmpty.
func (*EmptyDecl) DeclKind() DeclKind { return DeclEmpty }

// LabelDecl names a statement label.
type LabelDecl struct {
	NamedDeclBase
}

// DeclKind returns DeclLabel.
func (*LabelDecl) DeclKind() DeclKind { return DeclLabel }

// NamespaceDecl is a named scope owning declarations. Original points to the
// first declaration of a reopened namespace and is encoded as a reference.
type NamespaceDecl struct {
	NamedDeclBase
	DeclContext
	IsInline bool
	Original *NamespaceDecl
}

// DeclKind returns DeclNamespace.
func (*NamespaceDecl) DeclKind() DeclKind { return DeclNamespace }

// TypedefDecl introduces a name for an underlying type.
type TypedefDecl struct {
	TypeDeclBase
	Underlying      QualType
	IsModulePrivate bool
}

// DeclKind returns DeclTypedef.
func (*TypedefDecl) DeclKind() DeclKind { return DeclTypedef }

// EnumDecl declares an enumeration.
type EnumDecl struct {
	TagDeclBase
	IsComplete bool
	IsScoped   bool
}

// DeclKind returns DeclEnum.
func (*EnumDecl) DeclKind() DeclKind { return DeclEnum }

// RecordDecl declares a struct or union. Definition points at the defining
// declaration when this one is only a forward declaration.
type RecordDecl struct {
	TagDeclBase
	IsUnion    bool
	IsComplete bool
	Definition *RecordDecl
}

// DeclKind returns DeclRecord.
func (*RecordDecl) DeclKind() DeclKind { return DeclRecord }

// EnumConstantDecl is one enumerator of an EnumDecl.
type EnumConstantDecl struct {
	ValueDeclBase
	Init Stmt
}

// DeclKind returns DeclEnumConstant.
func (*EnumConstantDecl) DeclKind() DeclKind { return DeclEnumConstant }

// FunctionDecl declares or defines a function.
type FunctionDecl struct {
	DeclaratorDeclBase
	MangledName  string
	StorageClass string
	IsInline     bool
	IsPure       bool
	IsNoThrow    bool
	IsVariadic   bool
	Params       []*ParmVarDecl
	Body         Stmt
	DeclWithBody *FunctionDecl
}

// DeclKind returns DeclFunction.
func (*FunctionDecl) DeclKind() DeclKind { return DeclFunction }

// FieldDecl is a member of a RecordDecl.
type FieldDecl struct {
	DeclaratorDeclBase
	IsMutable bool
	BitWidth  Stmt
	Init      Stmt
}

// DeclKind returns DeclField.
func (*FieldDecl) DeclKind() DeclKind { return DeclField }

// VarDecl declares a variable.
type VarDecl struct {
	DeclaratorDeclBase
	StorageClass  string
	IsGlobal      bool
	IsStaticLocal bool
	IsConstexpr   bool
	Init          Stmt
}

// DeclKind returns DeclVar.
func (*VarDecl) DeclKind() DeclKind { return DeclVar }

// ParmVarDecl is a function parameter. It contributes no wire fields beyond
// VarDecl's.
type ParmVarDecl struct {
	VarDecl
}

// DeclKind returns DeclParmVar.
func (*ParmVarDecl) DeclKind() DeclKind { return DeclParmVar }

// ImportDecl records a module import.
type ImportDecl struct {
	DeclBase
	ModuleName string
}

// DeclKind returns DeclImport.
func (*ImportDecl) DeclKind() DeclKind { return DeclImport }
