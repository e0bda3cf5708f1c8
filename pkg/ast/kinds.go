package ast

// The kind enumerations below are the closed taxonomy the exporter dispatches
// over. Every kind has exactly one immediate base kind; the base-to-derived
// chain determines the wire tuple layout and must stay in sync with the
// struct embedding chains in this package.

// DeclKind identifies a declaration node variant.
type DeclKind int

// Declaration kinds. Abstract kinds never appear on concrete nodes but do
// appear as base kinds.
const (
	DeclNone DeclKind = iota
	DeclDecl          // abstract root
	DeclTranslationUnit
	DeclEmpty
	DeclNamed // abstract
	DeclLabel
	DeclNamespace
	DeclType // abstract
	DeclTypedef
	DeclTag // abstract
	DeclEnum
	DeclRecord
	DeclValue // abstract
	DeclEnumConstant
	DeclDeclarator // abstract
	DeclFunction
	DeclField
	DeclVar
	DeclParmVar
	DeclImport
)

var declKindNames = map[DeclKind]string{
	DeclDecl:            "Decl",
	DeclTranslationUnit: "TranslationUnitDecl",
	DeclEmpty:           "EmptyDecl",
	DeclNamed:           "NamedDecl",
	DeclLabel:           "LabelDecl",
	DeclNamespace:       "NamespaceDecl",
	DeclType:            "TypeDecl",
	DeclTypedef:         "TypedefDecl",
	DeclTag:             "TagDecl",
	DeclEnum:            "EnumDecl",
	DeclRecord:          "RecordDecl",
	DeclValue:           "ValueDecl",
	DeclEnumConstant:    "EnumConstantDecl",
	DeclDeclarator:      "DeclaratorDecl",
	DeclFunction:        "FunctionDecl",
	DeclField:           "FieldDecl",
	DeclVar:             "VarDecl",
	DeclParmVar:         "ParmVarDecl",
	DeclImport:          "ImportDecl",
}

var declKindBases = map[DeclKind]DeclKind{
	DeclTranslationUnit: DeclDecl,
	DeclEmpty:           DeclDecl,
	DeclNamed:           DeclDecl,
	DeclLabel:           DeclNamed,
	DeclNamespace:       DeclNamed,
	DeclType:            DeclNamed,
	DeclTypedef:         DeclType,
	DeclTag:             DeclType,
	DeclEnum:            DeclTag,
	DeclRecord:          DeclTag,
	DeclValue:           DeclNamed,
	DeclEnumConstant:    DeclValue,
	DeclDeclarator:      DeclValue,
	DeclFunction:        DeclDeclarator,
	DeclField:           DeclDeclarator,
	DeclVar:             DeclDeclarator,
	DeclParmVar:         DeclVar,
	DeclImport:          DeclDecl,
}

// String returns the wire variant name of the kind.
func (k DeclKind) String() string {
	if name, ok := declKindNames[k]; ok {
		return name
	}

	return "UnknownDecl"
}

// Base returns the immediate base kind, or DeclNone for the root.
func (k DeclKind) Base() DeclKind {
	return declKindBases[k]
}

// DeclKinds returns every defined declaration kind in declaration order.
func DeclKinds() []DeclKind {
	kinds := make([]DeclKind, 0, len(declKindNames))
	for k := DeclDecl; k <= DeclImport; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// StmtKind identifies a statement or expression node variant.
type StmtKind int

// Statement and expression kinds.
const (
	StmtNone StmtKind = iota
	StmtStmt          // abstract root
	StmtCompound
	StmtNull
	StmtDecl
	StmtIf
	StmtWhile
	StmtDo
	StmtFor
	StmtSwitch
	StmtCase
	StmtDefault
	StmtBreak
	StmtContinue
	StmtReturn
	StmtLabel
	StmtGoto
	StmtExpr // abstract
	StmtDeclRefExpr
	StmtIntegerLiteral
	StmtFloatingLiteral
	StmtCharacterLiteral
	StmtStringLiteral
	StmtUnaryOperator
	StmtBinaryOperator
	StmtCompoundAssignOperator
	StmtCallExpr
	StmtMemberExpr
	StmtArraySubscriptExpr
	StmtParenExpr
	StmtInitListExpr
	StmtConditionalOperator
	StmtCastExpr // abstract
	StmtImplicitCastExpr
	StmtCStyleCastExpr
)

var stmtKindNames = map[StmtKind]string{
	StmtStmt:                   "Stmt",
	StmtCompound:               "CompoundStmt",
	StmtNull:                   "NullStmt",
	StmtDecl:                   "DeclStmt",
	StmtIf:                     "IfStmt",
	StmtWhile:                  "WhileStmt",
	StmtDo:                     "DoStmt",
	StmtFor:                    "ForStmt",
	StmtSwitch:                 "SwitchStmt",
	StmtCase:                   "CaseStmt",
	StmtDefault:                "DefaultStmt",
	StmtBreak:                  "BreakStmt",
	StmtContinue:               "ContinueStmt",
	StmtReturn:                 "ReturnStmt",
	StmtLabel:                  "LabelStmt",
	StmtGoto:                   "GotoStmt",
	StmtExpr:                   "Expr",
	StmtDeclRefExpr:            "DeclRefExpr",
	StmtIntegerLiteral:         "IntegerLiteral",
	StmtFloatingLiteral:        "FloatingLiteral",
	StmtCharacterLiteral:       "CharacterLiteral",
	StmtStringLiteral:          "StringLiteral",
	StmtUnaryOperator:          "UnaryOperator",
	StmtBinaryOperator:         "BinaryOperator",
	StmtCompoundAssignOperator: "CompoundAssignOperator",
	StmtCallExpr:               "CallExpr",
	StmtMemberExpr:             "MemberExpr",
	StmtArraySubscriptExpr:     "ArraySubscriptExpr",
	StmtParenExpr:              "ParenExpr",
	StmtInitListExpr:           "InitListExpr",
	StmtConditionalOperator:    "ConditionalOperator",
	StmtCastExpr:               "CastExpr",
	StmtImplicitCastExpr:       "ImplicitCastExpr",
	StmtCStyleCastExpr:         "CStyleCastExpr",
}

var stmtKindBases = map[StmtKind]StmtKind{
	StmtCompound:               StmtStmt,
	StmtNull:                   StmtStmt,
	StmtDecl:                   StmtStmt,
	StmtIf:                     StmtStmt,
	StmtWhile:                  StmtStmt,
	StmtDo:                     StmtStmt,
	StmtFor:                    StmtStmt,
	StmtSwitch:                 StmtStmt,
	StmtCase:                   StmtStmt,
	StmtDefault:                StmtStmt,
	StmtBreak:                  StmtStmt,
	StmtContinue:               StmtStmt,
	StmtReturn:                 StmtStmt,
	StmtLabel:                  StmtStmt,
	StmtGoto:                   StmtStmt,
	StmtExpr:                   StmtStmt,
	StmtDeclRefExpr:            StmtExpr,
	StmtIntegerLiteral:         StmtExpr,
	StmtFloatingLiteral:        StmtExpr,
	StmtCharacterLiteral:       StmtExpr,
	StmtStringLiteral:          StmtExpr,
	StmtUnaryOperator:          StmtExpr,
	StmtBinaryOperator:         StmtExpr,
	StmtCompoundAssignOperator: StmtBinaryOperator,
	StmtCallExpr:               StmtExpr,
	StmtMemberExpr:             StmtExpr,
	StmtArraySubscriptExpr:     StmtExpr,
	StmtParenExpr:              StmtExpr,
	StmtInitListExpr:           StmtExpr,
	StmtConditionalOperator:    StmtExpr,
	StmtCastExpr:               StmtExpr,
	StmtImplicitCastExpr:       StmtCastExpr,
	StmtCStyleCastExpr:         StmtCastExpr,
}

// String returns the wire variant name of the kind.
func (k StmtKind) String() string {
	if name, ok := stmtKindNames[k]; ok {
		return name
	}

	return "UnknownStmt"
}

// Base returns the immediate base kind, or StmtNone for the root.
func (k StmtKind) Base() StmtKind {
	return stmtKindBases[k]
}

// StmtKinds returns every defined statement kind in declaration order.
func StmtKinds() []StmtKind {
	kinds := make([]StmtKind, 0, len(stmtKindNames))
	for k := StmtStmt; k <= StmtCStyleCastExpr; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// TypeKind identifies a type node variant.
type TypeKind int

// Type kinds. TypeNoneKind is the designated encoding of the null type.
const (
	TypeNone TypeKind = iota
	TypeType          // abstract root
	TypeNoneKind
	TypeBuiltin
	TypePointer
	TypeParen
	TypeArray // abstract
	TypeConstantArray
	TypeIncompleteArray
	TypeFunction // abstract
	TypeFunctionProto
	TypeTag // abstract
	TypeRecord
	TypeEnum
	TypeTypedef
)

var typeKindNames = map[TypeKind]string{
	TypeType:            "Type",
	TypeNoneKind:        "NoneType",
	TypeBuiltin:         "BuiltinType",
	TypePointer:         "PointerType",
	TypeParen:           "ParenType",
	TypeArray:           "ArrayType",
	TypeConstantArray:   "ConstantArrayType",
	TypeIncompleteArray: "IncompleteArrayType",
	TypeFunction:        "FunctionType",
	TypeFunctionProto:   "FunctionProtoType",
	TypeTag:             "TagType",
	TypeRecord:          "RecordType",
	TypeEnum:            "EnumType",
	TypeTypedef:         "TypedefType",
}

var typeKindBases = map[TypeKind]TypeKind{
	TypeNoneKind:        TypeType,
	TypeBuiltin:         TypeType,
	TypePointer:         TypeType,
	TypeParen:           TypeType,
	TypeArray:           TypeType,
	TypeConstantArray:   TypeArray,
	TypeIncompleteArray: TypeArray,
	TypeFunction:        TypeType,
	TypeFunctionProto:   TypeFunction,
	TypeTag:             TypeType,
	TypeRecord:          TypeTag,
	TypeEnum:            TypeTag,
	TypeTypedef:         TypeType,
}

// String returns the wire variant name of the kind.
func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}

	return "UnknownType"
}

// Base returns the immediate base kind, or TypeNone for the root.
func (k TypeKind) Base() TypeKind {
	return typeKindBases[k]
}

// TypeKinds returns every defined type kind in declaration order.
func TypeKinds() []TypeKind {
	kinds := make([]TypeKind, 0, len(typeKindNames))
	for k := TypeType; k <= TypeTypedef; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// CommentKind identifies a documentation comment node variant.
type CommentKind int

// Comment kinds. CommentNoComment is the designated encoding of a null
// comment reference.
const (
	CommentNone CommentKind = iota
	CommentComment          // abstract root
	CommentNoComment
	CommentFull
	CommentParagraph
	CommentText
	CommentBlockCommand
	CommentVerbatimLine
)

var commentKindNames = map[CommentKind]string{
	CommentComment:      "Comment",
	CommentNoComment:    "NoComment",
	CommentFull:         "FullComment",
	CommentParagraph:    "ParagraphComment",
	CommentText:         "TextComment",
	CommentBlockCommand: "BlockCommandComment",
	CommentVerbatimLine: "VerbatimLineComment",
}

var commentKindBases = map[CommentKind]CommentKind{
	CommentNoComment:    CommentComment,
	CommentFull:         CommentComment,
	CommentParagraph:    CommentComment,
	CommentText:         CommentComment,
	CommentBlockCommand: CommentComment,
	CommentVerbatimLine: CommentComment,
}

// String returns the wire variant name of the kind.
func (k CommentKind) String() string {
	if name, ok := commentKindNames[k]; ok {
		return name
	}

	return "UnknownComment"
}

// Base returns the immediate base kind, or CommentNone for the root.
func (k CommentKind) Base() CommentKind {
	return commentKindBases[k]
}

// CommentKinds returns every defined comment kind in declaration order.
func CommentKinds() []CommentKind {
	kinds := make([]CommentKind, 0, len(commentKindNames))
	for k := CommentComment; k <= CommentVerbatimLine; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}
