package exporter

import (
	"fmt"

	"github.com/treewire/treewire/pkg/ast"
)

// The dispatch tables below drive encoding and arity computation for the
// four node categories. Each entry records how many tuple slots the kind
// contributes on top of its base; the total tuple arity of a kind is the sum
// along its base chain. Every visit function emits the base slots first,
// keeping base-to-derived field order on the wire.
//
// Abstract kinds have a nil visit: they contribute slots to derived kinds
// but never appear as a node's own kind.

type declOp struct {
	own   int
	visit func(*Session, ast.Decl)
}

type stmtOp struct {
	own   int
	visit func(*Session, ast.Stmt)
}

type typeOp struct {
	own   int
	visit func(*Session, ast.Type)
}

type commentOp struct {
	own   int
	visit func(*Session, ast.Comment)
}

var (
	declOps    map[ast.DeclKind]declOp
	stmtOps    map[ast.StmtKind]stmtOp
	typeOps    map[ast.TypeKind]typeOp
	commentOps map[ast.CommentKind]commentOp
)

// The visit methods call the arity functions, which read these maps, so the
// tables are filled in init rather than in their declarations.
func init() {
	declOps = map[ast.DeclKind]declOp{
		ast.DeclDecl:            {own: 1},
		ast.DeclTranslationUnit: {own: 3, visit: (*Session).visitTranslationUnitDecl},
		ast.DeclEmpty:           {own: 0, visit: (*Session).visitEmptyDecl},
		ast.DeclNamed:           {own: 1},
		ast.DeclLabel:           {own: 0, visit: (*Session).visitLabelDecl},
		ast.DeclNamespace:       {own: 3, visit: (*Session).visitNamespaceDecl},
		ast.DeclType:            {own: 1},
		ast.DeclTypedef:         {own: 1, visit: (*Session).visitTypedefDecl},
		ast.DeclTag:             {own: 2},
		ast.DeclEnum:            {own: 1, visit: (*Session).visitEnumDecl},
		ast.DeclRecord:          {own: 1, visit: (*Session).visitRecordDecl},
		ast.DeclValue:           {own: 1},
		ast.DeclEnumConstant:    {own: 1, visit: (*Session).visitEnumConstantDecl},
		ast.DeclDeclarator:      {own: 0},
		ast.DeclFunction:        {own: 1, visit: (*Session).visitFunctionDecl},
		ast.DeclField:           {own: 1, visit: (*Session).visitFieldDecl},
		ast.DeclVar:             {own: 1, visit: (*Session).visitVarDecl},
		ast.DeclParmVar:         {own: 0, visit: (*Session).visitParmVarDecl},
		ast.DeclImport:          {own: 1, visit: (*Session).visitImportDecl},
	}

	stmtOps = map[ast.StmtKind]stmtOp{
		ast.StmtStmt:                   {own: 2},
		ast.StmtCompound:               {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtNull:                   {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtDecl:                   {own: 1, visit: (*Session).visitDeclStmt},
		ast.StmtIf:                     {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtWhile:                  {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtDo:                     {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtFor:                    {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtSwitch:                 {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtCase:                   {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtDefault:                {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtBreak:                  {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtContinue:               {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtReturn:                 {own: 0, visit: (*Session).visitPlainStmt},
		ast.StmtLabel:                  {own: 1, visit: (*Session).visitLabelStmt},
		ast.StmtGoto:                   {own: 1, visit: (*Session).visitGotoStmt},
		ast.StmtExpr:                   {own: 1},
		ast.StmtDeclRefExpr:            {own: 1, visit: (*Session).visitDeclRefExpr},
		ast.StmtIntegerLiteral:         {own: 1, visit: (*Session).visitIntegerLiteral},
		ast.StmtFloatingLiteral:        {own: 1, visit: (*Session).visitFloatingLiteral},
		ast.StmtCharacterLiteral:       {own: 1, visit: (*Session).visitCharacterLiteral},
		ast.StmtStringLiteral:          {own: 1, visit: (*Session).visitStringLiteral},
		ast.StmtUnaryOperator:          {own: 1, visit: (*Session).visitUnaryOperator},
		ast.StmtBinaryOperator:         {own: 1, visit: (*Session).visitBinaryOperator},
		ast.StmtCompoundAssignOperator: {own: 0, visit: (*Session).visitCompoundAssignOperator},
		ast.StmtCallExpr:               {own: 0, visit: (*Session).visitPlainExpr},
		ast.StmtMemberExpr:             {own: 1, visit: (*Session).visitMemberExpr},
		ast.StmtArraySubscriptExpr:     {own: 0, visit: (*Session).visitPlainExpr},
		ast.StmtParenExpr:              {own: 0, visit: (*Session).visitPlainExpr},
		ast.StmtInitListExpr:           {own: 0, visit: (*Session).visitPlainExpr},
		ast.StmtConditionalOperator:    {own: 0, visit: (*Session).visitPlainExpr},
		ast.StmtCastExpr:               {own: 1},
		ast.StmtImplicitCastExpr:       {own: 0, visit: (*Session).visitCastExprNode},
		ast.StmtCStyleCastExpr:         {own: 0, visit: (*Session).visitCastExprNode},
	}

	typeOps = map[ast.TypeKind]typeOp{
		ast.TypeType:            {own: 1},
		ast.TypeNoneKind:        {own: 0, visit: (*Session).visitNoneType},
		ast.TypeBuiltin:         {own: 1, visit: (*Session).visitBuiltinType},
		ast.TypePointer:         {own: 1, visit: (*Session).visitPointerType},
		ast.TypeParen:           {own: 1, visit: (*Session).visitParenType},
		ast.TypeArray:           {own: 1},
		ast.TypeConstantArray:   {own: 1, visit: (*Session).visitConstantArrayType},
		ast.TypeIncompleteArray: {own: 0, visit: (*Session).visitIncompleteArrayType},
		ast.TypeFunction:        {own: 1},
		ast.TypeFunctionProto:   {own: 1, visit: (*Session).visitFunctionProtoType},
		ast.TypeTag:             {own: 1},
		ast.TypeRecord:          {own: 0, visit: (*Session).visitTagTypeNode},
		ast.TypeEnum:            {own: 0, visit: (*Session).visitTagTypeNode},
		ast.TypeTypedef:         {own: 1, visit: (*Session).visitTypedefType},
	}

	commentOps = map[ast.CommentKind]commentOp{
		ast.CommentComment:      {own: 2},
		ast.CommentNoComment:    {own: 0, visit: (*Session).visitPlainComment},
		ast.CommentFull:         {own: 0, visit: (*Session).visitPlainComment},
		ast.CommentParagraph:    {own: 0, visit: (*Session).visitPlainComment},
		ast.CommentText:         {own: 1, visit: (*Session).visitTextComment},
		ast.CommentBlockCommand: {own: 1, visit: (*Session).visitBlockCommandComment},
		ast.CommentVerbatimLine: {own: 1, visit: (*Session).visitVerbatimLineComment},
	}
}

func declArity(k ast.DeclKind) int {
	op, ok := declOps[k]
	if !ok {
		panic(fmt.Sprintf("exporter: unknown decl kind %d", k))
	}
	if base := k.Base(); base != ast.DeclNone {
		return declArity(base) + op.own
	}

	return op.own
}

func stmtArity(k ast.StmtKind) int {
	op, ok := stmtOps[k]
	if !ok {
		panic(fmt.Sprintf("exporter: unknown stmt kind %d", k))
	}
	if base := k.Base(); base != ast.StmtNone {
		return stmtArity(base) + op.own
	}

	return op.own
}

func typeArity(k ast.TypeKind) int {
	op, ok := typeOps[k]
	if !ok {
		panic(fmt.Sprintf("exporter: unknown type kind %d", k))
	}
	if base := k.Base(); base != ast.TypeNone {
		return typeArity(base) + op.own
	}

	return op.own
}

func commentArity(k ast.CommentKind) int {
	op, ok := commentOps[k]
	if !ok {
		panic(fmt.Sprintf("exporter: unknown comment kind %d", k))
	}
	if base := k.Base(); base != ast.CommentNone {
		return commentArity(base) + op.own
	}

	return op.own
}
