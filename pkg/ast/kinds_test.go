package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclKindBaseChains(t *testing.T) {
	t.Parallel()

	for _, k := range DeclKinds() {
		if k == DeclDecl {
			assert.Equal(t, DeclNone, k.Base())
			continue
		}

		// Every non-root kind must walk up to the root in a bounded
		// number of steps.
		cur, steps := k, 0
		for cur != DeclDecl {
			cur = cur.Base()
			steps++
			require.NotEqual(t, DeclNone, cur, "kind %s has a broken base chain", k)
			require.Less(t, steps, 10)
		}
	}
}

func TestStmtKindBaseChains(t *testing.T) {
	t.Parallel()

	for _, k := range StmtKinds() {
		if k == StmtStmt {
			assert.Equal(t, StmtNone, k.Base())
			continue
		}

		cur, steps := k, 0
		for cur != StmtStmt {
			cur = cur.Base()
			steps++
			require.NotEqual(t, StmtNone, cur, "kind %s has a broken base chain", k)
			require.Less(t, steps, 10)
		}
	}

	assert.Equal(t, StmtBinaryOperator, StmtCompoundAssignOperator.Base())
	assert.Equal(t, StmtCastExpr, StmtImplicitCastExpr.Base())
}

func TestTypeKindBaseChains(t *testing.T) {
	t.Parallel()

	for _, k := range TypeKinds() {
		if k == TypeType {
			assert.Equal(t, TypeNone, k.Base())
			continue
		}

		cur, steps := k, 0
		for cur != TypeType {
			cur = cur.Base()
			steps++
			require.NotEqual(t, TypeNone, cur, "kind %s has a broken base chain", k)
			require.Less(t, steps, 10)
		}
	}
}

func TestCommentKindBaseChains(t *testing.T) {
	t.Parallel()

	for _, k := range CommentKinds() {
		if k == CommentComment {
			assert.Equal(t, CommentNone, k.Base())
			continue
		}

		assert.Equal(t, CommentComment, k.Base())
	}
}

func TestKindNamesAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, k := range DeclKinds() {
		name := k.String()
		require.False(t, seen[name], "duplicate decl kind name %q", name)
		seen[name] = true
	}

	seen = make(map[string]bool)
	for _, k := range StmtKinds() {
		name := k.String()
		require.False(t, seen[name], "duplicate stmt kind name %q", name)
		seen[name] = true
	}
}

func TestUnknownKindStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "UnknownDecl", DeclKind(999).String())
	assert.Equal(t, "UnknownStmt", StmtKind(999).String())
	assert.Equal(t, "UnknownType", TypeKind(999).String())
	assert.Equal(t, "UnknownComment", CommentKind(999).String())
}

func TestConcreteNodesReportTheirKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DeclTranslationUnit, (&TranslationUnitDecl{}).DeclKind())
	assert.Equal(t, DeclFunction, (&FunctionDecl{}).DeclKind())
	assert.Equal(t, DeclParmVar, (&ParmVarDecl{}).DeclKind())
	assert.Equal(t, StmtCompound, (&CompoundStmt{}).StmtKind())
	assert.Equal(t, StmtCompoundAssignOperator, (&CompoundAssignOperator{}).StmtKind())
	assert.Equal(t, TypeBuiltin, (&BuiltinType{}).TypeKind())
	assert.Equal(t, CommentText, (&TextComment{}).CommentKind())
}
