package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocationIsValid(t *testing.T) {
	t.Parallel()

	assert.False(t, SourceLocation{}.IsValid())
	assert.False(t, SourceLocation{Line: 3, Column: 7}.IsValid())
	assert.True(t, SourceLocation{File: "a.c", Line: 1, Column: 1}.IsValid())
}

func TestDeclContextOf(t *testing.T) {
	t.Parallel()

	tu := &TranslationUnitDecl{}
	rec := &RecordDecl{}
	fn := &FunctionDecl{}

	require.NotNil(t, DeclContextOf(tu))
	require.NotNil(t, DeclContextOf(rec))
	assert.Nil(t, DeclContextOf(fn))

	ctx := DeclContextOf(tu)
	ctx.Members = append(ctx.Members, fn)
	assert.Len(t, tu.Members, 1)
}

func TestAccessorsPromoteThroughEmbedding(t *testing.T) {
	t.Parallel()

	fn := &FunctionDecl{}
	fn.Name = "main"
	fn.IsUsed = true

	assert.Equal(t, "main", fn.NamedInfo().Name)
	assert.True(t, fn.DeclInfo().IsUsed)
	assert.Same(t, &fn.ValueDeclBase, fn.ValueInfo())

	cast := &ImplicitCastExpr{}
	cast.Cast = CastLValueToRValue
	assert.Equal(t, CastLValueToRValue, cast.CastInfo().Cast)
	assert.Equal(t, ValueRValue, cast.ExprInfo().ValueKind)
}

func TestUnaryOpcodePostfix(t *testing.T) {
	t.Parallel()

	assert.True(t, UnaryPostInc.IsPostfix())
	assert.True(t, UnaryPostDec.IsPostfix())
	assert.False(t, UnaryPreInc.IsPostfix())
	assert.False(t, UnaryDeref.IsPostfix())
}

func TestBinaryOpcodeCompoundAssign(t *testing.T) {
	t.Parallel()

	assert.False(t, BinaryAssign.IsCompoundAssign())
	assert.True(t, BinaryAddAssign.IsCompoundAssign())
	assert.True(t, BinaryOrAssign.IsCompoundAssign())
	assert.False(t, BinaryComma.IsCompoundAssign())
}

func TestInputKindStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "IK_C", InputC.String())
	assert.Equal(t, "IK_CXX", InputCXX.String())
	assert.Equal(t, "IK_None", InputNone.String())
}
