package frontend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treewire/treewire/pkg/ast"
)

func parseSource(t *testing.T, src string) *ast.TranslationUnitDecl {
	t.Helper()

	p := NewParser(Options{Comments: true})
	tu, err := p.Parse(context.Background(), "test.c", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, tu)

	return tu
}

func findFunction(tu *ast.TranslationUnitDecl, name string) *ast.FunctionDecl {
	for _, m := range tu.Members {
		if fn, ok := m.(*ast.FunctionDecl); ok && fn.Name == name {
			return fn
		}
	}

	return nil
}

func TestParseFunctionDefinition(t *testing.T) {
	t.Parallel()

	tu := parseSource(t, "int main(void) {\n\treturn 0;\n}\n")
	require.Equal(t, ast.InputC, tu.InputKind)
	require.Equal(t, "test.c", tu.InputPath)

	fn := findFunction(tu, "main")
	require.NotNil(t, fn)
	assert.Empty(t, fn.Params)
	assert.Equal(t, "main", fn.MangledName)
	assert.Same(t, fn, fn.DeclWithBody)

	body, ok := fn.Body.(*ast.CompoundStmt)
	require.True(t, ok)
	require.Len(t, body.Kids, 1)

	ret, ok := body.Kids[0].(*ast.ReturnStmt)
	require.True(t, ok)
	require.Len(t, ret.Kids, 1)

	lit, ok := ret.Kids[0].(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, "0", lit.Value)
	assert.Equal(t, 32, lit.BitWidth)
	assert.True(t, lit.IsSigned)
}

func TestParseParametersAndReferences(t *testing.T) {
	t.Parallel()

	tu := parseSource(t, "int add(int a, int b) {\n\treturn a + b;\n}\n")

	fn := findFunction(tu, "add")
	require.NotNil(t, fn)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)

	body := fn.Body.(*ast.CompoundStmt)
	ret := body.Kids[0].(*ast.ReturnStmt)
	add, ok := ret.Kids[0].(*ast.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, ast.BinaryAdd, add.Opcode)
	require.Len(t, add.Kids, 2)

	left, ok := add.Kids[0].(*ast.DeclRefExpr)
	require.True(t, ok)
	assert.Same(t, fn.Params[0], left.Ref)

	right, ok := add.Kids[1].(*ast.DeclRefExpr)
	require.True(t, ok)
	assert.Same(t, fn.Params[1], right.Ref)
}

func TestParseStructAndMemberAccess(t *testing.T) {
	t.Parallel()

	src := `
struct point {
	int x;
	int y;
};

int get_x(struct point *p) {
	return p->x;
}
`
	tu := parseSource(t, src)

	var rec *ast.RecordDecl
	for _, m := range tu.Members {
		if r, ok := m.(*ast.RecordDecl); ok {
			rec = r
		}
	}
	require.NotNil(t, rec)
	assert.Equal(t, "point", rec.Name)
	assert.True(t, rec.IsComplete)
	require.Len(t, rec.Members, 2)

	fx, ok := rec.Members[0].(*ast.FieldDecl)
	require.True(t, ok)
	assert.Equal(t, "x", fx.Name)
	assert.Equal(t, []string{"x", "point"}, fx.QualName)

	fn := findFunction(tu, "get_x")
	require.NotNil(t, fn)
	body := fn.Body.(*ast.CompoundStmt)
	ret := body.Kids[0].(*ast.ReturnStmt)

	member, ok := ret.Kids[0].(*ast.MemberExpr)
	require.True(t, ok)
	assert.True(t, member.IsArrow)
	assert.Equal(t, "x", member.Name)
	assert.Same(t, fx, member.Ref)
}

func TestParseEnumAndTypedef(t *testing.T) {
	t.Parallel()

	src := `
typedef unsigned long length_t;

enum color { RED, GREEN = 2 };
`
	tu := parseSource(t, src)

	var td *ast.TypedefDecl
	var en *ast.EnumDecl
	for _, m := range tu.Members {
		switch d := m.(type) {
		case *ast.TypedefDecl:
			td = d
		case *ast.EnumDecl:
			en = d
		}
	}

	require.NotNil(t, td)
	assert.Equal(t, "length_t", td.Name)
	under, ok := td.Underlying.Type.(*ast.BuiltinType)
	require.True(t, ok)
	assert.Equal(t, ast.BuiltinULong, under.Kind)

	require.NotNil(t, en)
	assert.Equal(t, "color", en.Name)
	assert.True(t, en.IsComplete)
	require.Len(t, en.Members, 2)

	green, ok := en.Members[1].(*ast.EnumConstantDecl)
	require.True(t, ok)
	assert.Equal(t, "GREEN", green.Name)
	require.NotNil(t, green.Init)
}

func TestParseControlFlow(t *testing.T) {
	t.Parallel()

	src := `
void walk(int n) {
	int i;
	for (i = 0; i < n; i++) {
		if (i % 2 == 0) {
			continue;
		}
		while (n > 0) {
			n--;
			break;
		}
	}
}
`
	tu := parseSource(t, src)
	fn := findFunction(tu, "walk")
	require.NotNil(t, fn)

	body := fn.Body.(*ast.CompoundStmt)
	require.Len(t, body.Kids, 2)

	ds, ok := body.Kids[0].(*ast.DeclStmt)
	require.True(t, ok)
	require.Len(t, ds.Decls, 1)
	vd, ok := ds.Decls[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "i", vd.Name)
	assert.False(t, vd.IsGlobal)

	loop, ok := body.Kids[1].(*ast.ForStmt)
	require.True(t, ok)
	require.Len(t, loop.Kids, 4)

	inner, ok := loop.Kids[3].(*ast.CompoundStmt)
	require.True(t, ok)
	require.Len(t, inner.Kids, 2)
	_, ok = inner.Kids[0].(*ast.IfStmt)
	assert.True(t, ok)
	_, ok = inner.Kids[1].(*ast.WhileStmt)
	assert.True(t, ok)
}

func TestParseGlobalsAndStorage(t *testing.T) {
	t.Parallel()

	src := "static const int limit = 10;\nextern char *name;\n"
	tu := parseSource(t, src)

	var limit, name *ast.VarDecl
	for _, m := range tu.Members {
		if vd, ok := m.(*ast.VarDecl); ok {
			switch vd.Name {
			case "limit":
				limit = vd
			case "name":
				name = vd
			}
		}
	}

	require.NotNil(t, limit)
	assert.Equal(t, "static", limit.StorageClass)
	assert.True(t, limit.IsGlobal)
	assert.True(t, limit.Type.IsConst)
	require.NotNil(t, limit.Init)

	require.NotNil(t, name)
	assert.Equal(t, "extern", name.StorageClass)
	_, ok := name.Type.Type.(*ast.PointerType)
	assert.True(t, ok)
}

func TestParseAttributes(t *testing.T) {
	t.Parallel()

	src := "__attribute__((unused)) int scratch;\n" +
		"__attribute__((aligned(16))) static char pad[8];\n"
	tu := parseSource(t, src)

	var scratch, pad *ast.VarDecl
	for _, m := range tu.Members {
		if vd, ok := m.(*ast.VarDecl); ok {
			switch vd.Name {
			case "scratch":
				scratch = vd
			case "pad":
				pad = vd
			}
		}
	}

	require.NotNil(t, scratch)
	require.Len(t, scratch.Attrs, 1)
	assert.Equal(t, ast.AttrUnused, scratch.Attrs[0].Kind)

	require.NotNil(t, pad)
	require.Len(t, pad.Attrs, 1)
	assert.Equal(t, ast.AttrAligned, pad.Attrs[0].Kind)
	assert.Equal(t, []string{"16"}, pad.Attrs[0].Params)
}

func TestParseCommentAttachment(t *testing.T) {
	t.Parallel()

	src := "// entry point\nint main(void) { return 0; }\n"
	tu := parseSource(t, src)

	fn := findFunction(tu, "main")
	require.NotNil(t, fn)
	require.NotNil(t, fn.Comment)

	full, ok := fn.Comment.(*ast.FullComment)
	require.True(t, ok)
	require.Len(t, full.Kids, 1)
}

func TestParseStringAndCharLiterals(t *testing.T) {
	t.Parallel()

	src := "const char *greeting = \"hi\";\nint nl = '\\n';\n"
	tu := parseSource(t, src)

	var greeting, nl *ast.VarDecl
	for _, m := range tu.Members {
		if vd, ok := m.(*ast.VarDecl); ok {
			switch vd.Name {
			case "greeting":
				greeting = vd
			case "nl":
				nl = vd
			}
		}
	}

	require.NotNil(t, greeting)
	sl, ok := greeting.Init.(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "hi", sl.Value)

	require.NotNil(t, nl)
	cl, ok := nl.Init.(*ast.CharacterLiteral)
	require.True(t, ok)
	assert.Equal(t, int('\n'), cl.Value)
}

func TestParseIntegerLiteralWidths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		value    string
		bitWidth int
		signed   bool
	}{
		{name: "small", src: "int a = 7;\n", value: "7", bitWidth: 32, signed: true},
		{name: "int max", src: "int a = 2147483647;\n", value: "2147483647", bitWidth: 32, signed: true},
		{name: "past int max", src: "long a = 2147483648;\n", value: "2147483648", bitWidth: 64, signed: true},
		{name: "long suffix", src: "long a = 1L;\n", value: "1", bitWidth: 64, signed: true},
		{name: "unsigned", src: "unsigned a = 1u;\n", value: "1", bitWidth: 32, signed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tu := parseSource(t, tt.src)
			require.NotEmpty(t, tu.Members)

			vd, ok := tu.Members[0].(*ast.VarDecl)
			require.True(t, ok)

			lit, ok := vd.Init.(*ast.IntegerLiteral)
			require.True(t, ok)
			assert.Equal(t, tt.value, lit.Value)
			assert.Equal(t, tt.bitWidth, lit.BitWidth)
			assert.Equal(t, tt.signed, lit.IsSigned)
		})
	}
}

func TestTypeTableInterning(t *testing.T) {
	t.Parallel()

	tu := parseSource(t, "int a;\nint b;\nint *p;\n")

	ints := 0
	for _, ty := range tu.Types {
		if bt, ok := ty.(*ast.BuiltinType); ok && bt.Kind == ast.BuiltinInt {
			ints++
		}
	}
	assert.Equal(t, 1, ints)
}

func TestParseLabelsAndGoto(t *testing.T) {
	t.Parallel()

	src := `
void spin(void) {
top:
	goto top;
}
`
	tu := parseSource(t, src)
	fn := findFunction(tu, "spin")
	require.NotNil(t, fn)

	body := fn.Body.(*ast.CompoundStmt)
	require.Len(t, body.Kids, 1)

	label, ok := body.Kids[0].(*ast.LabelStmt)
	require.True(t, ok)
	assert.Equal(t, "top", label.Name)
	require.Len(t, label.Kids, 1)

	gt, ok := label.Kids[0].(*ast.GotoStmt)
	require.True(t, ok)
	assert.Equal(t, "top", gt.Label)
	require.NotNil(t, gt.Target)
}
