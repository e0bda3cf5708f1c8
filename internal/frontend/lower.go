package frontend

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/treewire/treewire/pkg/ast"
)

// lowerer carries the per-file lowering state: the source bytes, the type
// interning table that becomes the unit's type table, and the lexical scope
// chain used to resolve identifier references.
type lowerer struct {
	path string
	src  []byte
	opts Options

	types  *typeTable
	scopes []map[string]ast.Decl
	labels map[string]*ast.LabelDecl

	pendingComment ast.Comment
}

func newLowerer(path string, src []byte, opts Options) *lowerer {
	return &lowerer{
		path:   path,
		src:    src,
		opts:   opts,
		types:  newTypeTable(),
		scopes: []map[string]ast.Decl{make(map[string]ast.Decl)},
	}
}

func (lw *lowerer) text(n sitter.Node) string {
	start, end := n.StartByte(), n.EndByte()
	if int(end) > len(lw.src) {
		end = uint(len(lw.src))
	}

	return string(lw.src[start:end])
}

func (lw *lowerer) locOf(p sitter.Point) ast.SourceLocation {
	return ast.SourceLocation{
		File:   lw.path,
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
	}
}

func (lw *lowerer) rangeOf(n sitter.Node) ast.SourceRange {
	return ast.SourceRange{
		Begin: lw.locOf(n.StartPoint()),
		End:   lw.locOf(n.EndPoint()),
	}
}

func (lw *lowerer) pushScope() {
	lw.scopes = append(lw.scopes, make(map[string]ast.Decl))
}

func (lw *lowerer) popScope() {
	lw.scopes = lw.scopes[:len(lw.scopes)-1]
}

func (lw *lowerer) declare(name string, d ast.Decl) {
	if name == "" {
		return
	}
	lw.scopes[len(lw.scopes)-1][name] = d
}

func (lw *lowerer) lookup(name string) ast.Decl {
	for i := len(lw.scopes) - 1; i >= 0; i-- {
		if d, ok := lw.scopes[i][name]; ok {
			return d
		}
	}

	return nil
}

// qualName renders the fully qualified name, innermost first. C has no
// namespaces, so this is just the bare name.
func qualName(name string) []string {
	return []string{name}
}

func (lw *lowerer) lowerTranslationUnit(root sitter.Node) *ast.TranslationUnitDecl {
	tu := &ast.TranslationUnitDecl{
		InputPath: lw.path,
		InputKind: ast.InputC,
	}
	tu.Range = lw.rangeOf(root)

	for idx := range root.NamedChildCount() {
		child := root.NamedChild(idx)
		for _, d := range lw.lowerTopLevel(child) {
			d.DeclInfo().Parent = tu
			tu.Members = append(tu.Members, d)
		}
	}

	tu.Types = lw.types.all()

	return tu
}

func (lw *lowerer) lowerTopLevel(n sitter.Node) []ast.Decl {
	switch n.Type() {
	case "function_definition":
		if fn := lw.lowerFunctionDefinition(n); fn != nil {
			return []ast.Decl{lw.takeComment(fn)}
		}

		return nil
	case "declaration":
		decls := lw.lowerDeclaration(n, true)
		if len(decls) > 0 {
			lw.takeComment(decls[0])
		}

		return decls
	case "type_definition":
		if td := lw.lowerTypedef(n); td != nil {
			return []ast.Decl{lw.takeComment(td)}
		}

		return nil
	case "struct_specifier", "union_specifier":
		if rec := lw.lowerRecordSpecifier(n); rec != nil {
			return []ast.Decl{lw.takeComment(rec)}
		}

		return nil
	case "enum_specifier":
		if en := lw.lowerEnumSpecifier(n); en != nil {
			return []ast.Decl{lw.takeComment(en)}
		}

		return nil
	case "comment":
		lw.noteComment(n)

		return nil
	default:
		// Preprocessor directives and parse errors carry no declarations.
		return nil
	}
}

// noteComment keeps the most recent comment so it can be attached to the
// declaration that follows it.
func (lw *lowerer) noteComment(n sitter.Node) {
	if !lw.opts.Comments {
		return
	}

	text := lw.text(n)
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")

	tc := &ast.TextComment{Text: text}
	tc.Range = lw.rangeOf(n)

	para := &ast.ParagraphComment{}
	para.Range = tc.Range
	para.Kids = []ast.Comment{tc}

	full := &ast.FullComment{}
	full.Range = tc.Range
	full.Kids = []ast.Comment{para}

	lw.pendingComment = full
}

func (lw *lowerer) takeComment(d ast.Decl) ast.Decl {
	if lw.pendingComment != nil {
		d.DeclInfo().Comment = lw.pendingComment
		lw.pendingComment = nil
	}

	return d
}

func (lw *lowerer) lowerFunctionDefinition(n sitter.Node) *ast.FunctionDecl {
	declarator := n.ChildByFieldName("declarator")
	if declarator.IsNull() {
		return nil
	}

	ret := lw.lowerTypeSpecifier(n.ChildByFieldName("type"))
	ret = lw.applyQualifiers(n, ret)

	fn := lw.buildFunctionDecl(declarator, ret)
	if fn == nil {
		return nil
	}
	fn.Range = lw.rangeOf(n)
	fn.StorageClass = storageClassOf(lw, n)
	fn.Attrs = lw.collectAttrs(n)
	lw.declare(fn.Name, fn)

	body := n.ChildByFieldName("body")
	if !body.IsNull() {
		lw.pushScope()
		lw.labels = make(map[string]*ast.LabelDecl)
		for _, p := range fn.Params {
			lw.declare(p.Name, p)
		}
		fn.Body = lw.lowerStmt(body)
		fn.DeclWithBody = fn
		lw.labels = nil
		lw.popScope()
	}

	return fn
}

// buildFunctionDecl unwraps a function declarator into a FunctionDecl with
// its parameters and interned function type.
func (lw *lowerer) buildFunctionDecl(declarator sitter.Node, ret ast.QualType) *ast.FunctionDecl {
	fnDeclarator, pointerDepth := unwrapToFunctionDeclarator(declarator)
	if fnDeclarator.IsNull() {
		return nil
	}
	for range pointerDepth {
		ret = ast.QualType{Type: lw.types.pointerTo(ret)}
	}

	nameNode := fnDeclarator.ChildByFieldName("declarator")
	name := ""
	if !nameNode.IsNull() {
		name = lw.text(unwrapParens(nameNode))
	}

	fn := &ast.FunctionDecl{}
	fn.Name = name
	fn.QualName = qualName(name)
	// C mangles a function to its own identifier.
	fn.MangledName = name

	params, variadic := lw.lowerParameterList(fnDeclarator.ChildByFieldName("parameters"))
	fn.Params = params
	fn.IsVariadic = variadic

	paramTypes := make([]ast.QualType, 0, len(params))
	for _, p := range params {
		paramTypes = append(paramTypes, p.Type)
	}
	fn.Type = ast.QualType{Type: lw.types.functionProto(ret, paramTypes, variadic)}

	return fn
}

// unwrapToFunctionDeclarator walks down pointer and paren declarators until
// it reaches the function declarator, counting pointer wrappers on the way.
func unwrapToFunctionDeclarator(n sitter.Node) (sitter.Node, int) {
	depth := 0
	for {
		switch n.Type() {
		case "function_declarator":
			return n, depth
		case "pointer_declarator":
			depth++
			n = n.ChildByFieldName("declarator")
		case "parenthesized_declarator":
			n = firstNamedChild(n)
		default:
			return sitter.Node{}, 0
		}
		if n.IsNull() {
			return sitter.Node{}, 0
		}
	}
}

func unwrapParens(n sitter.Node) sitter.Node {
	for n.Type() == "parenthesized_declarator" {
		inner := firstNamedChild(n)
		if inner.IsNull() {
			return n
		}
		n = inner
	}

	return n
}

func firstNamedChild(n sitter.Node) sitter.Node {
	if n.NamedChildCount() == 0 {
		return sitter.Node{}
	}

	return n.NamedChild(0)
}

func (lw *lowerer) lowerParameterList(list sitter.Node) ([]*ast.ParmVarDecl, bool) {
	if list.IsNull() {
		return nil, false
	}

	var params []*ast.ParmVarDecl
	variadic := false
	for idx := range list.NamedChildCount() {
		child := list.NamedChild(idx)
		switch child.Type() {
		case "parameter_declaration":
			if p := lw.lowerParameter(child); p != nil {
				params = append(params, p)
			}
		case "variadic_parameter":
			variadic = true
		}
	}

	// A lone void parameter list declares no parameters.
	if len(params) == 1 && params[0].Name == "" {
		if bt, ok := params[0].Type.Type.(*ast.BuiltinType); ok && bt.Kind == ast.BuiltinVoid {
			return nil, variadic
		}
	}

	return params, variadic
}

func (lw *lowerer) lowerParameter(n sitter.Node) *ast.ParmVarDecl {
	base := lw.lowerTypeSpecifier(n.ChildByFieldName("type"))
	base = lw.applyQualifiers(n, base)

	p := &ast.ParmVarDecl{}
	p.Range = lw.rangeOf(n)

	declarator := n.ChildByFieldName("declarator")
	if declarator.IsNull() {
		p.Type = base
		return p
	}

	qt, name := lw.lowerDeclaratorType(declarator, base)
	p.Type = qt
	p.Name = name
	p.QualName = qualName(name)

	return p
}

// lowerDeclaration lowers one declaration node into its declared entities.
// A single declaration can introduce several declarators, a tag definition,
// or both.
func (lw *lowerer) lowerDeclaration(n sitter.Node, global bool) []ast.Decl {
	var decls []ast.Decl

	typeNode := n.ChildByFieldName("type")
	base := lw.lowerTypeSpecifier(typeNode)
	base = lw.applyQualifiers(n, base)

	// A tag specifier with a body declares the tag itself.
	if !typeNode.IsNull() {
		switch typeNode.Type() {
		case "struct_specifier", "union_specifier":
			if !typeNode.ChildByFieldName("body").IsNull() {
				if rec := lw.lowerRecordSpecifier(typeNode); rec != nil {
					decls = append(decls, rec)
				}
			}
		case "enum_specifier":
			if !typeNode.ChildByFieldName("body").IsNull() {
				if en := lw.lowerEnumSpecifier(typeNode); en != nil {
					decls = append(decls, en)
				}
			}
		}
	}

	storage := storageClassOf(lw, n)

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		switch child.Type() {
		case "init_declarator":
			inner := child.ChildByFieldName("declarator")
			value := child.ChildByFieldName("value")
			if d := lw.lowerDeclarator(inner, base, n, storage, global); d != nil {
				if vd, ok := d.(*ast.VarDecl); ok && !value.IsNull() {
					vd.Init = lw.lowerExpr(value)
				}
				decls = append(decls, d)
			}
		case "identifier", "pointer_declarator", "array_declarator",
			"function_declarator", "parenthesized_declarator":
			if d := lw.lowerDeclarator(child, base, n, storage, global); d != nil {
				decls = append(decls, d)
			}
		}
	}

	return decls
}

// lowerDeclarator turns one declarator into a variable or function
// prototype declaration.
func (lw *lowerer) lowerDeclarator(declarator sitter.Node, base ast.QualType, decl sitter.Node, storage string, global bool) ast.Decl {
	if declarator.IsNull() {
		return nil
	}

	if fnDeclarator, _ := unwrapToFunctionDeclarator(declarator); !fnDeclarator.IsNull() {
		fn := lw.buildFunctionDecl(declarator, base)
		if fn == nil {
			return nil
		}
		fn.Range = lw.rangeOf(decl)
		fn.StorageClass = storage
		fn.Attrs = lw.collectAttrs(decl)
		if prev, ok := lw.lookup(fn.Name).(*ast.FunctionDecl); ok {
			fn.Previous = prev
		}
		lw.declare(fn.Name, fn)

		return fn
	}

	qt, name := lw.lowerDeclaratorType(declarator, base)

	vd := &ast.VarDecl{}
	vd.Range = lw.rangeOf(decl)
	vd.Name = name
	vd.QualName = qualName(name)
	vd.Type = qt
	vd.StorageClass = storage
	vd.IsGlobal = global
	vd.IsStaticLocal = !global && storage == "static"
	vd.Attrs = lw.collectAttrs(decl)
	lw.declare(name, vd)

	return vd
}

var attrKinds = map[string]ast.AttrKind{
	"packed":        ast.AttrPacked,
	"aligned":       ast.AttrAligned,
	"deprecated":    ast.AttrDeprecated,
	"unused":        ast.AttrUnused,
	"used":          ast.AttrUsed,
	"noreturn":      ast.AttrNoReturn,
	"noinline":      ast.AttrNoInline,
	"always_inline": ast.AttrAlwaysInline,
	"const":         ast.AttrConst,
	"pure":          ast.AttrPure,
	"weak":          ast.AttrWeak,
	"visibility":    ast.AttrVisibility,
	"format":        ast.AttrFormat,
}

// collectAttrs gathers __attribute__((...)) specifiers declared directly on
// n. Attributes outside the recognized set are dropped.
func (lw *lowerer) collectAttrs(n sitter.Node) []*ast.Attr {
	var attrs []*ast.Attr

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() != "attribute_specifier" {
			continue
		}
		for aidx := range child.NamedChildCount() {
			args := child.NamedChild(aidx)
			if args.Type() != "argument_list" {
				continue
			}
			for eidx := range args.NamedChildCount() {
				if a := lw.lowerAttr(args.NamedChild(eidx)); a != nil {
					attrs = append(attrs, a)
				}
			}
		}
	}

	return attrs
}

func (lw *lowerer) lowerAttr(n sitter.Node) *ast.Attr {
	name := ""

	var params []string

	switch n.Type() {
	case "identifier":
		name = lw.text(n)
	case "call_expression":
		name = lw.text(n.ChildByFieldName("function"))
		args := n.ChildByFieldName("arguments")
		if !args.IsNull() {
			for idx := range args.NamedChildCount() {
				params = append(params, lw.text(args.NamedChild(idx)))
			}
		}
	default:
		return nil
	}

	kind, ok := attrKinds[strings.Trim(name, "_")]
	if !ok {
		return nil
	}

	return &ast.Attr{Kind: kind, Range: lw.rangeOf(n), Params: params}
}

func storageClassOf(lw *lowerer, n sitter.Node) string {
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() == "storage_class_specifier" {
			return lw.text(child)
		}
	}

	return ""
}

func (lw *lowerer) lowerTypedef(n sitter.Node) *ast.TypedefDecl {
	base := lw.lowerTypeSpecifier(n.ChildByFieldName("type"))
	base = lw.applyQualifiers(n, base)

	declarator := n.ChildByFieldName("declarator")
	if declarator.IsNull() {
		return nil
	}

	typeNode := n.ChildByFieldName("type")
	if !typeNode.IsNull() {
		switch typeNode.Type() {
		case "struct_specifier", "union_specifier":
			if !typeNode.ChildByFieldName("body").IsNull() {
				lw.lowerRecordSpecifier(typeNode)
			}
		case "enum_specifier":
			if !typeNode.ChildByFieldName("body").IsNull() {
				lw.lowerEnumSpecifier(typeNode)
			}
		}
	}

	qt, name := lw.lowerDeclaratorType(declarator, base)

	td := &ast.TypedefDecl{Underlying: qt}
	td.Range = lw.rangeOf(n)
	td.Name = name
	td.QualName = qualName(name)
	td.DeclaredType = lw.types.typedefOf(name, td, qt)
	lw.declare(name, td)

	return td
}

func (lw *lowerer) lowerRecordSpecifier(n sitter.Node) *ast.RecordDecl {
	nameNode := n.ChildByFieldName("name")
	name := ""
	if !nameNode.IsNull() {
		name = lw.text(nameNode)
	}

	rec := &ast.RecordDecl{IsUnion: n.Type() == "union_specifier"}
	rec.Range = lw.rangeOf(n)
	rec.Name = name
	rec.QualName = qualName(name)

	body := n.ChildByFieldName("body")
	if body.IsNull() {
		// Forward declaration: reuse the interned tag type.
		rec.DeclaredType = lw.types.tagType(n.Type(), name, rec)

		return rec
	}

	rec.IsComplete = true
	rec.Definition = rec
	rec.DeclaredType = lw.types.tagType(n.Type(), name, rec)

	for idx := range body.NamedChildCount() {
		field := body.NamedChild(idx)
		if field.Type() != "field_declaration" {
			continue
		}
		for _, fd := range lw.lowerFieldDeclaration(field, rec) {
			fd.Parent = rec
			rec.Members = append(rec.Members, fd)
		}
	}

	return rec
}

func (lw *lowerer) lowerFieldDeclaration(n sitter.Node, rec *ast.RecordDecl) []*ast.FieldDecl {
	base := lw.lowerTypeSpecifier(n.ChildByFieldName("type"))
	base = lw.applyQualifiers(n, base)

	var fields []*ast.FieldDecl
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		switch child.Type() {
		case "field_identifier", "pointer_declarator", "array_declarator", "field_declarator":
			qt, name := lw.lowerDeclaratorType(child, base)

			fd := &ast.FieldDecl{}
			fd.Range = lw.rangeOf(n)
			fd.Name = name
			fd.QualName = append([]string{name}, rec.QualName...)
			fd.Type = qt
			fields = append(fields, fd)
		case "bitfield_clause":
			if len(fields) > 0 {
				if width := firstNamedChild(child); !width.IsNull() {
					fields[len(fields)-1].BitWidth = lw.lowerExpr(width)
				}
			}
		}
	}

	return fields
}

func (lw *lowerer) lowerEnumSpecifier(n sitter.Node) *ast.EnumDecl {
	nameNode := n.ChildByFieldName("name")
	name := ""
	if !nameNode.IsNull() {
		name = lw.text(nameNode)
	}

	en := &ast.EnumDecl{}
	en.Range = lw.rangeOf(n)
	en.Name = name
	en.QualName = qualName(name)
	en.DeclaredType = lw.types.tagType("enum_specifier", name, en)

	body := n.ChildByFieldName("body")
	if body.IsNull() {
		return en
	}
	en.IsComplete = true

	enumQT := ast.QualType{Type: en.DeclaredType}
	for idx := range body.NamedChildCount() {
		child := body.NamedChild(idx)
		if child.Type() != "enumerator" {
			continue
		}

		ec := &ast.EnumConstantDecl{}
		ec.Range = lw.rangeOf(child)
		ec.Name = lw.text(child.ChildByFieldName("name"))
		ec.QualName = qualName(ec.Name)
		ec.Type = enumQT
		if value := child.ChildByFieldName("value"); !value.IsNull() {
			ec.Init = lw.lowerExpr(value)
		}
		ec.Parent = en
		lw.declare(ec.Name, ec)
		en.Members = append(en.Members, ec)
	}

	return en
}
