package exporter

import (
	"fmt"
	"strings"

	"github.com/treewire/treewire/pkg/ast"
	"github.com/treewire/treewire/pkg/srcpath"
)

// EncodeDecl encodes d as a tagged tuple. A nil declaration encodes as the
// EmptyDecl sentinel with the 0 surrogate.
func (s *Session) EncodeDecl(d ast.Decl) {
	if d == nil {
		s.encodeNullDecl()
		return
	}

	k := d.DeclKind()
	op, ok := declOps[k]
	if !ok || op.visit == nil {
		panic(fmt.Sprintf("exporter: cannot encode abstract or unknown decl kind %s", k))
	}

	v := s.w.Variant(k.String())
	t := s.w.Tuple(declArity(k))
	op.visit(s, d)
	t.Close()
	v.Close()
}

func (s *Session) encodeNullDecl() {
	v := s.w.Variant(ast.DeclEmpty.String())
	t := s.w.Tuple(declArity(ast.DeclEmpty))
	obj := s.w.Object(2)
	s.w.Key("pointer")
	s.emitPointer(nil)
	s.w.Key("source_range")
	s.emitSourceRange(ast.SourceRange{})
	obj.Close()
	t.Close()
	v.Close()
}

// visitDeclBase emits the info slot shared by every declaration.
func (s *Session) visitDeclBase(d ast.Decl) {
	info := d.DeclInfo()

	hasParent := info.LexicalParent != nil && info.LexicalParent != info.Parent
	hasPrevious := info.Previous != nil
	hasModule := info.OwningModule != ""
	hasAttrs := len(info.Attrs) > 0
	hasComment := info.Comment != nil && s.opts.DumpComments
	hasAccess := info.Access != ast.AccessNone

	size := 2
	for _, cond := range []bool{
		hasParent, hasPrevious, hasModule,
		info.IsImplicit, info.IsUsed, info.IsReferenced, info.IsInvalid,
		hasAttrs, hasComment, hasAccess,
	} {
		if cond {
			size++
		}
	}

	obj := s.w.Object(size)
	s.w.Key("pointer")
	s.emitPointer(d)
	if hasParent {
		s.w.Key("parent_pointer")
		s.emitPointer(info.LexicalParent)
	}
	if hasPrevious {
		s.w.Key("previous_decl")
		s.emitDeclRef(info.Previous)
	}
	s.w.Key("source_range")
	s.emitSourceRange(info.Range)
	if hasModule {
		s.w.Key("owning_module")
		s.w.String(info.OwningModule)
	}
	s.emitFlag("is_implicit", info.IsImplicit)
	s.emitFlag("is_used", info.IsUsed)
	s.emitFlag("is_this_declaration_referenced", info.IsReferenced)
	s.emitFlag("is_invalid_decl", info.IsInvalid)
	if hasAttrs {
		s.w.Key("attributes")
		arr := s.w.Array(len(info.Attrs))
		for _, a := range info.Attrs {
			s.emitAttr(a)
		}
		arr.Close()
	}
	if hasComment {
		s.w.Key("full_comment")
		s.EncodeComment(info.Comment)
	}
	if hasAccess {
		s.w.Key("access")
		s.w.SimpleVariant(info.Access.String())
	}
	obj.Close()
}

// emitFlag writes a true boolean field; false is encoded by absence. The
// caller has accounted for the field in the object size.
func (s *Session) emitFlag(name string, v bool) {
	if !v {
		return
	}
	s.w.Key(name)
	s.w.Bool(true)
}

func (s *Session) visitNamedDeclBase(d ast.NamedDecl) {
	s.visitDeclBase(d)
	s.emitName(d)
}

func (s *Session) visitTypeDeclBase(d ast.TypeDecl) {
	s.visitNamedDeclBase(d)
	if dt := d.TypeDeclInfo().DeclaredType; dt != nil {
		s.emitPointer(dt)
	} else {
		s.emitPointer(nil)
	}
}

func (s *Session) visitValueDeclBase(d ast.ValueDecl) {
	s.visitNamedDeclBase(d)
	s.emitQualType(d.ValueInfo().Type)
}

// visitDeclContext emits the two context slots: the member list and the
// external-storage info. The dedup filter runs before the member array is
// sized, so declared array lengths always match what is emitted.
func (s *Session) visitDeclContext(owner ast.Decl, dc *ast.DeclContext) {
	members := s.filterMembers(owner, dc.Members)

	arr := s.w.Array(len(members))
	for _, m := range members {
		s.EncodeDecl(m)
	}
	arr.Close()

	size := 0
	if dc.HasExternalLexicalStorage {
		size++
	}
	if dc.HasExternalVisibleStorage {
		size++
	}
	obj := s.w.Object(size)
	s.emitFlag("has_external_lexical_storage", dc.HasExternalLexicalStorage)
	s.emitFlag("has_external_visible_storage", dc.HasExternalVisibleStorage)
	obj.Close()
}

// filterMembers drops header declarations another process has already
// claimed. Only named declarations directly under the translation unit are
// candidates; context-forming declarations are always kept because they can
// hold declarations from other files.
func (s *Session) filterMembers(owner ast.Decl, members []ast.Decl) []ast.Decl {
	if s.opts.Dedup == nil || owner.DeclKind() != ast.DeclTranslationUnit {
		return members
	}

	kept := members[:0:0]
	for _, m := range members {
		if s.shouldTraverseDecl(m) {
			kept = append(kept, m)
		}
	}

	return kept
}

func (s *Session) shouldTraverseDecl(d ast.Decl) bool {
	if _, isNamed := d.(ast.NamedDecl); !isNamed {
		return true
	}
	// Namespaces can hold declarations from many files; their members are
	// filtered individually instead.
	if d.DeclKind() == ast.DeclNamespace {
		return true
	}

	loc := d.DeclInfo().Range.Begin
	if !loc.IsValid() || !strings.HasSuffix(loc.File, ".h") {
		return true
	}

	key := srcpath.MakeAbsolute(s.opts.BasePath, loc.File)

	return s.claimFile(key)
}

func (s *Session) visitTranslationUnitDecl(d ast.Decl) {
	tu := d.(*ast.TranslationUnitDecl)
	s.visitDeclBase(tu)
	s.visitDeclContext(tu, ast.DeclContextOf(tu))

	obj := s.w.Object(3)
	s.w.Key("input_path")
	s.w.String(s.normalizePath(tu.InputPath))
	s.w.Key("input_kind")
	s.w.SimpleVariant(tu.InputKind.String())
	s.w.Key("types")
	arr := s.w.Array(len(tu.Types) + 1)
	for _, t := range tu.Types {
		s.EncodeType(t)
	}
	// The null type reference resolves against this trailing sentinel.
	s.EncodeType(nil)
	arr.Close()
	obj.Close()
}

func (s *Session) visitEmptyDecl(d ast.Decl) {
	s.visitDeclBase(d)
}

func (s *Session) visitLabelDecl(d ast.Decl) {
	s.visitNamedDeclBase(d.(*ast.LabelDecl))
}

func (s *Session) visitNamespaceDecl(d ast.Decl) {
	ns := d.(*ast.NamespaceDecl)
	s.visitNamedDeclBase(ns)
	s.visitDeclContext(ns, ast.DeclContextOf(ns))

	hasOriginal := ns.Original != nil
	size := 0
	if ns.IsInline {
		size++
	}
	if hasOriginal {
		size++
	}
	obj := s.w.Object(size)
	s.emitFlag("is_inline", ns.IsInline)
	if hasOriginal {
		s.w.Key("original_namespace")
		s.emitDeclRef(ns.Original)
	}
	obj.Close()
}

func (s *Session) visitTypedefDecl(d ast.Decl) {
	td := d.(*ast.TypedefDecl)
	s.visitTypeDeclBase(td)

	size := 1
	if td.IsModulePrivate {
		size++
	}
	obj := s.w.Object(size)
	s.w.Key("underlying_type")
	s.emitQualType(td.Underlying)
	s.emitFlag("is_module_private", td.IsModulePrivate)
	obj.Close()
}

// visitTagDeclBase emits the TypeDecl slots plus the member context shared
// by enum and record declarations.
func (s *Session) visitTagDeclBase(d ast.Decl, tag *ast.TagDeclBase) {
	s.visitTypeDeclBase(d.(ast.TypeDecl))
	s.visitDeclContext(d, &tag.DeclContext)
}

func (s *Session) visitEnumDecl(d ast.Decl) {
	en := d.(*ast.EnumDecl)
	s.visitTagDeclBase(en, &en.TagDeclBase)

	size := 0
	if en.IsScoped {
		size++
	}
	if en.IsComplete {
		size++
	}
	obj := s.w.Object(size)
	s.emitFlag("is_scoped", en.IsScoped)
	s.emitFlag("is_complete", en.IsComplete)
	obj.Close()
}

func (s *Session) visitRecordDecl(d ast.Decl) {
	rec := d.(*ast.RecordDecl)
	s.visitTagDeclBase(rec, &rec.TagDeclBase)

	size := 1
	if rec.IsUnion {
		size++
	}
	if rec.IsComplete {
		size++
	}
	obj := s.w.Object(size)
	s.w.Key("definition_ptr")
	if rec.Definition != nil {
		s.emitPointer(rec.Definition)
	} else {
		s.emitPointer(nil)
	}
	s.emitFlag("is_union", rec.IsUnion)
	s.emitFlag("is_complete_definition", rec.IsComplete)
	obj.Close()
}

func (s *Session) visitEnumConstantDecl(d ast.Decl) {
	ec := d.(*ast.EnumConstantDecl)
	s.visitValueDeclBase(ec)

	size := 0
	if ec.Init != nil {
		size++
	}
	obj := s.w.Object(size)
	if ec.Init != nil {
		s.w.Key("init_expr")
		s.EncodeStmt(ec.Init)
	}
	obj.Close()
}

func (s *Session) visitFunctionDecl(d ast.Decl) {
	fn := d.(*ast.FunctionDecl)
	s.visitValueDeclBase(fn)

	hasMangled := fn.MangledName != ""
	hasStorage := fn.StorageClass != ""
	hasParams := len(fn.Params) > 0
	hasDeclWithBody := fn.DeclWithBody != nil
	hasBody := fn.Body != nil

	size := 0
	for _, cond := range []bool{
		hasMangled, hasStorage, fn.IsInline, fn.IsPure, fn.IsNoThrow,
		fn.IsVariadic, hasParams, hasDeclWithBody, hasBody,
	} {
		if cond {
			size++
		}
	}

	obj := s.w.Object(size)
	if hasMangled {
		s.w.Key("mangled_name")
		s.w.String(hashMangledName(fn.MangledName))
	}
	if hasStorage {
		s.w.Key("storage_class")
		s.w.String(fn.StorageClass)
	}
	s.emitFlag("is_inline", fn.IsInline)
	s.emitFlag("is_pure", fn.IsPure)
	s.emitFlag("is_no_throw", fn.IsNoThrow)
	s.emitFlag("is_variadic", fn.IsVariadic)
	if hasParams {
		s.w.Key("parameters")
		arr := s.w.Array(len(fn.Params))
		for _, p := range fn.Params {
			s.EncodeDecl(p)
		}
		arr.Close()
	}
	if hasDeclWithBody {
		s.w.Key("decl_ptr_with_body")
		s.emitPointer(fn.DeclWithBody)
	}
	if hasBody {
		s.w.Key("body")
		s.EncodeStmt(fn.Body)
	}
	obj.Close()
}

func (s *Session) visitFieldDecl(d ast.Decl) {
	fd := d.(*ast.FieldDecl)
	s.visitValueDeclBase(fd)

	hasBitWidth := fd.BitWidth != nil
	hasInit := fd.Init != nil

	size := 0
	if fd.IsMutable {
		size++
	}
	if hasBitWidth {
		size++
	}
	if hasInit {
		size++
	}

	obj := s.w.Object(size)
	s.emitFlag("is_mutable", fd.IsMutable)
	if hasBitWidth {
		s.w.Key("bit_width_expr")
		s.EncodeStmt(fd.BitWidth)
	}
	if hasInit {
		s.w.Key("init_expr")
		s.EncodeStmt(fd.Init)
	}
	obj.Close()
}

func (s *Session) visitVarDecl(d ast.Decl) {
	vd := d.(*ast.VarDecl)
	s.visitValueDeclBase(vd)
	s.emitVarDeclInfo(vd)
}

func (s *Session) visitParmVarDecl(d ast.Decl) {
	pv := d.(*ast.ParmVarDecl)
	s.visitValueDeclBase(pv)
	s.emitVarDeclInfo(&pv.VarDecl)
}

func (s *Session) emitVarDeclInfo(vd *ast.VarDecl) {
	hasStorage := vd.StorageClass != ""
	hasInit := vd.Init != nil

	size := 0
	for _, cond := range []bool{
		hasStorage, vd.IsGlobal, vd.IsStaticLocal, vd.IsConstexpr, hasInit,
	} {
		if cond {
			size++
		}
	}

	obj := s.w.Object(size)
	if hasStorage {
		s.w.Key("storage_class")
		s.w.String(vd.StorageClass)
	}
	s.emitFlag("is_global", vd.IsGlobal)
	s.emitFlag("is_static_local", vd.IsStaticLocal)
	s.emitFlag("is_const_expr", vd.IsConstexpr)
	if hasInit {
		s.w.Key("init_expr")
		s.EncodeStmt(vd.Init)
	}
	obj.Close()
}

func (s *Session) visitImportDecl(d ast.Decl) {
	imp := d.(*ast.ImportDecl)
	s.visitDeclBase(imp)
	s.w.String(imp.ModuleName)
}
