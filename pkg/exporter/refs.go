package exporter

import (
	"fmt"
	"hash/fnv"

	"github.com/treewire/treewire/pkg/ast"
)

// emitSourceLocation writes loc with delta compression: the file and line
// are dropped when unchanged since the previously emitted location. An
// invalid location is an empty object.
func (s *Session) emitSourceLocation(loc ast.SourceLocation) {
	if !loc.IsValid() {
		s.w.Object(0).Close()
		return
	}

	switch {
	case loc.File != s.lastLocFile:
		obj := s.w.Object(3)
		s.w.Key("file")
		s.w.String(s.normalizePath(loc.File))
		s.w.Key("line")
		s.w.Int(int64(loc.Line))
		s.w.Key("column")
		s.w.Int(int64(loc.Column))
		obj.Close()
	case loc.Line != s.lastLocLine:
		obj := s.w.Object(2)
		s.w.Key("line")
		s.w.Int(int64(loc.Line))
		s.w.Key("column")
		s.w.Int(int64(loc.Column))
		obj.Close()
	default:
		obj := s.w.Object(1)
		s.w.Key("column")
		s.w.Int(int64(loc.Column))
		obj.Close()
	}

	s.lastLocFile = loc.File
	s.lastLocLine = loc.Line
}

func (s *Session) emitSourceRange(r ast.SourceRange) {
	tup := s.w.Tuple(2)
	s.emitSourceLocation(r.Begin)
	s.emitSourceLocation(r.End)
	tup.Close()
}

// emitName writes the named_decl info: the bare name plus the qualified
// name path, innermost first.
func (s *Session) emitName(nd ast.NamedDecl) {
	info := nd.NamedInfo()
	obj := s.w.Object(2)
	s.w.Key("name")
	s.w.String(info.Name)
	s.w.Key("qual_name")
	arr := s.w.Array(len(info.QualName))
	for _, part := range info.QualName {
		s.w.String(part)
	}
	arr.Close()
	obj.Close()
}

// emitQualType writes a type reference with its local qualifiers. A nil
// type maps to the 0 surrogate.
func (s *Session) emitQualType(qt ast.QualType) {
	size := 1
	if qt.IsConst {
		size++
	}
	if qt.IsVolatile {
		size++
	}
	if qt.IsRestrict {
		size++
	}

	obj := s.w.Object(size)
	s.w.Key("type_ptr")
	if qt.Type == nil {
		s.emitPointer(nil)
	} else {
		s.emitPointer(qt.Type)
	}
	if qt.IsConst {
		s.w.Key("is_const")
		s.w.Bool(true)
	}
	if qt.IsVolatile {
		s.w.Key("is_volatile")
		s.w.Bool(true)
	}
	if qt.IsRestrict {
		s.w.Key("is_restrict")
		s.w.Bool(true)
	}
	obj.Close()
}

// emitDeclRef writes the non-owning reference record for d: kind and
// surrogate, plus name and qualified type when the target carries them.
// Reference edges never deep-encode their target.
func (s *Session) emitDeclRef(d ast.Decl) {
	nd, isNamed := d.(ast.NamedDecl)
	vd, isValued := d.(ast.ValueDecl)

	size := 2
	if isNamed {
		size++
	}
	if isValued {
		size++
	}

	obj := s.w.Object(size)
	s.w.Key("kind")
	s.w.SimpleVariant(d.DeclKind().String())
	s.w.Key("decl_pointer")
	s.emitPointer(d)
	if isNamed {
		s.w.Key("name")
		s.emitName(nd)
	}
	if isValued {
		s.w.Key("qual_type")
		s.emitQualType(vd.ValueInfo().Type)
	}
	obj.Close()
}

func (s *Session) emitAttr(a *ast.Attr) {
	v := s.w.Variant(a.Kind.String())

	size := 3
	if a.IsInherited {
		size++
	}
	if a.IsImplicit {
		size++
	}

	obj := s.w.Object(size)
	s.w.Key("pointer")
	s.emitPointer(a)
	s.w.Key("source_range")
	s.emitSourceRange(a.Range)
	s.w.Key("parameters")
	arr := s.w.Array(len(a.Params))
	for _, p := range a.Params {
		s.w.String(p)
	}
	arr.Close()
	if a.IsInherited {
		s.w.Key("is_inherited")
		s.w.Bool(true)
	}
	if a.IsImplicit {
		s.w.Key("is_implicit")
		s.w.Bool(true)
	}
	obj.Close()
	v.Close()
}

// hashMangledName bounds mangled identifiers, which can get very long, to a
// fixed-size decimal surrogate.
func hashMangledName(name string) string {
	h := fnv.New64a()
	h.Write([]byte(name))

	return fmt.Sprintf("%d", h.Sum64())
}
