package srcpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeAbsolute(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cwd  string
		path string
		want string
	}{
		{"relative under cwd", "/work", "src/main.c", "/work/src/main.c"},
		{"already absolute", "/work", "/usr/include/stdio.h", "/usr/include/stdio.h"},
		{"dot elements", "/work", "./a/./b.c", "/work/a/b.c"},
		{"dotdot collapses", "/work", "a/b/../c.c", "/work/a/c.c"},
		{"dotdot at cwd boundary", "/work/sub", "../other/f.c", "/work/other/f.c"},
		{"excess dotdot kept", "", "/a/../../b", "/../b"},
		{"empty cwd keeps relative", "", "a/./b", "a/b"},
		{"trailing slash on cwd", "/work/", "f.c", "/work/f.c"},
		{"root", "", "/", "/"},
		{"double separators", "/work", "a//b.c", "/work/a/b.c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MakeAbsolute(tc.cwd, tc.path))
		})
	}
}

func TestMakeAbsoluteIdempotent(t *testing.T) {
	t.Parallel()

	paths := []string{
		"/work/a/../b/./c.c",
		"rel/path.c",
		"/../above.c",
		"/a//b///c",
	}
	for _, p := range paths {
		once := MakeAbsolute("/cwd", p)
		assert.Equal(t, once, MakeAbsolute("/cwd", once), "input %q", p)
	}
}

func TestMakeRelative(t *testing.T) {
	t.Parallel()

	const (
		repo = "/home/user/project"
		sys  = "/opt/toolchain"
	)

	cases := []struct {
		name     string
		keep     bool
		siblings bool
		path     string
		want     string
	}{
		{"inside repo", false, false, repo + "/src/main.c", "src/main.c"},
		{"repo root itself is external", false, false, repo, ""},
		{"sibling without flag", false, false, "/home/user/dep/h.h", ""},
		{"sibling with flag", false, true, "/home/user/dep/h.h", "../dep/h.h"},
		{"sysroot keeps slash", false, false, sys + "/include/stdio.h", "/include/stdio.h"},
		{"external dropped", false, false, "/elsewhere/f.c", ""},
		{"external kept", true, false, "/elsewhere/f.c", "/elsewhere/f.c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MakeRelative(repo, sys, tc.keep, tc.siblings, tc.path)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMakeRelativeNoRoots(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/a/b.c", MakeRelative("", "", true, false, "/a/b.c"))
	assert.Equal(t, "", MakeRelative("", "", false, false, "/a/b.c"))
}
