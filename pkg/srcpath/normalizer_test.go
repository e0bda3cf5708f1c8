package srcpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapTranslator map[string]string

func (m mapTranslator) FindOriginalFile(path string) string {
	if orig, ok := m[path]; ok {
		return orig
	}

	return path
}

func TestNormalizerDisabledWithoutBasePath(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{}, nil)
	assert.Equal(t, "rel/a.c", n.Normalize("rel/a.c"))
	assert.Equal(t, "/abs/./a.c", n.Normalize("/abs/./a.c"))
}

func TestNormalizerAbsoluteOnly(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{BasePath: "/work"}, nil)
	assert.Equal(t, "/work/src/a.c", n.Normalize("src/a.c"))
	assert.Equal(t, "/work/a.c", n.Normalize("sub/../a.c"))
}

func TestNormalizerRepoRelative(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(Options{
		BasePath: "/home/user/project/build",
		RepoRoot: "/home/user/project",
	}, nil)

	assert.Equal(t, "build/main.c", n.Normalize("main.c"))
	assert.Equal(t, "src/util.c", n.Normalize("../src/util.c"))
	assert.Equal(t, "", n.Normalize("/usr/include/stdio.h"))
}

func TestNormalizerTranslatorRunsBeforeRebasing(t *testing.T) {
	t.Parallel()

	trans := mapTranslator{
		"/tmp/copies/a.c": "/home/user/project/src/a.c",
	}
	n := NewNormalizer(Options{
		BasePath: "/tmp/copies",
		RepoRoot: "/home/user/project",
	}, trans)

	assert.Equal(t, "src/a.c", n.Normalize("a.c"))
}

func TestNormalizerResolvesSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "real.c")
	require.NoError(t, os.WriteFile(target, []byte("int x;\n"), 0o644))
	link := filepath.Join(dir, "link.c")
	require.NoError(t, os.Symlink(target, link))

	n := NewNormalizer(Options{BasePath: dir, ResolveSymlinks: true}, nil)
	assert.Equal(t, target, n.Normalize("link.c"))

	// A non-symlink path is kept as is.
	assert.Equal(t, target, n.Normalize("real.c"))
}

func TestNormalizerMemoizes(t *testing.T) {
	t.Parallel()

	calls := 0
	trans := countingTranslator{&calls}
	n := NewNormalizer(Options{BasePath: "/work", RepoRoot: "/work"}, trans)

	first := n.Normalize("a.c")
	second := n.Normalize("a.c")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

type countingTranslator struct{ calls *int }

func (c countingTranslator) FindOriginalFile(path string) string {
	*c.calls++
	return path
}
