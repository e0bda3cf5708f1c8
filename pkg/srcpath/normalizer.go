package srcpath

import (
	"os"

	"github.com/treewire/treewire/internal/cache"
)

// Translator maps a copied compilation input back to the path of the file it
// was copied from. Lookups that find no record return the path unchanged.
type Translator interface {
	FindOriginalFile(path string) string
}

// Options configures a Normalizer. The zero value disables every transform
// and Normalize returns its input unchanged.
type Options struct {
	// BasePath is the working directory relative paths are resolved
	// against. Normalization is disabled while it is empty.
	BasePath string

	// RepoRoot activates relative output paths when non-empty.
	RepoRoot string

	// SysRoot is stripped from system header paths, keeping the
	// leading "/".
	SysRoot string

	// KeepExternalPaths keeps paths outside RepoRoot and SysRoot instead
	// of mapping them to "".
	KeepExternalPaths bool

	// AllowSiblingsToRepoRoot admits "../<sibling>" paths next to
	// RepoRoot.
	AllowSiblingsToRepoRoot bool

	// ResolveSymlinks resolves one level of symlink on each path.
	ResolveSymlinks bool
}

// Normalizer applies the configured path transforms, memoizing results per
// input string.
type Normalizer struct {
	opts       Options
	translator Translator
	memo       *cache.Memo[string]
}

// NewNormalizer returns a Normalizer for opts. translator may be nil.
func NewNormalizer(opts Options, translator Translator) *Normalizer {
	return &Normalizer{
		opts:       opts,
		translator: translator,
		memo:       cache.NewMemo[string](),
	}
}

// Normalize resolves path into its exported form.
func (n *Normalizer) Normalize(path string) string {
	return n.memo.GetOrCompute(path, func() string {
		return n.normalize(path)
	})
}

func (n *Normalizer) normalize(path string) string {
	if n.opts.BasePath == "" {
		return path
	}

	absPath := MakeAbsolute(n.opts.BasePath, path)
	if n.translator == nil && !n.opts.ResolveSymlinks && n.opts.RepoRoot == "" {
		return absPath
	}

	realPath := absPath
	if n.translator != nil {
		realPath = n.translator.FindOriginalFile(absPath)
	}
	if n.opts.ResolveSymlinks {
		// Best effort: a failed readlink keeps the path as is.
		if target, err := os.Readlink(realPath); err == nil {
			realPath = target
		}
	}

	if n.opts.RepoRoot == "" {
		return realPath
	}

	return MakeRelative(n.opts.RepoRoot, n.opts.SysRoot,
		n.opts.KeepExternalPaths, n.opts.AllowSiblingsToRepoRoot, realPath)
}
