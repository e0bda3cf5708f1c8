// Package srcpath normalizes source file paths for export: making paths
// absolute, rebasing them against a repository root, and optionally
// resolving symlinks and copied-file translations.
package srcpath

import "strings"

// MakeAbsolute simplifies away "." and ".." elements of path. A relative
// path is first prepended with cwd, unless cwd is empty. Excess ".."
// elements that would climb above the root are kept literally.
func MakeAbsolute(cwd, path string) string {
	if path == "" && cwd == "" {
		return ""
	}

	abs := strings.HasPrefix(path, "/")
	if !abs {
		if cwd != "" {
			path = strings.TrimSuffix(cwd, "/") + "/" + path
		}
		abs = strings.HasPrefix(path, "/")
	}

	parts := strings.Split(path, "/")
	kept := make([]string, 0, len(parts))
	skip := 0
	for i := len(parts) - 1; i >= 0; i-- {
		switch el := parts[i]; {
		case el == "" || el == ".":
		case el == "..":
			skip++
		case skip > 0:
			skip--
		default:
			kept = append(kept, el)
		}
	}
	for ; skip > 0; skip-- {
		kept = append(kept, "..")
	}

	// kept was accumulated right to left.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}

	joined := strings.Join(kept, "/")
	if abs {
		return "/" + joined
	}

	return joined
}

// MakeRelative rebases an absolute path for output. Paths under repoRoot
// lose the root prefix; with allowSiblings, paths under repoRoot's parent
// become "../<sibling>/...". Paths under sysRoot keep their leading "/"
// with the sysRoot prefix stripped. Any other path is returned unchanged
// when keepExternalPaths is set and replaced by "" otherwise.
func MakeRelative(repoRoot, sysRoot string, keepExternalPaths, allowSiblings bool, path string) string {
	if repoRoot != "" {
		if rest, ok := strings.CutPrefix(path, repoRoot+"/"); ok {
			return rest
		}
		if allowSiblings {
			parent := parentPath(repoRoot)
			if rest, ok := strings.CutPrefix(path, parent+"/"); ok {
				return "../" + rest
			}
		}
	}
	if sysRoot != "" && strings.HasPrefix(path, sysRoot+"/") {
		// The leading "/" is kept to mark the path as external.
		return path[len(sysRoot):]
	}
	if keepExternalPaths {
		return path
	}

	return ""
}

func parentPath(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return ""
	}

	return path[:i]
}
