// Package lockfile implements the cross-process coordination services of the
// exporter. Concurrent exporter processes share no memory; they coordinate
// exclusively through files created in a shared service directory, using
// O_CREAT|O_EXCL as the atomic claim primitive.
package lockfile

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"

	"github.com/treewire/treewire/internal/cache"
)

// keyFilename maps an arbitrary key to a fixed-length file name in dir.
// Distinct keys may collide on the same name; collisions are accepted and
// lead to over-deduplication, never to corrupt output.
func keyFilename(dir, prefix, key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))

	return filepath.Join(dir, fmt.Sprintf("%s-%016x", prefix, h.Sum64()))
}

// DedupService hands out at most one claim per key across all processes
// sharing the same service directory.
type DedupService struct {
	dir       string
	attempted *cache.KeySet

	// recordKeys writes the claimed key into its lock file, for
	// debugging collisions.
	recordKeys bool
}

// NewDedupService returns a DedupService backed by dir. When recordKeys is
// set, each won lock file is tagged with the key that claimed it.
func NewDedupService(dir string, recordKeys bool) *DedupService {
	return &DedupService{
		dir:        dir,
		attempted:  cache.NewKeySet(),
		recordKeys: recordKeys,
	}
}

// Claim grants key to the caller if nobody has claimed it yet, in this
// process or any other sharing the service directory. It returns true at
// most once per key; callers needing a stable answer across repeated asks
// cache the grant themselves. Only the first call per key within the
// process touches the filesystem.
func (s *DedupService) Claim(key string) bool {
	if !s.attempted.Add(key) {
		return false
	}

	return s.claim(key)
}

func (s *DedupService) claim(key string) bool {
	file := keyFilename(s.dir, "lock", key)

	fd, err := os.OpenFile(file, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		// Lost the race, or the service dir is unusable. Either way
		// the key is treated as already claimed.
		return false
	}
	if s.recordKeys {
		fmt.Fprintf(fd, "%s\n", key)
	}
	fd.Close()

	return true
}

// TranslationService maps compilation inputs that were copied into a
// scratch directory back to their original paths. Records are written by
// the copying process and read by any exporter process.
type TranslationService struct {
	dir  string
	memo *cache.Memo[string]
}

// NewTranslationService returns a TranslationService backed by dir.
func NewTranslationService(dir string) *TranslationService {
	return &TranslationService{
		dir:  dir,
		memo: cache.NewMemo[string](),
	}
}

// RecordCopiedFile records that copiedPath is a copy of realPath.
func (s *TranslationService) RecordCopiedFile(copiedPath, realPath string) error {
	file := keyFilename(s.dir, "trans", copiedPath)
	if err := os.WriteFile(file, []byte(realPath+"\n"), 0o644); err != nil {
		return fmt.Errorf("recording copied file %s: %w", copiedPath, err)
	}

	return nil
}

// FindOriginalFile returns the recorded original of path, or path itself
// when no record exists.
func (s *TranslationService) FindOriginalFile(path string) string {
	return s.memo.GetOrCompute(path, func() string {
		data, err := os.ReadFile(keyFilename(s.dir, "trans", path))
		if err != nil {
			return path
		}

		orig := strings.TrimSuffix(string(data), "\n")
		if orig == "" {
			return path
		}

		return orig
	})
}
