package lockfile

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupClaimIsExclusive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first := NewDedupService(dir, false)
	second := NewDedupService(dir, false)

	assert.True(t, first.Claim("/usr/include/stdio.h"))
	assert.False(t, second.Claim("/usr/include/stdio.h"))

	// Even the winner is granted a key only once.
	assert.False(t, first.Claim("/usr/include/stdio.h"))
	assert.False(t, second.Claim("/usr/include/stdio.h"))
}

func TestDedupSingleServiceOneWinner(t *testing.T) {
	t.Parallel()

	svc := NewDedupService(t.TempDir(), false)

	const contenders = 16
	var wg sync.WaitGroup
	wins := make([]bool, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins[i] = svc.Claim("shared.h")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)

	// And the grant is spent: later asks lose too.
	assert.False(t, svc.Claim("shared.h"))
}

func TestDedupClaimDistinctKeys(t *testing.T) {
	t.Parallel()

	svc := NewDedupService(t.TempDir(), false)
	assert.True(t, svc.Claim("a.h"))
	assert.True(t, svc.Claim("b.h"))
}

func TestDedupExactlyOneWinner(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	const contenders = 16
	var wg sync.WaitGroup
	wins := make([]bool, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svc := NewDedupService(dir, false)
			wins[i] = svc.Claim("shared.h")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestDedupUnusableDirClaimsNothing(t *testing.T) {
	t.Parallel()

	svc := NewDedupService(filepath.Join(t.TempDir(), "missing"), false)
	assert.False(t, svc.Claim("a.h"))
}

func TestDedupRecordKeysTagsLockFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := NewDedupService(dir, true)
	require.True(t, svc.Claim("tagged.h"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "lock-"))

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "tagged.h\n", string(data))
}

func TestTranslationRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writer := NewTranslationService(dir)
	require.NoError(t, writer.RecordCopiedFile("/tmp/copies/a.c", "/repo/src/a.c"))

	reader := NewTranslationService(dir)
	assert.Equal(t, "/repo/src/a.c", reader.FindOriginalFile("/tmp/copies/a.c"))
	assert.Equal(t, "/tmp/copies/b.c", reader.FindOriginalFile("/tmp/copies/b.c"))
}

func TestTranslationMissingDirFallsBack(t *testing.T) {
	t.Parallel()

	svc := NewTranslationService(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, "/x/y.c", svc.FindOriginalFile("/x/y.c"))
}
