package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treewire/treewire/internal/lockfile"
)

func TestRecordCommandWritesMapping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cmd := recordCmd()
	cmd.SetArgs([]string{"--translation-dir", dir, "/tmp/copies/a.c", "/repo/src/a.c"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	require.NoError(t, cmd.Execute())

	svc := lockfile.NewTranslationService(dir)
	assert.Equal(t, "/repo/src/a.c", svc.FindOriginalFile("/tmp/copies/a.c"))
}

func TestRecordCommandRequiresDir(t *testing.T) {
	t.Parallel()

	cmd := recordCmd()
	cmd.SetArgs([]string{"/tmp/copies/a.c", "/repo/src/a.c"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	require.ErrorIs(t, cmd.Execute(), ErrNoTranslationDir)
}
