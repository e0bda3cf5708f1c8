package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySetAddAndContains(t *testing.T) {
	t.Parallel()

	s := NewKeySet()
	assert.True(t, s.Add("/usr/include/stdio.h"))
	assert.False(t, s.Add("/usr/include/stdio.h"))
	assert.True(t, s.Contains("/usr/include/stdio.h"))
	assert.False(t, s.Contains("/usr/include/stdlib.h"))
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestKeySetConcurrentAdd(t *testing.T) {
	t.Parallel()

	s := NewKeySet()

	var wg sync.WaitGroup
	wins := make([]int, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if s.Add(fmt.Sprintf("key-%d", i)) {
					wins[g]++
				}
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, n := range wins {
		total += n
	}
	assert.Equal(t, 100, total, "each key must be won exactly once")
	assert.Equal(t, 100, s.Len())
}

func TestMemoGetOrCompute(t *testing.T) {
	t.Parallel()

	m := NewMemo[string]()

	calls := 0
	compute := func() string {
		calls++
		return "normalized"
	}

	require.Equal(t, "normalized", m.GetOrCompute("raw", compute))
	require.Equal(t, "normalized", m.GetOrCompute("raw", compute))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get("raw")
	require.True(t, ok)
	assert.Equal(t, "normalized", got)
}
