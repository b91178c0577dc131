package ident

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSequence_Next(t *testing.T) {
	t.Parallel()

	s := NewSequenceAt(1000)

	require.Equal(t, "1000", s.Next())
	require.Equal(t, "1001", s.Next())
	require.Equal(t, "1002", s.Next())
}

func TestSequence_concurrentUnique(t *testing.T) {
	t.Parallel()

	s := NewSequence()

	const workers = 8
	const perWorker = 500

	results := make([][]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				results[i] = append(results[i], s.Next())
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, workers*perWorker)
	for _, ids := range results {
		for _, id := range ids {
			_, dup := seen[id]
			require.False(t, dup, "duplicate identity %q", id)
			seen[id] = struct{}{}
		}
	}

	require.Len(t, seen, workers*perWorker)
}

func TestProcess_shared(t *testing.T) {
	t.Parallel()

	require.Same(t, Process(), Process())

	a := Process().Next()
	b := Process().Next()
	require.NotEqual(t, a, b)
}

func TestUUID_Next(t *testing.T) {
	t.Parallel()

	var g Generator = UUID{}

	a := g.Next()
	b := g.Next()
	require.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
