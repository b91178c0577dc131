package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func entry(id string) Entry {
	return Entry{ID: id, Callback: func(_, _ any) {}}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestNew_empty(t *testing.T) {
	t.Parallel()

	r := New()
	require.Empty(t, r.Channels())
	require.False(t, r.Exists("c"))
	require.Nil(t, r.Snapshot("c"))
	require.Zero(t, r.Len("c"))
}

func TestRegistry_Add_preservesOrder(t *testing.T) {
	t.Parallel()

	r := New()
	require.True(t, r.Add("c", entry("1")))
	require.True(t, r.Add("c", entry("2")))
	require.True(t, r.Add("c", entry("3")))

	require.Equal(t, []string{"1", "2", "3"}, ids(r.Snapshot("c")))
	require.True(t, r.Exists("c"))
	require.Equal(t, 3, r.Len("c"))
}

func TestRegistry_Add_rejectsDuplicateID(t *testing.T) {
	t.Parallel()

	r := New()
	require.True(t, r.Add("c", entry("1")))
	require.False(t, r.Add("c", entry("1")))
	require.Equal(t, 1, r.Len("c"))

	// Same ID on a different channel is a different record.
	require.True(t, r.Add("d", entry("1")))
}

func TestRegistry_Remove(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add("c", entry("1"))
	r.Add("c", entry("2"))
	r.Add("c", entry("3"))

	require.True(t, r.Remove("c", "2"))
	require.Equal(t, []string{"1", "3"}, ids(r.Snapshot("c")))

	require.False(t, r.Remove("c", "2"), "second removal must be a no-op")
	require.False(t, r.Remove("c", "unknown"))
	require.False(t, r.Remove("missing", "1"))
	require.Equal(t, []string{"1", "3"}, ids(r.Snapshot("c")))
}

func TestRegistry_Remove_lastEntryDropsChannel(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add("c", entry("1"))

	require.True(t, r.Remove("c", "1"))
	require.False(t, r.Exists("c"))
	require.Empty(t, r.Channels())
}

func TestRegistry_Snapshot_isStable(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add("c", entry("1"))
	r.Add("c", entry("2"))

	snap := r.Snapshot("c")

	r.Add("c", entry("3"))
	r.Remove("c", "1")

	require.Equal(t, []string{"1", "2"}, ids(snap))
	require.Equal(t, []string{"2", "3"}, ids(r.Snapshot("c")))
}

func TestRegistry_Channels_sorted(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add("zeta", entry("1"))
	r.Add("alpha", entry("2"))
	r.Add("mid", entry("3"))

	require.Equal(t, []string{"alpha", "mid", "zeta"}, r.Channels())
}

func TestRegistry_Drop(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add("c", entry("1"))
	r.Add("c", entry("2"))
	r.Add("d", entry("3"))

	require.Equal(t, 2, r.Drop("c"))
	require.False(t, r.Exists("c"))
	require.True(t, r.Exists("d"))

	require.Zero(t, r.Drop("c"))
}

func TestRegistry_Reset(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add("c", entry("1"))
	r.Add("d", entry("2"))

	r.Reset()

	require.Empty(t, r.Channels())
	require.True(t, r.Add("c", entry("1")))
}

func TestEntry_Invoke_passesReceiver(t *testing.T) {
	t.Parallel()

	var gotReceiver, gotData any
	e := Entry{
		ID: "1",
		Callback: func(receiver, data any) {
			gotReceiver = receiver
			gotData = data
		},
		Receiver: "ctx",
	}

	e.Invoke(42)

	require.Equal(t, "ctx", gotReceiver)
	require.Equal(t, 42, gotData)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := New()

	const workers = 10
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := fmt.Sprintf("%d-%d", w, j)
				r.Add("c", entry(id))
				_ = r.Snapshot("c")
				r.Remove("c", id)
			}
		}(i)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_ = r.Channels()
				_ = r.Len("c")
			}
		}()
	}

	wg.Wait()

	require.False(t, r.Exists("c"))
}
