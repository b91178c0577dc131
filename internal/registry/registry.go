package registry

import (
	"slices"
	"sync"
)

// Entry is a single subscription record.
type Entry struct {
	// ID is the subscription identity. Unique within a channel.
	ID string

	// Callback is invoked with Receiver and the published data.
	Callback func(receiver, data any)

	// Receiver is the bound context passed as the callback's first argument.
	// nil when the subscription has no bound context.
	Receiver any
}

// Invoke calls the entry's callback with its bound receiver.
func (e Entry) Invoke(data any) {
	e.Callback(e.Receiver, data)
}

// Registry is an in-memory table of channels.
//
// Registry is safe for concurrent access. Reads and writes are serialized by
// an RWMutex; callbacks are never invoked by the registry itself.
type Registry struct {
	mu       sync.RWMutex
	channels map[string][]Entry
}

// New creates an empty [Registry].
func New() *Registry {
	return &Registry{
		channels: make(map[string][]Entry),
	}
}

// Add appends an entry to the tail of the named channel, creating the channel
// if needed.
//
// Returns false, leaving the channel unchanged, if an entry with the same ID
// is already registered on that channel.
func (r *Registry) Add(channel string, e Entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.channels[channel]
	for _, existing := range cur {
		if existing.ID == e.ID {
			return false
		}
	}

	next := make([]Entry, len(cur), len(cur)+1)
	copy(next, cur)
	r.channels[channel] = append(next, e)
	return true
}

// Remove deletes the entry with the given ID from the named channel.
//
// Returns true if an entry was removed. Unknown channels and unknown IDs are
// not errors. The channel is deleted once its last entry is gone.
func (r *Registry) Remove(channel, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.channels[channel]
	if !ok {
		return false
	}

	idx := slices.IndexFunc(cur, func(e Entry) bool { return e.ID == id })
	if idx < 0 {
		return false
	}

	if len(cur) == 1 {
		delete(r.channels, channel)
		return true
	}

	next := make([]Entry, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	r.channels[channel] = next
	return true
}

// Snapshot returns the entries of the named channel in registration order.
//
// The returned slice is never modified by the registry and must not be
// modified by the caller. Returns nil for a missing channel.
func (r *Registry) Snapshot(channel string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.channels[channel]
}

// Exists reports whether the named channel has at least one entry.
func (r *Registry) Exists(channel string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.channels[channel]
	return ok
}

// Len returns the number of entries on the named channel.
func (r *Registry) Len(channel string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.channels[channel])
}

// Channels returns the names of all non-empty channels, sorted.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Drop deletes the named channel and returns how many entries it held.
func (r *Registry) Drop(channel string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.channels[channel])
	delete(r.channels, channel)
	return n
}

// Reset deletes every channel.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.channels = make(map[string][]Entry)
}
