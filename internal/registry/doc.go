// Package registry stores the channel table behind the dispatcher.
//
// This package is internal to the dispatcher and maps channel names to ordered
// subscriber lists. The main components are:
//
//   - [Registry]: concurrency-safe channel table
//   - [Entry]: one registered callback with its identity and bound receiver
//
// Lists are copy-on-write. Every mutation installs a fresh slice, so the slice
// returned by [Registry.Snapshot] never changes after it is handed out and can
// be iterated without holding a lock while callbacks re-enter the registry.
//
// A channel whose last entry is removed is deleted from the table; an empty
// channel and a missing channel are indistinguishable.
package registry
