// Package ident provides subscription identity generators.
//
// This package is internal to the dispatcher. An identity is an opaque string
// that is never reissued for the lifetime of the process. Two schemes exist:
//
//   - [Sequence]: start timestamp plus a monotonic counter, formatted in base 10
//   - [UUID]: random version 4 UUIDs
//
// [Process] returns the sequence shared by every dispatcher in the process.
package ident
