// Package dispatcher provides an in-process publish/subscribe dispatcher
// with named channels and synchronous delivery.
//
// Callers register callbacks against channel names and other callers publish
// data to those names. Every publish invokes each callback currently
// subscribed to the channel exactly once, in registration order, in the
// publishing goroutine, before Publish returns. There is no queue, no
// background goroutine and no pattern matching: a channel is an exact string.
//
// # Quick Start
//
//	d, _ := dispatcher.New()
//
//	sub, _ := d.Subscribe("news", func(data any) {
//	    fmt.Println("headline:", data)
//	})
//
//	d.Publish("news", "markets up") // prints "headline: markets up"
//	sub.Unsubscribe()
//	d.Publish("news", "markets down") // no subscribers, nothing happens
//
// # Bound Receivers
//
// [Dispatcher.SubscribeBound] stores a receiver next to the callback and
// passes it as the callback's first argument on every publish:
//
//	type counter struct{ n int }
//	c := &counter{}
//
//	d.SubscribeBound("tick", func(receiver, _ any) {
//	    receiver.(*counter).n++
//	}, c)
//
// Method values are the other idiomatic way to bind state:
// d.Subscribe("tick", c.OnTick).
//
// # Channel Views
//
// [Dispatcher.Channel] returns a [ChannelView] that fixes the channel name:
//
//	news := d.Channel("news")
//	news.Subscribe(printHeadline)
//	news.Publish("hello")
//
// # Configuration
//
// The Dispatcher uses the functional options pattern:
//
//	d, err := dispatcher.New(
//	    dispatcher.WithLogger(logger),
//	    dispatcher.WithLogging(true),
//	    dispatcher.WithIdentityScheme(dispatcher.IdentityUUID),
//	    dispatcher.WithPanicPolicy(dispatcher.PanicRecover),
//	)
//
// The config subpackage loads the same settings from a YAML file, and
// cmd/dispatcher runs scripted publish/subscribe scenarios from such files.
//
// # Errors and Diagnostics
//
// The dispatcher tolerates rather than rejects: unsubscribing an unknown
// identity and publishing to an unknown channel are no-ops. The only
// rejected input is a callback that cannot be invoked, reported as
// [ErrInvalidCallback]. With logging enabled ([Dispatcher.SetLogging]) these
// conditions are also written to the configured [log/slog] logger.
//
// A callback that panics aborts the rest of that publish by default
// ([PanicPropagate]). [PanicRecover] isolates subscribers from each other
// instead.
//
// # Architecture
//
//   - internal/registry: channel table with copy-on-write subscriber lists
//   - internal/ident: identity generators (process-wide sequence, UUID)
//   - config: YAML and environment configuration
//
// The internal packages are not part of the public API and may change
// without notice.
package dispatcher
