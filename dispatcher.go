package dispatcher

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jpalmerr/dispatcher/internal/ident"
	"github.com/jpalmerr/dispatcher/internal/registry"
)

// Dispatcher routes published data to the callbacks subscribed on a channel.
//
// A Dispatcher owns its channel table; instances created with [New] share
// nothing except the process-wide identity sequence. All methods are safe for
// concurrent use, and callbacks may call back into the Dispatcher (subscribe,
// unsubscribe, publish) on any channel.
//
// Dispatch is synchronous: [Dispatcher.Publish] invokes every subscriber in
// the calling goroutine, in registration order, before it returns.
//
//	d, err := dispatcher.New(dispatcher.WithLogging(true))
//	if err != nil {
//	    slog.Error("failed to create dispatcher", "error", err)
//	    os.Exit(1)
//	}
//
//	sub, _ := d.Subscribe("news", func(data any) {
//	    fmt.Println("got", data)
//	})
//	d.Publish("news", "hello")
//	sub.Unsubscribe()
type Dispatcher struct {
	registry    *registry.Registry
	ids         IDGenerator
	logger      *slog.Logger
	logging     atomic.Bool
	panicPolicy PanicPolicy
}

// New creates a [Dispatcher] with the given options.
//
// Defaults:
//   - Identity scheme: [IdentitySequence]
//   - Panic policy: [PanicPropagate]
//   - Logging: disabled, logger [slog.Default]
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Dispatcher, error) {
	cfg := &dConfig{
		panicPolicy: PanicPropagate,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	ids := cfg.ids
	if ids == nil {
		ids = ident.Process()
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		registry:    registry.New(),
		ids:         ids,
		logger:      logger,
		panicPolicy: cfg.panicPolicy,
	}
	d.logging.Store(cfg.logging)
	return d, nil
}

// Subscribe registers cb on the named channel.
//
// The subscription is appended after every existing subscriber of the
// channel. Returns [ErrInvalidCallback] and registers nothing if cb is nil.
func (d *Dispatcher) Subscribe(channel string, cb Callback) (*Subscription, error) {
	return d.subscribe(channel, cb, nil)
}

// SubscribeBound registers cb on the named channel with a bound receiver.
//
// On every publish cb is called with receiver as its first argument.
// Returns [ErrInvalidCallback] and registers nothing if cb is nil.
func (d *Dispatcher) SubscribeBound(channel string, cb BoundCallback, receiver any) (*Subscription, error) {
	return d.subscribe(channel, cb, receiver)
}

// SubscribeAny registers a dynamically typed callback on the named channel.
//
// fn may be a [Callback], func(any), func(), a [BoundCallback],
// func(any, any), or a [Handler]. receiver is passed to the two-argument
// forms and ignored otherwise; use nil when there is none.
//
// Any other value, including nil, numbers, strings, maps and structs that do
// not implement [Handler], yields [ErrInvalidCallback] and registers nothing.
func (d *Dispatcher) SubscribeAny(channel string, fn any, receiver any) (*Subscription, error) {
	return d.subscribe(channel, fn, receiver)
}

func (d *Dispatcher) subscribe(channel string, fn any, receiver any) (*Subscription, error) {
	cb, ok := normalize(fn)
	if !ok {
		d.warn("callback must be a function",
			"channel", channel,
			"callback_type", fmt.Sprintf("%T", fn),
		)
		return nil, ErrInvalidCallback
	}

	id := d.ids.Next()
	if !d.registry.Add(channel, registry.Entry{ID: id, Callback: cb, Receiver: receiver}) {
		// only reachable with a custom IDGenerator that repeats itself
		return nil, fmt.Errorf("duplicate subscription id %q on channel %q", id, channel)
	}

	return &Subscription{id: id, channel: channel, d: d}, nil
}

// Unsubscribe removes the subscription with the given identity from the
// named channel.
//
// Unknown channels, unknown identities and repeated calls are no-ops. When
// the last subscriber leaves, the channel ceases to exist.
func (d *Dispatcher) Unsubscribe(channel, id string) {
	if !d.registry.Remove(channel, id) {
		d.warn("unsubscribe matched no subscription",
			"channel", channel,
			"subscription_id", id,
		)
	}
}

// Publish invokes every callback subscribed to the named channel with data.
//
// The subscriber list is captured when Publish starts; callbacks added or
// removed while the dispatch is running take effect on the next publish.
// Callbacks run one after another in registration order, in the caller's
// goroutine. Publishing to a channel without subscribers does nothing.
//
// Under [PanicPropagate] a panicking callback aborts the remaining dispatch
// and the panic continues up the caller's stack. Under [PanicRecover] the
// panic is logged and dispatch continues.
func (d *Dispatcher) Publish(channel string, data any) {
	subs := d.registry.Snapshot(channel)
	if len(subs) == 0 {
		if d.logging.Load() {
			d.logger.Debug("publish to channel without subscribers", "channel", channel)
		}
		return
	}

	for _, sub := range subs {
		if d.panicPolicy == PanicRecover {
			d.invokeSafe(channel, sub, data)
			continue
		}
		sub.Invoke(data)
	}
}

// invokeSafe calls a subscriber with panic recovery.
// The panic is logged with a correlation ID and not propagated.
func (d *Dispatcher) invokeSafe(channel string, sub registry.Entry, data any) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("subscriber panicked",
				"correlation_id", uuid.NewString(),
				"channel", channel,
				"subscription_id", sub.ID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	sub.Invoke(data)
}

// Channel returns a [ChannelView] bound to name.
//
// Creating a view does not create the channel.
func (d *Dispatcher) Channel(name string) ChannelView {
	return ChannelView{name: name, d: d}
}

// SetLogging enables or disables advisory log records.
func (d *Dispatcher) SetLogging(on bool) {
	d.logging.Store(on)
}

// Logging reports whether advisory log records are enabled.
func (d *Dispatcher) Logging() bool {
	return d.logging.Load()
}

// ChannelExists reports whether the named channel has at least one subscriber.
func (d *Dispatcher) ChannelExists(name string) bool {
	return d.registry.Exists(name)
}

// SubscriberCount returns the number of subscribers on the named channel.
func (d *Dispatcher) SubscriberCount(name string) int {
	return d.registry.Len(name)
}

// Channels returns the names of all channels with subscribers, sorted.
func (d *Dispatcher) Channels() []string {
	return d.registry.Channels()
}

// DestroyChannel removes every subscriber from the named channel and returns
// how many were removed. Existing [Subscription] handles for the channel
// become inert.
func (d *Dispatcher) DestroyChannel(name string) int {
	return d.registry.Drop(name)
}

// Reset removes every channel. Identities issued afterwards still never
// repeat earlier ones.
func (d *Dispatcher) Reset() {
	d.registry.Reset()
}

// warn writes an advisory record when logging is enabled.
func (d *Dispatcher) warn(msg string, args ...any) {
	if !d.logging.Load() {
		return
	}
	d.logger.Warn(msg, args...)
}
