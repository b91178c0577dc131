package dispatcher

// Callback receives the data passed to [Dispatcher.Publish].
type Callback func(data any)

// BoundCallback receives the receiver bound at subscription time followed by
// the published data. It is the dispatcher's form of a callback invoked with
// a bound context.
type BoundCallback func(receiver, data any)

// Handler is implemented by values that handle published data.
// A Handler passed to [Dispatcher.SubscribeAny] is invoked through its
// Handle method.
type Handler interface {
	Handle(data any)
}

// Typed adapts a function accepting a concrete payload type into a [Callback].
//
// Published data that is not of type T is skipped silently, so a typed
// subscriber can share a channel with publishers of other payload types.
//
// Example:
//
//	type Headline struct{ Text string }
//
//	d.Subscribe("news", dispatcher.Typed(func(h Headline) {
//	    fmt.Println(h.Text)
//	}))
func Typed[T any](fn func(T)) Callback {
	if fn == nil {
		return nil
	}
	return func(data any) {
		if v, ok := data.(T); ok {
			fn(v)
		}
	}
}

// normalize converts any supported callback shape into the registry's
// receiver-first form. ok is false for nil and for values that cannot be
// invoked.
func normalize(fn any) (cb func(receiver, data any), ok bool) {
	switch f := fn.(type) {
	case nil:
		return nil, false
	case Callback:
		if f == nil {
			return nil, false
		}
		return func(_, data any) { f(data) }, true
	case func(any):
		if f == nil {
			return nil, false
		}
		return func(_, data any) { f(data) }, true
	case func():
		if f == nil {
			return nil, false
		}
		return func(_, _ any) { f() }, true
	case BoundCallback:
		if f == nil {
			return nil, false
		}
		return f, true
	case func(any, any):
		if f == nil {
			return nil, false
		}
		return f, true
	case Handler:
		return func(_, data any) { f.Handle(data) }, true
	default:
		return nil, false
	}
}
