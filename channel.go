package dispatcher

// ChannelView is a [Dispatcher] facade bound to one channel name.
//
// A ChannelView holds no state of its own: subscribing through a view and
// publishing through the Dispatcher (or another view of the same name) reach
// the same subscribers. The zero value is not usable; obtain views from
// [Dispatcher.Channel].
type ChannelView struct {
	name string
	d    *Dispatcher
}

// Name returns the channel name the view is bound to.
func (v ChannelView) Name() string {
	return v.name
}

// Subscribe is [Dispatcher.Subscribe] on the view's channel.
func (v ChannelView) Subscribe(cb Callback) (*Subscription, error) {
	return v.d.Subscribe(v.name, cb)
}

// SubscribeBound is [Dispatcher.SubscribeBound] on the view's channel.
func (v ChannelView) SubscribeBound(cb BoundCallback, receiver any) (*Subscription, error) {
	return v.d.SubscribeBound(v.name, cb, receiver)
}

// SubscribeAny is [Dispatcher.SubscribeAny] on the view's channel.
func (v ChannelView) SubscribeAny(fn any, receiver any) (*Subscription, error) {
	return v.d.SubscribeAny(v.name, fn, receiver)
}

// Unsubscribe is [Dispatcher.Unsubscribe] on the view's channel.
func (v ChannelView) Unsubscribe(id string) {
	v.d.Unsubscribe(v.name, id)
}

// Publish is [Dispatcher.Publish] on the view's channel.
func (v ChannelView) Publish(data any) {
	v.d.Publish(v.name, data)
}
