package dispatcher

// Subscription is the handle returned by the Subscribe family.
//
// A Subscription names exactly one registration on exactly one channel.
// Calling [Subscription.Unsubscribe] removes that registration and nothing
// else, no matter how many times it is called.
type Subscription struct {
	id      string
	channel string
	d       *Dispatcher
}

// ID returns the subscription's identity.
func (s *Subscription) ID() string {
	return s.id
}

// Channel returns the name of the channel the subscription belongs to.
func (s *Subscription) Channel() string {
	return s.channel
}

// Unsubscribe removes this subscription from its channel.
// Safe to call multiple times and on a nil Subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.d == nil {
		return
	}
	s.d.Unsubscribe(s.channel, s.id)
}
