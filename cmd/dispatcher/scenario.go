package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/jpalmerr/dispatcher"
	"github.com/jpalmerr/dispatcher/config"
)

// scenario executes the subscribers and steps of a config against one
// dispatcher.
type scenario struct {
	d      *dispatcher.Dispatcher
	cfg    *config.Config
	out    io.Writer
	logger *slog.Logger

	byName map[string]*config.SubscriberConfig
	active map[string]*dispatcher.Subscription
	counts map[string]int
}

func newScenario(d *dispatcher.Dispatcher, cfg *config.Config, out io.Writer, logger *slog.Logger) *scenario {
	sc := &scenario{
		d:      d,
		cfg:    cfg,
		out:    out,
		logger: logger,
		byName: make(map[string]*config.SubscriberConfig, len(cfg.Subscribers)),
		active: make(map[string]*dispatcher.Subscription, len(cfg.Subscribers)),
		counts: make(map[string]int, len(cfg.Subscribers)),
	}
	for i := range cfg.Subscribers {
		sc.byName[cfg.Subscribers[i].Name] = &cfg.Subscribers[i]
	}
	return sc
}

// run registers every subscriber and executes the steps. It stops at the
// first failing step.
func (sc *scenario) run() error {
	for i := range sc.cfg.Subscribers {
		if err := sc.subscribe(sc.cfg.Subscribers[i].Name); err != nil {
			return err
		}
	}

	for i, step := range sc.cfg.Steps {
		if err := sc.step(step); err != nil {
			return fmt.Errorf("steps[%d] (%s): %w", i, step.Op, err)
		}
	}
	return nil
}

func (sc *scenario) step(step config.StepConfig) error {
	switch step.Op {
	case config.OpPublish:
		return sc.publish(step.Channel, step.Data)

	case config.OpSubscribe:
		return sc.subscribe(step.Subscriber)

	case config.OpUnsubscribe:
		sub, ok := sc.active[step.Subscriber]
		if !ok {
			sc.logger.Warn("subscriber is not active", "subscriber", step.Subscriber)
			return nil
		}
		sub.Unsubscribe()
		delete(sc.active, step.Subscriber)

	case config.OpDestroy:
		removed := sc.d.DestroyChannel(step.Channel)
		for name, sub := range sc.active {
			if sub.Channel() == step.Channel {
				delete(sc.active, name)
			}
		}
		sc.logger.Info("channel destroyed", "channel", step.Channel, "removed", removed)

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func (sc *scenario) subscribe(name string) error {
	if _, ok := sc.active[name]; ok {
		sc.logger.Warn("subscriber already active", "subscriber", name)
		return nil
	}

	s := sc.byName[name]
	sub, err := sc.d.SubscribeBound(s.Channel, sc.deliver, s)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", name, err)
	}
	sc.active[name] = sub
	sc.logger.Debug("subscribed",
		"subscriber", name,
		"channel", s.Channel,
		"subscription_id", sub.ID(),
	)
	return nil
}

// publish converts a propagated subscriber panic into an error.
func (sc *scenario) publish(channel string, data any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("publish to %q aborted: %v", channel, r)
		}
	}()
	sc.d.Publish(channel, data)
	return nil
}

// deliver is the bound callback shared by all scenario subscribers; the
// receiver is the subscriber's config.
func (sc *scenario) deliver(receiver, data any) {
	s := receiver.(*config.SubscriberConfig)
	sc.counts[s.Name]++

	switch s.Action {
	case config.ActionFail:
		panic(fmt.Sprintf("subscriber %s failed", s.Name))
	case config.ActionCount:
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte(fmt.Sprintf("%v", data))
	}
	fmt.Fprintf(sc.out, "%s %s <- %s\n", s.Prefix, s.Channel, payload)
}

// summary prints the delivery count of every declared subscriber.
func (sc *scenario) summary() {
	fmt.Fprintf(sc.out, "Deliveries:\n")
	for _, s := range sc.cfg.Subscribers {
		fmt.Fprintf(sc.out, "  %s: %d\n", s.Name, sc.counts[s.Name])
	}
}
