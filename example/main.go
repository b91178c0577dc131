package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jpalmerr/dispatcher"
)

// order is the payload published on the orders channel.
type order struct {
	ID    string
	Total float64
}

// ledger keeps a running total; it is bound to its subscription as the
// receiver.
type ledger struct {
	total float64
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d, err := dispatcher.New(
		dispatcher.WithLogger(logger),
		dispatcher.WithLogging(true),
		dispatcher.WithPanicPolicy(dispatcher.PanicRecover),
	)
	if err != nil {
		slog.Error("failed to create dispatcher", "error", err)
		os.Exit(1)
	}

	orders := d.Channel("orders")

	// typed subscriber: skips anything that is not an order
	if _, err := orders.Subscribe(dispatcher.Typed(func(o order) {
		fmt.Printf("order %s: %.2f\n", o.ID, o.Total)
	})); err != nil {
		slog.Error("failed to subscribe", "error", err)
		os.Exit(1)
	}

	// bound receiver
	l := &ledger{}
	ledgerSub, err := orders.SubscribeBound(func(receiver, data any) {
		if o, ok := data.(order); ok {
			receiver.(*ledger).total += o.Total
		}
	}, l)
	if err != nil {
		slog.Error("failed to subscribe", "error", err)
		os.Exit(1)
	}

	// a subscriber that panics; PanicRecover logs it and keeps dispatching
	_, _ = orders.Subscribe(func(data any) {
		if o, ok := data.(order); ok && o.Total < 0 {
			panic("negative total")
		}
	})

	orders.Publish(order{ID: "A-1", Total: 19.99})
	orders.Publish(order{ID: "A-2", Total: 5.01})
	orders.Publish(order{ID: "A-3", Total: -1})
	orders.Publish("not an order")

	ledgerSub.Unsubscribe()
	orders.Publish(order{ID: "A-4", Total: 100})

	fmt.Printf("ledger total: %.2f\n", l.total)
	fmt.Printf("channels: %v, subscribers on orders: %d\n", d.Channels(), d.SubscriberCount("orders"))

	// nothing listens here; with logging on this is a debug record
	d.Publish("refunds", order{ID: "R-1"})
}
