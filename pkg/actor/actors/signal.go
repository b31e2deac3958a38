// Package actors provides convenience helpers built on top of the actor
// system.
package actors

import (
	"os"
	"os/signal"

	"github.com/schedbridge/schedbridge/pkg/actor"
)

// NotifyOnSignal relays incoming process signals to the calling actor as
// messages. If no signals are provided, all incoming signals will be relayed.
// Otherwise, just the provided signals will. Signals relayed to an actor that
// has already stopped are dropped.
func NotifyOnSignal(ctx *actor.Context, signals ...os.Signal) {
	listener := make(chan os.Signal, 100)
	signal.Notify(listener, signals...)
	self := ctx.Self()
	go func() {
		for sig := range listener {
			self.Tell(sig)
		}
	}()
}
