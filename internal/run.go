// Package internal wires the bridge, the built-in controller, and the actor
// system into a runnable process.
package internal

import (
	"github.com/sirupsen/logrus"

	"github.com/schedbridge/schedbridge/internal/options"
	"github.com/schedbridge/schedbridge/pkg/actor"
)

// Run starts the controller actor against the configured driver and blocks
// until it terminates.
func Run(version string, opts *options.Options) error {
	printableConfig, err := opts.Printable()
	if err != nil {
		return err
	}
	logrus.Infof("bridge configuration: %s", printableConfig)

	system := actor.NewSystem(opts.FrameworkName)
	ref, _ := system.ActorOf(actor.Addr("controller"), newController(version, opts))
	return ref.AwaitTermination()
}
