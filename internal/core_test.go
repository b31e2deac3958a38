package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedbridge/schedbridge/internal/options"
	"github.com/schedbridge/schedbridge/pkg/actor"
	"github.com/schedbridge/schedbridge/pkg/bridge"
)

func simulatedOptions() *options.Options {
	opts := options.DefaultOptions()
	opts.Simulate = true
	opts.Resolve()
	return opts
}

func TestControllerRunsAgainstSimulatedDriver(t *testing.T) {
	system := actor.NewSystem(t.Name())
	ref, created := system.ActorOf(
		actor.Addr("controller"), newController("test", simulatedOptions()))
	require.True(t, created)

	// Let the scripted registration and offer round flow through; the
	// controller declines everything and keeps running.
	time.Sleep(50 * time.Millisecond)
	ref.Stop()
	assert.NoError(t, ref.AwaitTermination())
}

func TestControllerDiesOnDriverError(t *testing.T) {
	system := actor.NewSystem(t.Name())
	ref, created := system.ActorOf(
		actor.Addr("controller"), newController("test", simulatedOptions()))
	require.True(t, created)

	ref.Tell(bridge.Error{Message: "master rejected the framework"})
	err := ref.AwaitTermination()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "master rejected the framework")
}
