package internal

import (
	"fmt"
	"runtime"
	"syscall"

	"github.com/gogo/protobuf/proto"
	"github.com/mesos/mesos-go/api/v0/mesosproto"
	"github.com/mesos/mesos-go/api/v0/mesosutil"
	"github.com/pkg/errors"

	"github.com/schedbridge/schedbridge/internal/options"
	"github.com/schedbridge/schedbridge/pkg/actor"
	"github.com/schedbridge/schedbridge/pkg/actor/actors"
	"github.com/schedbridge/schedbridge/pkg/bridge"
	"github.com/schedbridge/schedbridge/pkg/codec"
	"github.com/schedbridge/schedbridge/pkg/sim"
)

// controller is the built-in reference controller: it drives the bridge
// lifecycle, logs every message the bridge delivers, and declines all offers.
// A real framework replaces this actor with its own scheduling logic.
type controller struct {
	version string
	options *options.Options

	bridge      *bridge.Bridge
	frameworkID string
}

func newController(version string, opts *options.Options) *controller {
	return &controller{version: version, options: opts}
}

func (c *controller) Receive(ctx *actor.Context) error {
	switch msg := ctx.Message().(type) {
	case actor.PreStart:
		ctx.Log().Infof("schedbridge %s (built with %s)", c.version, runtime.Version())
		actors.NotifyOnSignal(ctx, syscall.SIGINT, syscall.SIGTERM)
		return c.connect(ctx)

	case bridge.Registered:
		frameworkID := &mesosproto.FrameworkID{}
		if err := codec.Decode(msg.FrameworkID, frameworkID); err != nil {
			return errors.Wrap(err, "undecodable registration")
		}
		c.frameworkID = frameworkID.GetValue()
		ctx.Log().WithField("framework-id", c.frameworkID).Info("registered with master")

	case bridge.Reregistered:
		ctx.Log().Info("reregistered with newly elected master")

	case bridge.Disconnected:
		ctx.Log().Warn("disconnected from master; driver will reconnect")

	case bridge.ResourceOffer:
		return c.receiveOffer(ctx, msg)

	case bridge.OfferRescinded:
		ctx.Log().Info("offer rescinded")

	case bridge.StatusUpdate:
		status := &mesosproto.TaskStatus{}
		if err := codec.Decode(msg.TaskStatus, status); err != nil {
			return errors.Wrap(err, "undecodable status update")
		}
		ctx.Log().WithField("task-id", status.GetTaskId().GetValue()).
			Infof("task transitioned to %s", status.GetState())

	case bridge.FrameworkMessage:
		ctx.Log().Infof("framework message of %d bytes", len(msg.Data))

	case bridge.SlaveLost:
		ctx.Log().Warn("slave lost")

	case bridge.ExecutorLost:
		ctx.Log().WithField("exit-status", msg.ExitStatus).Warn("executor lost")

	case bridge.Error:
		// The native driver has already aborted; take the process down with
		// it.
		return errors.Errorf("native driver failed: %s", msg.Message)

	case syscall.Signal:
		ctx.Log().Infof("received %s, shutting down", msg)
		ctx.Self().Stop()

	case actor.PostStop:
		c.disconnect(ctx)

	default:
		return actor.ErrUnexpectedMessage(ctx)
	}
	return nil
}

// connect builds the framework descriptor from the options, initializes the
// bridge, and starts the native driver.
func (c *controller) connect(ctx *actor.Context) error {
	framework := mesosutil.NewFrameworkInfo(
		c.options.FrameworkUser, c.options.FrameworkName, nil)
	if c.options.FrameworkID != "" {
		framework.Id = mesosutil.NewFrameworkID(c.options.FrameworkID)
	}
	if c.options.FailoverTimeout > 0 {
		framework.FailoverTimeout = proto.Float64(c.options.FailoverTimeout)
	}
	if c.options.Checkpoint {
		framework.Checkpoint = proto.Bool(true)
	}
	if c.options.Principal != "" {
		framework.Principal = proto.String(c.options.Principal)
	}

	frameworkData, err := codec.Encode(framework)
	if err != nil {
		return errors.Wrap(err, "failed to encode framework descriptor")
	}

	var credentialData []byte
	if c.options.Principal != "" && c.options.Secret != "" {
		credentialData, err = codec.Encode(&mesosproto.Credential{
			Principal: proto.String(c.options.Principal),
			Secret:    proto.String(c.options.Secret),
		})
		if err != nil {
			return errors.Wrap(err, "failed to encode credential")
		}
	}

	factory := bridge.NewMesosDriver
	if c.options.Simulate {
		ctx.Log().Info("running against the simulated driver")
		factory = sim.NewFactory(sim.Script{
			FrameworkID: c.options.FrameworkID,
			Offers:      c.options.SimOffers,
		})
	}

	c.bridge, err = bridge.InitWithDriver(
		ctx.Self(), frameworkData, c.options.Master, credentialData, factory)
	if err != nil {
		return errors.Wrap(err, "failed to initialize bridge")
	}

	if status := c.bridge.Start(); status != bridge.StatusRunning {
		return errors.Errorf("native driver failed to start: %s", status)
	}
	ctx.Log().WithField("master", c.options.Master).Info("driver started")
	return nil
}

func (c *controller) receiveOffer(ctx *actor.Context, msg bridge.ResourceOffer) error {
	offer := &mesosproto.Offer{}
	if err := codec.Decode(msg.Offer, offer); err != nil {
		return errors.Wrap(err, "undecodable offer")
	}
	ctx.Log().WithField("offer-id", offer.GetId().GetValue()).
		Infof("declining offer from %s with %s", offer.GetHostname(), summarize(offer))

	offerData, err := codec.Encode(offer.GetId())
	if err != nil {
		return errors.Wrap(err, "failed to encode offer id")
	}
	filterData, err := codec.Encode(&mesosproto.Filters{
		RefuseSeconds: proto.Float64(5),
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode filters")
	}

	if status := c.bridge.DeclineOffer(offerData, filterData); status != bridge.StatusRunning {
		ctx.Log().Warnf("decline answered with %s", status)
	}
	return nil
}

// disconnect tears the driver down and releases the bridge. Safe to call when
// connect never completed.
func (c *controller) disconnect(ctx *actor.Context) {
	if c.bridge == nil {
		return
	}
	c.bridge.Stop(c.options.Failover)
	status := c.bridge.Join()
	c.bridge.Destroy()
	c.bridge = nil
	ctx.Log().Infof("driver terminated with %s", status)
}

func summarize(offer *mesosproto.Offer) string {
	var cpus, mem float64
	for _, resource := range offer.GetResources() {
		switch resource.GetName() {
		case "cpus":
			cpus += resource.GetScalar().GetValue()
		case "mem":
			mem += resource.GetScalar().GetValue()
		}
	}
	return fmt.Sprintf("%.1f cpus, %.0f MB", cpus, mem)
}
