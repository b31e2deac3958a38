package bridge

import (
	"github.com/gogo/protobuf/proto"
	"github.com/mesos/mesos-go/api/v0/mesosproto"
	sched "github.com/mesos/mesos-go/api/v0/scheduler"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/schedbridge/schedbridge/pkg/actor"
	"github.com/schedbridge/schedbridge/pkg/codec"
)

// dispatcher implements the native driver's scheduler callback interface,
// converting each callback into one outbound message for the controller. The
// controller reference and the framework copy are set at construction and
// never reassigned; beyond them every callback works from its own arguments
// only, so concurrent callbacks from different driver threads do not race.
//
// Delivery is a non-blocking enqueue into the controller's mailbox, completed
// before the callback returns. That matters for StatusUpdate in particular:
// the native driver treats returning from that callback as acknowledgment of
// the update.
type dispatcher struct {
	log        *log.Entry
	controller *actor.Ref
	framework  *mesosproto.FrameworkInfo
}

var _ sched.Scheduler = (*dispatcher)(nil)

func newDispatcher(controller *actor.Ref, framework *mesosproto.FrameworkInfo) *dispatcher {
	return &dispatcher{
		log:        log.WithField("component", "dispatcher"),
		controller: controller,
		framework:  framework,
	}
}

func (d *dispatcher) Registered(
	_ sched.SchedulerDriver, frameworkID *mesosproto.FrameworkID, masterInfo *mesosproto.MasterInfo,
) {
	d.log.WithField("framework-id", frameworkID.GetValue()).Info("registered with master")
	d.controller.Tell(Registered{
		FrameworkID: mustEncode(frameworkID),
		MasterInfo:  mustEncode(masterInfo),
	})
}

func (d *dispatcher) Reregistered(_ sched.SchedulerDriver, masterInfo *mesosproto.MasterInfo) {
	d.log.Info("reregistered with newly elected master")
	d.controller.Tell(Reregistered{MasterInfo: mustEncode(masterInfo)})
}

func (d *dispatcher) Disconnected(_ sched.SchedulerDriver) {
	d.log.Warn("disconnected from master")
	d.controller.Tell(Disconnected{})
}

// ResourceOffers fans the offer list out into one message per offer, in the
// order the driver delivered them.
func (d *dispatcher) ResourceOffers(_ sched.SchedulerDriver, offers []*mesosproto.Offer) {
	for _, offer := range offers {
		d.controller.Tell(ResourceOffer{Offer: mustEncode(offer)})
	}
}

func (d *dispatcher) OfferRescinded(_ sched.SchedulerDriver, offerID *mesosproto.OfferID) {
	d.controller.Tell(OfferRescinded{OfferID: mustEncode(offerID)})
}

func (d *dispatcher) StatusUpdate(_ sched.SchedulerDriver, status *mesosproto.TaskStatus) {
	d.controller.Tell(StatusUpdate{TaskStatus: mustEncode(status)})
}

func (d *dispatcher) FrameworkMessage(
	_ sched.SchedulerDriver, executorID *mesosproto.ExecutorID, slaveID *mesosproto.SlaveID,
	data string,
) {
	d.controller.Tell(FrameworkMessage{
		ExecutorID: mustEncode(executorID),
		SlaveID:    mustEncode(slaveID),
		Data:       data,
	})
}

func (d *dispatcher) SlaveLost(_ sched.SchedulerDriver, slaveID *mesosproto.SlaveID) {
	d.log.WithField("slave-id", slaveID.GetValue()).Warn("slave lost")
	d.controller.Tell(SlaveLost{SlaveID: mustEncode(slaveID)})
}

func (d *dispatcher) ExecutorLost(
	_ sched.SchedulerDriver, executorID *mesosproto.ExecutorID, slaveID *mesosproto.SlaveID,
	exitStatus int,
) {
	d.controller.Tell(ExecutorLost{
		ExecutorID: mustEncode(executorID),
		SlaveID:    mustEncode(slaveID),
		ExitStatus: exitStatus,
	})
}

// Error is invoked after the native driver has already aborted itself; the
// dispatcher only relays the condition and does not call Abort.
func (d *dispatcher) Error(_ sched.SchedulerDriver, message string) {
	d.log.WithField("message", message).Error("fatal driver condition")
	d.controller.Tell(Error{Message: message})
}

func mustEncode(msg proto.Message) []byte {
	data, err := codec.Encode(msg)
	if err != nil {
		// The driver handed us a valid protocol object; swallowing a failed
		// re-encode here would forge a callback acknowledgment.
		panic(errors.Wrapf(err, "failed to encode %T for delivery", msg))
	}
	return data
}
