package bridge

import (
	"github.com/mesos/mesos-go/api/v0/mesosproto"

	"github.com/schedbridge/schedbridge/pkg/codec"
)

// Controller-initiated commands. Every command decodes all of its binary
// arguments before touching the native driver: if any payload is malformed
// the command returns StatusRejected with no side effects; otherwise the
// decoded arguments are forwarded and the driver's status is returned
// unchanged. Sequence arguments are all or nothing per codec.DecodeSlice.

// AcceptOffers accepts the given offers with a list of offer operations
// (launch, reserve, create, ...) applied against them.
func (b *Bridge) AcceptOffers(offerIDs, operations [][]byte, filterData []byte) Status {
	ids, err := codec.DecodeSlice[mesosproto.OfferID](offerIDs)
	if err != nil {
		return b.reject("acceptOffers", "offer id", err)
	}
	ops, err := codec.DecodeSlice[mesosproto.Offer_Operation](operations)
	if err != nil {
		return b.reject("acceptOffers", "operation", err)
	}
	filters := &mesosproto.Filters{}
	if err := codec.Decode(filterData, filters); err != nil {
		return b.reject("acceptOffers", "filters", err)
	}
	status, err := b.driver.AcceptOffers(ids, ops, filters)
	return b.report("acceptOffers", status, err)
}

// DeclineOffer declines a single offer, applying the given filters to
// subsequent offers from the same slave.
func (b *Bridge) DeclineOffer(offerData, filterData []byte) Status {
	offerID := &mesosproto.OfferID{}
	if err := codec.Decode(offerData, offerID); err != nil {
		return b.reject("declineOffer", "offer id", err)
	}
	filters := &mesosproto.Filters{}
	if err := codec.Decode(filterData, filters); err != nil {
		return b.reject("declineOffer", "filters", err)
	}
	status, err := b.driver.DeclineOffer(offerID, filters)
	return b.report("declineOffer", status, err)
}

// KillTask asks the cluster manager to kill the given task.
func (b *Bridge) KillTask(taskData []byte) Status {
	taskID := &mesosproto.TaskID{}
	if err := codec.Decode(taskData, taskID); err != nil {
		return b.reject("killTask", "task id", err)
	}
	status, err := b.driver.KillTask(taskID)
	return b.report("killTask", status, err)
}

// ReviveOffers removes all filters previously set, making the framework
// eligible for offers it had declined.
func (b *Bridge) ReviveOffers() Status {
	status, err := b.driver.ReviveOffers()
	return b.report("reviveOffers", status, err)
}

// SendFrameworkMessage sends a best-effort message to an executor. The data
// is passed through uninterpreted.
func (b *Bridge) SendFrameworkMessage(executorData, slaveData []byte, data string) Status {
	executorID := &mesosproto.ExecutorID{}
	if err := codec.Decode(executorData, executorID); err != nil {
		return b.reject("sendFrameworkMessage", "executor id", err)
	}
	slaveID := &mesosproto.SlaveID{}
	if err := codec.Decode(slaveData, slaveID); err != nil {
		return b.reject("sendFrameworkMessage", "slave id", err)
	}
	status, err := b.driver.SendFrameworkMessage(executorID, slaveID, data)
	return b.report("sendFrameworkMessage", status, err)
}

// RequestResources requests resources from the cluster manager outside of the
// regular offer cycle.
func (b *Bridge) RequestResources(requestData [][]byte) Status {
	requests, err := codec.DecodeSlice[mesosproto.Request](requestData)
	if err != nil {
		return b.reject("requestResources", "request", err)
	}
	status, err := b.driver.RequestResources(requests)
	return b.report("requestResources", status, err)
}

// ReconcileTasks queries the cluster manager for the current state of the
// given tasks; the answers arrive as ordinary status updates.
func (b *Bridge) ReconcileTasks(statusData [][]byte) Status {
	statuses, err := codec.DecodeSlice[mesosproto.TaskStatus](statusData)
	if err != nil {
		return b.reject("reconcileTasks", "task status", err)
	}
	status, err := b.driver.ReconcileTasks(statuses)
	return b.report("reconcileTasks", status, err)
}

// LaunchTasks launches the given tasks against a single offer.
func (b *Bridge) LaunchTasks(offerData []byte, taskData [][]byte, filterData []byte) Status {
	offerID := &mesosproto.OfferID{}
	if err := codec.Decode(offerData, offerID); err != nil {
		return b.reject("launchTasks", "offer id", err)
	}
	tasks, err := codec.DecodeSlice[mesosproto.TaskInfo](taskData)
	if err != nil {
		return b.reject("launchTasks", "task info", err)
	}
	filters := &mesosproto.Filters{}
	if err := codec.Decode(filterData, filters); err != nil {
		return b.reject("launchTasks", "filters", err)
	}
	status, err := b.driver.LaunchTasks([]*mesosproto.OfferID{offerID}, tasks, filters)
	return b.report("launchTasks", status, err)
}
