// Package sim provides a scripted, in-process stand-in for the native Mesos
// scheduler driver. It registers immediately, announces a configurable round
// of resource offers, and answers launch and reconcile commands with task
// status updates, all without a cluster. It backs the bridge's end-to-end
// tests and the demo run mode.
package sim

import (
	"fmt"
	"sync"

	"github.com/mesos/mesos-go/api/v0/mesosproto"
	"github.com/mesos/mesos-go/api/v0/mesosutil"
	sched "github.com/mesos/mesos-go/api/v0/scheduler"

	"github.com/schedbridge/schedbridge/pkg/bridge"
)

// Script configures the simulated cluster.
type Script struct {
	// MasterID is the ID the simulated master reports at registration.
	MasterID string
	// FrameworkID is the ID assigned to the framework at registration.
	FrameworkID string
	// Offers is the number of resource offers announced after registration,
	// one per simulated slave.
	Offers int
	// CPUs and MemMB are the resources attached to every offer.
	CPUs  float64
	MemMB float64
}

func (s Script) withDefaults() Script {
	if s.MasterID == "" {
		s.MasterID = "sim-master"
	}
	if s.FrameworkID == "" {
		s.FrameworkID = "sim-framework"
	}
	if s.CPUs == 0 {
		s.CPUs = 4
	}
	if s.MemMB == 0 {
		s.MemMB = 4096
	}
	return s
}

// Driver is a bridge.Driver that replays the script from its own worker
// goroutine, mirroring the native driver's status transitions: not-started
// until Start, running until Stop or Abort, and Join blocking until the
// worker has exited.
type Driver struct {
	script    Script
	scheduler sched.Scheduler

	mu      sync.Mutex
	status  mesosproto.Status
	stopped chan struct{}
	wg      sync.WaitGroup
}

var _ bridge.Driver = (*Driver)(nil)

// New constructs a simulated driver for the given driver configuration.
func New(script Script, config sched.DriverConfig) *Driver {
	return &Driver{
		script:    script.withDefaults(),
		scheduler: config.Scheduler,
		status:    mesosproto.Status_DRIVER_NOT_STARTED,
		stopped:   make(chan struct{}),
	}
}

// NewFactory returns a bridge.DriverFactory that builds simulated drivers in
// place of the real one.
func NewFactory(script Script) bridge.DriverFactory {
	return func(config sched.DriverConfig) (bridge.Driver, error) {
		return New(script, config), nil
	}
}

// Start transitions the driver to running and spawns the scripted worker.
func (d *Driver) Start() (mesosproto.Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != mesosproto.Status_DRIVER_NOT_STARTED {
		return d.status, nil
	}
	d.status = mesosproto.Status_DRIVER_RUNNING
	d.wg.Add(1)
	go d.lifecycle()
	return d.status, nil
}

// Stop transitions the driver to stopped. The failover flag has no observable
// effect in the simulation beyond being accepted.
func (d *Driver) Stop(failover bool) (mesosproto.Status, error) {
	return d.terminate(mesosproto.Status_DRIVER_STOPPED), nil
}

// Abort transitions the driver to aborted.
func (d *Driver) Abort() (mesosproto.Status, error) {
	return d.terminate(mesosproto.Status_DRIVER_ABORTED), nil
}

// Join blocks until the worker goroutine has exited and returns the terminal
// status.
func (d *Driver) Join() (mesosproto.Status, error) {
	d.wg.Wait()
	return d.currentStatus(), nil
}

// Run starts the driver and joins it.
func (d *Driver) Run() (mesosproto.Status, error) {
	if status, err := d.Start(); err != nil || status != mesosproto.Status_DRIVER_RUNNING {
		return status, err
	}
	return d.Join()
}

func (d *Driver) terminate(status mesosproto.Status) mesosproto.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status == mesosproto.Status_DRIVER_RUNNING {
		d.status = status
		close(d.stopped)
	}
	return d.status
}

func (d *Driver) currentStatus() mesosproto.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *Driver) running() bool {
	return d.currentStatus() == mesosproto.Status_DRIVER_RUNNING
}

// lifecycle is the simulated master: it registers the framework, announces
// the scripted offers, and then idles until terminated.
func (d *Driver) lifecycle() {
	defer d.wg.Done()

	frameworkID := mesosutil.NewFrameworkID(d.script.FrameworkID)
	masterInfo := mesosutil.NewMasterInfo(d.script.MasterID, 2130706433, 5050)
	if d.running() {
		d.scheduler.Registered(nil, frameworkID, masterInfo)
	}

	if d.script.Offers > 0 && d.running() {
		offers := make([]*mesosproto.Offer, 0, d.script.Offers)
		for i := 0; i < d.script.Offers; i++ {
			offer := mesosutil.NewOffer(
				mesosutil.NewOfferID(fmt.Sprintf("sim-offer-%d", i+1)),
				frameworkID,
				mesosutil.NewSlaveID(fmt.Sprintf("sim-slave-%d", i+1)),
				fmt.Sprintf("sim-slave-%d.local", i+1),
			)
			offer.Resources = []*mesosproto.Resource{
				mesosutil.NewScalarResource("cpus", d.script.CPUs),
				mesosutil.NewScalarResource("mem", d.script.MemMB),
			}
			offers = append(offers, offer)
		}
		d.scheduler.ResourceOffers(nil, offers)
	}

	<-d.stopped
}

// AcceptOffers runs any launch operations in the accept call; tasks launched
// this way go straight to running and then finished.
func (d *Driver) AcceptOffers(
	offerIDs []*mesosproto.OfferID, operations []*mesosproto.Offer_Operation,
	filters *mesosproto.Filters,
) (mesosproto.Status, error) {
	if !d.running() {
		return d.currentStatus(), nil
	}
	for _, operation := range operations {
		if operation.GetType() != mesosproto.Offer_Operation_LAUNCH {
			continue
		}
		for _, task := range operation.GetLaunch().GetTaskInfos() {
			d.runTask(task.GetTaskId())
		}
	}
	return d.currentStatus(), nil
}

// DeclineOffer accepts the decline without further effect; the simulation
// does not recycle offers.
func (d *Driver) DeclineOffer(
	offerID *mesosproto.OfferID, filters *mesosproto.Filters,
) (mesosproto.Status, error) {
	return d.currentStatus(), nil
}

// KillTask reports the task as killed.
func (d *Driver) KillTask(taskID *mesosproto.TaskID) (mesosproto.Status, error) {
	if d.running() {
		d.scheduler.StatusUpdate(
			nil, mesosutil.NewTaskStatus(taskID, mesosproto.TaskState_TASK_KILLED))
	}
	return d.currentStatus(), nil
}

// ReviveOffers accepts the revive without further effect.
func (d *Driver) ReviveOffers() (mesosproto.Status, error) {
	return d.currentStatus(), nil
}

// SendFrameworkMessage loops the message back from the addressed executor.
func (d *Driver) SendFrameworkMessage(
	executorID *mesosproto.ExecutorID, slaveID *mesosproto.SlaveID, data string,
) (mesosproto.Status, error) {
	if d.running() {
		d.scheduler.FrameworkMessage(nil, executorID, slaveID, data)
	}
	return d.currentStatus(), nil
}

// RequestResources accepts the request without further effect; the scripted
// offer round is fixed.
func (d *Driver) RequestResources(requests []*mesosproto.Request) (mesosproto.Status, error) {
	return d.currentStatus(), nil
}

// ReconcileTasks answers every queried task with a status update echoing the
// queried state.
func (d *Driver) ReconcileTasks(statuses []*mesosproto.TaskStatus) (mesosproto.Status, error) {
	if d.running() {
		for _, status := range statuses {
			d.scheduler.StatusUpdate(nil, status)
		}
	}
	return d.currentStatus(), nil
}

// LaunchTasks runs every task in the launch call to completion.
func (d *Driver) LaunchTasks(
	offerIDs []*mesosproto.OfferID, tasks []*mesosproto.TaskInfo, filters *mesosproto.Filters,
) (mesosproto.Status, error) {
	if !d.running() {
		return d.currentStatus(), nil
	}
	for _, task := range tasks {
		d.runTask(task.GetTaskId())
	}
	return d.currentStatus(), nil
}

func (d *Driver) runTask(taskID *mesosproto.TaskID) {
	d.scheduler.StatusUpdate(
		nil, mesosutil.NewTaskStatus(taskID, mesosproto.TaskState_TASK_RUNNING))
	d.scheduler.StatusUpdate(
		nil, mesosutil.NewTaskStatus(taskID, mesosproto.TaskState_TASK_FINISHED))
}
