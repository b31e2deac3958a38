package bridge

import (
	"github.com/mesos/mesos-go/api/v0/mesosproto"
	sched "github.com/mesos/mesos-go/api/v0/scheduler"
)

// Driver is the surface of the native Mesos scheduler driver that the bridge
// drives. It is the only component making network and scheduling decisions;
// the bridge forwards decoded requests to it and translates its statuses. The
// production implementation is *scheduler.MesosSchedulerDriver.
type Driver interface {
	Start() (mesosproto.Status, error)
	Stop(failover bool) (mesosproto.Status, error)
	Abort() (mesosproto.Status, error)
	Join() (mesosproto.Status, error)
	Run() (mesosproto.Status, error)

	AcceptOffers(
		offerIDs []*mesosproto.OfferID,
		operations []*mesosproto.Offer_Operation,
		filters *mesosproto.Filters,
	) (mesosproto.Status, error)
	DeclineOffer(offerID *mesosproto.OfferID, filters *mesosproto.Filters) (mesosproto.Status, error)
	KillTask(taskID *mesosproto.TaskID) (mesosproto.Status, error)
	ReviveOffers() (mesosproto.Status, error)
	SendFrameworkMessage(
		executorID *mesosproto.ExecutorID, slaveID *mesosproto.SlaveID, data string,
	) (mesosproto.Status, error)
	RequestResources(requests []*mesosproto.Request) (mesosproto.Status, error)
	ReconcileTasks(statuses []*mesosproto.TaskStatus) (mesosproto.Status, error)
	LaunchTasks(
		offerIDs []*mesosproto.OfferID,
		tasks []*mesosproto.TaskInfo,
		filters *mesosproto.Filters,
	) (mesosproto.Status, error)
}

// DriverFactory constructs the native driver half of a handle pair. Init uses
// the production factory; tests and the built-in simulation substitute their
// own.
type DriverFactory func(config sched.DriverConfig) (Driver, error)

// NewMesosDriver is the production DriverFactory, backed by the real
// MesosSchedulerDriver.
func NewMesosDriver(config sched.DriverConfig) (Driver, error) {
	driver, err := sched.NewMesosSchedulerDriver(config)
	if err != nil {
		return nil, err
	}
	return driver, nil
}
