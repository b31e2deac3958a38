// Package bridge connects the native Mesos scheduler driver's callback API to
// a controller that speaks only asynchronous, binary-encoded messages. Driver
// events become tagged messages delivered to the controller's mailbox;
// controller commands arrive as opaque byte payloads, are decoded, and are
// forwarded synchronously to the driver. The bridge makes no scheduling
// decisions of its own.
package bridge

import (
	"github.com/mesos/mesos-go/api/v0/mesosproto"
	sched "github.com/mesos/mesos-go/api/v0/scheduler"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/schedbridge/schedbridge/pkg/actor"
	"github.com/schedbridge/schedbridge/pkg/check"
	"github.com/schedbridge/schedbridge/pkg/codec"
)

// Bridge owns the native driver and the callback dispatcher bound to one
// controller identity. The two are created together by Init and released
// together by Destroy; a partially constructed pair is never observable.
type Bridge struct {
	log        *log.Entry
	driver     Driver
	dispatcher *dispatcher
}

// Init builds a handle pair: it decodes the framework descriptor (and the
// credential, when one is supplied), binds a callback dispatcher to the
// controller, and constructs the native driver around both. The master is not
// contacted; Init only prepares local state. The controller identity, the
// framework descriptor, and the master address are required; passing nil or
// empty values for them is a programming error.
func Init(
	controller *actor.Ref, frameworkData []byte, master string, credentialData []byte,
) (*Bridge, error) {
	return InitWithDriver(controller, frameworkData, master, credentialData, NewMesosDriver)
}

// InitWithDriver is Init with a substitute native driver factory.
func InitWithDriver(
	controller *actor.Ref, frameworkData []byte, master string, credentialData []byte,
	factory DriverFactory,
) (*Bridge, error) {
	check.Panic(check.True(controller != nil, "controller identity must be provided"))
	check.Panic(check.True(len(frameworkData) > 0, "framework descriptor must be provided"))
	check.Panic(check.NotEmpty(master, "master address must be provided"))
	check.Panic(check.True(factory != nil, "driver factory must be provided"))

	framework := &mesosproto.FrameworkInfo{}
	if err := codec.Decode(frameworkData, framework); err != nil {
		return nil, errors.Wrap(err, "malformed framework descriptor")
	}

	var credential *mesosproto.Credential
	if credentialData != nil {
		credential = &mesosproto.Credential{}
		if err := codec.Decode(credentialData, credential); err != nil {
			return nil, errors.Wrap(err, "malformed credential")
		}
	}

	dispatcher := newDispatcher(controller, framework)
	driver, err := factory(sched.DriverConfig{
		Scheduler:  dispatcher,
		Framework:  framework,
		Master:     master,
		Credential: credential,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to construct native driver")
	}

	return &Bridge{
		log: log.WithFields(log.Fields{
			"component": "bridge",
			"framework": framework.GetName(),
		}),
		driver:     driver,
		dispatcher: dispatcher,
	}, nil
}

// Start begins the native driver's connection and registration process and
// spawns its internal worker threads. The returned status is whatever the
// driver reports; calling Start twice is answered by the driver, not guarded
// here.
func (b *Bridge) Start() Status {
	status, err := b.driver.Start()
	return b.report("start", status, err)
}

// Stop requests a graceful shutdown. With failover the framework stays
// registered on the master so a later driver instance with the same
// descriptor can take over; without it the master tears the framework down.
func (b *Bridge) Stop(failover bool) Status {
	status, err := b.driver.Stop(failover)
	return b.report("stop", status, err)
}

// Abort requests an immediate shutdown without negotiating with the master.
func (b *Bridge) Abort() Status {
	status, err := b.driver.Abort()
	return b.report("abort", status, err)
}

// Join blocks the calling goroutine until the native driver's internal
// threads have fully exited. It is safe to call after Stop or Abort.
func (b *Bridge) Join() Status {
	status, err := b.driver.Join()
	return b.report("join", status, err)
}

// Run starts the driver and joins it in one call.
func (b *Bridge) Run() Status {
	status, err := b.driver.Run()
	return b.report("run", status, err)
}

// Destroy releases the handle pair. It must be called exactly once, only
// after Join has returned or if the driver was never started; calling it
// earlier is a programming-contract violation the bridge does not defend
// against. Calling it on an already released bridge panics.
func (b *Bridge) Destroy() {
	check.Panic(check.True(b.driver != nil, "destroy called on a released bridge"))
	b.driver = nil
	b.dispatcher = nil
}

// report surfaces native driver errors in the log and maps the native status
// into the bridge vocabulary unchanged.
func (b *Bridge) report(op string, status mesosproto.Status, err error) Status {
	if err != nil {
		b.log.WithError(err).Warnf("native driver reported an error during %s", op)
	}
	return Status(status)
}

// reject is the uniform malformed-argument path: the native driver is never
// invoked and no outbound message is produced.
func (b *Bridge) reject(op, argument string, err error) Status {
	b.log.WithError(err).Warnf("rejecting %s: malformed %s payload", op, argument)
	return StatusRejected
}
