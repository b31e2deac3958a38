package bridge

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/mesos/mesos-go/api/v0/mesosproto"
	"github.com/mesos/mesos-go/api/v0/mesosutil"
	sched "github.com/mesos/mesos-go/api/v0/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDecodesFrameworkAndCredential(t *testing.T) {
	framework := mesosutil.NewFrameworkInfo("tester", "bridge-test", nil)
	framework.FailoverTimeout = proto.Float64(60)
	credential := &mesosproto.Credential{
		Principal: proto.String("tester"),
		Secret:    proto.String("hunter2"),
	}

	var config sched.DriverConfig
	b, err := InitWithDriver(
		testController(t), encoded(t, framework), "zk://127.0.0.1:2181/mesos",
		encoded(t, credential),
		func(c sched.DriverConfig) (Driver, error) {
			config = c
			return &mockDriver{}, nil
		},
	)
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, "zk://127.0.0.1:2181/mesos", config.Master)
	assert.True(t, proto.Equal(framework, config.Framework))
	assert.True(t, proto.Equal(credential, config.Credential))
	assert.Equal(t, b.dispatcher, config.Scheduler)
}

func TestInitWithoutCredential(t *testing.T) {
	var config sched.DriverConfig
	_, err := InitWithDriver(
		testController(t),
		encoded(t, mesosutil.NewFrameworkInfo("tester", "bridge-test", nil)),
		"127.0.0.1:5050", nil,
		func(c sched.DriverConfig) (Driver, error) {
			config = c
			return &mockDriver{}, nil
		},
	)
	require.NoError(t, err)
	assert.Nil(t, config.Credential)
}

// A malformed framework or credential payload fails Init without constructing
// a driver; the factory must never run.
func TestInitRejectsMalformedPayloads(t *testing.T) {
	framework := encoded(t, mesosutil.NewFrameworkInfo("tester", "bridge-test", nil))
	factoryRuns := 0
	factory := func(sched.DriverConfig) (Driver, error) {
		factoryRuns++
		return &mockDriver{}, nil
	}

	_, err := InitWithDriver(testController(t), truncated, "127.0.0.1:5050", nil, factory)
	assert.ErrorContains(t, err, "malformed framework descriptor")

	_, err = InitWithDriver(testController(t), framework, "127.0.0.1:5050", garbage, factory)
	assert.ErrorContains(t, err, "malformed credential")

	assert.Zero(t, factoryRuns)
}

func TestInitPreconditionsPanic(t *testing.T) {
	framework := encoded(t, mesosutil.NewFrameworkInfo("tester", "bridge-test", nil))
	factory := func(sched.DriverConfig) (Driver, error) { return &mockDriver{}, nil }

	assert.Panics(t, func() {
		_, _ = InitWithDriver(nil, framework, "127.0.0.1:5050", nil, factory)
	})
	assert.Panics(t, func() {
		_, _ = InitWithDriver(testController(t), nil, "127.0.0.1:5050", nil, factory)
	})
	assert.Panics(t, func() {
		_, _ = InitWithDriver(testController(t), framework, "", nil, factory)
	})
	assert.Panics(t, func() {
		_, _ = InitWithDriver(testController(t), framework, "127.0.0.1:5050", nil, nil)
	})
}

func TestLifecycleReportsDriverStatus(t *testing.T) {
	b, driver := mockedBridge(t)

	driver.On("Start").Return(mesosproto.Status_DRIVER_RUNNING, nil).Once()
	assert.Equal(t, StatusRunning, b.Start())

	driver.On("Stop", true).Return(mesosproto.Status_DRIVER_STOPPED, nil).Once()
	assert.Equal(t, StatusStopped, b.Stop(true))

	driver.On("Join").Return(mesosproto.Status_DRIVER_STOPPED, nil).Once()
	assert.Equal(t, StatusStopped, b.Join())

	driver.AssertExpectations(t)
}

// Driver errors are logged but the reported status still flows through; the
// controller learns the condition from the status, not from an error path.
func TestLifecycleSurfacesStatusOnError(t *testing.T) {
	b, driver := mockedBridge(t)

	driver.On("Abort").Return(
		mesosproto.Status_DRIVER_ABORTED, assert.AnError).Once()
	assert.Equal(t, StatusAborted, b.Abort())
	driver.AssertExpectations(t)
}

func TestDestroyReleasesOnce(t *testing.T) {
	b, _ := mockedBridge(t)

	b.Destroy()
	assert.Panics(t, func() { b.Destroy() })
}
