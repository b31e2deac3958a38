package bridge

import (
	"fmt"

	"github.com/mesos/mesos-go/api/v0/mesosproto"
)

// Status is the run state reported by every lifecycle and command operation.
// The native driver's own vocabulary is passed through unchanged; the one
// bridge-local value is StatusRejected.
type Status int32

const (
	// StatusNotStarted reports a driver that has not yet been started.
	StatusNotStarted = Status(mesosproto.Status_DRIVER_NOT_STARTED)
	// StatusRunning reports a started, unterminated driver.
	StatusRunning = Status(mesosproto.Status_DRIVER_RUNNING)
	// StatusAborted reports a driver terminated by Abort or by a fatal
	// internal error.
	StatusAborted = Status(mesosproto.Status_DRIVER_ABORTED)
	// StatusStopped reports a driver terminated by Stop.
	StatusStopped = Status(mesosproto.Status_DRIVER_STOPPED)

	// StatusRejected reports that a command's binary arguments failed to
	// decode and the native driver was never invoked. It deliberately does
	// not reuse the native aborted code, so callers can tell a dead driver
	// from a malformed request.
	StatusRejected Status = 100
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "DRIVER_NOT_STARTED"
	case StatusRunning:
		return "DRIVER_RUNNING"
	case StatusAborted:
		return "DRIVER_ABORTED"
	case StatusStopped:
		return "DRIVER_STOPPED"
	case StatusRejected:
		return "REJECTED"
	default:
		return fmt.Sprintf("Status(%d)", int32(s))
	}
}
