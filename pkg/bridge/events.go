package bridge

// Outbound messages delivered to the controller, one type per native
// scheduler event. Entity payloads are opaque byte sequences in the Mesos
// protocol's own encoding; the bridge re-encodes them without interpretation
// and the controller decodes the ones it cares about. Messages are
// fire-and-forget: once delivered to the controller's mailbox the bridge
// retains no reference and performs no retry.
type (
	// Registered reports a successful registration with a Mesos master.
	Registered struct {
		FrameworkID []byte
		MasterInfo  []byte
	}

	// Reregistered reports a re-registration with a newly elected master.
	Reregistered struct {
		MasterInfo []byte
	}

	// Disconnected reports that the driver lost its master connection.
	Disconnected struct{}

	// ResourceOffer carries a single resource offer. A native callback with
	// several offers fans out into one ResourceOffer message per offer.
	ResourceOffer struct {
		Offer []byte
	}

	// OfferRescinded reports that a previously delivered offer is no longer
	// valid.
	OfferRescinded struct {
		OfferID []byte
	}

	// StatusUpdate carries a task status update. Delivery to the controller's
	// mailbox happens before the originating callback returns, since
	// returning acknowledges the update to the native driver.
	StatusUpdate struct {
		TaskStatus []byte
	}

	// FrameworkMessage carries a best-effort message from an executor. Loss
	// is a normal outcome; no retransmission should be expected.
	FrameworkMessage struct {
		ExecutorID []byte
		SlaveID    []byte
		Data       string
	}

	// SlaveLost reports a slave determined to be unreachable.
	SlaveLost struct {
		SlaveID []byte
	}

	// ExecutorLost reports an executor that has exited or terminated.
	ExecutorLost struct {
		ExecutorID []byte
		SlaveID    []byte
		ExitStatus int
	}

	// Error reports an unrecoverable driver condition. The native driver has
	// already aborted by the time this message is produced; the controller
	// should tear the bridge down rather than retry.
	Error struct {
		Message string
	}
)
