// Package options defines the configurable options of the bridge process and
// their resolution, validation, and printable form.
package options

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/schedbridge/schedbridge/pkg/check"
	"github.com/schedbridge/schedbridge/pkg/logger"
)

// Options stores all the configurable options for the scheduler bridge.
type Options struct {
	ConfigFile string `json:"config_file"`

	// Master is the address of the cluster manager: host:port, or a
	// zk:// URL naming a quorum that elects it.
	Master string `json:"master"`

	FrameworkName string `json:"framework_name"`
	FrameworkUser string `json:"framework_user"`
	FrameworkID   string `json:"framework_id"`

	// FailoverTimeout is how long, in seconds, the master keeps the
	// framework's tasks alive after a disconnect before tearing them down.
	FailoverTimeout float64 `json:"failover_timeout"`
	Checkpoint      bool    `json:"checkpoint"`
	// Failover leaves the framework's tasks running on shutdown so a
	// successor can pick them up within the failover timeout.
	Failover bool `json:"failover"`

	Principal string `json:"principal"`
	Secret    string `json:"secret"`

	// Simulate replaces the native driver with the in-process simulation;
	// SimOffers sizes its scripted offer round.
	Simulate  bool `json:"simulate"`
	SimOffers int  `json:"sim_offers"`

	Log logger.Config `json:"log"`

	Debug bool `json:"debug"`
}

// DefaultOptions returns the default configuration of the bridge.
func DefaultOptions() *Options {
	return &Options{
		FrameworkName: "schedbridge",
		SimOffers:     2,
		Log:           logger.DefaultConfig(),
	}
}

// Validate validates the state of the Options struct.
func (o Options) Validate() []error {
	return []error{
		o.validateMaster(),
		check.NotEmpty(o.FrameworkName, "framework name must be provided"),
		check.True(o.FailoverTimeout >= 0, "failover timeout must not be negative"),
		check.True(o.Secret == "" || o.Principal != "",
			"a secret requires a principal"),
	}
}

func (o Options) validateMaster() error {
	if o.Simulate {
		return nil
	}
	return check.NotEmpty(o.Master, "master address must be provided")
}

// Resolve fully resolves the bridge configuration, handling dynamic defaults.
func (o *Options) Resolve() {
	if o.FrameworkUser == "" {
		// An empty user tells the master to run tasks as the user the
		// scheduler itself runs as; keep that behavior but make the choice
		// explicit in the printed config.
		o.FrameworkUser = "root"
	}
	if o.Simulate && o.Master == "" {
		o.Master = "sim"
	}
	// A real master assigns the framework ID at registration; only the
	// simulation needs one up front.
	if o.Simulate && o.FrameworkID == "" {
		o.FrameworkID = uuid.New().String()
	}
}

// Printable returns a printable JSON form of the options with credentials
// masked.
func (o Options) Printable() ([]byte, error) {
	if o.Secret != "" {
		o.Secret = "********"
	}
	optJSON, err := json.Marshal(o)
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert config to JSON")
	}
	return optJSON, nil
}
