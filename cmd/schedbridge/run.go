package main

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schedbridge/schedbridge/internal"
	"github.com/schedbridge/schedbridge/internal/options"
	"github.com/schedbridge/schedbridge/pkg/check"
)

const defaultConfigPath = "/etc/schedbridge/schedbridge.yaml"

var v *viper.Viper

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the scheduler bridge",
		Args:  cobra.NoArgs,
	}
	registerRunFlags(cmd)

	cmd.RunE = func(*cobra.Command, []string) error {
		// Viper currently holds defaults overridden by flags; pull them into
		// an options struct to learn the config file path.
		opts, err := extractOptions(v.AllSettings())
		if err != nil {
			return err
		}

		// Merge the config file underneath the flags, with precedence
		// flag > config > default, and re-extract.
		bs, err := readConfigFile(opts.ConfigFile)
		if err != nil {
			return err
		}
		opts, err = mergeConfigIntoViper(bs)
		if err != nil {
			return err
		}

		opts.Resolve()
		if err = check.Validate(*opts); err != nil {
			return errors.Wrap(err, "command-line arguments specify illegal configuration")
		}

		if err := internal.Run(version, opts); err != nil {
			log.Fatal(err)
		}
		return nil
	}

	return cmd
}

func registerRunFlags(cmd *cobra.Command) {
	v = viper.New()
	defaults := options.DefaultOptions()
	flags := cmd.Flags()

	flags.String("config-file", "", "path to the bridge's config file")
	flags.String("master", defaults.Master,
		"address of the cluster manager (host:port or a zk:// URL)")
	flags.String("framework-name", defaults.FrameworkName, "name to register the framework under")
	flags.String("framework-user", defaults.FrameworkUser, "user to run tasks as")
	flags.String("framework-id", defaults.FrameworkID,
		"framework id to reconnect with after a failover")
	flags.Float64("failover-timeout", defaults.FailoverTimeout,
		"seconds the master keeps tasks alive after a disconnect")
	flags.Bool("checkpoint", defaults.Checkpoint, "enable framework state checkpointing")
	flags.Bool("failover", defaults.Failover, "leave tasks running on shutdown")
	flags.String("principal", defaults.Principal, "principal to authenticate as")
	flags.String("secret", defaults.Secret, "secret to authenticate with")
	flags.Bool("simulate", defaults.Simulate, "run against the built-in simulated driver")
	flags.Int("sim-offers", defaults.SimOffers, "number of offers the simulated driver announces")
	flags.Bool("debug", defaults.Debug, "enable debug logging")

	for flagName, key := range map[string]string{
		"config-file":      "config_file",
		"master":           "master",
		"framework-name":   "framework_name",
		"framework-user":   "framework_user",
		"framework-id":     "framework_id",
		"failover-timeout": "failover_timeout",
		"checkpoint":       "checkpoint",
		"failover":         "failover",
		"principal":        "principal",
		"secret":           "secret",
		"simulate":         "simulate",
		"sim-offers":       "sim_offers",
		"debug":            "debug",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			panic(err)
		}
	}
	v.SetDefault("log", map[string]interface{}{
		"level": defaults.Log.Level,
		"color": defaults.Log.Color,
	})
}

func mergeConfigIntoViper(bs []byte) (*options.Options, error) {
	var configMap map[string]interface{}
	if err := yaml.Unmarshal(bs, &configMap); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal yaml configuration file")
	}
	if err := v.MergeConfigMap(configMap); err != nil {
		return nil, errors.Wrap(err, "cannot merge configuration into viper")
	}
	return extractOptions(v.AllSettings())
}

// extractOptions decodes viper's settings map into an options struct. The
// decode is weakly typed because viper hands flag-backed values of some types
// back as strings; unknown keys are still an error.
func extractOptions(settings map[string]interface{}) (*options.Options, error) {
	opts := options.DefaultOptions()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           opts,
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot build configuration decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal configuration")
	}
	return opts, nil
}

func readConfigFile(configPath string) ([]byte, error) {
	isDefault := configPath == ""
	if isDefault {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); err != nil {
		if isDefault && os.IsNotExist(err) {
			log.Debugf("no configuration file at %s, skipping", configPath)
			return nil, nil
		}
		return nil, errors.Wrap(err, "error finding configuration file")
	}
	bs, err := os.ReadFile(configPath) // #nosec G304
	if err != nil {
		return nil, errors.Wrap(err, "error reading configuration file")
	}
	return bs, nil
}
