package main

import (
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnv overrides any flag that was not set on the command line with the
// value of its corresponding prefixed environment variable.
func bindEnv(prefix string, cmd *cobra.Command) error {
	var errMsgs []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			return
		}
		envName := prefix + strings.ReplaceAll(strings.ToUpper(flag.Name), "-", "_")
		if value, ok := syscall.Getenv(envName); ok {
			if err := flag.Value.Set(value); err != nil {
				err = errors.Wrapf(err, "failed to parse %s (%s)", envName, flag.Value.Type())
				errMsgs = append(errMsgs, err.Error())
			}
		}
	})
	if len(errMsgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(errMsgs, ";"))
}
