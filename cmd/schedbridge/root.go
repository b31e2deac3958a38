package main

import (
	"github.com/spf13/cobra"

	"github.com/schedbridge/schedbridge/pkg/logger"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	logConfig := logger.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "schedbridge",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindEnv("SCHEDBRIDGE_", cmd); err != nil {
				return err
			}
			logger.SetLogrus(logConfig)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&logConfig.Level, "level", "l", logConfig.Level,
		"set the logging level (can be one of: debug, info, warn, error, or fatal)")
	cmd.PersistentFlags().BoolVar(&logConfig.Color, "color", logConfig.Color,
		"enable colored output")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}
