package main

import (
	"fmt"

	"reactive-dashboard/src/config"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if err := config.Default().Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	initCmd.Flags().String("out", "dashboard.yaml", "destination file")

	configCmd.AddCommand(initCmd)
	return configCmd
}
