package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/mangatown/internal/config"

	"github.com/spf13/cobra"
)

var flagInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config profile and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		path, err := config.InitDefaultConfig(flagInitForce)
		if errors.Is(err, os.ErrExist) {
			fmt.Fprintln(out, "Configuration already exists at:")
			fmt.Fprintln(out, "  ", path)
			fmt.Fprintln(out, "Use `mangatown config init --force` to recreate it.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Fprintln(out, "Config created at:", path)
		fmt.Fprintf(out, "This config is now active (label: %s).\n\n", config.DefaultLabel)
		config.DefaultConfig().Print(out)

		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagInitForce, "force", false, "overwrite an existing Default config")
	configCmd.AddCommand(configInitCmd)
}
