package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialise the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(rootFlags.configFile, cmd.Flags())
		if err != nil {
			return err
		}
		return config.Encode(cmd.OutOrStdout(), cfg)
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the current settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectPath()
		if len(args) == 1 {
			path = args[0]
		}
		if !configInitForce && fileExists(path) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		cfg, err := config.Load(rootFlags.configFile, cmd.Flags())
		if err != nil {
			return err
		}
		if err := config.Write(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
