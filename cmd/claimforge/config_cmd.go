package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"claimforge/internal/config"
)

// configCmd groups config management subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the claimforge config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to the --config path",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists; remove it first or choose another --config path", configPath)
		}
		cfg := config.DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", configPath)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check weight tables and amount ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config invalid: %w", err)
		}
		fmt.Printf("%s is valid: %d patients x %d months, %d providers\n",
			configPath, cfg.Dataset.Patients, cfg.Dataset.Months, cfg.Dataset.Providers)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
}
