package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/avacx/deckclone/internal/config"
	"github.com/avacx/deckclone/internal/home"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file to the deckclone home directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hd, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := hd.EnsureExists(); err != nil {
			return err
		}
		if hd.ConfigExists() && !configForce {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", hd.ConfigPath())
		}
		if err := config.WriteDefault(hd.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Config written: %s\n", hd.ConfigPath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfgManager.Get())
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
