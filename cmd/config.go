package cmd

import (
	"github.com/spf13/cobra"

	"podbatch/config"
	"podbatch/pkg/utils"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the podbatch config file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(cmd)
			if err := config.CreateConfigFile(path); err != nil {
				return wrapCmdErr("config init", err)
			}
			reporter(cmd).OK("Wrote %s", path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return wrapCmdErr("config show", err)
			}
			return utils.FprintJSON(cmd.OutOrStdout(), cfg)
		},
	})

	return configCmd
}
