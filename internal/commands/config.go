package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/diogo/geminichat/internal/config"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the effective configuration (file, environment and defaults) as JSON.

Settings live in ~/.geminichat/config.toml or ~/.geminichat/config.json;
GEMINICHAT_HOME moves the directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.ToJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, out)
			return nil
		},
	}

	cmd.AddCommand(newConfigGetCmd(deps))
	cmd.AddCommand(newConfigPathCmd(deps))
	cmd.AddCommand(newConfigInitCmd(deps))
	return cmd
}

func newConfigGetCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Print one setting (e.g. model, markdown.table_wrap)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.ToJSON()
			if err != nil {
				return err
			}

			result := gjson.Get(data, args[0])
			if !result.Exists() {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			fmt.Fprintln(deps.Stdout, result.String())
			return nil
		},
	}
}

func newConfigPathCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ActiveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
			return nil
		},
	}
}

func newConfigInitCmd(deps *Dependencies) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ActiveConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := config.SaveConfig(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
