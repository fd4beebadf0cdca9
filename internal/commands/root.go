// Package commands provides CLI commands for geminichat.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	model      string
	appearance string
	logLevel   string
}

// NewRootCmd creates the command tree. Without a prompt it starts the chat
// TUI; with a prompt (argument, -f or piped stdin) it answers once.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	global := &globalOptions{}
	ask := &askOptions{}

	cmd := &cobra.Command{
		Use:   "geminichat [prompt]",
		Short: "Terminal chat client for Google Gemini",
		Long: `geminichat is a minimal chat client for the Gemini API.

Every message is sent on its own; the model does not see earlier turns.
The API key is read from GEMINI_API_KEY (or a .env file).

Examples:
  geminichat                            Start interactive chat
  geminichat "What is Go?"              Send a single query
  geminichat -f prompt.md               Read prompt from file
  cat prompt.md | geminichat            Read prompt from stdin
  geminichat "Hello" -o response.md     Save response to file
  geminichat config get model           Show one setting`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "geminichat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if len(args) > 0 || ask.file != "" || deps.StdinPiped() {
				return runAsk(cmd, deps, global, ask, args)
			}
			return runChat(cmd, deps, global)
		},
	}

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().StringVarP(&global.model, "model", "m", "", "Model to use (e.g., gemini-2.5-flash, pro, lite)")
	cmd.PersistentFlags().StringVar(&global.appearance, "appearance", "", "Color scheme: light, dark or auto")
	cmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")
	bindAskFlags(cmd, ask)

	cmd.AddCommand(newChatCmd(deps, global))
	cmd.AddCommand(newAskCmd(deps, global))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(nil)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		tui.PrintError(err)
		os.Exit(1)
	}
}
