package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/history"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/session"
)

// askOptions holds the flags of a one-shot query
type askOptions struct {
	file          string
	output        string
	raw           bool
	showHistory   bool
	historyFormat string
}

func bindAskFlags(cmd *cobra.Command, opts *askOptions) {
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save response to file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the reply text, without decoration")
	cmd.Flags().BoolVar(&opts.showHistory, "history", false, "Print the whole exchange instead of just the reply")
	cmd.Flags().StringVar(&opts.historyFormat, "format", "text", "Format for --history: text, markdown or json")
}

func newAskCmd(deps *Dependencies, global *globalOptions) *cobra.Command {
	opts := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send a single message and print the reply",
		Long: `Send a single message to Gemini and print the reply.

The prompt is taken from the argument, from --file, or from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, deps, global, opts, args)
		},
	}
	bindAskFlags(cmd, opts)
	return cmd
}

// readPrompt picks the prompt source: --file, then the argument, then stdin
func readPrompt(deps *Dependencies, opts *askOptions, args []string) (string, error) {
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	if deps.StdinPiped() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", apierrors.ErrEmptyPrompt
}

// runAsk runs one submission cycle and prints the outcome
func runAsk(cmd *cobra.Command, deps *Dependencies, global *globalOptions, opts *askOptions, args []string) error {
	format, err := history.ParseExportFormat(opts.historyFormat)
	if err != nil {
		return err
	}

	prompt, err := readPrompt(deps, opts, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(prompt) == "" {
		return apierrors.ErrEmptyPrompt
	}

	a, err := loadApp(cmd.Context(), deps, global)
	if err != nil {
		return err
	}

	sess := a.newSession()
	submitted, ok := sess.Submit(prompt)
	if !ok {
		return apierrors.ErrEmptyPrompt
	}

	decorated := !opts.raw && deps.StdoutTTY()
	var spin *spinner
	if decorated {
		spin = newSpinner(deps.Stderr, "Thinking...", render.PaletteFor(a.appearance))
		spin.start()
	}

	reply := session.Dispatch(cmd.Context(), a.gateway, submitted)
	sess.Resolve(reply)

	if spin != nil {
		if reply.OK() {
			spin.stopWithSuccess("Done")
		} else {
			spin.stopWithError()
		}
	}

	text, _ := sess.LastReply()
	if err := writeAskOutput(deps, a, sess, opts, format, text, decorated); err != nil {
		return err
	}

	palette := render.PaletteFor(a.appearance)
	if a.cfg.CopyToClipboard && reply.OK() {
		if err := deps.Copy(text); err != nil {
			fmt.Fprintln(deps.Stderr, noticeStyle(palette.Warning).Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else if decorated {
			fmt.Fprintln(deps.Stderr, noticeStyle(palette.Secondary).Render("✓ Copied to clipboard"))
		}
	}

	// The reply already shows the failure text; the error sets the exit code
	return reply.Err
}

func writeAskOutput(deps *Dependencies, a *app, sess *session.Session, opts *askOptions, format history.ExportFormat, text string, decorated bool) error {
	out := text
	if opts.showHistory {
		exported, err := history.Export(sess.Messages(), format)
		if err != nil {
			return err
		}
		out = exported
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			fmt.Fprintln(deps.Stderr, noticeStyle(render.PaletteFor(a.appearance).Secondary).Render(fmt.Sprintf("✓ Response saved to %s", opts.output)))
		}
		return nil
	}

	if !decorated || opts.showHistory {
		fmt.Fprintln(deps.Stdout, out)
		return nil
	}

	bubbleWidth := deps.TerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	palette := render.PaletteFor(a.appearance)
	label := lipgloss.NewStyle().Foreground(palette.Primary).Bold(true).Render("Bot")
	fmt.Fprintln(deps.Stdout, label)

	renderOpts := render.OptionsFromConfig(a.cfg.Markdown, a.appearance, contentWidth)
	rendered := strings.TrimRight(render.MarkdownOrPlain(text, renderOpts), "\n")

	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette.Primary).
		Padding(0, 1).
		Width(bubbleWidth).
		Render(rendered)
	fmt.Fprintln(deps.Stdout, bubble)
	return nil
}

func noticeStyle(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
