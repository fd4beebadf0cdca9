package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/tui"
)

func newChatCmd(deps *Dependencies, global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with Gemini.

Keys:
  Enter   send the message
  Ctrl+N  start a new chat
  Ctrl+O  show the chat history
  Ctrl+T  switch between light and dark
  Ctrl+Y  copy the last reply
  Esc     quit (or close the history)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, global)
		},
	}
}

func runChat(cmd *cobra.Command, deps *Dependencies, global *globalOptions) error {
	a, err := loadApp(cmd.Context(), deps, global)
	if err != nil {
		return err
	}

	sess := a.newSession()
	err = deps.TUI.RunChat(sess, a.gateway, tui.ChatOptions{
		ModelName: models.ModelFromName(a.cfg.Model),
		Markdown:  a.cfg.Markdown,
		Context:   cmd.Context(),
		Copy:      deps.Copy,
	})

	a.logger.Info("chat_closed",
		"conversation_id", sess.ConversationID(),
		"messages", sess.Len(),
	)
	return err
}
