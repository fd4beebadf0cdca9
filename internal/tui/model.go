package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/gateway"
	"github.com/diogo/geminichat/internal/history"
	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/session"
)

const (
	appTitle          = "✦ Gemini Chat"
	emptyLogText      = "Start the conversation ..."
	thinkingText      = "Thinking..."
	inputPlaceholder  = "Type your message here..."
	sendingHint       = "Sending..."
	noReplyNotice     = "No reply to copy yet"
	copiedNotice      = "Copied last reply to clipboard"
	newChatNotice     = "Started a new chat"
	clipboardFailText = "Clipboard unavailable: "
)

// replyMsg carries the outcome of a gateway call back to Update
type replyMsg struct {
	reply session.Reply
}

// ChatOptions configures the chat model
type ChatOptions struct {
	// ModelName is shown in the header
	ModelName string
	// Markdown configures how bot replies are rendered
	Markdown config.MarkdownConfig
	// Context is the parent of every gateway call; defaults to context.Background()
	Context context.Context
	// Copy writes text to the system clipboard; defaults to clipboard.WriteAll
	Copy func(string) error
}

// Model represents the TUI state. The session is owned by Update; gateway
// calls run in commands and report back through replyMsg.
type Model struct {
	session *session.Session
	gateway gateway.Gateway
	opts    ChatOptions

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	history  historyModal

	ready  bool
	notice string

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model around sess and gw
func NewChatModel(sess *session.Session, gw gateway.Gateway, opts ChatOptions) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	ApplyAppearance(sess.Appearance())

	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()
	styleTextarea(&ta)

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		session:  sess,
		gateway:  gw,
		opts:     opts,
		textarea: ta,
		spinner:  s,
	}
}

func styleTextarea(ta *textarea.Model) {
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle
}

// Session returns the conversation session driven by the model
func (m Model) Session() *session.Session {
	return m.session
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case replyMsg:
		m.session.Resolve(msg.reply)
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.session.Busy() {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.session.HistoryVisible() {
			return m.updateHistory(msg)
		}
		return m.updateKey(msg)
	}

	if m.session.HistoryVisible() {
		return m.updateHistory(msg)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "enter":
		return m.submit()

	case "ctrl+n":
		m.session.ResetConversation()
		m.textarea.Reset()
		m.notice = newChatNotice
		m.refreshViewport()
		return m, nil

	case "ctrl+t":
		m.session.ToggleAppearance()
		ApplyAppearance(m.session.Appearance())
		styleTextarea(&m.textarea)
		m.spinner.Style = loadingStyle
		m.refreshViewport()
		return m, nil

	case "ctrl+o":
		sess := m.session
		sess.OpenHistory()
		m.history = newHistoryModal(sess.Messages(), m.width, m.height, sess.CloseHistory)
		return m, nil

	case "ctrl+y":
		m.notice = m.copyLastReply()
		return m, nil

	case "pgup", "pgdown":
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Typing stays enabled while a reply is pending
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.session.SetPendingInput(m.textarea.Value())
	m.notice = ""

	return m, tea.Batch(cmds...)
}

func (m Model) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var closed bool
	m.history, cmd, closed = m.history.Update(msg)
	if closed {
		m.refreshViewport()
	}
	return m, cmd
}

// submit hands the input buffer to the session and dispatches the prompt
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.session.SetPendingInput(m.textarea.Value())

	prompt, ok := m.session.Submit(m.session.PendingInput())
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.notice = ""
	m.refreshViewport()

	return m, tea.Batch(
		m.dispatch(prompt),
		m.spinner.Tick,
	)
}

// dispatch creates a command that performs the single gateway call
func (m Model) dispatch(prompt string) tea.Cmd {
	ctx := m.opts.Context
	gw := m.gateway
	return func() tea.Msg {
		return replyMsg{reply: session.Dispatch(ctx, gw, prompt)}
	}
}

func (m Model) copyLastReply() string {
	text, ok := m.session.LastReply()
	if !ok {
		return noReplyNotice
	}
	if err := m.opts.Copy(text); err != nil {
		return clipboardFailText + err.Error()
	}
	return copiedNotice
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 4 // Header panel with border
	inputHeight := 6  // Input panel with border
	statusHeight := 1 // Status bar
	padding := 2      // Extra spacing

	vpHeight := height - headerHeight - inputHeight - statusHeight - padding
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := m.contentWidth()

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)

	if m.session.HistoryVisible() {
		m.history.resize(width, height)
	}
	m.refreshViewport()
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// refreshViewport re-renders the message log and scrolls to the newest entry
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m Model) renderMessages() string {
	messages := m.session.Messages()
	width := m.viewport.Width - 2
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var content strings.Builder
	for i, msg := range messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsUser() {
			label := userLabelStyle.Render("You")
			style := userBubbleStyle
			if lipgloss.Width(msg.Text)+2 > bubbleWidth {
				style = style.Width(bubbleWidth)
			}
			bubble := style.Render(msg.Text)
			block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
			content.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, block))
		} else {
			opts := render.OptionsFromConfig(m.opts.Markdown, m.session.Appearance(), bubbleWidth-4)
			rendered := strings.Trim(render.MarkdownOrPlain(msg.Text, opts), "\n")
			label := assistantLabelStyle.Render("Bot")
			bubble := assistantBubbleStyle.Render(rendered)
			content.WriteString(lipgloss.JoinVertical(lipgloss.Left, label, bubble))
		}
		content.WriteString("\n")
	}

	return content.String()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.session.HistoryVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.history.View())
	}

	contentWidth := m.contentWidth()
	var sections []string

	// Header
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render(appTitle),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.opts.ModelName),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(appearanceIcon(m.session.Appearance())),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	// Messages
	var messagesContent string
	if m.session.Len() == 0 && !m.session.Busy() {
		messagesContent = m.renderPlaceholder()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input
	label := inputLabelStyle.Render("You")
	if m.session.Busy() {
		label = lipgloss.JoinHorizontal(lipgloss.Center,
			label,
			m.spinner.View(),
			loadingStyle.Render(" "+thinkingText),
			hintStyle.Render("  "+sendingHint),
		)
	}
	input := lipgloss.JoinVertical(lipgloss.Left, label, m.textarea.View())
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(input))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func appearanceIcon(a models.Appearance) string {
	if a == models.AppearanceDark {
		return "☾ dark"
	}
	return "☀ light"
}

func (m Model) renderPlaceholder() string {
	width := m.viewport.Width - 4
	text := placeholderStyle.Width(width).Align(lipgloss.Center).Render(emptyLogText)

	topPadding := (m.viewport.Height - lipgloss.Height(text)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + text
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	if m.notice != "" {
		// Clipboard errors can be long; keep the bar on one line
		notice := history.Truncate(m.notice, width-4)
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(noticeStyle.Render(notice))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"^N", "New chat"},
		{"^O", "History"},
		{"^T", "Theme"},
		{"^Y", "Copy"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat starts the chat TUI
func RunChat(sess *session.Session, gw gateway.Gateway, opts ChatOptions) error {
	m := NewChatModel(sess, gw, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
