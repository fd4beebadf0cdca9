package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/geminichat/internal/history"
	"github.com/diogo/geminichat/internal/models"
)

const historyModalTitle = "Chat History"

// historyModal is the read-only overlay listing every message in the log
type historyModal struct {
	viewer   *history.Viewer
	viewport viewport.Model
	width    int
	height   int
}

func newHistoryModal(messages []models.Message, width, height int, onClose func()) historyModal {
	hm := historyModal{
		viewer: history.NewViewer(messages, onClose),
	}
	hm.resize(width, height)
	return hm
}

// resize fits the modal inside a terminal of the given size
func (h *historyModal) resize(width, height int) {
	h.width = width - 8
	if h.width < 30 {
		h.width = 30
	}
	h.height = height - 8
	if h.height < 5 {
		h.height = 5
	}

	// title + margin, footer, border and padding
	vpHeight := h.height - 6
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := h.width - 6

	h.viewport = viewport.New(vpWidth, vpHeight)
	h.viewport.SetContent(h.content(vpWidth))
}

func (h historyModal) content(width int) string {
	var rendered []string
	for _, line := range h.viewer.Lines() {
		for _, part := range history.Wrap(line, width) {
			rendered = append(rendered, modalLineStyle.Render(part))
		}
	}
	return strings.Join(rendered, "\n")
}

// close dismisses the modal; repeated calls have no effect
func (h historyModal) close() {
	h.viewer.Close()
}

// Update handles scrolling and reports whether the modal asked to close
func (h historyModal) Update(msg tea.Msg) (historyModal, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+o", "q":
			h.close()
			return h, nil, true
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd, false
}

func (h historyModal) View() string {
	title := modalTitleStyle.Render(historyModalTitle)
	footer := hintStyle.Render("↑↓ scroll  •  esc close")

	body := lipgloss.JoinVertical(lipgloss.Left, title, h.viewport.View(), "", footer)
	return modalStyle.Width(h.width).Render(body)
}
