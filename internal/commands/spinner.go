package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/geminichat/internal/render"
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// spinner draws an animated progress line on a terminal stream, colored
// from the active appearance's palette
type spinner struct {
	out     io.Writer
	message string

	cycle   []lipgloss.Style
	idleDot lipgloss.Style
	success lipgloss.Style

	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

func newSpinner(out io.Writer, message string, palette render.Palette) *spinner {
	colors := []lipgloss.Color{palette.Primary, palette.Accent, palette.Secondary, palette.UserBubble}
	cycle := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		cycle[i] = lipgloss.NewStyle().Foreground(c).Bold(true)
	}

	return &spinner{
		out:     out,
		message: message,
		cycle:   cycle,
		idleDot: lipgloss.NewStyle().Foreground(palette.TextMute),
		success: lipgloss.NewStyle().Foreground(palette.Secondary),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

func (s *spinner) render() {
	glyph := s.cycle[s.frame%len(s.cycle)].Render(spinnerFrames[s.frame%len(spinnerFrames)])

	var dots strings.Builder
	lit := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < lit {
			dots.WriteString(s.cycle[(s.frame+i)%len(s.cycle)].Render("●"))
		} else {
			dots.WriteString(s.idleDot.Render("○"))
		}
	}

	fmt.Fprintf(s.out, "\r\033[K%s %s %s", glyph, s.message, dots.String())
}

func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and leaves a check mark line
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	fmt.Fprintf(s.out, "%s %s\n", s.success.Bold(true).Render("✓"), s.success.Render(message))
}

// stopWithError stops the spinner and clears its line
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}
