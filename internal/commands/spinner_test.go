package commands

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/diogo/geminichat/internal/render"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Thinking", render.LightPalette)
	s.start()
	time.Sleep(200 * time.Millisecond)
	s.stopWithSuccess("done")

	got := out.String()
	if !strings.Contains(got, "Thinking") {
		t.Errorf("spinner never rendered its message: %q", got)
	}
	if !strings.Contains(got, "done") {
		t.Errorf("missing success message: %q", got)
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var out syncBuffer
	s := newSpinner(&out, "Thinking", render.LightPalette)
	s.start()
	time.Sleep(30 * time.Millisecond)
	s.stopWithError()

	// Stopping twice must not panic
	s.stopOnce()
}

func TestSpinner_PaletteColors(t *testing.T) {
	for _, p := range []render.Palette{render.LightPalette, render.DarkPalette} {
		s := newSpinner(&syncBuffer{}, "Thinking", p)

		if got := s.cycle[0].GetForeground(); got != p.Primary {
			t.Errorf("%s: first frame color = %v, want %v", p.Name, got, p.Primary)
		}
		if got := s.success.GetForeground(); got != p.Secondary {
			t.Errorf("%s: success color = %v, want %v", p.Name, got, p.Secondary)
		}
		if got := s.idleDot.GetForeground(); got != p.TextMute {
			t.Errorf("%s: idle dot color = %v, want %v", p.Name, got, p.TextMute)
		}
	}
}
