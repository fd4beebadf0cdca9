package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxIdleRenderers bounds how many idle renderers are kept per option set
const maxIdleRenderers = 4

// renderers holds idle glamour renderers keyed by option set. A
// TermRenderer must not render on two goroutines at once, so every call
// borrows one and gives it back afterwards.
var renderers = struct {
	sync.Mutex
	idle map[string][]*glamour.TermRenderer
}{idle: make(map[string][]*glamour.TermRenderer)}

func cacheKey(opts Options) string {
	return fmt.Sprintf("%s:%d:%t:%t:%t",
		opts.Style(),
		opts.Width,
		opts.EnableEmoji,
		opts.PreserveNewLines,
		opts.TableWrap,
	)
}

// borrow returns an idle renderer for opts, building one when none is free
func borrow(opts Options) (*glamour.TermRenderer, string, error) {
	key := cacheKey(opts)

	renderers.Lock()
	idle, seen := renderers.idle[key]
	if n := len(idle); n > 0 {
		r := idle[n-1]
		renderers.idle[key] = idle[:n-1]
		renderers.Unlock()
		return r, key, nil
	}
	if !seen {
		renderers.idle[key] = nil
	}
	renderers.Unlock()

	r, err := newRenderer(opts)
	return r, key, err
}

// giveBack parks r for reuse. Renderers beyond the idle limit, or for keys
// dropped by clearRenderers, are left to the garbage collector.
func giveBack(key string, r *glamour.TermRenderer) {
	renderers.Lock()
	defer renderers.Unlock()

	idle, ok := renderers.idle[key]
	if !ok || len(idle) >= maxIdleRenderers {
		return
	}
	renderers.idle[key] = append(idle, r)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultOptions().Width
	}

	ropts := []glamour.TermRendererOption{
		glamour.WithStandardStyle(opts.Style()),
		glamour.WithWordWrap(width),
		glamour.WithTableWrap(opts.TableWrap),
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(ropts...)
}

func clearRenderers() {
	renderers.Lock()
	renderers.idle = make(map[string][]*glamour.TermRenderer)
	renderers.Unlock()
}

// rendererKeys reports how many distinct option sets have been rendered
func rendererKeys() int {
	renderers.Lock()
	defer renderers.Unlock()
	return len(renderers.idle)
}
