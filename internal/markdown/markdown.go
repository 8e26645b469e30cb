// internal/markdown/markdown.go
//
// Markdown renderer contract and the process-wide handle.
//
// Context
// -------
// Most pages never render Markdown, so the renderer is not built at boot.
// main() creates a Handle around a Loader and injects it into every render
// context.  The first page that needs Markdown calls Load, which runs the
// Loader exactly once for the life of the process; every later call gets
// the memoized Renderer (or the memoized error).
//
// Some runtimes cannot host the renderer.  The Handle records those
// runtime names so the render context can fail fast with an environment
// error instead of half-rendering a page.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package markdown

import (
	"context"
	"strings"
	"sync"
)

// Result is the rendered document.
type Result struct {
	Code string // HTML
}

// Renderer converts Markdown to HTML.
type Renderer interface {
	RenderMarkdown(ctx context.Context, content string, opts Options) (Result, error)
}

// Loader builds the Renderer on first use.
type Loader func(ctx context.Context) (Renderer, error)

// Handle memoizes one Renderer per process.
type Handle struct {
	load        Loader
	unsupported map[string]struct{}

	once sync.Once
	r    Renderer
	err  error
}

// NewHandle wraps load.  Runtimes named in unsupported (case-insensitive)
// report Supports == false.
func NewHandle(load Loader, unsupported ...string) *Handle {
	h := &Handle{load: load, unsupported: make(map[string]struct{}, len(unsupported))}
	for _, rt := range unsupported {
		h.unsupported[strings.ToLower(rt)] = struct{}{}
	}
	return h
}

// Supports reports whether Markdown may run on runtime.
func (h *Handle) Supports(runtime string) bool {
	_, bad := h.unsupported[strings.ToLower(runtime)]
	return !bad
}

// Load returns the memoized Renderer, invoking the Loader on first call.
func (h *Handle) Load(ctx context.Context) (Renderer, error) {
	h.once.Do(func() {
		if h.load == nil {
			h.err = ErrNotLoaded
			return
		}
		h.r, h.err = h.load(ctx)
	})
	return h.r, h.err
}
