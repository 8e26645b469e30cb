// internal/markdown/goldmark.go
//
// Goldmark-backed Renderer.
//
// Context
// -------
// One goldmark.Markdown engine is built per distinct flag combination and
// reused.  Rendered output is kept in a bounded LRU keyed by flags plus a
// content digest; concurrent requests for the same document share one
// conversion through singleflight.  When Sanitize is on, output passes
// through bluemonday's UGC policy.
package markdown

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/adept-ssr/internal/cache"
	"github.com/yanizio/adept-ssr/internal/metrics"
)

// DefaultCacheSize bounds the output cache when the caller passes 0.
const DefaultCacheSize = 512

var (
	ugcOnce   sync.Once
	ugcPolicy *bluemonday.Policy
)

func sanitizer() *bluemonday.Policy {
	ugcOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		ugcPolicy = p
	})
	return ugcPolicy
}

// Goldmark implements Renderer.
type Goldmark struct {
	mu      sync.Mutex
	engines map[string]goldmark.Markdown

	out *cache.LRU[string, string]
	sfg singleflight.Group
}

// NewGoldmark returns a renderer with an output cache of cacheSize
// documents.
func NewGoldmark(cacheSize int) *Goldmark {
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	return &Goldmark{
		engines: make(map[string]goldmark.Markdown),
		out:     cache.New[string, string](cacheSize),
	}
}

// GoldmarkLoader is a Loader for NewHandle.
func GoldmarkLoader(cacheSize int) Loader {
	return func(context.Context) (Renderer, error) { return NewGoldmark(cacheSize), nil }
}

// RenderMarkdown implements Renderer.
func (g *Goldmark) RenderMarkdown(ctx context.Context, content string, opts Options) (Result, error) {
	sum := sha256.Sum256([]byte(content))
	key := opts.key() + ":" + hex.EncodeToString(sum[:])

	if code, ok := g.out.Get(key); ok {
		metrics.MarkdownCacheHitsTotal.Inc()
		return Result{Code: code}, nil
	}

	v, err, _ := g.sfg.Do(key, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := g.engine(opts).Convert([]byte(content), &buf); err != nil {
			return nil, err
		}
		code := buf.String()
		if on(opts.Sanitize) {
			code = sanitizer().Sanitize(code)
		}
		g.out.Add(key, code)
		metrics.MarkdownRendersTotal.Inc()
		return code, nil
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Code: v.(string)}, nil
}

func (g *Goldmark) engine(opts Options) goldmark.Markdown {
	k := opts.key()
	g.mu.Lock()
	defer g.mu.Unlock()
	if md, ok := g.engines[k]; ok {
		return md
	}

	var exts []goldmark.Extender
	if on(opts.GFM) {
		exts = append(exts, extension.GFM)
	}
	if on(opts.Footnotes) {
		exts = append(exts, extension.Footnote)
	}
	if on(opts.Typographer) {
		exts = append(exts, extension.Typographer)
	}

	var ropts []goldmark.Option
	var htmlOpts []renderer.Option
	if on(opts.HardWraps) {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	if on(opts.Unsafe) {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}
	ropts = append(ropts,
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(htmlOpts...),
	)

	md := goldmark.New(ropts...)
	g.engines[k] = md
	return md
}
