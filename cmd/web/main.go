// cmd/web/main.go
//
// adept-ssr – HTTP entry point (dev server and edge-style deployments).
//
// Start-up sequence
// -----------------
//
//  1. Load configuration (defaults → .env → conf/global.yaml → ADEPT_ env).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Parse the site templates and build the reference app.
//
//  4. Build the static-asset manifest from adapter.static_dir plus any
//     adapter.assets entries.
//
//  5. Mount routes on chi:
//
//     • /metrics                 – Prometheus exposition
//     • everything else          – edge adapter; manifest hits are served
//       from static_dir under the "/static" prefix, the rest is rendered
//
//  6. Wrap with security headers and, when http.force_https is set, the
//     HTTPS redirect.
//
//  7. Serve until SIGINT / SIGTERM, then drain in-flight requests.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/adept-ssr/internal/adapter"
	"github.com/yanizio/adept-ssr/internal/adapter/edge"
	"github.com/yanizio/adept-ssr/internal/app"
	"github.com/yanizio/adept-ssr/internal/config"
	"github.com/yanizio/adept-ssr/internal/logger"
	"github.com/yanizio/adept-ssr/internal/markdown"
	"github.com/yanizio/adept-ssr/internal/middleware"
	"github.com/yanizio/adept-ssr/internal/server"
	"github.com/yanizio/adept-ssr/internal/site"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// under resolves p against root unless it is already absolute.
func under(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(under(cfg.Paths.Root, cfg.Log.Dir), runningInTTY(), cfg.Log.Level)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Reference app ──────────────────────────────────────────────
	//
	th, err := site.Theme()
	if err != nil {
		logOut.Fatalw("parse templates", "err", err)
	}
	application := app.New(site.Router(), th.Templates, app.Options{
		AdapterName:      edge.Name,
		SSR:              true,
		Origin:           cfg.Site.Origin,
		Site:             cfg.Site.URL,
		Runtime:          edge.Name,
		Markdown:         markdown.NewHandle(markdown.GoldmarkLoader(cfg.Markdown.CacheSize), cfg.Markdown.UnsupportedRuntimes...),
		MarkdownDefaults: cfg.Markdown.Options(),
		Logger:           logOut,
	})

	//
	// ── 2.  Static assets + manifest ───────────────────────────────────
	//
	manifest := adapter.NewManifest()
	var static http.Handler = http.NotFoundHandler()
	if dir := under(cfg.Paths.Root, cfg.Adapter.StaticDir); dir != "" {
		staticFS := os.DirFS(dir)
		if manifest, err = adapter.ManifestFromFS(staticFS); err != nil {
			logOut.Fatalw("scan static dir", "dir", dir, "err", err)
		}
		logOut.Infow("static assets indexed", "dir", dir, "count", manifest.Len())
		static = http.StripPrefix(edge.StaticPrefix, http.FileServer(http.FS(staticFS)))
	}
	manifest.Add(cfg.Adapter.Assets...)

	ad := edge.New(edge.Options{
		App:             application,
		Manifest:        manifest,
		Logger:          logOut,
		TrustRemoteAddr: cfg.Adapter.TrustRemoteAddr,
	})

	//
	// ── 3.  Routes ─────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/*", ad.Middleware(static))

	var root http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		root = middleware.ForceHTTPS(root)
	}

	//
	// ── 4.  Serve ──────────────────────────────────────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr, "adapter", edge.Name, "assets", manifest.Len())
	if err := server.Run(ctx, server.New(cfg.HTTP.ListenAddr, root)); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
	logOut.Infow("shutdown complete")
}
