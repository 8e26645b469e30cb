// cmd/functions/main.go
//
// adept-ssr – serverless function entry point.
//
// The platform invokes the binary once per cold start; lambda.Start (via
// functions.Adapter.Start) then feeds it proxy events until the instance
// is recycled.  Everything expensive (config, templates, manifest) is
// built before Start so warm invocations only render.
//
// Configuration comes from ADEPT_ environment variables; a bundled
// conf/global.yaml is honoured when present.  Logs go to stdout as JSON,
// which the platform collects.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/yanizio/adept-ssr/internal/adapter"
	"github.com/yanizio/adept-ssr/internal/adapter/functions"
	"github.com/yanizio/adept-ssr/internal/app"
	"github.com/yanizio/adept-ssr/internal/config"
	"github.com/yanizio/adept-ssr/internal/logger"
	"github.com/yanizio/adept-ssr/internal/markdown"
	"github.com/yanizio/adept-ssr/internal/site"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New("", false, cfg.Log.Level)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	th, err := site.Theme()
	if err != nil {
		logOut.Fatalw("parse templates", "err", err)
	}
	application := app.New(site.Router(), th.Templates, app.Options{
		AdapterName:      functions.Name,
		SSR:              true,
		Origin:           cfg.Site.Origin,
		Site:             cfg.Site.URL,
		Runtime:          functions.Name,
		Markdown:         markdown.NewHandle(markdown.GoldmarkLoader(cfg.Markdown.CacheSize), cfg.Markdown.UnsupportedRuntimes...),
		MarkdownDefaults: cfg.Markdown.Options(),
		Logger:           logOut,
	})

	opts := functions.Options{
		App:              application,
		Manifest:         adapter.NewManifest(),
		BinaryMediaTypes: cfg.Adapter.BinaryMediaTypes,
		Logger:           logOut,
	}
	if dir := cfg.Adapter.StaticDir; dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.Paths.Root, dir)
		}
		opts.Static = os.DirFS(dir)
		if opts.Manifest, err = adapter.ManifestFromFS(opts.Static); err != nil {
			logOut.Fatalw("scan static dir", "dir", dir, "err", err)
		}
	}
	opts.Manifest.Add(cfg.Adapter.Assets...)

	logOut.Infow("function ready", "adapter", functions.Name, "assets", opts.Manifest.Len())
	functions.New(opts).Start()
}
