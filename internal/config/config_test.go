package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestLoadDefaultsWithoutYAML(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.HTTP.ListenAddr != ":8080" || cfg.Adapter.Name != "edge" || cfg.Log.Level != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if !cfg.Markdown.GFM || cfg.Markdown.CacheSize < 1 {
		t.Fatalf("markdown defaults: %+v", cfg.Markdown)
	}
	if Get() != cfg {
		t.Fatal("Get did not return the cached config")
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	root := writeYAML(t, `
http:
  listen_addr: "127.0.0.1:9000"
site:
  url: "https://example.com"
adapter:
  name: functions
  binary_media_types: ["application/pdf"]
  assets: ["/favicon.ico"]
markdown:
  typographer: true
`)
	t.Setenv("ADEPT_LOG__LEVEL", "debug")
	t.Setenv("ADEPT_HTTP__FORCE_HTTPS", "true")

	cfg, err := LoadFrom(root)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:9000" || !cfg.HTTP.ForceHTTPS {
		t.Fatalf("http = %+v", cfg.HTTP)
	}
	if cfg.Adapter.Name != "functions" || cfg.Adapter.BinaryMediaTypes[0] != "application/pdf" {
		t.Fatalf("adapter = %+v", cfg.Adapter)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("env override ignored: %q", cfg.Log.Level)
	}
	opts := cfg.Markdown.Options()
	if !*opts.Typographer || !*opts.GFM || *opts.Unsafe {
		t.Fatalf("markdown options = %+v", cfg.Markdown)
	}
	if cfg.Paths.Root != root {
		t.Fatalf("root = %q", cfg.Paths.Root)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"adapter":   "adapter:\n  name: lambda\n",
		"mediatype": "adapter:\n  binary_media_types: [\"image/png; q=1\"]\n",
		"level":     "log:\n  level: loud\n",
		"asset":     "adapter:\n  assets: [\"favicon.ico\"]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(writeYAML(t, body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
