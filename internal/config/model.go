// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from its overlay layers:
//
//   • built-in defaults                       – see defaults(),
//   • optional `.env`                         – dotenv values,
//   • `conf/global.yaml`                      – primary static file, optional,
//   • `ADEPT_`-prefixed environment overrides – highest precedence.
//
// Function platforms usually ship no YAML at all, so every field either
// has a default or is optional; validation still fails fast on values
// that are present but malformed.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.  Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "github.com/yanizio/adept-ssr/internal/markdown"

//
// HTTP section
//

// HTTP holds dev/edge server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Site section
//

// Site describes where the application is published.
type Site struct {
	// Origin overrides the request origin, for deployments whose public
	// host differs from what the platform reports.
	Origin string `koanf:"origin" validate:"omitempty,url"`
	// URL is the configured public site URL; feeds Facade.Site and the
	// deprecated canonical URL.  Empty means "use the request origin".
	URL string `koanf:"url" validate:"omitempty,url"`
}

//
// Adapter section
//

// Adapter selects and tunes the platform adapter.
type Adapter struct {
	Name             string   `koanf:"name"               validate:"required,oneof=edge functions"`
	BinaryMediaTypes []string `koanf:"binary_media_types" validate:"dive,mediatype"`
	StaticDir        string   `koanf:"static_dir"`
	// Assets lists extra manifest paths on top of whatever StaticDir holds.
	Assets []string `koanf:"assets" validate:"dive,startswith=/"`
	// TrustRemoteAddr lets the edge adapter fall back to the socket peer
	// address when CF-Connecting-IP is missing.
	TrustRemoteAddr bool `koanf:"trust_remote_addr"`
}

//
// Markdown section
//

// Markdown holds renderer defaults.
type Markdown struct {
	GFM                 bool     `koanf:"gfm"`
	Footnotes           bool     `koanf:"footnotes"`
	Typographer         bool     `koanf:"typographer"`
	HardWraps           bool     `koanf:"hard_wraps"`
	Unsafe              bool     `koanf:"unsafe"`
	Sanitize            bool     `koanf:"sanitize"`
	CacheSize           int      `koanf:"cache_size"           validate:"gte=1"`
	UnsupportedRuntimes []string `koanf:"unsupported_runtimes"`
}

// Options converts the section into renderer defaults.
func (m Markdown) Options() markdown.Options {
	return markdown.Options{
		GFM:         markdown.Bool(m.GFM),
		Footnotes:   markdown.Bool(m.Footnotes),
		Typographer: markdown.Bool(m.Typographer),
		HardWraps:   markdown.Bool(m.HardWraps),
		Unsafe:      markdown.Bool(m.Unsafe),
		Sanitize:    markdown.Bool(m.Sanitize),
	}
}

//
// Log section
//

// Log controls the zap logger.
type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	// Dir is relative to Paths.Root.  Empty disables the file sink.
	Dir string `koanf:"dir"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` (repo root or ADEPT_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // ADEPT_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Site     Site     `koanf:"site"`
	Adapter  Adapter  `koanf:"adapter"`
	Markdown Markdown `koanf:"markdown"`
	Log      Log      `koanf:"log"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
