package cookies

import (
	"net/http"
	"time"
)

// Options are the attributes written with an outgoing cookie.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// Option configures Options.
type Option func(*Options)

// WithPath sets the Path attribute.
func WithPath(p string) Option { return func(o *Options) { o.Path = p } }

// WithDomain sets the Domain attribute.
func WithDomain(d string) Option { return func(o *Options) { o.Domain = d } }

// WithMaxAge sets Max-Age in seconds.
func WithMaxAge(seconds int) Option { return func(o *Options) { o.MaxAge = seconds } }

// WithExpires sets the Expires attribute.
func WithExpires(t time.Time) Option { return func(o *Options) { o.Expires = t } }

// WithSecure sets the Secure flag.
func WithSecure(b bool) Option { return func(o *Options) { o.Secure = b } }

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(b bool) Option { return func(o *Options) { o.HTTPOnly = b } }

// WithSameSite sets the SameSite attribute.
func WithSameSite(s http.SameSite) Option { return func(o *Options) { o.SameSite = s } }

func apply(opts []Option) Options {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
