package markdown

// Options toggles renderer features.  Nil fields are unset, so a call-time
// Options can be merged over context-wide defaults without clobbering
// them.
type Options struct {
	GFM         *bool // tables, strikethrough, autolinks, task lists
	Footnotes   *bool
	Typographer *bool // smart quotes and dashes
	HardWraps   *bool // newline → <br>
	Unsafe      *bool // pass raw HTML through
	Sanitize    *bool // run output through a UGC policy
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Merge returns o with every set field of over applied on top.
func (o Options) Merge(over Options) Options {
	pick := func(base, top *bool) *bool {
		if top != nil {
			return top
		}
		return base
	}
	return Options{
		GFM:         pick(o.GFM, over.GFM),
		Footnotes:   pick(o.Footnotes, over.Footnotes),
		Typographer: pick(o.Typographer, over.Typographer),
		HardWraps:   pick(o.HardWraps, over.HardWraps),
		Unsafe:      pick(o.Unsafe, over.Unsafe),
		Sanitize:    pick(o.Sanitize, over.Sanitize),
	}
}

func on(b *bool) bool { return b != nil && *b }

// key is a compact fingerprint of the effective flags.
func (o Options) key() string {
	flags := []*bool{o.GFM, o.Footnotes, o.Typographer, o.HardWraps, o.Unsafe, o.Sanitize}
	buf := make([]byte, len(flags))
	for i, f := range flags {
		buf[i] = '0'
		if on(f) {
			buf[i] = '1'
		}
	}
	return string(buf)
}
