// internal/cookies/jar.go
//
// Request-scoped cookie jar.
//
// Context
// -------
// Page code reads the cookies the browser sent and queues new ones:
//
//	jar := f.Cookies()
//	if !jar.Has("seen") {
//		_ = jar.Set("seen", true, cookies.WithPath("/"))
//	}
//
// The jar never writes to a ResponseWriter.  Outgoing cookies are kept as
// instructions and serialized by Headers(), one Set-Cookie value per
// cookie, which the adapter appends to the platform reply after rendering.
// Values are percent-encoded on the wire and decoded on read, so JSON and
// other punctuation survive the round trip.
// Values set during the request shadow incoming ones, and Delete shadows
// with an expired, empty cookie.
//
// Notes
// -----
// • One jar per render context, owned by one request; no locking.
// • Oxford commas, two spaces after periods.
package cookies

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Cookie is a read view of one value.
type Cookie struct {
	Value string
	Found bool
}

// JSON decodes the value into v.
func (c Cookie) JSON(v any) error { return json.Unmarshal([]byte(c.Value), v) }

// Number parses the value as a float.
func (c Cookie) Number() (float64, error) { return strconv.ParseFloat(c.Value, 64) }

// Bool reports whether the value is exactly "true".  Empty and "false"
// are false.
func (c Cookie) Bool() bool { return c.Value == "true" }

type outgoing struct {
	cookie  *http.Cookie
	deleted bool
}

// Jar wraps the request's cookies and accumulates outgoing ones.
type Jar struct {
	request *http.Request

	out   map[string]*outgoing
	order []string
}

// New wraps r.  r may be nil for a jar with no incoming cookies.
func New(r *http.Request) *Jar {
	return &Jar{request: r, out: make(map[string]*outgoing)}
}

// Get returns the current value of name.  Outgoing values win over the
// request's.
func (j *Jar) Get(name string) Cookie {
	if o, ok := j.out[name]; ok {
		if o.deleted {
			return Cookie{}
		}
		return Cookie{Value: o.cookie.Value, Found: true}
	}
	if j.request == nil {
		return Cookie{}
	}
	c, err := j.request.Cookie(name)
	if err != nil {
		return Cookie{}
	}
	return Cookie{Value: decode(c.Value), Found: true}
}

// Has reports whether name currently has a value.
func (j *Jar) Has(name string) bool { return j.Get(name).Found }

// Set queues a cookie.  Strings are stored verbatim, other values are
// JSON-encoded.
func (j *Jar) Set(name string, value any, opts ...Option) error {
	var v string
	switch x := value.(type) {
	case string:
		v = x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return err
		}
		v = string(b)
	}
	j.put(name, v, apply(opts), false)
	return nil
}

// Delete queues an expired, empty cookie for name.
func (j *Jar) Delete(name string, opts ...Option) {
	o := apply(opts)
	o.Expires = time.Unix(0, 0)
	o.MaxAge = 0
	j.put(name, "", o, true)
}

func (j *Jar) put(name, value string, o Options, deleted bool) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Expires:  o.Expires,
		Secure:   o.Secure,
		HttpOnly: o.HTTPOnly,
		SameSite: o.SameSite,
	}
	if _, seen := j.out[name]; !seen {
		j.order = append(j.order, name)
	}
	j.out[name] = &outgoing{cookie: c, deleted: deleted}
}

// Headers returns one serialized Set-Cookie value per queued cookie, in
// the order names were first set.  Invalid cookies are skipped.
func (j *Jar) Headers() []string {
	out := make([]string, 0, len(j.order))
	for _, name := range j.order {
		c := *j.out[name].cookie
		c.Value = encode(c.Value)
		if s := c.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// encode mirrors encodeURIComponent: spaces become %20, not '+'.
func encode(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// decode reverses encode and leaves undecodable values untouched.
func decode(v string) string {
	if d, err := url.PathUnescape(v); err == nil {
		return d
	}
	return v
}
