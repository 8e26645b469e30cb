// internal/slots/renderer.go
//
// Slot Renderer.
//
// Context
// -------
// Component code asks for a slot by name, optionally with arguments:
//
//	html, ok, err := f.Slots().Render(ctx, "default")
//	row, ok, err := f.Slots().Render(ctx, "row", item, index)
//
// A call without arguments is cacheable.  Its result is stored in the
// request-wide Cache and later calls for the same slot return it without
// touching the provider again.  A call with arguments resolves the
// provider, and when the resolved component exposes exactly one nested
// Expression that expression is applied to the arguments.  Otherwise the
// provider is rendered as-is.  Argumented results never enter the cache.
//
// ok == false means "no content": the slot was not supplied, or it
// rendered to nil.  Nil results are never stringified.
//
// Notes
// -----
// • RenderArgs accepts an untyped args value for template callers.  A
//   value that is not a slice or array logs one warning and falls back to
//   the argument-free render.
// • Oxford commas, two spaces after periods.
package slots

import (
	"context"
	"fmt"
	"html/template"
	"reflect"

	"go.uber.org/zap"
)

// ContentRenderer turns slot content into output.  It is supplied by the
// component pipeline.  content is either a Provider or the value returned
// by an Expression.
type ContentRenderer interface {
	RenderSlot(ctx context.Context, content any) (any, error)
}

// Resolve is the minimal ContentRenderer: it evaluates providers until it
// reaches a plain value and returns that value.
type Resolve struct{}

// RenderSlot implements ContentRenderer.
func (Resolve) RenderSlot(ctx context.Context, content any) (any, error) {
	for {
		p, ok := content.(Provider)
		if !ok {
			return content, nil
		}
		v, err := p.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		content = v
	}
}

//
// request-wide cache
//

type cacheKey struct {
	table *Table
	name  string
}

type cached struct {
	s  string
	ok bool
}

// Cache holds argument-free slot output for one request.  Entries are
// keyed by (Table, name), not by name alone: two component instances that
// both define "default" never see each other's output, while facades
// built over the same Table still share one entry per name.
type Cache struct {
	entries map[cacheKey]cached
}

// NewCache returns an empty Cache.
func NewCache() *Cache { return &Cache{entries: make(map[cacheKey]cached)} }

func (c *Cache) get(t *Table, name string) (cached, bool) {
	v, hit := c.entries[cacheKey{t, name}]
	return v, hit
}

func (c *Cache) put(t *Table, name string, v cached) {
	c.entries[cacheKey{t, name}] = v
}

//
// renderer
//

// Renderer resolves the slots of one component instance.
type Renderer struct {
	table   *Table
	cache   *Cache
	content ContentRenderer
	log     *zap.SugaredLogger
}

// NewRenderer binds table to the request cache.  table may be nil (no
// slots supplied).  Nil cache, content, or log get private defaults.
func NewRenderer(table *Table, cache *Cache, content ContentRenderer, log *zap.SugaredLogger) *Renderer {
	if cache == nil {
		cache = NewCache()
	}
	if content == nil {
		content = Resolve{}
	}
	if log == nil {
		log = zap.S()
	}
	return &Renderer{table: table, cache: cache, content: content, log: log}
}

// Has reports whether the named slot was supplied.
func (r *Renderer) Has(name string) bool { return r.table.Has(name) }

// Render renders a slot.  With no args the call is cacheable.
func (r *Renderer) Render(ctx context.Context, name string, args ...any) (string, bool, error) {
	if len(args) == 0 {
		return r.RenderArgs(ctx, name, nil)
	}
	return r.RenderArgs(ctx, name, args)
}

// RenderArgs renders a slot with an arbitrary args value.  nil and empty
// slices are argument-free.
func (r *Renderer) RenderArgs(ctx context.Context, name string, args any) (string, bool, error) {
	seq, isSeq := sequence(args)
	cacheable := isSeq && len(seq) == 0

	if r.table == nil {
		return "", false, nil
	}
	if cacheable {
		if v, hit := r.cache.get(r.table, name); hit {
			return v.s, v.ok, nil
		}
	}
	if !r.Has(name) {
		return "", false, nil
	}

	p := r.table.provider(name)
	if !cacheable {
		component, err := p.Resolve(ctx)
		if err != nil {
			return "", false, err
		}
		expr := singleExpression(component)

		if !isSeq {
			r.log.Warnw(fmt.Sprintf("expected slot args to be a slice, received a %T.  "+
				"If you are passing a slice as a single argument and getting unexpected results, "+
				"wrap it in another slice, e.g. RenderArgs(ctx, \"default\", []any{[]string{\"Hello\", \"World\"}})", args),
				"label", "slots.render", "slot", name)
		} else if expr != nil {
			slot, err := expr(ctx, seq...)
			if err != nil {
				return "", false, err
			}
			return r.renderContent(ctx, slot)
		}
	}

	s, ok, err := r.renderContent(ctx, p)
	if err != nil {
		return "", false, err
	}
	if cacheable {
		r.cache.put(r.table, name, cached{s: s, ok: ok})
	}
	return s, ok, nil
}

func (r *Renderer) renderContent(ctx context.Context, content any) (string, bool, error) {
	out, err := r.content.RenderSlot(ctx, content)
	if err != nil {
		return "", false, err
	}
	s, ok := stringify(out)
	return s, ok, nil
}

//
// helpers
//

// singleExpression returns the component's only nested expression, or nil.
func singleExpression(component any) Expression {
	ex, ok := component.(Expressive)
	if !ok {
		return nil
	}
	exprs := ex.Expressions()
	if len(exprs) != 1 {
		return nil
	}
	return exprs[0]
}

// sequence reports whether args is nil, a slice, or an array, and flattens
// it to []any.
func sequence(args any) ([]any, bool) {
	switch v := args.(type) {
	case nil:
		return nil, true
	case []any:
		return v, true
	}
	rv := reflect.ValueOf(args)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// stringify coerces rendered output to a string.  nil (including typed nil
// pointers) reports ok == false.
func stringify(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case template.HTML:
		return string(s), true
	case []byte:
		return string(s), true
	case fmt.Stringer:
		if isNilPointer(v) {
			return "", false
		}
		return s.String(), true
	}
	if isNilPointer(v) {
		return "", false
	}
	return fmt.Sprint(v), true
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
