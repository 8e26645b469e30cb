// internal/slots/renderer_test.go
//
// Unit-tests for the Slot Renderer.
//
// Context
// -------
// Covers the behaviours callers rely on:
//
//   • unknown or absent slots report no content
//   • argument-free renders are cached per request and per table
//   • argumented renders apply a single nested expression, skip the cache
//   • non-slice args warn once and fall back to the default render
//   • nil output passes through instead of becoming "<nil>"
//   • reserved names fail at table construction
//
// Run: go test ./internal/slots -v

package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// counting returns a Func provider plus a pointer to its call count.
func counting(v any) (Func, *int) {
	n := 0
	return func(context.Context) (any, error) {
		n++
		return v, nil
	}, &n
}

// listComponent exposes a single expression that joins its arguments.
type listComponent struct{ exprs []Expression }

func (l listComponent) Expressions() []Expression { return l.exprs }

func joinExpr(_ context.Context, args ...any) (any, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return "<li>" + strings.Join(parts, ",") + "</li>", nil
}

func observed() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core).Sugar(), logs
}

func TestNoSlotsSupplied(t *testing.T) {
	r := NewRenderer(nil, nil, nil, nil)
	if r.Has("default") {
		t.Fatalf("Has on nil table should be false")
	}
	if _, ok, err := r.Render(context.Background(), "default"); ok || err != nil {
		t.Fatalf("Render = ok %v, err %v; want not ok", ok, err)
	}
}

func TestUnknownSlot(t *testing.T) {
	r := NewRenderer(MustTable(map[string]Provider{"a": Static("x")}), nil, nil, nil)
	if r.Has("b") {
		t.Fatalf("Has(b) = true")
	}
	if _, ok, _ := r.Render(context.Background(), "b"); ok {
		t.Fatalf("Render(b) reported content")
	}
}

func TestCacheableRenderInvokesProviderOnce(t *testing.T) {
	p, calls := counting("<p>hi</p>")
	table := MustTable(map[string]Provider{"default": p})
	cache := NewCache()
	ctx := context.Background()

	first, ok, err := NewRenderer(table, cache, nil, nil).Render(ctx, "default")
	if err != nil || !ok {
		t.Fatalf("first render: ok %v, err %v", ok, err)
	}
	// A fresh renderer over the same table and cache mirrors a second
	// facade for the same component instance.
	second, _, _ := NewRenderer(table, cache, nil, nil).Render(ctx, "default")

	if first != second || first != "<p>hi</p>" {
		t.Fatalf("outputs differ: %q vs %q", first, second)
	}
	if *calls != 1 {
		t.Fatalf("provider called %d times, want 1", *calls)
	}
}

func TestCacheIsPartitionedByTable(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()
	a := NewRenderer(MustTable(map[string]Provider{"default": Static("A")}), cache, nil, nil)
	b := NewRenderer(MustTable(map[string]Provider{"default": Static("B")}), cache, nil, nil)

	sa, _, _ := a.Render(ctx, "default")
	sb, _, _ := b.Render(ctx, "default")
	if sa != "A" || sb != "B" {
		t.Fatalf("cross-table cache leak: %q %q", sa, sb)
	}
}

func TestArgumentedRenderAppliesExpression(t *testing.T) {
	p, calls := counting(listComponent{exprs: []Expression{joinExpr}})
	r := NewRenderer(MustTable(map[string]Provider{"row": p}), nil, nil, nil)
	ctx := context.Background()

	got, ok, err := r.Render(ctx, "row", "a", 1)
	if err != nil || !ok || got != "<li>a,1</li>" {
		t.Fatalf("Render = %q, %v, %v", got, ok, err)
	}
	got, _, _ = r.Render(ctx, "row", "b", 2)
	if got != "<li>b,2</li>" {
		t.Fatalf("argumented render was cached: %q", got)
	}
	if *calls != 2 {
		t.Fatalf("provider called %d times, want 2", *calls)
	}
	if _, hit := r.cache.get(r.table, "row"); hit {
		t.Fatalf("argumented render populated the cache")
	}
}

func TestArgumentedRenderWithoutSingleExpression(t *testing.T) {
	two := listComponent{exprs: []Expression{joinExpr, joinExpr}}
	r := NewRenderer(MustTable(map[string]Provider{"x": Static(two)}), nil, Resolve{}, nil)

	got, ok, err := r.Render(context.Background(), "x", "ignored")
	if err != nil || !ok {
		t.Fatalf("Render: ok %v, err %v", ok, err)
	}
	if got != fmt.Sprint(two) {
		t.Fatalf("expected default render of the component, got %q", got)
	}
}

func TestNonSequenceArgsWarnAndFallBack(t *testing.T) {
	log, logs := observed()
	p, _ := counting(listComponent{exprs: []Expression{joinExpr}})
	content := contentFunc(func(ctx context.Context, c any) (any, error) {
		if _, isProvider := c.(Provider); isProvider {
			return "default", nil
		}
		return c, nil
	})
	r := NewRenderer(MustTable(map[string]Provider{"row": p}), nil, content, log)

	got, ok, err := r.RenderArgs(context.Background(), "row", 42)
	if err != nil {
		t.Fatalf("RenderArgs returned error: %v", err)
	}
	if !ok || got != "default" {
		t.Fatalf("RenderArgs = %q, %v; want default render", got, ok)
	}
	if n := logs.FilterMessageSnippet("expected slot args to be a slice").Len(); n != 1 {
		t.Fatalf("warnings = %d, want 1", n)
	}
	if _, hit := r.cache.get(r.table, "row"); hit {
		t.Fatalf("fallback render must not populate the cache")
	}
}

func TestEmptySliceIsCacheable(t *testing.T) {
	p, calls := counting("x")
	r := NewRenderer(MustTable(map[string]Provider{"s": p}), nil, nil, nil)
	ctx := context.Background()
	_, _, _ = r.RenderArgs(ctx, "s", []string{})
	_, _, _ = r.Render(ctx, "s")
	if *calls != 1 {
		t.Fatalf("provider called %d times, want 1", *calls)
	}
}

func TestNilOutputPassesThrough(t *testing.T) {
	var nilPtr *strings.Builder
	r := NewRenderer(MustTable(map[string]Provider{
		"none": Static(nil),
		"ptr":  Static(nilPtr),
		"num":  Static(7),
	}), nil, nil, nil)
	ctx := context.Background()

	if s, ok, _ := r.Render(ctx, "none"); ok || s != "" {
		t.Fatalf("nil rendered as %q", s)
	}
	if _, ok, _ := r.Render(ctx, "ptr"); ok {
		t.Fatalf("typed nil pointer reported content")
	}
	if s, ok, _ := r.Render(ctx, "num"); !ok || s != "7" {
		t.Fatalf("num = %q, %v", s, ok)
	}
	// A cached "no content" stays no content.
	if _, ok, _ := r.Render(ctx, "none"); ok {
		t.Fatalf("cached nil reported content")
	}
}

func TestProviderErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	r := NewRenderer(MustTable(map[string]Provider{
		"bad": Func(func(context.Context) (any, error) { return nil, boom }),
	}), nil, nil, nil)
	if _, _, err := r.Render(context.Background(), "bad"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestReservedNames(t *testing.T) {
	for _, name := range []string{"has", "render"} {
		_, err := NewTable(map[string]Provider{name: Static("x")})
		if !errors.Is(err, ErrReservedName) {
			t.Fatalf("NewTable(%q) err = %v, want ErrReservedName", name, err)
		}
	}
	if _, err := NewTable(map[string]Provider{"header": Static("x")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type contentFunc func(ctx context.Context, c any) (any, error)

func (f contentFunc) RenderSlot(ctx context.Context, c any) (any, error) { return f(ctx, c) }
