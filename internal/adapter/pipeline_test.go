package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/adept-ssr/internal/metrics"
	"github.com/yanizio/adept-ssr/internal/web"
)

type stubApp struct {
	ok       bool
	err      error
	cookies  []string
	rendered bool
}

func (s *stubApp) Match(*http.Request, MatchOptions) (RouteMatch, bool) {
	return RouteMatch{Pattern: "/x"}, s.ok
}

func (s *stubApp) Render(context.Context, *web.Request, RouteMatch) (*web.Response, error) {
	s.rendered = true
	if s.err != nil {
		return nil, s.err
	}
	return web.Text(http.StatusOK, "x"), nil
}

func (s *stubApp) SetCookieHeaders(*web.Response) []string {
	if !s.rendered {
		panic("cookies read before render")
	}
	return s.cookies
}

func TestPipelineServe(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	const name = "pipeline-test"
	req := func() *web.Request {
		return web.NewRequest(httptest.NewRequest(http.MethodGet, "https://example.com/x", nil))
	}

	p := &Pipeline{Name: name, App: &stubApp{ok: true, cookies: []string{"a=1"}}, Log: zap.New(core).Sugar()}
	res := p.Serve(context.Background(), req())
	if res.Outcome != metrics.OutcomeRendered || len(res.Cookies) != 1 || res.Response.Status != http.StatusOK {
		t.Fatalf("rendered result = %+v", res)
	}

	p.App = &stubApp{ok: false}
	res = p.Serve(context.Background(), req())
	if res.Outcome != metrics.OutcomeNotFound || res.Response.Status != http.StatusNotFound {
		t.Fatalf("not-found result = %+v", res)
	}

	p.App = &stubApp{ok: true, err: errors.New("template exploded")}
	res = p.Serve(context.Background(), req())
	if res.Outcome != metrics.OutcomeError || res.Response.Status != http.StatusInternalServerError {
		t.Fatalf("error result = %+v", res)
	}
	if string(res.Response.Body) != "Internal Server Error" {
		t.Fatalf("error detail leaked: %q", res.Response.Body)
	}
	if logs.FilterMessage("render failed").Len() != 1 {
		t.Fatal("render error not logged")
	}
}
