// internal/slots/table.go
//
// SlotTable: the named content a caller hands to a component.
//
// Context
// -------
// A component instance receives its slots as a Table.  Each entry is a
// Provider, either content that is already rendered (Static) or a thunk
// evaluated on demand (Func).  Slot names live in their own map, apart from
// the renderer's fixed members, and NewTable rejects any name that would
// shadow one of those members.
//
// Notes
// -----
// • Tables are immutable after construction.
// • Oxford commas, two spaces after periods.
package slots

import (
	"context"
	"fmt"
	"sort"
)

// Provider yields a slot's content.  The value may itself be a Provider,
// an Expressive component, or renderable content.
type Provider interface {
	Resolve(ctx context.Context) (any, error)
}

// Func adapts a thunk to Provider.
type Func func(ctx context.Context) (any, error)

// Resolve calls f.
func (f Func) Resolve(ctx context.Context) (any, error) { return f(ctx) }

type staticProvider struct{ v any }

func (s staticProvider) Resolve(context.Context) (any, error) { return s.v, nil }

// Static wraps content that needs no further evaluation.
func Static(v any) Provider { return staticProvider{v} }

// Expression is a nested slot expression that accepts arguments, e.g. a
// render callback passed as a component's only child.
type Expression func(ctx context.Context, args ...any) (any, error)

// Expressive is implemented by resolved slot components that expose their
// nested expressions.
type Expressive interface {
	Expressions() []Expression
}

// reserved lists the renderer's fixed members.
var reserved = map[string]struct{}{
	"has":    {},
	"render": {},
}

// Table maps slot names to providers.
type Table struct {
	providers map[string]Provider
}

// NewTable validates names and copies m.  A nil or empty map yields an
// empty, non-nil Table.
func NewTable(m map[string]Provider) (*Table, error) {
	t := &Table{providers: make(map[string]Provider, len(m))}
	for name, p := range m {
		if _, bad := reserved[name]; bad {
			return nil, fmt.Errorf("%w: unable to create a slot named %q; %q is a reserved slot name, please rename this slot",
				ErrReservedName, name, name)
		}
		t.providers[name] = p
	}
	return t, nil
}

// MustTable is NewTable that panics, for literals in tests and fixtures.
func MustTable(m map[string]Provider) *Table {
	t, err := NewTable(m)
	if err != nil {
		panic(err)
	}
	return t
}

// Has reports whether name was supplied with a non-nil provider.
func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	return t.providers[name] != nil
}

// Names returns slot names in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.providers))
	for k := range t.providers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (t *Table) provider(name string) Provider { return t.providers[name] }
