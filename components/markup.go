package components

import (
	"context"

	"github.com/pthm/tagcmp"
)

// Markup appends fixed markup to printable address elements.
type Markup struct {
	markup string
	order  int
}

// NewMarkup creates a Markup component.
func NewMarkup(markup string, order int) *Markup {
	return &Markup{markup: markup, order: order}
}

// Order returns the component's order.
func (m *Markup) Order() int { return m.order }

func (m *Markup) String() string { return "markup" }

// Process appends the markup directly after the content of address
// elements carrying printable. There is no wrapper element. If an earlier
// component already replaced the content, the markup follows that content.
func (m *Markup) Process(ctx context.Context, tc *tagcmp.Context, out *tagcmp.Output) error {
	if !tc.Is("address") || !out.Attributes.ContainsName("printable") {
		return nil
	}

	if out.Content.IsModified() {
		out.Content.AppendHTML(m.markup)
		return nil
	}
	child, err := out.ChildContent(ctx)
	if err != nil {
		return err
	}
	out.Content.SetHTML(child + m.markup)
	return nil
}
