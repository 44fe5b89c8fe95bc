package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/pthm/tagcmp"
)

// DefaultMapURL is the location the navigable button opens.
const DefaultMapURL = "https://www.google.com/maps/place/Microsoft+Way,+Redmond,+WA+98052,+USA/@47.6414942,-122.1327809,17z/"

// Address wraps navigable address elements and adds a button that opens
// the location on a map.
//
// For <address navigable>123 Main St</address> with markup "<b>HQ</b>" the
// element's content becomes:
//
//	<div>123 Main St<br/><b>HQ</b></div><button ...>...</button>
//
// The markup is inserted verbatim.
type Address struct {
	markup string
	order  int
	mapURL string
}

// AddressOption configures an Address.
type AddressOption func(*Address)

// WithMapURL overrides the URL the navigable button opens.
func WithMapURL(url string) AddressOption {
	return func(a *Address) {
		a.mapURL = url
	}
}

// WithAddressOrder overrides the default order of 1.
func WithAddressOrder(order int) AddressOption {
	return func(a *Address) {
		a.order = order
	}
}

// NewAddress creates an Address component appending markup after the
// element's children.
func NewAddress(markup string, opts ...AddressOption) *Address {
	a := &Address{
		markup: markup,
		order:  1,
		mapURL: DefaultMapURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Order returns the component's order.
func (a *Address) Order() int { return a.order }

func (a *Address) String() string { return "address" }

// Process rewrites the content of address elements carrying navigable.
func (a *Address) Process(ctx context.Context, tc *tagcmp.Context, out *tagcmp.Output) error {
	if !tc.Is("address") || !out.Attributes.ContainsName("navigable") {
		return nil
	}

	child, err := out.ChildContent(ctx)
	if err != nil {
		return err
	}
	button, err := tagcmp.Fragment(ctx, NavigableButton(a.mapURL))
	if err != nil {
		return err
	}

	out.Content.SetHTML("<div>" + child + "<br/>" + a.markup + "</div>" + button)
	return nil
}

// NavigableButton renders the button that opens url in a new window.
func NavigableButton(url string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<button type='button' class='btn btn-info' onclick="window.open('`+
			templ.EscapeString(url)+`')">`+
			`<span class='glyphicon glyphicon-road' aria-hidden='true'></span>`+
			`</button>`)
		return err
	})
}
