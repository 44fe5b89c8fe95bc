package tagcmp

import "context"

// Component is implemented by types that augment rendered elements.
//
// The registry calls Process for every target element, in ascending Order.
// A component inspects the element context and leaves out untouched when
// its predicate does not match:
//
//	func (c *Banner) Process(ctx context.Context, tc *tagcmp.Context, out *tagcmp.Output) error {
//	    if !tc.Is("header") {
//	        return nil
//	    }
//	    out.PostContent.AppendHTML(c.markup)
//	    return nil
//	}
//
// Components are registered once at startup and shared by all renders, so
// they must not keep per-element state.
type Component interface {
	Order() int
	Process(ctx context.Context, tc *Context, out *Output) error
}

// Initializer is implemented by components that need to see an element
// before any component processes it.
//
// Init is called on every registered Initializer, in order, before the
// first Process call for the element. Values written to tc.Items here are
// visible to every Process call for the same element.
type Initializer interface {
	Init(tc *Context)
}
