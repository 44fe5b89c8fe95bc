// Package tagcmp provides conditional markup augmentation for
// server-rendered HTML pages.
//
// A component inspects one rendered element at a time (its tag name and
// attributes) and, when its predicate matches, appends to or replaces
// parts of the element's output. Components never see elements they do
// not match, and carry no state from one element to the next.
//
// # Core Concepts
//
// Components implement Component:
//
//	type Component interface {
//	    Order() int
//	    Process(ctx context.Context, tc *Context, out *Output) error
//	}
//
// Context is the read-only view of the element (tag name, attributes).
// Output is the mutable result, split into segments written in document
// order:
//
//	PreElement <tag attrs> PreContent Content PostContent </tag> PostElement
//
// A component that needs the element's children calls out.ChildContent,
// which renders them (including any nested target elements) once and
// memoizes the result.
//
// One-off components can be assembled from values with Func, Tag, HasAttr
// and All instead of declaring a type.
//
// # Registration and Rendering
//
// Components are registered explicitly with a Registry:
//
//	reg := tagcmp.NewRegistry()
//	reg.Target("address")
//	reg.Add(banner, footer)
//
// Only target elements are processed; head and body are targets by
// default. For each target element the registry calls every component in
// ascending Order, so the order of Add calls never matters.
//
// The registry renders pages three ways:
//   - Rewrite / RewriteString over an io.Reader
//   - Wrap, around a templ.Component
//   - Middleware, around any http.Handler producing text/html
//
// # Errors
//
// The first component error stops the render. Middleware hands it to the
// registry's OnError callback; Rewrite and Wrap return it. Resource
// failures wrap ErrResourceNotFound or ErrResourceUnreadable.
//
// # Ready-made Components
//
// Package components provides the address block, printable markup and
// tooltip script components; adapters/echo installs a registry as Echo
// middleware.
package tagcmp
