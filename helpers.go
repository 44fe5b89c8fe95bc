package tagcmp

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context. Combine with Wrap to augment the page:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    tagcmp.Render(w, r, reg.Wrap(page()))
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// Wrap returns a templ component that renders c and runs the result
// through the registry's components.
//
// c is rendered to a buffer first; nothing reaches the writer if either
// the render or the rewrite fails.
func (reg *Registry) Wrap(c templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := c.Render(ctx, &buf); err != nil {
			return err
		}
		var out bytes.Buffer
		if err := reg.Rewrite(ctx, &buf, &out); err != nil {
			return err
		}
		_, err := out.WriteTo(w)
		return err
	})
}

// Fragment renders a templ component to a markup string, for components
// that build their fragments with templ.
func Fragment(ctx context.Context, c templ.Component) (string, error) {
	s, err := templ.ToGoHTML(ctx, c)
	return string(s), err
}
