// Package tagcmpecho provides Echo framework integration for tagcmp.
//
// Install the registry as middleware on an Echo instance or group:
//
//	e := echo.New()
//	reg := tagcmp.NewRegistry()
//	components.Init(reg, cfg)
//	tagcmpecho.Use(e, reg)
//
// Or only on a group:
//
//	g := e.Group("/pages")
//	g.Use(tagcmpecho.Middleware(reg))
package tagcmpecho

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pthm/tagcmp"
)

// Option configures Middleware and Use.
type Option func(*options)

type options struct {
	skipper middleware.Skipper
}

// WithSkipper sets a function deciding which requests bypass the rewrite.
// Defaults to middleware.DefaultSkipper (nothing is skipped).
func WithSkipper(s middleware.Skipper) Option {
	return func(o *options) {
		o.skipper = s
	}
}

// Middleware returns Echo middleware running HTML responses through reg.
func Middleware(reg *tagcmp.Registry, opts ...Option) echo.MiddlewareFunc {
	o := &options{skipper: middleware.DefaultSkipper}
	for _, opt := range opts {
		opt(o)
	}

	rewrite := echo.WrapMiddleware(reg.Middleware)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		// Handler errors are rendered inside the buffered response; once
		// the rewrite has flushed, Echo's error handler could no longer
		// write.
		wrapped := rewrite(func(c echo.Context) error {
			if err := next(c); err != nil {
				c.Error(err)
			}
			return nil
		})
		return func(c echo.Context) error {
			if o.skipper(c) {
				return next(c)
			}
			return wrapped(c)
		}
	}
}

// Use installs Middleware on an Echo instance.
//
//	e := echo.New()
//	tagcmpecho.Use(e, reg)
//
//	// With options:
//	tagcmpecho.Use(e, reg, tagcmpecho.WithSkipper(func(c echo.Context) bool {
//	    return strings.HasPrefix(c.Path(), "/static")
//	}))
func Use(e *echo.Echo, reg *tagcmp.Registry, opts ...Option) {
	e.Use(Middleware(reg, opts...))
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return tagcmpecho.Render(c, page())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
