package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	tagcmpecho "github.com/pthm/tagcmp/adapters/echo"
	"github.com/spf13/cobra"
)

func serveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve Pages/ from the content root with components applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := a.newServer()
			return runServer(cmd.Context(), e, a.settings.Listen, a.logger)
		},
	}

	cmd.Flags().String("listen", ":8080", "Listen address")
	_ = a.v.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	return cmd
}

// newServer builds the Echo instance serving the content root.
func (a *app) newServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"error", v.Error)
			return nil
		},
	}))
	tagcmpecho.Use(e, a.registry(), tagcmpecho.WithSkipper(func(c echo.Context) bool {
		return strings.HasPrefix(c.Request().URL.Path, "/Files/")
	}))

	pages := os.DirFS(a.settings.ContentRoot)
	e.StaticFS("/Files", echo.MustSubFS(pages, "Files"))
	e.GET("/demo", func(c echo.Context) error {
		return tagcmpecho.Render(c, demoPage())
	})
	e.GET("/*", func(c echo.Context) error {
		name := strings.TrimSuffix(c.Param("*"), ".html")
		if name == "" || strings.HasSuffix(name, "/") {
			name += "index"
		}
		file := path.Join("Pages", name+".html")
		if _, err := fs.Stat(pages, file); err != nil {
			return echo.ErrNotFound
		}
		http.ServeFileFS(c.Response(), c.Request(), pages, file)
		return nil
	})

	return e
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, e *echo.Echo, addr string, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down server")
	return e.Shutdown(shutdownCtx)
}

// demoPage is a page exercising every component.
func demoPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html>
<head><title>tagcmp demo</title></head>
<body>
<h1>Contact</h1>
<address navigable>One Microsoft Way<br/>Redmond, WA 98052</address>
<address printable>Phone: 425.555.0100</address>
</body>
</html>
`)
		return err
	})
}
