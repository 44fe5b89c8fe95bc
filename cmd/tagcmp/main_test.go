package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pthm/tagcmp/components"
	"github.com/pthm/tagcmp/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteRoot = "testdata/site"

func readScript(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(siteRoot, components.ScriptPath))
	require.NoError(t, err)
	return string(data)
}

func testApp(t *testing.T, root string) *app {
	t.Helper()
	s := &config.Settings{ContentRoot: root, Listen: ":0"}
	s.Address.Order = 1
	s.Address.Markup = "<b>HQ</b>"
	s.Markup.Order = 5
	s.Markup.Markup = "<i>print me</i>"
	return &app{
		v:        viper.New(),
		settings: s,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "tagcmp version "+version+"\n", out.String())
}

func TestRenderCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"render", "--contentroot", siteRoot, filepath.Join(siteRoot, "Pages", "index.html")})

	require.NoError(t, cmd.Execute())

	page := out.String()
	assert.Contains(t, page, "<address navigable><div>One Microsoft Way<br/></div><button type='button'")
	assert.Contains(t, page, "<address printable>Phone: 425.555.0100</address>")
	assert.Contains(t, page, readScript(t)+components.TooltipScript+"</body>")
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
}

func TestRenderCommandMissingPage(t *testing.T) {
	cmd := rootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"render", "--contentroot", siteRoot, "testdata/nope.html"})

	assert.Error(t, cmd.Execute())
}

func TestServerIndex(t *testing.T) {
	e := testApp(t, siteRoot).newServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<div>One Microsoft Way<br/><b>HQ</b></div><button")
	assert.Contains(t, body, "Phone: 425.555.0100<i>print me</i></address>")
	assert.Contains(t, body, readScript(t)+components.TooltipScript+"</body>")
	assert.Equal(t, rec.Body.Len(), int(mustAtoi(t, rec.Header().Get("Content-Length"))))
}

func TestServerDemo(t *testing.T) {
	e := testApp(t, siteRoot).newServer()

	req := httptest.NewRequest(http.MethodGet, "/demo", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), components.TooltipScript+"</body>")
	assert.Contains(t, rec.Body.String(), "glyphicon-road")
}

func TestServerPageByName(t *testing.T) {
	e := testApp(t, siteRoot).newServer()

	req := httptest.NewRequest(http.MethodGet, "/index", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<div>One Microsoft Way<br/><b>HQ</b></div><button")
}

func TestServerNotFound(t *testing.T) {
	e := testApp(t, siteRoot).newServer()

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerRawFiles(t *testing.T) {
	e := testApp(t, siteRoot).newServer()

	req := httptest.NewRequest(http.MethodGet, "/Files/AddressToolTipScript.html", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, readScript(t), rec.Body.String())
}

func TestServerMissingScript(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Pages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Pages", "index.html"),
		[]byte("<html><body><p>hi</p></body></html>"), 0o600))

	e := testApp(t, root).newServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<p>hi</p>")
}

func mustAtoi(t *testing.T, s string) int64 {
	t.Helper()
	n, err := strconv.ParseInt(s, 10, 64)
	require.NoError(t, err)
	return n
}
