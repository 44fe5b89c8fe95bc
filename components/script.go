package components

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pthm/tagcmp"
)

// ScriptPath is the tooltip script fragment, relative to the content root.
const ScriptPath = "Files/AddressToolTipScript.html"

// TooltipScript is the script ScriptInline appends to the page body. On
// hover it turns printable address elements into tooltip triggers.
const TooltipScript = `<script>
$('address').hover(function () {
    if (this.hasAttribute('printable')) {
        $(this).attr({
            'data-toggle': 'tooltip',
            'data-placement': 'right',
            'title': 'Home of Microsoft!'
        });
    }
});
</script>`

// ScriptFile appends the script fragment stored at ScriptPath to the end
// of the page body. The file is read on every render.
type ScriptFile struct {
	fsys fs.FS
	path string
}

// NewScriptFile reads ScriptPath from fsys.
func NewScriptFile(fsys fs.FS) *ScriptFile {
	return &ScriptFile{fsys: fsys, path: ScriptPath}
}

// NewScriptFileDir reads ScriptPath relative to the content root directory.
func NewScriptFileDir(contentRoot string) *ScriptFile {
	return NewScriptFile(os.DirFS(contentRoot))
}

// Order returns 2.
func (s *ScriptFile) Order() int { return 2 }

func (s *ScriptFile) String() string { return "script-file" }

// Process appends the script to the body's post-content. A missing file
// fails with tagcmp.ErrResourceNotFound, any other read failure with
// tagcmp.ErrResourceUnreadable; both wrap the underlying *fs.PathError.
func (s *ScriptFile) Process(ctx context.Context, tc *tagcmp.Context, out *tagcmp.Output) error {
	if !tc.Is("body") {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := fs.ReadFile(s.fsys, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", tagcmp.ErrResourceNotFound, err)
		}
		return fmt.Errorf("%w: %w", tagcmp.ErrResourceUnreadable, err)
	}

	out.PostContent.AppendHTML(strings.TrimPrefix(string(data), "\uFEFF"))
	return nil
}

// ScriptInline appends TooltipScript to the end of the page body.
type ScriptInline struct{}

// NewScriptInline creates a ScriptInline component.
func NewScriptInline() *ScriptInline {
	return &ScriptInline{}
}

// Order returns 3.
func (s *ScriptInline) Order() int { return 3 }

func (s *ScriptInline) String() string { return "script-inline" }

// Process appends the tooltip script to the body's post-content.
func (s *ScriptInline) Process(ctx context.Context, tc *tagcmp.Context, out *tagcmp.Output) error {
	if !tc.Is("body") {
		return nil
	}
	out.PostContent.AppendHTML(TooltipScript)
	return nil
}
