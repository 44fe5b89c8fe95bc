package tagcmp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Rewrite copies the page read from r to w, running the registered
// components over every target element.
//
// Markup outside target elements is copied byte for byte. A target
// element's start tag is re-rendered from Output.Attributes, so attribute
// quoting may change. Target elements nested inside another target (an
// address inside body) are processed when the parent's child content is
// materialized, which happens before the parent's own segments are written.
func (reg *Registry) Rewrite(ctx context.Context, r io.Reader, w io.Writer) error {
	return reg.newRewriter().rewrite(ctx, r, w)
}

// RewriteString is Rewrite over strings.
func (reg *Registry) RewriteString(ctx context.Context, page string) (string, error) {
	var sb strings.Builder
	if err := reg.Rewrite(ctx, strings.NewReader(page), &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// rewriter holds the state of one page render.
type rewriter struct {
	components []Component
	targets    map[string]struct{}
	seq        int
}

// newRewriter snapshots the registry so a render is unaffected by
// concurrent registration.
func (reg *Registry) newRewriter() *rewriter {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	targets := make(map[string]struct{}, len(reg.targets))
	for t := range reg.targets {
		targets[t] = struct{}{}
	}
	return &rewriter{
		components: slices.Clone(reg.components),
		targets:    targets,
	}
}

func (rw *rewriter) rewrite(ctx context.Context, r io.Reader, w io.Writer) error {
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrMarkupRead, z.Err())
		}

		// TagName lowercases the token buffer in place; keep the source bytes.
		raw := bytes.Clone(z.Raw())

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			if _, err := w.Write(raw); err != nil {
				return err
			}
			continue
		}

		name, hasAttr := z.TagName()
		tag := string(name)
		if _, ok := rw.targets[tag]; !ok {
			if _, err := w.Write(raw); err != nil {
				return err
			}
			continue
		}

		attrs := readAttributes(z, hasAttr)
		el := &element{tag: tag, attrs: attrs, selfClosing: tt == html.SelfClosingTagToken}
		var tail []byte
		if !el.selfClosing {
			inner, closed, rest, err := captureInner(z, tag)
			if err != nil {
				return err
			}
			el.inner, el.closed, tail = inner, closed, rest
		}
		if err := rw.element(ctx, w, el); err != nil {
			return err
		}
		if _, err := w.Write(tail); err != nil {
			return err
		}
	}
}

type element struct {
	tag         string
	attrs       Attributes
	inner       []byte
	selfClosing bool
	closed      bool
}

// element runs the components over one target element and writes the result.
func (rw *rewriter) element(ctx context.Context, w io.Writer, el *element) error {
	out, content, err := rw.process(ctx, el)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, renderElement(el, out, content))
	return err
}

// process runs the components and resolves the element's final content.
func (rw *rewriter) process(ctx context.Context, el *element) (*Output, string, error) {
	rw.seq++
	tc := NewContext(el.tag, el.attrs, el.tag+"-"+strconv.Itoa(rw.seq))

	var children ChildContentFunc
	if len(el.inner) > 0 {
		children = func(ctx context.Context) (string, error) {
			var sb strings.Builder
			if err := rw.rewrite(ctx, bytes.NewReader(el.inner), &sb); err != nil {
				return "", err
			}
			return sb.String(), nil
		}
	}
	out := NewOutput(el.tag, el.attrs, children)

	if err := processElement(ctx, rw.components, tc, out); err != nil {
		return nil, "", err
	}

	content := out.Content.String()
	if !out.IsSuppressed() && !out.Content.IsModified() {
		child, err := out.ChildContent(ctx)
		if err != nil {
			return nil, "", err
		}
		content = child
	}
	return out, content, nil
}

func renderElement(el *element, out *Output, content string) string {
	var sb strings.Builder
	sb.WriteString(out.PreElement.String())
	if !out.IsSuppressed() {
		body := out.PreContent.String() + content + out.PostContent.String()
		switch {
		case out.TagName == "":
			sb.WriteString(body)
		case el.selfClosing && body == "":
			writeStartTag(&sb, out.TagName, out.Attributes, true)
		default:
			writeStartTag(&sb, out.TagName, out.Attributes, false)
			sb.WriteString(body)
			if el.closed || el.selfClosing {
				sb.WriteString("</" + out.TagName + ">")
			}
		}
	}
	sb.WriteString(out.PostElement.String())
	return sb.String()
}

// captureInner collects the source between a start tag and its matching
// end tag. An element left open at end of input is closed implicitly, as
// are head and body at </html>; that end tag is returned as rest so it is
// written after the element.
func captureInner(z *html.Tokenizer, tag string) (inner []byte, closed bool, rest []byte, err error) {
	var buf bytes.Buffer
	depth := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return buf.Bytes(), false, nil, nil
			}
			return nil, false, nil, fmt.Errorf("%w: %w", ErrMarkupRead, z.Err())
		}

		raw := bytes.Clone(z.Raw())
		switch tt {
		case html.StartTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if tt == html.EndTagToken && string(name) == "html" && closesAtHTMLEnd(tag) {
				return buf.Bytes(), false, raw, nil
			}
			if string(name) == tag {
				if tt == html.StartTagToken {
					depth++
				} else {
					depth--
				}
			}
			if depth == 0 {
				return buf.Bytes(), true, nil, nil
			}
		}
		buf.Write(raw)
	}
}

// closesAtHTMLEnd reports whether an omitted end tag of tag is implied by
// </html>.
func closesAtHTMLEnd(tag string) bool {
	return tag == "head" || tag == "body"
}

func readAttributes(z *html.Tokenizer, more bool) Attributes {
	var attrs Attributes
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs = append(attrs, Attribute{Name: string(key), Value: string(val)})
	}
	return attrs
}

func writeStartTag(sb *strings.Builder, tag string, attrs Attributes, selfClosing bool) {
	sb.WriteString("<" + tag)
	for _, a := range attrs {
		sb.WriteString(" " + a.Name)
		if a.Value != "" {
			sb.WriteString(`="` + html.EscapeString(a.Value) + `"`)
		}
	}
	if selfClosing {
		sb.WriteString("/>")
		return
	}
	sb.WriteString(">")
}
