package tagcmp

import (
	"context"
	"strings"
)

// TestResult holds the result of processing one element for testing.
//
// Provides convenience methods for asserting on the written markup and
// the individual output segments.
type TestResult struct {
	// HTML is the element as it would be written into the page.
	HTML string
	// Content is the element's final content: the Content segment when a
	// component wrote to it, otherwise the (rewritten) child content.
	Content string
	// Output is the element's output after every component ran.
	Output *Output

	attrs Attributes
	tag   string
}

// TestElement runs components over a single synthetic element.
//
// Use this for unit tests of a component's predicate and output without
// building a page. The components run in ascending Order, exactly as
// registered components do; child is the element's inner markup.
//
//	result, err := tagcmp.TestElement("address", tagcmp.Attributes{{Name: "printable"}},
//	    "123 Main St", components.NewMarkup("<b>HQ</b>", 5))
//	if !result.ContentEquals("123 Main St<b>HQ</b>") {
//	    t.Fatal("unexpected content")
//	}
func TestElement(tag string, attrs Attributes, child string, components ...Component) (*TestResult, error) {
	return TestElementWithContext(context.Background(), tag, attrs, child, components...)
}

// TestElementWithContext runs components over a synthetic element with a
// custom context.
func TestElementWithContext(ctx context.Context, tag string, attrs Attributes, child string, components ...Component) (*TestResult, error) {
	reg := NewRegistry(WithTargets(tag))
	if len(components) > 0 {
		reg.Add(components...)
	}

	el := &element{
		tag:    tag,
		attrs:  attrs,
		inner:  []byte(child),
		closed: true,
	}
	out, content, err := reg.newRewriter().process(ctx, el)
	if err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:    renderElement(el, out, content),
		Content: content,
		Output:  out,
		attrs:   attrs.Clone(),
		tag:     tag,
	}, nil
}

// TestPage rewrites a whole page through a registry.
func TestPage(reg *Registry, page string) (string, error) {
	return reg.RewriteString(context.Background(), page)
}

// HTMLContains checks if the written element contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// ContentEquals checks the element's final content.
func (r *TestResult) ContentEquals(s string) bool {
	return r.Content == s
}

// PostContent returns the element's post-content segment.
func (r *TestResult) PostContent() string {
	return r.Output.PostContent.String()
}

// PostContentHasSuffix checks the end of the post-content segment.
func (r *TestResult) PostContentHasSuffix(suffix string) bool {
	return strings.HasSuffix(r.PostContent(), suffix)
}

// Modified reports whether any component changed the element: a segment
// was written, the tag was renamed or suppressed, or an attribute changed.
func (r *TestResult) Modified() bool {
	o := r.Output
	if o.PreElement.IsModified() || o.PreContent.IsModified() || o.Content.IsModified() ||
		o.PostContent.IsModified() || o.PostElement.IsModified() {
		return true
	}
	if o.IsSuppressed() || o.TagName != r.tag {
		return true
	}
	if len(o.Attributes) != len(r.attrs) {
		return true
	}
	for i := range o.Attributes {
		if o.Attributes[i] != r.attrs[i] {
			return true
		}
	}
	return false
}
