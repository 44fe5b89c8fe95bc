package tagcmp

import (
	"context"
	"strings"
)

// Attribute is a single HTML attribute. An empty Value renders as a bare
// (minimized) attribute such as navigable.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered attribute list. Name lookups are ASCII
// case-insensitive, as HTML attribute names are.
type Attributes []Attribute

// ContainsName reports whether an attribute with the given name is present.
func (a Attributes) ContainsName(name string) bool {
	return a.index(name) >= 0
}

// Get returns the value of the named attribute.
func (a Attributes) Get(name string) (string, bool) {
	if i := a.index(name); i >= 0 {
		return a[i].Value, true
	}
	return "", false
}

// Set replaces the named attribute's value, or appends it if absent.
func (a *Attributes) Set(name, value string) {
	if i := a.index(name); i >= 0 {
		(*a)[i].Value = value
		return
	}
	*a = append(*a, Attribute{Name: name, Value: value})
}

// Remove deletes every attribute with the given name. It reports whether
// anything was removed.
func (a *Attributes) Remove(name string) bool {
	kept := (*a)[:0]
	removed := false
	for _, attr := range *a {
		if strings.EqualFold(attr.Name, name) {
			removed = true
			continue
		}
		kept = append(kept, attr)
	}
	*a = kept
	return removed
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	copy(out, a)
	return out
}

func (a Attributes) index(name string) int {
	for i, attr := range a {
		if strings.EqualFold(attr.Name, name) {
			return i
		}
	}
	return -1
}

// Context is the read-only view of the element being rendered.
//
// Items is shared by every component processing the same element and is
// discarded afterwards; nothing survives between elements.
type Context struct {
	TagName       string
	AllAttributes Attributes
	UniqueID      string
	Items         map[any]any
}

// NewContext creates an element context. The attribute list is copied.
func NewContext(tagName string, attrs Attributes, uniqueID string) *Context {
	return &Context{
		TagName:       tagName,
		AllAttributes: attrs.Clone(),
		UniqueID:      uniqueID,
		Items:         make(map[any]any),
	}
}

// Is reports whether the element's tag name equals tag, ignoring case.
func (c *Context) Is(tag string) bool {
	return strings.EqualFold(c.TagName, tag)
}

// ChildContentFunc materializes an element's children. It may block.
type ChildContentFunc func(ctx context.Context) (string, error)

// Output is the mutable rendered form of one element.
//
// Child content is produced in two phases: ChildContent runs the producer
// supplied by the pipeline (at most once per element, the result is
// memoized) and callers then work with the returned string.
type Output struct {
	TagName     string
	Attributes  Attributes
	PreElement  Content
	PreContent  Content
	Content     Content
	PostContent Content
	PostElement Content

	suppressed bool
	children   ChildContentFunc
	childDone  bool
	child      string
	childErr   error
}

// NewOutput creates the output for an element. children may be nil for an
// element without content.
func NewOutput(tagName string, attrs Attributes, children ChildContentFunc) *Output {
	return &Output{
		TagName:    tagName,
		Attributes: attrs.Clone(),
		children:   children,
	}
}

// ChildContent returns the element's rendered children, running any nested
// components first.
func (o *Output) ChildContent(ctx context.Context) (string, error) {
	if o.childDone {
		return o.child, o.childErr
	}
	if o.children != nil {
		o.child, o.childErr = o.children(ctx)
	}
	o.childDone = true
	return o.child, o.childErr
}

// SuppressOutput drops the element's tag and every content segment.
// PreElement and PostElement are still written.
func (o *Output) SuppressOutput() {
	o.suppressed = true
	o.TagName = ""
	o.PreContent.Clear()
	o.Content.Clear()
	o.PostContent.Clear()
}

// IsSuppressed reports whether SuppressOutput was called.
func (o *Output) IsSuppressed() bool {
	return o.suppressed
}
