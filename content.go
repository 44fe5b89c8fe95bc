package tagcmp

import (
	"html"
	"strings"
)

// Content is one segment of an element's rendered output.
//
// Components append to or replace a segment; the pipeline writes the
// segments back out in document order once every component has run:
//
//	PreElement <tag attrs> PreContent Content PostContent </tag> PostElement
//
// Append escapes its argument. AppendHTML and SetHTML write markup verbatim
// and are the methods augmenting components normally use.
type Content struct {
	sb       strings.Builder
	modified bool
}

// Append appends text, HTML-escaped.
func (c *Content) Append(text string) *Content {
	return c.AppendHTML(html.EscapeString(text))
}

// AppendHTML appends raw markup.
func (c *Content) AppendHTML(markup string) *Content {
	c.sb.WriteString(markup)
	c.modified = true
	return c
}

// SetContent replaces the segment with escaped text.
func (c *Content) SetContent(text string) *Content {
	c.sb.Reset()
	return c.Append(text)
}

// SetHTML replaces the segment with raw markup.
func (c *Content) SetHTML(markup string) *Content {
	c.sb.Reset()
	return c.AppendHTML(markup)
}

// Clear empties the segment. A cleared segment still counts as modified.
func (c *Content) Clear() *Content {
	c.sb.Reset()
	c.modified = true
	return c
}

// String returns the segment's markup.
func (c *Content) String() string {
	return c.sb.String()
}

// IsModified reports whether any component wrote to the segment.
func (c *Content) IsModified() bool {
	return c.modified
}

// IsEmpty reports whether the segment holds no markup.
func (c *Content) IsEmpty() bool {
	return c.sb.Len() == 0
}
