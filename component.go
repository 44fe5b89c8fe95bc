package tagcmp

import (
	"context"
	"fmt"
	"strings"
)

// Predicate decides whether a component applies to an element.
type Predicate func(tc *Context, out *Output) bool

// Tag matches elements whose tag name equals name, ignoring case.
func Tag(name string) Predicate {
	return func(tc *Context, _ *Output) bool {
		return strings.EqualFold(tc.TagName, name)
	}
}

// HasAttr matches elements whose output carries the named attribute.
func HasAttr(name string) Predicate {
	return func(_ *Context, out *Output) bool {
		return out.Attributes.ContainsName(name)
	}
}

// All matches when every predicate matches.
func All(preds ...Predicate) Predicate {
	return func(tc *Context, out *Output) bool {
		for _, p := range preds {
			if !p(tc, out) {
				return false
			}
		}
		return true
	}
}

// Func is a component assembled from plain values.
//
// Use it for one-off augmentations that don't warrant their own type:
//
//	reg.Add(tagcmp.Func{
//	    Name:     "footer-year",
//	    Priority: 10,
//	    Match:    tagcmp.Tag("footer"),
//	    Action: func(ctx context.Context, tc *tagcmp.Context, out *tagcmp.Output) error {
//	        out.PostContent.Append(strconv.Itoa(time.Now().Year()))
//	        return nil
//	    },
//	})
//
// A nil Match matches every element.
type Func struct {
	Name     string
	Priority int
	Match    Predicate
	Action   func(ctx context.Context, tc *Context, out *Output) error
}

// Order returns the component's priority.
func (f Func) Order() int {
	return f.Priority
}

// Process runs Action when Match accepts the element.
func (f Func) Process(ctx context.Context, tc *Context, out *Output) error {
	if f.Action == nil {
		return nil
	}
	if f.Match != nil && !f.Match(tc, out) {
		return nil
	}
	return f.Action(ctx, tc, out)
}

// String returns the component's name.
func (f Func) String() string {
	if f.Name == "" {
		return "func"
	}
	return f.Name
}

// componentName names a component in errors and logs.
func componentName(c Component) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
