package tagcmp

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// recorder appends its name to the element's post-content.
func recorder(name string, order int, tag string) Func {
	return Func{
		Name:     name,
		Priority: order,
		Match:    Tag(tag),
		Action: func(ctx context.Context, tc *Context, out *Output) error {
			out.PostContent.AppendHTML("[" + name + "]")
			return nil
		},
	}
}

type initRecorder struct {
	order int
	log   *[]string
}

func (r *initRecorder) Order() int { return r.order }

func (r *initRecorder) Init(tc *Context) {
	*r.log = append(*r.log, "init")
	tc.Items["seen"] = true
}

func (r *initRecorder) Process(ctx context.Context, tc *Context, out *Output) error {
	*r.log = append(*r.log, "process")
	if tc.Items["seen"] != true {
		return errors.New("Init did not run first")
	}
	return nil
}

func TestRegistryOrdering(t *testing.T) {
	tests := []struct {
		name  string
		added []Func
	}{
		{"ascending", []Func{recorder("a", 1, "body"), recorder("b", 2, "body"), recorder("c", 3, "body")}},
		{"descending", []Func{recorder("c", 3, "body"), recorder("b", 2, "body"), recorder("a", 1, "body")}},
		{"mixed", []Func{recorder("b", 2, "body"), recorder("c", 3, "body"), recorder("a", 1, "body")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			for _, f := range tt.added {
				reg.Add(f)
			}

			out := NewOutput("body", nil, nil)
			if err := reg.ProcessElement(context.Background(), NewContext("body", nil, "body-1"), out); err != nil {
				t.Fatalf("ProcessElement() error = %v", err)
			}
			if got := out.PostContent.String(); got != "[a][b][c]" {
				t.Errorf("PostContent = %q, want %q", got, "[a][b][c]")
			}
		})
	}
}

func TestRegistryEqualOrderKeepsRegistration(t *testing.T) {
	reg := NewRegistry()
	reg.Add(recorder("first", 1, "body"), recorder("second", 1, "body"))
	reg.Add(recorder("zero", 0, "body"), recorder("third", 1, "body"))

	var names []string
	for _, c := range reg.Components() {
		names = append(names, componentName(c))
	}
	want := []string{"zero", "first", "second", "third"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Components() = %v, want %v", names, want)
	}
}

func TestRegistryAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add(nil) should panic")
		}
	}()
	NewRegistry().Add(nil)
}

func TestRegistryInitBeforeProcess(t *testing.T) {
	var log []string
	reg := NewRegistry()
	reg.Add(&initRecorder{order: 2, log: &log}, &initRecorder{order: 1, log: &log})

	err := reg.ProcessElement(context.Background(), NewContext("body", nil, "body-1"), NewOutput("body", nil, nil))
	if err != nil {
		t.Fatalf("ProcessElement() error = %v", err)
	}

	want := []string{"init", "init", "process", "process"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("call log = %v, want %v", log, want)
	}
}

func TestRegistryStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry()
	reg.Add(
		recorder("before", 1, "body"),
		Func{Name: "failing", Priority: 2, Action: func(ctx context.Context, tc *Context, out *Output) error {
			return boom
		}},
		recorder("after", 3, "body"),
	)

	out := NewOutput("body", nil, nil)
	err := reg.ProcessElement(context.Background(), NewContext("body", nil, "body-1"), out)
	if !errors.Is(err, boom) {
		t.Fatalf("ProcessElement() error = %v, want %v", err, boom)
	}
	if !strings.Contains(err.Error(), "failing <body>") {
		t.Errorf("error %q should name the component and element", err)
	}
	if got := out.PostContent.String(); got != "[before]" {
		t.Errorf("PostContent = %q, want %q", got, "[before]")
	}
}

func TestRegistryTargets(t *testing.T) {
	reg := NewRegistry()
	if got, want := reg.Targets(), []string{"body", "head"}; !reflect.DeepEqual(got, want) {
		t.Errorf("default Targets() = %v, want %v", got, want)
	}

	reg.Target("Address")
	if !reg.IsTarget("ADDRESS") {
		t.Error("IsTarget(ADDRESS) = false after Target(Address)")
	}

	reg = NewRegistry(WithTargets("footer"))
	if reg.IsTarget("body") {
		t.Error("WithTargets should replace the defaults")
	}
	if !reg.IsTarget("footer") {
		t.Error("IsTarget(footer) = false")
	}
}

func TestFuncPredicates(t *testing.T) {
	tests := []struct {
		name   string
		match  Predicate
		tag    string
		attrs  Attributes
		expect bool
	}{
		{"nil matches all", nil, "p", nil, true},
		{"tag match", Tag("address"), "ADDRESS", nil, true},
		{"tag mismatch", Tag("address"), "body", nil, false},
		{"attr present", HasAttr("printable"), "address", Attributes{{Name: "printable"}}, true},
		{"attr absent", HasAttr("printable"), "address", Attributes{{Name: "navigable"}}, false},
		{"all", All(Tag("address"), HasAttr("navigable")), "address", Attributes{{Name: "navigable"}}, true},
		{"all fails one", All(Tag("address"), HasAttr("navigable")), "div", Attributes{{Name: "navigable"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran := false
			f := Func{Match: tt.match, Action: func(ctx context.Context, tc *Context, out *Output) error {
				ran = true
				return nil
			}}
			out := NewOutput(tt.tag, tt.attrs, nil)
			if err := f.Process(context.Background(), NewContext(tt.tag, tt.attrs, "x"), out); err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if ran != tt.expect {
				t.Errorf("action ran = %v, want %v", ran, tt.expect)
			}
		})
	}
}
