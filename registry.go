package tagcmp

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
)

// DefaultTargets are the elements every registry processes.
var DefaultTargets = []string{"head", "body"}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry's logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(reg *Registry) {
		reg.logger = l
	}
}

// WithTargets replaces the default target elements.
func WithTargets(tags ...string) Option {
	return func(reg *Registry) {
		reg.targets = make(map[string]struct{}, len(tags))
		for _, t := range tags {
			reg.targets[strings.ToLower(t)] = struct{}{}
		}
	}
}

// Registry holds the registered components and the set of elements they
// apply to. It is the host pipeline: Rewrite, Wrap and Middleware run every
// target element of a page through the components in ascending Order.
type Registry struct {
	mu         sync.RWMutex
	components []Component
	targets    map[string]struct{}
	logger     *slog.Logger

	// OnError is called by Middleware when rewriting a page fails.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates an empty registry targeting DefaultTargets.
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{
		logger: slog.Default(),
	}
	WithTargets(DefaultTargets...)(reg)
	for _, opt := range opts {
		opt(reg)
	}

	// Default error handler
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}

	return reg
}

// Add registers components. Registration order does not matter: components
// run in ascending Order, and components with equal Order run in the order
// they were added.
func (reg *Registry) Add(components ...Component) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, c := range components {
		if c == nil {
			panic("tagcmp: nil component")
		}
		reg.components = append(reg.components, c)
	}
	slices.SortStableFunc(reg.components, func(a, b Component) int {
		return cmp.Compare(a.Order(), b.Order())
	})
}

// Target adds element names the registry processes.
func (reg *Registry) Target(tags ...string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, t := range tags {
		reg.targets[strings.ToLower(t)] = struct{}{}
	}
}

// IsTarget reports whether elements named tag are processed.
func (reg *Registry) IsTarget(tag string) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	_, ok := reg.targets[strings.ToLower(tag)]
	return ok
}

// Targets returns the target element names, sorted.
func (reg *Registry) Targets() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]string, 0, len(reg.targets))
	for t := range reg.targets {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Components returns the registered components in execution order.
func (reg *Registry) Components() []Component {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return slices.Clone(reg.components)
}

// Logger returns the registry's logger.
func (reg *Registry) Logger() *slog.Logger {
	return reg.logger
}

// ProcessElement runs every registered component against one element.
//
// Initializers see the element first; then each component's Process runs
// in ascending Order. The first error stops processing and is returned
// wrapped with the component's name.
func (reg *Registry) ProcessElement(ctx context.Context, tc *Context, out *Output) error {
	return processElement(ctx, reg.Components(), tc, out)
}

func processElement(ctx context.Context, components []Component, tc *Context, out *Output) error {
	for _, c := range components {
		if i, ok := c.(Initializer); ok {
			i.Init(tc)
		}
	}
	for _, c := range components {
		if err := c.Process(ctx, tc, out); err != nil {
			return fmt.Errorf("tagcmp: %s <%s>: %w", componentName(c), tc.TagName, err)
		}
	}
	return nil
}
