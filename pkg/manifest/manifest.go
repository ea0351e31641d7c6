package manifest

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockroute/internal/matching"
	"github.com/getmockd/mockroute/pkg/logging"
	"github.com/getmockd/mockroute/pkg/response"
	"github.com/getmockd/mockroute/pkg/value"
)

// Manifest maps route patterns to ordered response definitions.
//
// Routes are kept in specificity order and each route's definitions in
// definition specificity order. A Manifest is safe for concurrent use;
// matching never mutates it.
type Manifest struct {
	mu      sync.RWMutex
	routes  map[string][]*Definition
	order   []string
	factory response.Factory
	log     *slog.Logger
}

// Option configures loading and matching.
type Option func(*options)

type options struct {
	log            *slog.Logger
	factory        response.Factory
	validateSchema bool
}

// WithLogger sets the logger used while loading and matching.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithFactory sets the response factory used by Match.
func WithFactory(f response.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithSchemaValidation validates documents against the manifest schema
// before normalizing them.
func WithSchemaValidation() Option {
	return func(o *options) { o.validateSchema = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.log = logging.OrNop(o.log)
	if o.factory == nil {
		// An empty stubs directory is always valid.
		o.factory, _ = response.NewFactory("", response.WithFactoryLogger(o.log))
	}
	return o
}

// New returns an empty manifest.
func New(opts ...Option) *Manifest {
	return newManifest(buildOptions(opts))
}

func newManifest(o options) *Manifest {
	return &Manifest{
		routes:  make(map[string][]*Definition),
		factory: o.factory,
		log:     o.log,
	}
}

// Factory returns the response factory used by Match.
func (m *Manifest) Factory() response.Factory {
	return m.factory
}

// Len returns the number of routes.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Routes returns route patterns in specificity order.
func (m *Manifest) Routes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

// Has reports whether route is defined.
func (m *Manifest) Has(route string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.routes[route]
	return ok
}

// Get returns the definitions of route in specificity order.
func (m *Manifest) Get(route string) ([]*Definition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	defs, ok := m.routes[route]
	return slices.Clone(defs), ok
}

// Set normalizes src and stores it under route, replacing any previous
// definitions. src may be anything FromAny accepts.
func (m *Manifest) Set(route string, src any) error {
	v, err := value.FromAny(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	defs, err := prepareRoute(route, v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(route, defs)
	m.order = matching.SortRoutes(m.order)
	return nil
}

// put stores defs without re-sorting. Callers hold the write lock.
func (m *Manifest) put(route string, defs []*Definition) {
	if _, exists := m.routes[route]; !exists {
		m.order = append(m.order, route)
	}
	m.routes[route] = defs
}

// ToValue returns the normalized manifest: routes in specificity order, each
// mapped to its list of definitions.
func (m *Manifest) ToValue() value.Value {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := value.NewObject()
	for _, route := range m.order {
		defs := m.routes[route]
		items := make([]value.Value, len(defs))
		for i, d := range defs {
			items[i] = d.ToValue()
		}
		out.Set(route, value.ListOf(items...))
	}
	return value.MapOf(out)
}

// ToJSON encodes the normalized manifest as compact JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	return m.ToValue().MarshalJSON()
}

// ToYAML encodes the normalized manifest as YAML.
func (m *Manifest) ToYAML() ([]byte, error) {
	return yaml.Marshal(m.ToValue().ToYAMLNode())
}

// MarshalJSON implements json.Marshaler.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return m.ToJSON()
}

// prepareRoute validates route placeholders and normalizes its value.
func prepareRoute(route string, v value.Value) ([]*Definition, error) {
	if _, err := ExtractVariables(route); err != nil {
		return nil, err
	}
	return normalizeRoute(route, v)
}
