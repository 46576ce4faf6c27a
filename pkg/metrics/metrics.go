// Package metrics defines the self-describing computation units that make up
// a yearly summary.
//
// Each metric is a pure function with metadata:
//   - a typed input and a typed output
//   - a machine name, display name and description for listings and reports
//
// The registry lets the CLI and the service list every metric they compute.
package metrics

import "slices"

// Metric is the core interface that all metrics must implement.
type Metric[In, Out any] interface {
	// Name returns the machine-readable identifier (snake_case, unique).
	Name() string

	// DisplayName returns a human-readable name for reports.
	DisplayName() string

	// Description returns what the metric measures and how to read it.
	Description() string

	// Type returns the metric category.
	Type() string

	// Compute calculates the metric value from input data.
	Compute(input In) Out
}

// Metric categories.
const (
	TypeAggregate      = "aggregate"
	TypeDistribution   = "distribution"
	TypeClassification = "classification"
	TypeComparison     = "comparison"
)

// MetricMeta holds the common metadata for a metric.
// Embed this in metric implementations to satisfy metadata methods.
type MetricMeta struct {
	MetricName        string
	MetricDisplayName string
	MetricDescription string
	MetricType        string
}

// Name returns the machine-readable identifier.
func (m MetricMeta) Name() string { return m.MetricName }

// DisplayName returns a human-readable name for reports.
func (m MetricMeta) DisplayName() string { return m.MetricDisplayName }

// Description returns detailed documentation.
func (m MetricMeta) Description() string { return m.MetricDescription }

// Type returns the metric category.
func (m MetricMeta) Type() string { return m.MetricType }

// Info is the metadata of a registered metric.
type Info struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type describer interface {
	Name() string
	DisplayName() string
	Description() string
	Type() string
}

// Registry holds a collection of metrics that can be computed together.
type Registry struct {
	metrics map[string]any // name -> Metric[In, Out].
}

// NewRegistry creates an empty metric registry.
func NewRegistry() *Registry {
	return &Registry{metrics: make(map[string]any)}
}

// Register adds a metric to the registry. A metric with the same name
// replaces the earlier one.
func Register[In, Out any](r *Registry, m Metric[In, Out]) {
	r.metrics[m.Name()] = m
}

// Get retrieves a metric by name.
func (r *Registry) Get(name string) (any, bool) {
	m, ok := r.metrics[name]

	return m, ok
}

// Lookup retrieves a metric by name with its concrete input and output types.
func Lookup[In, Out any](r *Registry, name string) (Metric[In, Out], bool) {
	m, ok := r.metrics[name]
	if !ok {
		return nil, false
	}

	typed, ok := m.(Metric[In, Out])

	return typed, ok
}

// Names returns all registered metric names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.metrics))

	for name := range r.metrics {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Describe returns the metadata of every registered metric, sorted by name.
func (r *Registry) Describe() []Info {
	infos := make([]Info, 0, len(r.metrics))

	for _, name := range r.Names() {
		d, ok := r.metrics[name].(describer)
		if !ok {
			continue
		}

		infos = append(infos, Info{
			Name:        d.Name(),
			DisplayName: d.DisplayName(),
			Description: d.Description(),
			Type:        d.Type(),
		})
	}

	return infos
}
