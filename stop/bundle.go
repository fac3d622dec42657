package stop

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicyBundle holds early-stopping policy configuration, loadable from a
// YAML file. Nil pointer fields mean "not set in YAML" and take the package
// defaults at build time.
type PolicyBundle struct {
	Policies []PolicySpec `yaml:"policies"`
}

// PolicySpec configures a single early-stopping policy.
type PolicySpec struct {
	Policy    string   `yaml:"policy"` // policy name; empty defaults to "metric"
	Monitor   string   `yaml:"monitor"`
	MinDelta  *float64 `yaml:"min_delta"`
	Patience  *int     `yaml:"patience"`
	Threshold *float64 `yaml:"threshold"`
}

// ValidPolicies is the set of recognized policy names.
// Shared by Validate() and Build() to avoid duplication.
var ValidPolicies = map[string]bool{"": true, "metric": true, "noop": true}

// LoadPolicyBundle reads and parses a YAML policy configuration file.
func LoadPolicyBundle(path string) (*PolicyBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy config: %w", err)
	}
	var bundle PolicyBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing policy config: %w", err)
	}
	return &bundle, nil
}

// Validate checks that all policy names and parameter ranges in the bundle
// are valid.
func (b *PolicyBundle) Validate() error {
	for i, p := range b.Policies {
		if !ValidPolicies[p.Policy] {
			return fmt.Errorf("policy %d: unknown policy %q", i, p.Policy)
		}
		if p.Policy == "noop" {
			continue
		}
		if !IsValidMetric(p.Monitor) {
			return fmt.Errorf("policy %d: unsupported metric %q; valid metrics: [train_acc, train_loss, val_acc, val_loss]", i, p.Monitor)
		}
		if p.MinDelta != nil && *p.MinDelta < 0 {
			return fmt.Errorf("policy %d: min_delta must be non-negative, got %v", i, *p.MinDelta)
		}
		if p.Patience != nil && *p.Patience < 1 {
			return fmt.Errorf("policy %d: patience must be greater or equal 1, got %d", i, *p.Patience)
		}
		if p.Threshold != nil && Metric(p.Monitor).Direction() > 0 && (*p.Threshold < 0 || *p.Threshold > 1) {
			return fmt.Errorf("policy %d: threshold must be within [0, 1] for accuracy metrics, got %v", i, *p.Threshold)
		}
	}
	return nil
}

// Build constructs the Handler described by the bundle. An empty bundle
// yields a NoopHandler; a single policy yields its handler directly;
// multiple policies are combined into a SequentialHandler.
func (b *PolicyBundle) Build() (Handler, error) {
	handlers := make([]Handler, 0, len(b.Policies))
	for i, p := range b.Policies {
		h, err := p.build()
		if err != nil {
			return nil, fmt.Errorf("policy %d: %w", i, err)
		}
		handlers = append(handlers, h)
	}
	switch len(handlers) {
	case 0:
		return NoopHandler{}, nil
	case 1:
		return handlers[0], nil
	default:
		return NewSequentialHandler(handlers...), nil
	}
}

func (p PolicySpec) build() (Handler, error) {
	if p.Policy == "noop" {
		return NoopHandler{}, nil
	}
	cfg := DefaultConfig(Metric(p.Monitor))
	if p.MinDelta != nil {
		cfg.MinDelta = *p.MinDelta
	}
	if p.Patience != nil {
		cfg.Patience = *p.Patience
	}
	if p.Threshold != nil {
		cfg.Threshold = *p.Threshold
	}
	return New(cfg)
}
