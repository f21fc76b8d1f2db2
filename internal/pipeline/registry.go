package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zclconf/go-cty/cty"
)

// Module is the interface that all step modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Handler is the Go function behind a step type. It receives the decoded
// arguments struct created by NewInput and returns the step's outputs as a
// cty object (or cty.NilVal when the step has none).
type Handler func(ctx context.Context, site *Site, input any) (cty.Value, error)

// RegisteredStep holds the compiled Go parts of a step type.
type RegisteredStep struct {
	// NewInput returns a fresh arguments struct for gohcl to decode into.
	NewInput func() any
	Fn       Handler
}

// Registry maps manifest step types to their compiled-in handlers for a
// single application instance.
type Registry struct {
	Steps map[string]*RegisteredStep
}

// NewRegistry creates and initializes a new Registry instance.
func NewRegistry() *Registry {
	return &Registry{Steps: make(map[string]*RegisteredStep)}
}

// RegisterStep registers a handler for a step type. Registering the same
// type twice is a programmer error.
func (r *Registry) RegisterStep(stepType string, step *RegisteredStep) {
	if _, exists := r.Steps[stepType]; exists {
		panic(fmt.Sprintf("step handler with type '%s' already registered", stepType))
	}
	slog.Debug("Registering step handler.", "type", stepType)
	r.Steps[stepType] = step
}

// Validate checks every step in the manifest against the registered types,
// so a typo fails the run before any step executes.
func (r *Registry) Validate(manifest *Manifest) error {
	for _, step := range manifest.Steps {
		if _, ok := r.Steps[step.Type]; !ok {
			return fmt.Errorf("step %q has unknown type %q", step.Name, step.Type)
		}
	}
	return nil
}
