package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/docpubgo/internal/ctxlog"
	"github.com/vk/docpubgo/internal/refname"
	"github.com/vk/docpubgo/internal/switcher"
)

// Site is the identity of one publish event, derived from the docs block.
// The version is the sanitized form of the raw ref.
type Site struct {
	Ref      string
	Version  string
	Repo     string
	Registry string
	Order    switcher.Order
}

// NewSite derives the publish identity from a loaded manifest.
func NewSite(docs *DocsBlock, order switcher.Order) *Site {
	return &Site{
		Ref:      docs.Ref,
		Version:  refname.Sanitize(docs.Ref),
		Repo:     docs.Repo,
		Registry: docs.Registry,
		Order:    order,
	}
}

// Runner executes a manifest's steps sequentially against a step registry.
type Runner struct {
	registry *Registry
}

// NewRunner creates a Runner backed by the given step registry.
func NewRunner(registry *Registry) *Runner {
	return &Runner{registry: registry}
}

// Run executes every step in manifest order. The first failing step aborts
// the run; there is no partial success and no local retry.
func (r *Runner) Run(ctx context.Context, manifest *Manifest, site *Site) error {
	logger := ctxlog.FromContext(ctx)

	if err := r.registry.Validate(manifest); err != nil {
		return err
	}

	outputs := make(map[string]cty.Value)

	for _, step := range manifest.Steps {
		stepLogger := logger.With("step", step.Name, "type", step.Type)
		stepLogger.Info("Step starting.")

		out, err := r.runStep(ctx, step, site, outputs)
		if err != nil {
			stepLogger.Error("Step failed.", "error", err)
			return fmt.Errorf("step %q failed: %w", step.Name, err)
		}

		// NilVal is the zero Value, so this comparison never touches
		// cty's non-comparable inner values.
		if out != cty.NilVal {
			outputs[step.Name] = out
		}
		stepLogger.Info("Step finished.")
	}

	return nil
}

// runStep decodes one step's arguments against the current eval context and
// invokes its handler.
func (r *Runner) runStep(ctx context.Context, step *Step, site *Site, outputs map[string]cty.Value) (cty.Value, error) {
	handler := r.registry.Steps[step.Type]

	input := handler.NewInput()
	if step.Arguments != nil {
		evalCtx := evalContext(site, outputs)
		if diags := gohcl.DecodeBody(step.Arguments.Body, evalCtx, input); diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("failed to decode arguments: %w", diags)
		}
	}

	return handler.Fn(ctx, site, input)
}

// evalContext builds the variables visible to a step's arguments block:
// the docs identity plus the outputs of every completed step.
func evalContext(site *Site, outputs map[string]cty.Value) *hcl.EvalContext {
	vars := map[string]cty.Value{
		"docs": cty.ObjectVal(map[string]cty.Value{
			"ref":      cty.StringVal(site.Ref),
			"version":  cty.StringVal(site.Version),
			"repo":     cty.StringVal(site.Repo),
			"registry": cty.StringVal(site.Registry),
		}),
	}
	if len(outputs) > 0 {
		vars["step"] = cty.ObjectVal(outputs)
	}
	return &hcl.EvalContext{Variables: vars}
}
