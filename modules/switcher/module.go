// Package switcher is the pipeline step wrapping the switcher registry
// updater: it adds the publish event's version to the registry file.
package switcher

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/docpubgo/internal/ctxlog"
	"github.com/vk/docpubgo/internal/pipeline"
	"github.com/vk/docpubgo/internal/switcher"
)

// Module implements the pipeline.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block. Both are
// optional: path defaults to the docs block's registry, order to the run's
// ordering policy.
type Input struct {
	Path  string `hcl:"path,optional"`
	Order string `hcl:"order,optional"`
}

// OnRunUpdateSwitcher is the handler for the 'update_switcher' step.
func OnRunUpdateSwitcher(ctx context.Context, site *pipeline.Site, input any) (cty.Value, error) {
	in := input.(*Input)

	path := in.Path
	if path == "" {
		path = site.Registry
	}

	policy := site.Order
	if in.Order != "" {
		parsed, err := switcher.ParseOrder(in.Order)
		if err != nil {
			return cty.NilVal, err
		}
		policy = parsed
	}

	ctxlog.FromContext(ctx).Info("Updating switcher registry.",
		"registry", path, "version", site.Version, "repo", site.Repo, "order", string(policy))

	if err := switcher.Update(path, site.Version, site.Repo, policy); err != nil {
		return cty.NilVal, fmt.Errorf("failed to update switcher registry: %w", err)
	}

	url, err := switcher.PageURL(site.Repo, site.Version)
	if err != nil {
		return cty.NilVal, err
	}

	return cty.ObjectVal(map[string]cty.Value{
		"registry": cty.StringVal(path),
		"url":      cty.StringVal(url),
	}), nil
}

// Register registers the handler with the pipeline.
func (m *Module) Register(r *pipeline.Registry) {
	r.RegisterStep("update_switcher", &pipeline.RegisteredStep{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunUpdateSwitcher,
	})
}
