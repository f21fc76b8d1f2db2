// Package linkcheck is the pipeline step that fails a publish when the
// staged documentation tree contains broken references.
package linkcheck

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/docpubgo/internal/ctxlog"
	"github.com/vk/docpubgo/internal/linkcheck"
	"github.com/vk/docpubgo/internal/pipeline"
)

// Module implements the pipeline.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	Root     string `hcl:"root"`
	External bool   `hcl:"external,optional"`
	Workers  int    `hcl:"workers,optional"`
}

// OnRunLinkCheck is the handler for the 'link_check' step.
func OnRunLinkCheck(ctx context.Context, site *pipeline.Site, input any) (cty.Value, error) {
	in := input.(*Input)
	logger := ctxlog.FromContext(ctx)

	checker := linkcheck.New(in.Root)
	checker.External = in.External
	if in.Workers > 0 {
		checker.Workers = in.Workers
	}

	logger.Info("Checking documentation links.", "root", in.Root, "external", in.External)

	problems, err := checker.Run(ctx)
	if err != nil {
		return cty.NilVal, err
	}

	if len(problems) > 0 {
		lines := make([]string, 0, len(problems))
		for _, p := range problems {
			lines = append(lines, p.String())
		}
		return cty.NilVal, fmt.Errorf("%d broken reference(s):\n%s", len(problems), strings.Join(lines, "\n"))
	}

	return cty.ObjectVal(map[string]cty.Value{
		"checked": cty.BoolVal(true),
	}), nil
}

// Register registers the handler with the pipeline.
func (m *Module) Register(r *pipeline.Registry) {
	r.RegisterStep("link_check", &pipeline.RegisteredStep{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunLinkCheck,
	})
}
