// Package copytree stages a built documentation tree into the versioned
// deploy directory, the step that gives each published version its own URL
// path segment.
package copytree

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/docpubgo/internal/ctxlog"
	"github.com/vk/docpubgo/internal/fsutil"
	"github.com/vk/docpubgo/internal/pipeline"
)

// Module implements the pipeline.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block. Dest defaults
// to "<dir of the switcher registry>/<version>" when omitted.
type Input struct {
	Source string `hcl:"source"`
	Dest   string `hcl:"dest,optional"`
}

// OnRunCopyTree is the handler for the 'copy_tree' step.
func OnRunCopyTree(ctx context.Context, site *pipeline.Site, input any) (cty.Value, error) {
	in := input.(*Input)

	dest := in.Dest
	if dest == "" {
		dest = filepath.Join(filepath.Dir(site.Registry), site.Version)
	}

	ctxlog.FromContext(ctx).Info("Staging documentation tree.", "source", in.Source, "dest", dest)

	if err := fsutil.CopyTree(in.Source, dest); err != nil {
		return cty.NilVal, fmt.Errorf("failed to stage %q: %w", in.Source, err)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"dest": cty.StringVal(dest),
	}), nil
}

// Register registers the handler with the pipeline.
func (m *Module) Register(r *pipeline.Registry) {
	r.RegisterStep("copy_tree", &pipeline.RegisteredStep{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunCopyTree,
	})
}
