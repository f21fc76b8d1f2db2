// Package command runs an external program as a pipeline step. This is how
// the opaque publish collaborators (source checkout, dependency install,
// build harness targets, publish actions) are invoked: the pipeline only
// owns the narrow contract of arguments in, exit status and output out.
package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/docpubgo/internal/ctxlog"
	"github.com/vk/docpubgo/internal/pipeline"
)

// Module implements the pipeline.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	Command string            `hcl:"command"`
	Args    []string          `hcl:"args,optional"`
	Dir     string            `hcl:"dir,optional"`
	Env     map[string]string `hcl:"env,optional"`
}

// OnRunCommand is the handler for the 'command' step.
func OnRunCommand(ctx context.Context, site *pipeline.Site, input any) (cty.Value, error) {
	in := input.(*Input)
	logger := ctxlog.FromContext(ctx).With("command", in.Command)

	if in.Command == "" {
		return cty.NilVal, fmt.Errorf("command must not be empty")
	}

	cmd := exec.CommandContext(ctx, in.Command, in.Args...)
	cmd.Dir = in.Dir

	cmd.Env = os.Environ()
	for key, val := range in.Env {
		cmd.Env = append(cmd.Env, key+"="+val)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Info("Running external command.", "args", in.Args, "dir", in.Dir)

	if err := cmd.Run(); err != nil {
		// Surface the collaborator's own error output verbatim.
		return cty.NilVal, fmt.Errorf("%s: %w\n%s", in.Command, err, stderr.String())
	}

	logger.Debug("External command finished.", "stdout_bytes", stdout.Len())

	return cty.ObjectVal(map[string]cty.Value{
		"stdout": cty.StringVal(stdout.String()),
	}), nil
}

// Register registers the handler with the pipeline.
func (m *Module) Register(r *pipeline.Registry) {
	r.RegisterStep("command", &pipeline.RegisteredStep{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunCommand,
	})
}
