package pipeline

import (
	"github.com/hashicorp/hcl/v2"
)

// StepArgs represents the content of the 'arguments' block within a step.
// The body is kept raw so it can be decoded against the run's eval context
// once earlier steps have produced their outputs.
type StepArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Step represents a `step` block from a publish manifest. It is a runnable
// instance of a registered step type.
type Step struct {
	Type      string    `hcl:"step_type,label"`
	Name      string    `hcl:"instance_name,label"`
	Arguments *StepArgs `hcl:"arguments,block"`
}

// DocsBlock represents the `docs` block: the publish event's identity.
type DocsBlock struct {
	Ref      string `hcl:"ref"`
	Repo     string `hcl:"repo"`
	Registry string `hcl:"registry,optional"`
}

// Manifest is the merged result of loading a publish manifest: the docs
// block plus all steps in file order.
type Manifest struct {
	Docs  *DocsBlock
	Steps []*Step
}

// fileRoot is a struct used to decode all possible top-level blocks from any
// single file; a manifest may be split across several files in a directory.
type fileRoot struct {
	Docs  []*DocsBlock `hcl:"docs,block"`
	Steps []*Step      `hcl:"step,block"`
	Body  hcl.Body     `hcl:",remain"`
}
