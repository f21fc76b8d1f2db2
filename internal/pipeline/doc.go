// Package pipeline loads and runs declarative docs-publish manifests.
//
// A manifest is one HCL file (or a directory of them) with a single `docs`
// block naming the ref, repository and switcher registry being published,
// plus ordered `step` blocks. Step types are compiled into the binary and
// registered under their manifest names; external collaborators (source
// checkout, dependency install, build harnesses, publish actions) stay
// opaque `command` steps with a narrow contract, while the steps with real
// logic (staging, switcher registry update, link checking) have native
// handlers.
//
// Execution is sequential and synchronous: one publish event, one run, steps
// in manifest order, first failure aborts. Each step's outputs are exposed
// to later steps through the HCL eval context as step.<name>.<output>.
package pipeline
