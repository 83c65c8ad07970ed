// Package compiler defines the directive contract shared by every kind of
// managed resource: a read-only Check, a Plan describing the divergence, and
// an Apply that converges it.
package compiler

// Step represents an idempotent unit of reconciliation.
type Step interface {
	// ID returns the identifier for this step, unique within a run.
	ID() StepID

	// Check determines the current status of this step without changing the host.
	Check(ctx RunContext) (StepStatus, error)

	// Plan returns the diff describing what Apply would change.
	Plan(ctx RunContext) (Diff, error)

	// Apply converges the host. It is called at most once per run.
	Apply(ctx RunContext) (Outcome, error)
}

// Outcome reports what an Apply did.
type Outcome struct {
	// Changed is true when Apply modified the host.
	Changed bool
	// Diff is the change that was applied.
	Diff Diff
	// Elevated is true when a privileged fallback was used.
	Elevated bool
	// FallbackErr is set when the privileged fallback itself failed.
	// The run continues; the resource may be left unsynced.
	FallbackErr error
}

// Degraded returns true if the step finished without converging.
func (o Outcome) Degraded() bool {
	return o.FallbackErr != nil
}
