package files

import (
	"github.com/felixgeelhaar/converge/internal/domain/compiler"
)

// Group holds an entry's file steps in declaration order.
type Group struct {
	steps []*Step
}

// PairError reports the pair whose step could not be built.
type PairError struct {
	Pair Pair
	Err  error
}

func (e *PairError) Error() string { return e.Err.Error() }
func (e *PairError) Unwrap() error { return e.Err }

// NewGroup builds a step for every pair, stopping at the first failure.
// The error is a *PairError.
func NewGroup(entry string, pairs []Pair, deps Deps) (*Group, error) {
	g := &Group{steps: make([]*Step, 0, len(pairs))}
	for _, pair := range pairs {
		step, err := NewStep(entry, pair, deps)
		if err != nil {
			return nil, &PairError{Pair: pair, Err: err}
		}
		g.steps = append(g.steps, step)
	}
	return g, nil
}

// Steps returns the steps in declaration order.
func (g *Group) Steps() []*Step {
	return g.steps
}

// WriteFiles applies every step in order and returns their outcomes.
// It stops at the first fatal error.
func (g *Group) WriteFiles(ctx compiler.RunContext) ([]compiler.Outcome, error) {
	outcomes := make([]compiler.Outcome, 0, len(g.steps))
	for _, step := range g.steps {
		outcome, err := step.Apply(ctx)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
