package app

import (
	"github.com/felixgeelhaar/converge/internal/domain/compiler"
	"github.com/felixgeelhaar/converge/internal/domain/entry"
)

// Report describes how a run ended.
type Report struct {
	// RunID correlates the log lines of one run.
	RunID string
	// State is where the run stopped.
	State State
	// Entries is the number of configured entries.
	Entries int
	// HasWork is true when the plan listed at least one change.
	HasWork bool

	Declined bool
	Applied  bool
	Err      error

	Installed int
	Created   int
	Updated   int
	// Elevated counts files written through the privileged fallback.
	Elevated int
	// Degraded counts files whose privileged fallback failed.
	Degraded int
	// Unsynced lists the targets counted in Degraded.
	Unsynced []string
}

func (r *Report) add(res entry.Result) {
	if res.Install != nil {
		r.addOutcome(*res.Install)
	}
	for _, o := range res.Files {
		r.addOutcome(o)
	}
}

func (r *Report) addOutcome(o compiler.Outcome) {
	if o.Elevated {
		r.Elevated++
	}
	if o.Degraded() {
		r.Degraded++
		r.Unsynced = append(r.Unsynced, o.Diff.Name())
		return
	}
	if !o.Changed {
		return
	}
	switch {
	case o.Diff.Resource() == compiler.ResourcePackage:
		r.Installed++
	case o.Diff.Type() == compiler.DiffTypeAdd:
		r.Created++
	case o.Diff.Type() == compiler.DiffTypeModify:
		r.Updated++
	}
}
