package app

import (
	"github.com/felixgeelhaar/statekit"
)

// State is a phase of a reconciliation run.
type State string

// Run states. A run starts and ends at rest in StateIdle, StateApplied or
// StateFailed.
const (
	StateIdle      State = "idle"
	StateLoaded    State = "loaded"
	StatePlanned   State = "planned"
	StateConfirmed State = "confirmed"
	StateDeclined  State = "declined"
	StateApplied   State = "applied"
	StateFailed    State = "failed"
)

// Event types for the run state machine.
const (
	EventLoaded     = "LOADED"
	EventPlanned    = "PLANNED"
	EventNothingDue = "NOTHING_DUE"
	EventSkip       = "SKIP"
	EventConfirm    = "CONFIRM"
	EventDecline    = "DECLINE"
	EventApplied    = "APPLIED"
	EventFinish     = "FINISH"
	EventFail       = "FAIL"
)

// machineContext is the statekit context. Actions write through the
// captured Report rather than the copy statekit holds.
type machineContext struct {
	RunID string
}

// buildRunMachine constructs the run state machine.
func buildRunMachine(report *Report) (*statekit.Interpreter[machineContext], error) {
	machine, err := statekit.NewMachine[machineContext]("converge-run").
		WithInitial("idle").
		WithContext(machineContext{RunID: report.RunID}).
		WithAction("markDeclined", func(_ *machineContext, _ statekit.Event) {
			report.Declined = true
		}).
		WithAction("markApplied", func(_ *machineContext, _ statekit.Event) {
			report.Applied = true
		}).
		WithAction("recordError", func(_ *machineContext, event statekit.Event) {
			if err, ok := event.Payload.(error); ok {
				report.Err = err
			}
		}).
		State("idle").
		On(EventLoaded).Target("loaded").
		On(EventFail).Target("failed").Done().
		State("loaded").
		On(EventPlanned).Target("planned").
		On(EventFail).Target("failed").Done().
		State("planned").
		On(EventNothingDue).Target("idle").
		On(EventSkip).Target("idle").
		On(EventConfirm).Target("confirmed").
		On(EventDecline).Target("declined").
		On(EventFail).Target("failed").Done().
		State("confirmed").
		On(EventApplied).Target("applied").
		On(EventFail).Target("failed").Done().
		State("declined").
		OnEntry("markDeclined").
		On(EventFinish).Target("idle").Done().
		State("applied").
		OnEntry("markApplied").
		On(EventLoaded).Target("loaded").Done().
		State("failed").
		OnEntry("recordError").
		On(EventLoaded).Target("loaded").Done().
		Build()

	if err != nil {
		return nil, err
	}

	return statekit.NewInterpreter(machine), nil
}
