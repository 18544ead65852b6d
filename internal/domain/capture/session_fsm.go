package capture

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Session states for a single capture pass: write a note, analyze it,
// review the preview, commit it.
const (
	StateDraft      = "draft"
	StateAnalyzing  = "analyzing"
	StatePreview    = "preview"
	StateCommitting = "committing"
	StateDone       = "done"
	StateFailed     = "failed"
)

// Session events.
const (
	EventAnalyze  = "analyze"
	EventAnalyzed = "analyzed"
	EventCommit   = "commit"
	EventResolved = "resolved"
	EventFail     = "fail"
	EventReset    = "reset"
)

type sessionContext struct{}

// Session enforces the legal order of capture steps. The commit path is only
// reachable through a successful analysis, and a failed step always returns
// to the draft via reset.
type Session struct {
	interpreter *statekit.Interpreter[sessionContext]
}

func NewSession() (*Session, error) {
	builder := statekit.NewMachine[sessionContext]("capture-session").
		WithInitial(statekit.StateID(StateDraft)).
		WithContext(sessionContext{})

	builder.State(StateDraft).
		On(EventAnalyze).Target(StateAnalyzing).
		Done()

	builder.State(StateAnalyzing).
		On(EventAnalyzed).Target(StatePreview).
		On(EventFail).Target(StateFailed).
		Done()

	builder.State(StatePreview).
		On(EventCommit).Target(StateCommitting).
		On(EventReset).Target(StateDraft).
		Done()

	builder.State(StateCommitting).
		On(EventResolved).Target(StateDone).
		On(EventFail).Target(StateFailed).
		Done()

	builder.State(StateDone).
		On(EventReset).Target(StateDraft).
		Done()

	builder.State(StateFailed).
		On(EventReset).Target(StateDraft).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build capture session machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &Session{interpreter: interpreter}, nil
}

// Transition sends an event and reports whether it was legal in the current
// state. Statekit keeps the state unchanged on an invalid event.
func (s *Session) Transition(event string) error {
	before := s.Current()
	s.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if s.Current() == before {
		return fmt.Errorf("event %q is not allowed in state %q", event, before)
	}
	return nil
}

func (s *Session) Current() string {
	return string(s.interpreter.State().Value)
}
