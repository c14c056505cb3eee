package orchestrator

import (
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// State is a state of the orchestration loop
type State uint

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	AwaitingModel State = iota
	ToolCallsPending
	FinalAnswer
	NoActionableOutput
	IterationLimit
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Terminal returns true if the loop ends in this state
func (s State) Terminal() bool {
	switch s {
	case FinalAnswer, NoActionableOutput, IterationLimit:
		return true
	default:
		return false
	}
}

func (s State) String() string {
	switch s {
	case AwaitingModel:
		return "awaiting_model"
	case ToolCallsPending:
		return "tool_calls_pending"
	case FinalAnswer:
		return "final_answer"
	case NoActionableOutput:
		return "no_actionable_output"
	case IterationLimit:
		return "iteration_limit"
	}
	return fmt.Sprintf("state(%d)", uint(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
