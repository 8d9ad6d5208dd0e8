package enums

import "fmt"

// FlowState tracks where a checkout instance sits between form and completion.
type FlowState string

const (
	FlowStateForm       FlowState = "form"
	FlowStateSubmitting FlowState = "submitting"
	FlowStateAwaiting   FlowState = "awaiting_confirmation"
	FlowStateSuccess    FlowState = "success"
)

var validFlowStates = []FlowState{
	FlowStateForm,
	FlowStateSubmitting,
	FlowStateAwaiting,
	FlowStateSuccess,
}

// String implements fmt.Stringer.
func (f FlowState) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FlowState.
func (f FlowState) IsValid() bool {
	for _, candidate := range validFlowStates {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFlowState converts raw input into a FlowState.
func ParseFlowState(value string) (FlowState, error) {
	for _, candidate := range validFlowStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid flow state %q", value)
}
