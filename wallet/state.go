package wallet

// TxState is the local workflow state of a transaction as observed by the
// orchestrator. The remote service only reports pending/finished; Created
// exists between issuing the create request and observing the first status.
type TxState string

const (
	// StateCreated indicates the create request was issued
	StateCreated TxState = "CREATED"
	// StatePending indicates the service accepted the transaction but has not settled it
	StatePending TxState = "PENDING"
	// StateFinished indicates the transaction reached its terminal status
	StateFinished TxState = "FINISHED"
)

// validTransitions defines the valid workflow state transitions. A pending
// transaction may be observed as pending again on each poll.
var validTransitions = map[TxState][]TxState{
	StateCreated: {
		StatePending,
		StateFinished,
	},
	StatePending: {
		StatePending,
		StateFinished,
	},
	StateFinished: {},
}

// ValidateTransition checks if a workflow state transition is valid.
func ValidateTransition(from, to TxState) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, target := range targets {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func IsTerminal(state TxState) bool {
	return state == StateFinished
}

// StateFor maps a remote status to the corresponding workflow state.
func StateFor(status Status) TxState {
	if status == StatusFinished {
		return StateFinished
	}
	return StatePending
}

// OutcomeAllowed reports whether the outcome field is consistent with the
// status: an outcome must be absent unless the transaction is finished, and
// present outcomes must be one of the known values.
func OutcomeAllowed(status Status, outcome *Outcome) bool {
	if outcome == nil {
		return true
	}
	return status == StatusFinished && outcome.IsValid()
}
