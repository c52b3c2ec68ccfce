package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses still occupy the staff member's agenda.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

// IsActive reports whether s is one of ActiveStatuses.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transitions
// ===============================

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionNoShow   Action = "no_show"
	ActionRevert   Action = "revert"
)

var transitions = map[Action]struct {
	from []Status
	to   Status
}{
	ActionConfirm:  {from: []Status{StatusPending}, to: StatusConfirmed},
	ActionComplete: {from: []Status{StatusPending, StatusConfirmed}, to: StatusCompleted},
	ActionCancel:   {from: []Status{StatusPending, StatusConfirmed}, to: StatusCancelled},
	ActionNoShow:   {from: []Status{StatusPending, StatusConfirmed}, to: StatusNoShow},
	ActionRevert:   {from: []Status{StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}, to: StatusPending},
}

// Target validates that action may run from current and returns the resulting status.
func Target(current Status, action Action) (Status, error) {
	tr, ok := transitions[action]
	if !ok {
		return "", httperr.ErrBusiness("invalid_action")
	}
	for _, s := range tr.from {
		if s == current {
			return tr.to, nil
		}
	}
	return "", httperr.ErrBusiness("invalid_state")
}
