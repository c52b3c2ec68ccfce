// Package booking models the client's multi-step booking form as explicit,
// serializable state that round-trips through each request.
package booking

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type Step string

const (
	StepService Step = "service"
	StepStaff   Step = "staff"
	StepSlot    Step = "slot"
	StepConfirm Step = "confirm"
	StepDone    Step = "done"
)

type Draft struct {
	Step      Step   `json:"step"`
	ServiceID uint   `json:"service_id,omitempty"`
	StaffID   uint   `json:"staff_id,omitempty"`
	Date      string `json:"date,omitempty"` // YYYY-MM-DD
	Time      string `json:"time,omitempty"` // HH:mm
	Notes     string `json:"notes,omitempty"`
}

// Advance validates the fields owned by the current step (and every earlier
// one) and moves the draft forward.
func (d *Draft) Advance() error {
	if d.Step == "" {
		d.Step = StepService
	}

	required := map[Step]func() bool{
		StepService: func() bool { return d.ServiceID != 0 },
		StepStaff:   func() bool { return d.StaffID != 0 },
		StepSlot: func() bool {
			return strings.TrimSpace(d.Date) != "" && strings.TrimSpace(d.Time) != ""
		},
	}

	order := []Step{StepService, StepStaff, StepSlot, StepConfirm}
	for i, s := range order {
		if check, ok := required[s]; ok && !check() {
			return httperr.ErrBusiness("incomplete_" + string(s) + "_step")
		}
		if s == d.Step {
			if s == StepConfirm {
				d.Step = StepDone
			} else {
				d.Step = order[i+1]
			}
			return nil
		}
	}

	return httperr.ErrBusiness("invalid_step")
}

// Back moves one step back, keeping every value already chosen.
func (d *Draft) Back() {
	switch d.Step {
	case StepStaff:
		d.Step = StepService
	case StepSlot:
		d.Step = StepStaff
	case StepConfirm, StepDone:
		d.Step = StepSlot
	}
}
