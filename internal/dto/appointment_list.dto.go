package dto

import (
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	StaffID       uint      `json:"staff_id"`
	StaffName     string    `json:"staff_name,omitempty"`
	ClientType    string    `json:"client_type"`
	ClientName    string    `json:"client_name"`
	ServiceName   string    `json:"service_name"`
	Price         float64   `json:"price"`
	Recurrence    string    `json:"recurrence_type"`
	RecurDays     []int     `json:"recurrence_days,omitempty"`
	RecurUntil    *string   `json:"recurrence_end_date,omitempty"`
	ParentID      *uint     `json:"parent_appointment_id,omitempty"`
}

func NewAppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for i := range aps {
		ap := &aps[i]
		rec := domain.RecurrenceOf(ap)

		var until *string
		if rec.Type != domain.RecurrenceNone && !rec.EndDate.IsZero() {
			d := rec.EndDate.In(ap.StartTime.Location()).Format("2006-01-02")
			until = &d
		}

		out = append(out, AppointmentListDTO{
			ID:            ap.ID,
			StartTime:     ap.StartTime,
			EndTime:       ap.EndTime,
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			StaffID:       ap.StaffID,
			StaffName:     ap.Staff.Name,
			ClientType:    ap.ClientType,
			ClientName:    domain.DisplayName(ap),
			ServiceName:   ap.Service.Name,
			Price:         ap.EffectivePrice(),
			Recurrence:    string(rec.Type),
			RecurDays:     rec.Days,
			RecurUntil:    until,
			ParentID:      ap.ParentAppointmentID,
		})
	}
	return out
}
