package models

import (
	"time"

	"gorm.io/datatypes"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID uint `gorm:"index" json:"staff_id"`
	Staff   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Exactly one identification mode is filled, as named by ClientType.
	ClientType   string  `gorm:"size:20;not null;default:'registered'" json:"client_type"`
	ClientID     *uint   `json:"client_id"`
	Client       *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`
	SporadicName string  `gorm:"size:100" json:"sporadic_name"`
	SporadicTel  string  `gorm:"size:20" json:"sporadic_phone"`
	EventTitle   string  `gorm:"size:150" json:"event_title"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Nil means "use the service price".
	Price         *float64 `json:"price"`
	PaymentStatus string   `gorm:"size:20;default:'pending'" json:"payment_status"`
	Status        string   `gorm:"size:20;default:'pending';index" json:"status"`
	Notes         string   `gorm:"type:text" json:"notes"`

	RecurrenceType    string                   `gorm:"size:20;default:'none'" json:"recurrence_type"`
	RecurrenceDays    datatypes.JSONSlice[int] `json:"recurrence_days"`
	RecurrenceEndDate *time.Time               `json:"recurrence_end_date"`

	ParentAppointmentID *uint `gorm:"index" json:"parent_appointment_id"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectivePrice resolves the override against the service's base price.
func (a *Appointment) EffectivePrice() float64 {
	if a.Price != nil {
		return *a.Price
	}
	return a.Service.Price
}
