package models

import "time"

// AppointmentRequest is what a client submits; staff approve it into an Appointment.
type AppointmentRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	StaffID   uint    `json:"staff_id"`
	Staff     User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`
	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	RequestedStart time.Time `json:"requested_start"`
	Notes          string    `gorm:"type:text" json:"notes"`

	Status        string `gorm:"size:20;default:'pending';index" json:"status"`
	RejectReason  string `gorm:"size:255" json:"reject_reason"`
	AppointmentID *uint  `json:"appointment_id"`
	ReviewedBy    *uint  `json:"reviewed_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
