package models

import "time"

// OpenAppointmentPaymentIndex keeps one unsettled charge per appointment.
const OpenAppointmentPaymentIndex = "payments_one_open_per_appointment"

// Payment carries the PIX copy-paste code generated when the charge was issued.
// PixCode is never recomputed afterwards.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SubscriptionID *uint `gorm:"index" json:"subscription_id"`
	AppointmentID  *uint `gorm:"index" json:"appointment_id"`
	ClientID       *uint `gorm:"index" json:"client_id"`
	StaffID        *uint `json:"staff_id"`

	Description string     `gorm:"size:150" json:"description"`
	Amount      float64    `json:"amount"`
	Status      string     `gorm:"size:20;default:'pending';index" json:"status"`
	DueDate     time.Time  `gorm:"index" json:"due_date"`
	PaidAt      *time.Time `json:"paid_at"`

	TxID     string `gorm:"size:25;uniqueIndex" json:"txid"`
	PixKey   string `gorm:"size:77" json:"pix_key"`
	PixCode  string `gorm:"type:text" json:"pix_code"`
	Provider string `gorm:"size:20;default:'static_pix'" json:"provider"`

	ExternalID string `gorm:"size:64;index" json:"external_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
