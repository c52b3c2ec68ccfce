package models

import "time"

type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	PlanName     string  `gorm:"size:100;not null" json:"plan_name"`
	MonthlyPrice float64 `json:"monthly_price"`
	Status       string  `gorm:"size:20;default:'active'" json:"status"`

	StartDate       time.Time  `json:"start_date"`
	NextBillingDate time.Time  `json:"next_billing_date"`
	CancelledAt     *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
