package models

import "time"

// Singleton row (ID 1) holding the salon's own configuration.
type BusinessSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name              string `gorm:"size:100;not null" json:"name"`
	Phone             string `gorm:"size:20" json:"phone"`
	Address           string `gorm:"size:255" json:"address"`
	Timezone          string `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`

	PixKey       string `gorm:"size:77" json:"pix_key"`
	MerchantName string `gorm:"size:25" json:"merchant_name"`
	MerchantCity string `gorm:"size:15" json:"merchant_city"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
