package models

import "time"

// User mirrors a profile managed by the hosted auth backend.
// UserLevel drives every role check (client / staff / admin).
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	UserLevel int    `gorm:"default:1;index" json:"user_level"`
	Active    bool   `gorm:"default:true" json:"active"`

	// Staff members may receive payments on their own PIX key.
	PixKey string `gorm:"size:77" json:"pix_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
