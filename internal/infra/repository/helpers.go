package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func getStaff(ctx context.Context, db *gorm.DB, staffID uint) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).
		Where("id = ? AND user_level >= ? AND active = ?", staffID, access.LevelStaff, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
