package db

import (
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	level := logger.Warn
	if cfg.IsProduction() {
		level = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(level),
	})
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.BusinessSettings{},
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.AppointmentRequest{},
		&models.Subscription{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		slog.Error("failed to migrate", "error", err)
		os.Exit(1)
	}

	if err := ensureNoOverlap(db); err != nil {
		// The application-level check still applies; only the race window stays open.
		slog.Warn("appointment overlap constraint not installed", "error", err)
	}

	if err := ensureOneOpenCharge(db); err != nil {
		slog.Warn("open payment index not installed", "error", err)
	}

	return db
}

// ensureNoOverlap installs the exclusion constraint that backs the conflict
// check: two active appointments of one staff member never overlap.
func ensureNoOverlap(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    staff_id WITH =,
                    tstzrange(start_time, end_time, '[)') WITH &&
                )
                WHERE (status IN ('pending', 'confirmed'));
            END IF;
        END
        $$;
    `).Error
}

// ensureOneOpenCharge backs the duplicate-charge check on appointments.
func ensureOneOpenCharge(db *gorm.DB) error {
	return db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS ` + models.OpenAppointmentPaymentIndex + `
        ON payments (appointment_id)
        WHERE appointment_id IS NOT NULL AND status IN ('pending', 'overdue')
    `).Error
}
