package repository

import (
	"context"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type capturedSQL struct {
	SQL  string
	Vars []any
}

// dryRunDB builds SQL without a server and records every statement.
func dryRunDB(t *testing.T) (*gorm.DB, *[]capturedSQL) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=salon dbname=salon sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	var out []capturedSQL
	capture := func(tx *gorm.DB) {
		out = append(out, capturedSQL{
			SQL:  tx.Statement.SQL.String(),
			Vars: append([]any(nil), tx.Statement.Vars...),
		})
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", capture))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture_create", capture))

	return db, &out
}

// integrationDB opens TEST_DATABASE_URL inside a transaction rolled back at cleanup.
func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
	))

	tx := db.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })
	return tx
}

// ======================================================
// OVERLAP PREDICATE
// ======================================================

func TestAssertNoTimeConflictQuery(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewAppointmentGormRepository(db, nil)

	start := time.Date(2027, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	require.NoError(t, repo.AssertNoTimeConflict(context.Background(), 7, start, end))
	require.Len(t, *captured, 1)

	q := (*captured)[0]
	assert.Regexp(t, regexp.MustCompile(`status IN \(\$\d+,\$\d+\)`), q.SQL)
	assert.Regexp(t, regexp.MustCompile(`start_time < \$\d+ AND end_time > \$\d+`), q.SQL)

	// Strict bounds against the requested end, then start: touching slots stay free.
	require.GreaterOrEqual(t, len(q.Vars), 5)
	assert.Equal(t, uint(7), q.Vars[0])
	assert.Equal(t, []any{"pending", "confirmed"}, q.Vars[1:3])
	assert.Equal(t, end, q.Vars[len(q.Vars)-2])
	assert.Equal(t, start, q.Vars[len(q.Vars)-1])
}

func TestCreateAppointmentsBatches(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewAppointmentGormRepository(db, nil)

	require.NoError(t, repo.CreateAppointments(context.Background(), nil))
	assert.Empty(t, *captured)

	base := time.Date(2027, 3, 1, 10, 0, 0, 0, time.UTC)
	aps := make([]models.Appointment, bulkInsertBatch+1)
	for i := range aps {
		aps[i] = models.Appointment{
			StaffID:   7,
			ServiceID: 3,
			StartTime: base.AddDate(0, 0, 7*i),
			EndTime:   base.AddDate(0, 0, 7*i).Add(time.Hour),
			Status:    "pending",
		}
	}

	require.NoError(t, repo.CreateAppointments(context.Background(), aps))
	require.Len(t, *captured, 2)
	for _, stmt := range *captured {
		assert.Contains(t, stmt.SQL, `INSERT INTO "appointments"`)
		assert.NotContains(t, stmt.SQL, `"users"`)
		assert.NotContains(t, stmt.SQL, `"services"`)
	}
}

// ======================================================
// POSTGRES
// ======================================================

func TestAssertNoTimeConflictBoundaries(t *testing.T) {
	tx := integrationDB(t)
	ctx := context.Background()

	staff := models.User{Name: "Ana", Email: "ana.overlap@example.com", UserLevel: 5, Active: true}
	require.NoError(t, tx.Create(&staff).Error)
	service := models.Service{Name: "Corte", DurationMin: 60, Price: 80, Active: true}
	require.NoError(t, tx.Create(&service).Error)

	repo := NewAppointmentGormRepository(tx, nil)

	start := time.Date(2027, 3, 1, 13, 0, 0, 0, time.UTC)
	booked := models.Appointment{
		StaffID:    staff.ID,
		ServiceID:  service.ID,
		ClientType: "event",
		EventTitle: "Workshop",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     "pending",
	}
	require.NoError(t, repo.CreateAppointment(ctx, &booked))

	cases := []struct {
		name     string
		from, to time.Duration
		conflict bool
	}{
		{"ends when booking starts", -time.Hour, 0, false},
		{"starts when booking ends", time.Hour, 2 * time.Hour, false},
		{"overlaps the start", -30 * time.Minute, 30 * time.Minute, true},
		{"overlaps the end", 30 * time.Minute, 90 * time.Minute, true},
		{"inside", 15 * time.Minute, 45 * time.Minute, true},
		{"covers", -time.Hour, 2 * time.Hour, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.AssertNoTimeConflict(ctx, staff.ID, start.Add(tc.from), start.Add(tc.to))
			if tc.conflict {
				assert.True(t, httperr.IsBusiness(err, "time_conflict"))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// Another staff member's agenda is independent.
	assert.NoError(t, repo.AssertNoTimeConflict(ctx, staff.ID+1000, start, start.Add(time.Hour)))

	require.NoError(t, tx.Model(&booked).Update("status", "cancelled").Error)
	assert.NoError(t, repo.AssertNoTimeConflict(ctx, staff.ID, start, start.Add(time.Hour)))
}

func TestCreateAppointmentsPersistsEveryBatch(t *testing.T) {
	tx := integrationDB(t)
	ctx := context.Background()

	staff := models.User{Name: "Bia", Email: "bia.batch@example.com", UserLevel: 5, Active: true}
	require.NoError(t, tx.Create(&staff).Error)
	service := models.Service{Name: "Escova", DurationMin: 30, Price: 50, Active: true}
	require.NoError(t, tx.Create(&service).Error)

	base := time.Date(2027, 3, 1, 9, 0, 0, 0, time.UTC)
	aps := make([]models.Appointment, bulkInsertBatch+5)
	for i := range aps {
		aps[i] = models.Appointment{
			StaffID:    staff.ID,
			ServiceID:  service.ID,
			ClientType: "event",
			EventTitle: "Curso",
			StartTime:  base.AddDate(0, 0, i),
			EndTime:    base.AddDate(0, 0, i).Add(30 * time.Minute),
			Status:     "pending",
		}
	}

	require.NoError(t, NewAppointmentGormRepository(tx, nil).CreateAppointments(ctx, aps))

	var count int64
	require.NoError(t, tx.Model(&models.Appointment{}).Where("staff_id = ?", staff.ID).Count(&count).Error)
	assert.Equal(t, int64(len(aps)), count)
	for _, ap := range aps {
		assert.NotZero(t, ap.ID)
	}
}
