package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/config"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Practice{},
		&models.User{},
		&models.Service{},
		&models.BusinessHours{},
		&models.BlockedSlot{},
		&models.Client{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Garantia central de consistência: no máximo uma reserva não
	// cancelada por (data, hora). A seleção de horário e a criação da
	// reserva não são atômicas, então o índice é a autoridade final.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_bookings_active_slot
        ON bookings (booking_date, booking_time)
        WHERE status <> 'cancelled'
    `)

	seedSingletons(db)

	return db
}

// seedSingletons cria as linhas únicas de consultório e expediente
// quando o banco está vazio.
func seedSingletons(db *gorm.DB) {
	var practiceCount int64
	db.Model(&models.Practice{}).Count(&practiceCount)
	if practiceCount == 0 {
		db.Create(&models.Practice{
			Name:                   "Espaço Mente Leve",
			Slug:                   "mente-leve",
			Timezone:               timezone.DefaultTimezone,
			MinAdvanceMinutes:      60,
			MinCancelNoticeMinutes: 30,
			MaxDaysAhead:           30,
		})
	}

	var hoursCount int64
	db.Model(&models.BusinessHours{}).Count(&hoursCount)
	if hoursCount == 0 {
		db.Create(&models.BusinessHours{
			WorkStart:          "09:00",
			WorkEnd:            "18:00",
			SessionDurationMin: 60,
		})
	}
}
