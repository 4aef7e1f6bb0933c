package db

import (
	"log"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
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
		&models.Barbershop{},
		&models.User{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.QueueEntry{},
		&models.ChargeLog{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE barbershops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Guarda final contra double-booking: dois INSERTs simultâneos não se
	// enxergam pelo FOR UPDATE, mas a constraint de exclusão derruba o
	// segundo (23P01 → time_conflict).
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            barber_id WITH =,
            tsrange(start_time, end_time) WITH &&
        )
        WHERE (status = 'confirmed')
    `)

	// Um usuário identificado, uma entrada ativa na fila — em qualquer
	// barbearia. Corridas de double-join viram 23505 → already_in_queue.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_queue_one_active_per_user
        ON queue_entries (user_id)
        WHERE user_id IS NOT NULL
          AND status IN ('waiting', 'up_next', 'in_progress')
    `)

	return db
}
