package config

import (
	"fmt"
	"time"

	"shoguntrade/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the postgres connection and brings the schema up to date,
// either with gorm AutoMigrate (DB_AUTO_MIGRATE=true) or the SQL migrations.
func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		GetEnv("DB_HOST", "localhost"),
		GetEnv("DB_USER", "postgres"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_NAME", "shoguntrade"),
		GetEnv("DB_PORT", "5432"),
		GetEnv("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}
	sqlDB.SetMaxIdleConns(GetEnvInt("DB_MAX_IDLE_CONNS", 50))
	sqlDB.SetMaxOpenConns(GetEnvInt("DB_MAX_OPEN_CONNS", 200))
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db

	if GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := models.AutoMigrate(DB); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		return
	}
	if err := ExecuteMigrations(); err != nil {
		log.Fatal(err)
	}
}
