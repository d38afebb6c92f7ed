package database

import (
	"fmt"
	"log"
	"time"

	"icebreaker-backend/internal/config"
	"icebreaker-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Admin{},
		&models.Team{},
		&models.ScoreEntry{},
		&models.Question{},
		&models.CompletionLog{},
		&models.GlobalState{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	seedStateRows(db)
	log.Println("database migrated")
}

// seedStateRows makes sure every broadcast key has its singleton row, so
// admin actions can always update in place.
func seedStateRows(db *gorm.DB) {
	keys := []string{
		models.StateKeyFreeze,
		models.StateKeyNaturalDisaster,
		models.StateKeyWorldPeace,
		models.StateKeyDisasterAid,
		models.StateKeyThief,
	}
	for _, key := range keys {
		var count int64
		db.Model(&models.GlobalState{}).Where("key = ?", key).Count(&count)
		if count == 0 {
			db.Create(&models.GlobalState{
				Key:         key,
				Value:       "false",
				TimeUpdated: time.Now(),
			})
		}
	}
}
