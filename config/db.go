package config

import (
	"log"

	"lightcycle/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SetupDatabase opens the in-memory match database and runs migrations.
// Every match record and elimination row lives only as long as the process;
// there is deliberately no file-backed state.
func SetupDatabase() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to open in-memory DB: %v", err)
	}
	DB = db

	if err := db.AutoMigrate(
		&models.MatchRecord{},
		&models.Elimination{},
	); err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}

	return db
}
