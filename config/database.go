package config

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		// Startup continues on a local default so a missing .env is loud but not fatal
		log.Println("DB_URL is not set. Falling back to a local postgres instance; " +
			"configure DB_URL in your environment or .env file for any real deployment.")
		dsn = "host=localhost user=postgres dbname=carheroz port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}
