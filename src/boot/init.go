package boot

import (
	"log"
	"shareit/src/db"
	"shareit/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Request{},
		&models.Item{},
		&models.Booking{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}
