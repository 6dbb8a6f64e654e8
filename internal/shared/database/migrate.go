package database

import (
	"fmt"
	"log"

	"cinebook/internal/bookings"

	"gorm.io/gorm"
)

// Migrate runs the schema migrations for the local booking mirror. Seat and
// session data live with the external collaborators and are never persisted
// here.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&bookings.BookingRecord{}); err != nil {
		return fmt.Errorf("failed to migrate booking records: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}
