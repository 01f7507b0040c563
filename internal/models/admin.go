package models

import "gorm.io/gorm"

// Admin accounts are read-only in this service; rows are seeded
// directly in the database.
type Admin struct {
	gorm.Model

	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}
