package models

import "gorm.io/gorm"

// Package is a subscription tier. Static reference data.
type Package struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string

	// Relationships
	Subscriptions []Subscription `gorm:"foreignKey:PackageID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
