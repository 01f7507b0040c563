package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Member struct {
	gorm.Model

	Name            string `gorm:"not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null"`
	Address         string
	BirthDate       *datatypes.Date
	JoinDate        datatypes.Date `gorm:"not null"`
	WaiverSigned    bool           `gorm:"not null;default:false"`
	BeltLevel       string         `gorm:"not null;default:white"`
	ClassesAttended uint           `gorm:"not null;default:0"`

	// Relationships
	Subscriptions []Subscription `gorm:"foreignKey:MemberID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Children      []Guardianship `gorm:"foreignKey:ParentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
