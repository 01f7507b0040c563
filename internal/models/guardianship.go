package models

import "gorm.io/gorm"

// Guardianship records that ParentID is a parent/guardian of ChildID.
type Guardianship struct {
	gorm.Model

	ParentID uint `gorm:"not null;uniqueIndex:idx_parent_child"`
	ChildID  uint `gorm:"not null;uniqueIndex:idx_parent_child"`

	// Relationships
	Parent Member `gorm:"foreignKey:ParentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Child  Member `gorm:"foreignKey:ChildID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (Guardianship) TableName() string {
	return "parent_of"
}
