package models

import "gorm.io/gorm"

// Referral records that ReferrerID referred MemberID. The unique index
// on MemberID enforces at most one referrer per member at the schema
// level; handlers do not pre-check.
type Referral struct {
	gorm.Model

	ReferrerID uint `gorm:"not null;index"`
	MemberID   uint `gorm:"not null;uniqueIndex"`

	// Relationships
	Referrer Member `gorm:"foreignKey:ReferrerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Member   Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (Referral) TableName() string {
	return "referred_by"
}
