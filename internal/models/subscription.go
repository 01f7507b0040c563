package models

import "gorm.io/gorm"

// Subscription links a member to a package. The fee is written as 0 at
// registration time; pricing is an extension point and the revenue
// report already copes with nonzero fees.
type Subscription struct {
	gorm.Model

	MemberID        uint    `gorm:"not null;index"`
	PackageID       uint    `gorm:"not null;index"`
	SubscriptionFee float64 `gorm:"not null;default:0"`
	Discount        float64 `gorm:"not null;default:0"`

	// Relationships
	Member  Member  `gorm:"foreignKey:MemberID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Package Package `gorm:"foreignKey:PackageID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (Subscription) TableName() string {
	return "subscribed_to"
}
