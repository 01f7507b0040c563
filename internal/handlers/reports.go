package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/dojodesk/dojodesk/internal/models"
	"github.com/dojodesk/dojodesk/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const discountedPageSize = 10

type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

type PackageRevenueRow struct {
	PackageID    uint    `json:"packageId"`
	Description  string  `json:"description"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type DiscountedSubscriptionRow struct {
	MemberID        uint    `json:"memberId"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	SubscriptionFee float64 `json:"subscriptionFee"`
	Discount        float64 `json:"discount"`
}

type MemberWithReferrerRow struct {
	MemberID     uint    `json:"memberId"`
	Name         string  `json:"name"`
	ReferrerID   *uint   `json:"referrerId"`
	ReferrerName *string `json:"referrerName"`
}

// MembersWithoutWaiver lists members with no liability waiver on file.
func (h *ReportHandler) MembersWithoutWaiver(ctx *gin.Context) {
	var members []models.Member

	if err := h.DB.Where("waiver_signed = ?", false).Find(&members).Error; err != nil {
		log.Printf("Failed to list members without waiver: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"members": types.NewMemberResponses(members)})
}

// AverageClassesByBelt returns 0 rather than NULL when no member holds
// the requested belt.
func (h *ReportHandler) AverageClassesByBelt(ctx *gin.Context) {
	beltLevel := ctx.Query("beltLevel")

	if beltLevel == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "beltLevel is required"})
		return
	}

	var avgClasses float64

	err := h.DB.Model(&models.Member{}).
		Where("belt_level = ?", beltLevel).
		Select("COALESCE(AVG(classes_attended), 0)").
		Scan(&avgClasses).Error

	if err != nil {
		log.Printf("Failed to compute average classes for belt %q: %v", beltLevel, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute average"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"avgClasses": avgClasses})
}

func (h *ReportHandler) TopMembersByClasses(ctx *gin.Context) {
	var members []models.Member

	if err := h.DB.Order("classes_attended DESC").Limit(5).Find(&members).Error; err != nil {
		log.Printf("Failed to list top members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"topMembers": types.NewMemberResponses(members)})
}

func (h *ReportHandler) ChildrenOfMember(ctx *gin.Context) {
	mid, err := strconv.ParseUint(ctx.Query("mid"), 10, 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "mid is required"})
		return
	}

	var children []models.Member

	err = h.DB.Model(&models.Member{}).
		Joins("JOIN parent_of ON parent_of.child_id = members.id").
		Where("parent_of.parent_id = ?", mid).
		Find(&children).Error

	if err != nil {
		log.Printf("Failed to list children of member %d: %v", mid, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve children"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"children": types.NewMemberResponses(children)})
}

// PackageRevenue sums net revenue (fee minus discount) per package for
// members who joined in the given month.
func (h *ReportHandler) PackageRevenue(ctx *gin.Context) {
	month, monthErr := strconv.Atoi(ctx.Query("month"))
	year, yearErr := strconv.Atoi(ctx.Query("year"))

	if monthErr != nil || yearErr != nil || month < 1 || month > 12 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "month and year are required"})
		return
	}

	var revenue []PackageRevenueRow

	err := h.DB.Model(&models.Package{}).
		Select("packages.id AS package_id, packages.description, SUM(subscribed_to.subscription_fee - subscribed_to.discount) AS total_revenue").
		Joins("JOIN subscribed_to ON subscribed_to.package_id = packages.id").
		Joins("JOIN members ON members.id = subscribed_to.member_id").
		Where("EXTRACT(MONTH FROM members.join_date) = ? AND EXTRACT(YEAR FROM members.join_date) = ?", month, year).
		Group("packages.id, packages.description").
		Scan(&revenue).Error

	if err != nil {
		log.Printf("Failed to compute package revenue for %d-%d: %v", year, month, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"revenue": revenue})
}

func (h *ReportHandler) SearchMembersByName(ctx *gin.Context) {
	substring := ctx.Query("substring")

	if substring == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "substring is required"})
		return
	}

	var members []models.Member

	err := h.DB.Where("name ILIKE ?", "%"+substring+"%").Order("join_date").Find(&members).Error

	if err != nil {
		log.Printf("Failed to search members by name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search members"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"members": types.NewMemberResponses(members)})
}

// DiscountedSubscriptions serves fixed pages of 10, ordered by fee,
// skipping the first ?skip= rows.
func (h *ReportHandler) DiscountedSubscriptions(ctx *gin.Context) {
	skip := 0

	if raw := ctx.Query("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "skip must be a non-negative integer"})
			return
		}
		skip = parsed
	}

	var subscriptions []DiscountedSubscriptionRow

	err := h.DB.Model(&models.Member{}).
		Select("members.id AS member_id, members.name, members.email, subscribed_to.subscription_fee, subscribed_to.discount").
		Joins("JOIN subscribed_to ON subscribed_to.member_id = members.id").
		Where("subscribed_to.discount > 0").
		Order("subscribed_to.subscription_fee").
		Offset(skip).
		Limit(discountedPageSize).
		Scan(&subscriptions).Error

	if err != nil {
		log.Printf("Failed to list discounted subscriptions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscriptions"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"subscriptions": subscriptions})
}

func (h *ReportHandler) CountReferrals(ctx *gin.Context) {
	mid, err := strconv.ParseUint(ctx.Query("mid"), 10, 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "mid is required"})
		return
	}

	var count int64

	if err := h.DB.Model(&models.Referral{}).Where("referrer_id = ?", mid).Count(&count).Error; err != nil {
		log.Printf("Failed to count referrals for member %d: %v", mid, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count referrals"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"referralCount": count})
}

// MembersWithReferrers left-joins every member with the member who
// referred them, if any.
func (h *ReportHandler) MembersWithReferrers(ctx *gin.Context) {
	var rows []MemberWithReferrerRow

	err := h.DB.Model(&models.Member{}).
		Select("members.id AS member_id, members.name, referrers.id AS referrer_id, referrers.name AS referrer_name").
		Joins("LEFT JOIN referred_by ON referred_by.member_id = members.id").
		Joins("LEFT JOIN members AS referrers ON referrers.id = referred_by.referrer_id").
		Scan(&rows).Error

	if err != nil {
		log.Printf("Failed to list members with referrers: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"members": rows})
}

// HighAttendanceMembers returns members whose attendance exceeds the
// global average.
func (h *ReportHandler) HighAttendanceMembers(ctx *gin.Context) {
	average := h.DB.Model(&models.Member{}).Select("AVG(classes_attended)")

	var members []models.Member

	if err := h.DB.Where("classes_attended > (?)", average).Find(&members).Error; err != nil {
		log.Printf("Failed to list high attendance members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"members": types.NewMemberResponses(members)})
}

// MembersWithoutReferralsHighFee returns members nobody referred whose
// subscription fee exceeds ?minFee=.
func (h *ReportHandler) MembersWithoutReferralsHighFee(ctx *gin.Context) {
	minFee, err := strconv.ParseFloat(ctx.Query("minFee"), 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "minFee is required"})
		return
	}

	var members []models.Member

	err = h.DB.Model(&models.Member{}).
		Select("members.*").
		Joins("LEFT JOIN referred_by ON referred_by.member_id = members.id").
		Joins("JOIN subscribed_to ON subscribed_to.member_id = members.id").
		Where("referred_by.member_id IS NULL AND subscribed_to.subscription_fee > ?", minFee).
		Find(&members).Error

	if err != nil {
		log.Printf("Failed to list unreferred members above fee %f: %v", minFee, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"members": types.NewMemberResponses(members)})
}
