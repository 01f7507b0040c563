package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dojodesk/dojodesk/internal/models"
	"github.com/dojodesk/dojodesk/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errMemberNotFound = errors.New("member not found")

type MemberHandler struct {
	DB *gorm.DB
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{DB: db}
}

type MemberIDRequest struct {
	MID uint `json:"mid" binding:"required"`
}

type UpdateBeltRequest struct {
	MID       uint   `json:"mid" binding:"required"`
	BeltLevel string `json:"beltLevel" binding:"required"`
}

type UpdateAddressRequest struct {
	MID     uint   `json:"mid" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type AddChildRequest struct {
	MID     uint `json:"mid" binding:"required"`
	ChildID uint `json:"childId" binding:"required"`
}

func (h *MemberHandler) DeleteMember(ctx *gin.Context) {
	adminID, err := utils.GetCurrentAdminID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req MemberIDRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	// Soft deletes never fire the schema-level cascades, so dependent
	// edge rows are retired in the same transaction. Referrals and
	// subscriptions must not keep counting a deleted member.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Member{}, req.MID)

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return errMemberNotFound
		}

		if err := tx.Where("member_id = ?", req.MID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}

		if err := tx.Where("referrer_id = ? OR member_id = ?", req.MID, req.MID).Delete(&models.Referral{}).Error; err != nil {
			return err
		}

		return tx.Where("parent_id = ? OR child_id = ?", req.MID, req.MID).Delete(&models.Guardianship{}).Error
	})

	if err != nil {
		if errors.Is(err, errMemberNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		log.Printf("Failed to delete member %d: %v", req.MID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete member"})
		return
	}

	log.Printf("Admin %d deleted member %d", adminID, req.MID)
	ctx.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

func (h *MemberHandler) UpdateBeltLevel(ctx *gin.Context) {
	adminID, err := utils.GetCurrentAdminID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req UpdateBeltRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	result := h.DB.Model(&models.Member{}).Where("id = ?", req.MID).Update("belt_level", req.BeltLevel)

	if result.Error != nil {
		log.Printf("Failed to update belt level for member %d: %v", req.MID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update belt level"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	log.Printf("Admin %d set belt level of member %d to %s", adminID, req.MID, req.BeltLevel)
	ctx.JSON(http.StatusOK, gin.H{"message": "Belt level updated"})
}

func (h *MemberHandler) UpdateAddress(ctx *gin.Context) {
	adminID, err := utils.GetCurrentAdminID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req UpdateAddressRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	result := h.DB.Model(&models.Member{}).Where("id = ?", req.MID).Update("address", req.Address)

	if result.Error != nil {
		log.Printf("Failed to update address for member %d: %v", req.MID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	log.Printf("Admin %d updated address of member %d", adminID, req.MID)
	ctx.JSON(http.StatusOK, gin.H{"message": "Address updated"})
}

// IncrementClasses bumps the counter in a single UPDATE so concurrent
// increments never lose writes.
func (h *MemberHandler) IncrementClasses(ctx *gin.Context) {
	if _, err := utils.GetCurrentAdminID(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req MemberIDRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	result := h.DB.Model(&models.Member{}).
		Where("id = ?", req.MID).
		UpdateColumn("classes_attended", gorm.Expr("classes_attended + ?", 1))

	if result.Error != nil {
		log.Printf("Failed to increment classes for member %d: %v", req.MID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to increment classes attended"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Classes attended incremented"})
}

// AddChild inserts a guardianship edge. Existence of both members is a
// foreign key concern; a violation surfaces as a store error.
func (h *MemberHandler) AddChild(ctx *gin.Context) {
	adminID, err := utils.GetCurrentAdminID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req AddChildRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	guardianship := models.Guardianship{
		ParentID: req.MID,
		ChildID:  req.ChildID,
	}

	if err := h.DB.Create(&guardianship).Error; err != nil {
		log.Printf("Failed to add child %d for member %d: %v", req.ChildID, req.MID, err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Admin %d recorded member %d as parent of member %d", adminID, req.MID, req.ChildID)
	ctx.JSON(http.StatusCreated, gin.H{"message": "Child added"})
}
