package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dojodesk/dojodesk/internal/auth"
	"github.com/dojodesk/dojodesk/internal/models"
	"github.com/dojodesk/dojodesk/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db}
}

type RegisterMemberRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	PackageID uint   `json:"packageId" binding:"required"`

	Address      string  `json:"address"`
	BirthDate    string  `json:"birthDate"`
	JoinDate     string  `json:"joinDate"`
	WaiverSigned bool    `json:"waiverSigned"`
	BeltLevel    string  `json:"beltLevel"`
	ReferredBy   *uint   `json:"referredBy"`
	Discount     float64 `json:"discount"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterMember creates the member row, the optional referral edge
// and the subscription row in one transaction. Any failure rolls the
// whole registration back.
func (h *AuthHandler) RegisterMember(ctx *gin.Context) {
	var req RegisterMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	joinDate := time.Now()

	if req.JoinDate != "" {
		parsed, err := time.Parse(dateLayout, req.JoinDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "joinDate must be YYYY-MM-DD"})
			return
		}
		joinDate = parsed
	}

	var birthDate *datatypes.Date

	if req.BirthDate != "" {
		parsed, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "birthDate must be YYYY-MM-DD"})
			return
		}
		d := datatypes.Date(parsed)
		birthDate = &d
	}

	beltLevel := req.BeltLevel

	if beltLevel == "" {
		beltLevel = types.DefaultBeltLevel
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	member := models.Member{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Address:      req.Address,
		BirthDate:    birthDate,
		JoinDate:     datatypes.Date(joinDate),
		WaiverSigned: req.WaiverSigned,
		BeltLevel:    beltLevel,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		if req.ReferredBy != nil {
			referral := models.Referral{
				ReferrerID: *req.ReferredBy,
				MemberID:   member.ID,
			}
			if err := tx.Create(&referral).Error; err != nil {
				return err
			}
		}

		subscription := models.Subscription{
			MemberID:        member.ID,
			PackageID:       req.PackageID,
			SubscriptionFee: 0,
			Discount:        req.Discount,
		}

		return tx.Create(&subscription).Error
	})

	if err != nil {
		log.Printf("Failed to register member: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Member registered",
		"member":  types.NewMemberResponse(member),
	})
}

func (h *AuthHandler) LoginMember(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var member models.Member

	err := h.DB.Where("email = ?", req.Email).First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Database error when fetching member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(member.ID, types.RoleMember)

	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  types.NewMemberResponse(member),
	})
}

func (h *AuthHandler) LoginAdmin(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.Admin

	err := h.DB.Where("email = ?", req.Email).First(&admin).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Database error when fetching admin: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(admin.ID, types.RoleAdmin)

	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": types.AdminResponse{
			ID:    admin.ID,
			Email: admin.Email,
		},
	})
}
