package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	DB *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

func (h *HealthHandler) Root(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Backend is running!")
}

func (h *HealthHandler) Status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "DojoDesk is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// TestDB runs a trivial statement through the pool to verify store
// connectivity.
func (h *HealthHandler) TestDB(ctx *gin.Context) {
	var one int

	if err := h.DB.Raw("SELECT 1").Scan(&one).Error; err != nil {
		log.Printf("Database connectivity check failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Database connection OK"})
}
