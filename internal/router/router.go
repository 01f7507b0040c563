package router

import (
	"time"

	"github.com/dojodesk/dojodesk/internal/handlers"
	"github.com/dojodesk/dojodesk/internal/middleware"
	"github.com/dojodesk/dojodesk/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(db)
	memberHandler := handlers.NewMemberHandler(db)
	reportHandler := handlers.NewReportHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	r.GET("/", healthHandler.Root)
	r.GET("/healthz", healthHandler.Status)
	r.GET("/test-db", healthHandler.TestDB)

	users := r.Group("/users")
	{
		users.POST("/register", authHandler.RegisterMember)
		users.POST("/login", authHandler.LoginMember)
		users.POST("/admin/login", authHandler.LoginAdmin)
	}

	admin := r.Group("/admin", middleware.AdminRequired())
	{
		admin.POST("/delete-member", memberHandler.DeleteMember)
		admin.POST("/update-belt", memberHandler.UpdateBeltLevel)
		admin.POST("/update-address", memberHandler.UpdateAddress)
		admin.POST("/increment-classes", memberHandler.IncrementClasses)
		admin.POST("/add-child", memberHandler.AddChild)

		admin.GET("/no-waiver", reportHandler.MembersWithoutWaiver)
		admin.GET("/avg-classes-by-belt", reportHandler.AverageClassesByBelt)
		admin.GET("/top-classes", reportHandler.TopMembersByClasses)
		admin.GET("/children", reportHandler.ChildrenOfMember)
		admin.GET("/package-revenue", reportHandler.PackageRevenue)
		admin.GET("/search-name", reportHandler.SearchMembersByName)
		admin.GET("/discounted-subscriptions", reportHandler.DiscountedSubscriptions)
		admin.GET("/count-referrals", reportHandler.CountReferrals)
		admin.GET("/members-with-referrals", reportHandler.MembersWithReferrers)
		admin.GET("/high-attendance-members", reportHandler.HighAttendanceMembers)
		admin.GET("/no-referrals-high-fee", reportHandler.MembersWithoutReferralsHighFee)
	}

	return r
}
