package routes

import (
	"time"

	"dinereserve-server/models"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetAllUsers is the admin account roster.
func GetAllUsers(ctx iris.Context) {
	var users []models.User
	if err := storage.DB.Order("id ASC").Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(users)
}

// GetAdminStats returns the dashboard headline numbers.
func GetAdminStats(ctx iris.Context) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")
	monthAgo := now.AddDate(0, 0, -30).Format("2006-01-02")

	stats := iris.Map{
		"totalUsers":         countRows(storage.DB.Model(&models.User{})),
		"totalRestaurants":   countRows(storage.DB.Model(&models.Restaurant{})),
		"pendingRestaurants": countRows(storage.DB.Model(&models.Restaurant{}).Where("is_approved = ?", false)),
		"totalBookings":      countRows(storage.DB.Model(&models.Booking{})),
		"bookingsLast7Days":  countRows(storage.DB.Model(&models.Booking{}).Where("date >= ?", weekAgo)),
		"bookingsLast30Days": countRows(storage.DB.Model(&models.Booking{}).Where("date >= ?", monthAgo)),
		"totalReviews":       countRows(storage.DB.Model(&models.Review{})),
	}

	ctx.JSON(stats)
}

// GetAdminActivity pages through the audit trail, newest first.
func GetAdminActivity(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if perPage <= 0 || perPage > 200 {
		perPage = 50
	}

	q := storage.DB.Model(&models.AuditLog{})
	if action := ctx.URLParamDefault("action", ""); action != "" {
		q = q.Where("action = ?", action)
	}

	var total int64
	q.Count(&total)

	var entries []models.AuditLog
	if err := q.Offset((page - 1) * perPage).Limit(perPage).
		Order("created_at DESC").Find(&entries).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, entries, page, perPage, total)
}

func countRows(q *gorm.DB) int64 {
	var n int64
	q.Count(&n)
	return n
}
