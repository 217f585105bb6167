package routes

import (
	"time"

	"dinereserve-server/models"
	"dinereserve-server/services"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
)

// GetAdminAnalytics aggregates the trailing 30-day booking window for the
// admin dashboard. The window query over-fetches by a day so the pure
// aggregation owns the exact boundary.
func GetAdminAnalytics(ctx iris.Context) {
	now := time.Now()
	windowStart := now.AddDate(0, 0, -(services.AnalyticsWindowDays + 1)).Format("2006-01-02")

	var bookings []models.Booking
	if err := storage.DB.Where("date >= ?", windowStart).Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var restaurants []models.Restaurant
	if err := storage.DB.Order("id ASC").Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(services.BuildAnalytics(bookings, restaurants, now))
}
