package routes

import (
	"strings"

	"dinereserve-server/models"
	"dinereserve-server/services"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
)

// SearchRestaurants filters the approved catalog. The location filter is a
// case-insensitive substring matched against city, state or zip (OR across
// the three); cuisine is a case-insensitive substring. Both AND together
// when present; empty values impose no constraint.
func SearchRestaurants(ctx iris.Context) {
	location := strings.TrimSpace(ctx.URLParam("location"))
	cuisine := strings.TrimSpace(ctx.URLParam("cuisine"))

	var restaurants []models.Restaurant
	if err := storage.DB.Where("is_approved = ?", true).
		Order("id ASC").Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(services.FilterRestaurants(restaurants, location, cuisine))
}
