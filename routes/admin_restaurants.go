package routes

import (
	"dinereserve-server/models"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
)

// GetAllRestaurantsAdmin lists the entire catalog including pending and
// suspended rows. Admin-only; the public listing stays approved-only.
func GetAllRestaurantsAdmin(ctx iris.Context) {
	var restaurants []models.Restaurant
	if err := storage.DB.Order("id ASC").Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(restaurants)
}

// GetPendingRestaurants lists unapproved listings awaiting moderation,
// oldest submission first.
func GetPendingRestaurants(ctx iris.Context) {
	var restaurants []models.Restaurant
	if err := storage.DB.Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(restaurants)
}

// ApproveRestaurant publishes a pending listing into the customer catalog.
func ApproveRestaurant(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := iris.Map{"isApproved": restaurant.IsApproved}
	restaurant.IsApproved = true

	if err := storage.DB.Save(&restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "restaurant.approve", "restaurant", restaurant.ID,
		before, iris.Map{"isApproved": true})

	ctx.JSON(restaurant)
}

// RejectRestaurant removes a pending listing outright. Approved listings
// cannot be rejected, only suspended.
func RejectRestaurant(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if restaurant.IsApproved {
		utils.CreateError(iris.StatusConflict, "Already Approved",
			"An approved restaurant cannot be rejected, suspend it instead.", ctx)
		return
	}

	if err := storage.DB.Unscoped().Delete(&restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "restaurant.reject", "restaurant", restaurant.ID,
		iris.Map{"name": restaurant.Name, "managerID": restaurant.ManagerID}, nil)

	ctx.JSON(iris.Map{"deleted": true})
}

// SuspendRestaurant toggles the suspension flag. A suspended restaurant
// stays visible to its manager but takes no bookings.
func SuspendRestaurant(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := iris.Map{"suspended": restaurant.Suspended}
	restaurant.Suspended = !restaurant.Suspended

	if err := storage.DB.Save(&restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	action := "restaurant.suspend"
	if !restaurant.Suspended {
		action = "restaurant.unsuspend"
	}
	utils.Audit(ctx, action, "restaurant", restaurant.ID,
		before, iris.Map{"suspended": restaurant.Suspended})

	ctx.JSON(restaurant)
}
