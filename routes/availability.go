package routes

import (
	"time"

	"dinereserve-server/models"
	"dinereserve-server/services"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
)

// GetRestaurantAvailability returns the 30-minute slot grid for one
// restaurant and calendar date:
// GET /api/restaurants/{id}/availability?date=YYYY-MM-DD&partySize=N
func GetRestaurantAvailability(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !restaurant.Bookable() {
		utils.CreateError(iris.StatusForbidden, "Not Bookable",
			"This restaurant is not currently accepting reservations.", ctx)
		return
	}

	dateStr := ctx.URLParam("date")
	if dateStr == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "date is required (YYYY-MM-DD)", ctx)
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid date format, expected YYYY-MM-DD", ctx)
		return
	}

	partySize := ctx.URLParamIntDefault("partySize", 2)
	if partySize < 1 {
		partySize = 1
	}

	slots := services.GenerateTimeSlots(restaurant.WeeklyHours(), restaurant.ID, date, partySize, occupancyChecker())
	if slots == nil {
		slots = []services.TimeSlot{}
	}

	ctx.JSON(iris.Map{
		"restaurantID": restaurant.ID,
		"date":         dateStr,
		"partySize":    partySize,
		"slots":        slots,
	})
}

// occupancyChecker picks the availability signal: the 70/30 random draw in
// simulation mode, the ledger capacity check otherwise.
func occupancyChecker() services.OccupancyChecker {
	if utils.SimulationMode() {
		return services.NewRandomOccupancy()
	}
	return &services.LedgerOccupancy{DB: storage.DB, MaxPartyPerSlot: utils.MaxPartyPerSlot()}
}
