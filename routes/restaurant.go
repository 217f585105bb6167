package routes

import (
	"encoding/json"

	"dinereserve-server/models"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type RestaurantInput struct {
	Name        string                     `json:"name" validate:"required,max=256"`
	Description string                     `json:"description" validate:"max=2000"`
	Cuisine     string                     `json:"cuisine" validate:"required,max=100"`
	PriceRange  int                        `json:"priceRange" validate:"required,min=1,max=4"`
	Street      string                     `json:"street" validate:"required,max=256"`
	City        string                     `json:"city" validate:"required,max=100"`
	State       string                     `json:"state" validate:"required,max=100"`
	Zip         string                     `json:"zip" validate:"required,max=20"`
	Country     string                     `json:"country" validate:"required,max=100"`
	Lat         float64                    `json:"lat"`
	Lng         float64                    `json:"lng"`
	Phone       string                     `json:"phone" validate:"max=30"`
	Email       string                     `json:"email" validate:"omitempty,email"`
	Website     string                     `json:"website" validate:"omitempty,url"`
	Hours       map[string]models.DayHours `json:"hours"`
	Images      []string                   `json:"images" validate:"dive,url"`
}

type UpdateRestaurantInput struct {
	Name        *string                    `json:"name" validate:"omitempty,max=256"`
	Description *string                    `json:"description" validate:"omitempty,max=2000"`
	Cuisine     *string                    `json:"cuisine" validate:"omitempty,max=100"`
	PriceRange  *int                       `json:"priceRange" validate:"omitempty,min=1,max=4"`
	Street      *string                    `json:"street"`
	City        *string                    `json:"city"`
	State       *string                    `json:"state"`
	Zip         *string                    `json:"zip"`
	Country     *string                    `json:"country"`
	Lat         *float64                   `json:"lat"`
	Lng         *float64                   `json:"lng"`
	Phone       *string                    `json:"phone"`
	Email       *string                    `json:"email" validate:"omitempty,email"`
	Website     *string                    `json:"website" validate:"omitempty,url"`
	Hours       map[string]models.DayHours `json:"hours"`
	Images      []string                   `json:"images" validate:"omitempty,dive,url"`
}

// GetRestaurants lists the customer-facing (approved) catalog in insertion
// order. Pending and suspended rows are only visible through the admin
// listing.
func GetRestaurants(ctx iris.Context) {
	var restaurants []models.Restaurant
	if err := storage.DB.Where("is_approved = ?", true).
		Order("id ASC").Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(restaurants)
}

func GetRestaurantByID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(restaurant)
}

// CreateRestaurant registers a new listing for the calling manager. New
// listings always start unapproved with zeroed aggregates.
func CreateRestaurant(ctx iris.Context) {
	managerID := ctx.Values().Get("userID").(uint)

	var input RestaurantInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	hoursJSON, hoursErr := json.Marshal(input.Hours)
	imagesJSON, imagesErr := json.Marshal(input.Images)
	if hoursErr != nil || imagesErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	restaurant := models.Restaurant{
		ManagerID:     managerID,
		Name:          input.Name,
		Description:   input.Description,
		Cuisine:       input.Cuisine,
		PriceRange:    input.PriceRange,
		Street:        input.Street,
		City:          input.City,
		State:         input.State,
		Zip:           input.Zip,
		Country:       input.Country,
		Lat:           input.Lat,
		Lng:           input.Lng,
		Phone:         input.Phone,
		Email:         input.Email,
		Website:       input.Website,
		Hours:         datatypes.JSON(hoursJSON),
		Images:        datatypes.JSON(imagesJSON),
		Rating:        0,
		ReviewCount:   0,
		BookingsToday: 0,
		IsApproved:    false,
		Suspended:     false,
	}

	if err := storage.DB.Create(&restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(restaurant)
}

// UpdateRestaurant shallow-merges the provided fields into the caller's
// listing and bumps UpdatedAt. Approval and suspension flags are admin-only
// and handled by the admin routes.
func UpdateRestaurant(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	restaurant := findOwnedRestaurant(id, userID, ctx)
	if restaurant == nil {
		return
	}

	var input UpdateRestaurantInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	applyRestaurantUpdates(restaurant, &input)

	if err := storage.DB.Save(restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(restaurant)
}

// DeleteRestaurant removes the caller's listing outright. No tombstone is
// kept; bookings keep their restaurantID reference.
func DeleteRestaurant(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	restaurant := findOwnedRestaurant(id, userID, ctx)
	if restaurant == nil {
		return
	}

	if err := storage.DB.Unscoped().Delete(restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": true})
}

// GetManagerRestaurants lists every restaurant owned by the caller,
// including pending and suspended ones.
func GetManagerRestaurants(ctx iris.Context) {
	managerID := ctx.Values().Get("userID").(uint)

	var restaurants []models.Restaurant
	if err := storage.DB.Where("manager_id = ?", managerID).Order("id ASC").Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(restaurants)
}

func findOwnedRestaurant(id string, userID uint, ctx iris.Context) *models.Restaurant {
	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil
	}
	if restaurant.ManagerID != userID {
		utils.CreateForbidden(ctx)
		return nil
	}
	return &restaurant
}

func applyRestaurantUpdates(restaurant *models.Restaurant, input *UpdateRestaurantInput) {
	if input.Name != nil {
		restaurant.Name = *input.Name
	}
	if input.Description != nil {
		restaurant.Description = *input.Description
	}
	if input.Cuisine != nil {
		restaurant.Cuisine = *input.Cuisine
	}
	if input.PriceRange != nil {
		restaurant.PriceRange = *input.PriceRange
	}
	if input.Street != nil {
		restaurant.Street = *input.Street
	}
	if input.City != nil {
		restaurant.City = *input.City
	}
	if input.State != nil {
		restaurant.State = *input.State
	}
	if input.Zip != nil {
		restaurant.Zip = *input.Zip
	}
	if input.Country != nil {
		restaurant.Country = *input.Country
	}
	if input.Lat != nil {
		restaurant.Lat = *input.Lat
	}
	if input.Lng != nil {
		restaurant.Lng = *input.Lng
	}
	if input.Phone != nil {
		restaurant.Phone = *input.Phone
	}
	if input.Email != nil {
		restaurant.Email = *input.Email
	}
	if input.Website != nil {
		restaurant.Website = *input.Website
	}
	if input.Hours != nil {
		if hoursJSON, err := json.Marshal(input.Hours); err == nil {
			restaurant.Hours = datatypes.JSON(hoursJSON)
		}
	}
	if input.Images != nil {
		if imagesJSON, err := json.Marshal(input.Images); err == nil {
			restaurant.Images = datatypes.JSON(imagesJSON)
		}
	}
}
