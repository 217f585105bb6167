package routes

import (
	"fmt"
	"log"
	"time"

	"dinereserve-server/models"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateBookingInput struct {
	RestaurantID    uint   `json:"restaurantID" validate:"required"`
	Date            string `json:"date" validate:"required"` // "YYYY-MM-DD"
	Time            string `json:"time" validate:"required"` // "HH:MM" slot string
	PartySize       int    `json:"partySize" validate:"required,min=1"`
	SpecialRequests string `json:"specialRequests" validate:"max=500"`
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// CreateBooking records a reservation. Simulation mode auto-confirms (the
// demo behavior); production mode checks slot capacity and creates the
// booking as pending, to be confirmed by the restaurant. The restaurant's
// bookings-today counter moves inside the same transaction as the insert.
func CreateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, input.RestaurantID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if !restaurant.Bookable() {
		utils.CreateError(iris.StatusForbidden, "Not Bookable",
			"This restaurant is not currently accepting reservations.", ctx)
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid date format, expected YYYY-MM-DD", ctx)
		return
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "cannot book a date in the past", ctx)
		return
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid time format, expected HH:MM", ctx)
		return
	}

	status := models.BookingStatusConfirmed
	if !utils.SimulationMode() {
		status = models.BookingStatusPending
	}

	booking := models.Booking{
		RestaurantID:    restaurant.ID,
		UserID:          userID,
		Date:            date,
		Time:            input.Time,
		PartySize:       input.PartySize,
		Status:          status,
		SpecialRequests: input.SpecialRequests,
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if !utils.SimulationMode() {
			// Hold the slot only if the remaining capacity fits the party.
			var booked int64
			tx.Model(&models.Booking{}).
				Select("COALESCE(SUM(party_size), 0)").
				Where("restaurant_id = ? AND date = ? AND time = ? AND status != ?",
					restaurant.ID, input.Date, input.Time, models.BookingStatusCancelled).
				Scan(&booked)
			if int(booked)+input.PartySize > utils.MaxPartyPerSlot() {
				return errSlotFull
			}
		}

		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		if booking.IsForDate(time.Now()) {
			return adjustBookingsToday(tx, restaurant.ID, +1)
		}
		return nil
	})

	if txErr == errSlotFull {
		utils.CreateError(iris.StatusConflict, "Slot Full",
			"Not enough seats remain at that time, please pick another slot.", ctx)
		return
	}
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	go sendBookingConfirmation(userID, restaurant.Name, booking)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

var errSlotFull = fmt.Errorf("slot capacity exceeded")

// GetBookingByID returns a single booking to its owner, the restaurant's
// manager, or an admin.
func GetBookingByID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var booking models.Booking
	if err := storage.DB.Preload("Restaurant").First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !canAccessBooking(ctx, &booking) {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(booking)
}

// GetUserBookings lists a user's bookings, most recent (date, time) first.
func GetUserBookings(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var bookings []models.Booking
	if err := storage.DB.Preload("Restaurant").
		Where("user_id = ?", id).
		Order("date DESC, time DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetRestaurantBookings lists a restaurant's bookings for its manager,
// most recent first.
func GetRestaurantBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	restaurant := findOwnedRestaurant(id, userID, ctx)
	if restaurant == nil {
		return
	}

	var bookings []models.Booking
	if err := storage.DB.Preload("User").
		Where("restaurant_id = ?", restaurant.ID).
		Order("date DESC, time DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetAllBookings is the admin ledger view: paginated, filterable, most
// recent first.
func GetAllBookings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	q := storage.DB.Model(&models.Booking{})
	if status := ctx.URLParamDefault("status", ""); status != "" {
		q = q.Where("status = ?", status)
	}
	if restaurantID := ctx.URLParamDefault("restaurant_id", ""); restaurantID != "" {
		q = q.Where("restaurant_id = ?", restaurantID)
	}
	if userID := ctx.URLParamDefault("user_id", ""); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if dateFrom := ctx.URLParamDefault("date_from", ""); dateFrom != "" {
		if _, err := time.Parse("2006-01-02", dateFrom); err == nil {
			q = q.Where("date >= ?", dateFrom)
		}
	}
	if dateTo := ctx.URLParamDefault("date_to", ""); dateTo != "" {
		if _, err := time.Parse("2006-01-02", dateTo); err == nil {
			q = q.Where("date <= ?", dateTo)
		}
	}

	var total int64
	q.Count(&total)

	var bookings []models.Booking
	if err := q.Preload("Restaurant").Preload("User").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("date DESC, time DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}

// UpdateBookingStatus moves a booking through its lifecycle. Transitions
// outside the legal table are rejected with 409 rather than overwritten.
// Cancelling a same-day booking releases its bookings-today count in the
// same transaction, floored at zero.
func UpdateBookingStatus(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input UpdateBookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !canAccessBooking(ctx, &booking) {
		utils.CreateForbidden(ctx)
		return
	}

	if !models.CanTransitionBooking(booking.Status, input.Status) {
		utils.CreateError(iris.StatusConflict, "Illegal Transition",
			fmt.Sprintf("a %s booking cannot become %s", booking.Status, input.Status), ctx)
		return
	}

	cancellingToday := input.Status == models.BookingStatusCancelled && booking.IsForDate(time.Now())

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		booking.Status = input.Status
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		if cancellingToday {
			return adjustBookingsToday(tx, booking.RestaurantID, -1)
		}
		return nil
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(booking)
}

// RecountBookingsToday re-derives every restaurant's denormalized counter
// from ledger truth. Admin-only reconciliation for counter drift.
func RecountBookingsToday(ctx iris.Context) {
	now := time.Now()

	var todays []models.Booking
	if err := storage.DB.Where("date = ?", now.Format("2006-01-02")).Find(&todays).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	counts := models.CountBookingsForDay(todays, now)

	var restaurants []models.Restaurant
	if err := storage.DB.Select("id, bookings_today").Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	updated := 0
	for _, r := range restaurants {
		if counts[r.ID] != r.BookingsToday {
			storage.DB.Model(&models.Restaurant{}).Where("id = ?", r.ID).
				UpdateColumn("bookings_today", counts[r.ID])
			updated++
		}
	}

	ctx.JSON(iris.Map{"restaurantsRecounted": updated})
}

// adjustBookingsToday is the single coupling point between the booking
// ledger and the restaurant counters. The row is locked for the life of
// the transaction; decrements never go below zero.
func adjustBookingsToday(tx *gorm.DB, restaurantID uint, delta int) error {
	var restaurant models.Restaurant
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id, bookings_today").
		First(&restaurant, restaurantID).Error; err != nil {
		return err
	}
	return tx.Model(&models.Restaurant{}).
		Where("id = ?", restaurantID).
		UpdateColumn("bookings_today", models.NextBookingsToday(restaurant.BookingsToday, delta)).Error
}

// canAccessBooking allows the booking's owner, the restaurant's manager and
// admins through.
func canAccessBooking(ctx iris.Context, booking *models.Booking) bool {
	claims, ok := jsonWT.Get(ctx).(*utils.AccessToken)
	if !ok || claims == nil {
		return false
	}
	if claims.Role == models.RoleAdmin || claims.ID == booking.UserID {
		return true
	}
	if claims.Role == models.RoleManager {
		var restaurant models.Restaurant
		if err := storage.DB.Select("id, manager_id").First(&restaurant, booking.RestaurantID).Error; err == nil {
			return restaurant.ManagerID == claims.ID
		}
	}
	return false
}

func sendBookingConfirmation(userID uint, restaurantName string, booking models.Booking) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil || user.Email == "" {
		return
	}

	html := fmt.Sprintf(`
	<p>Your table at <strong>%s</strong> is booked for %s at %s,
	party of %d. Status: %s.</p>`,
		restaurantName, booking.DateString(), booking.Time, booking.PartySize, booking.Status)

	if _, err := utils.SendMail(user.Email, "Your DineReserve booking", html); err != nil {
		log.Println("booking confirmation email failed:", err)
	}
}
