package routes

import (
	"strings"

	"dinereserve-server/models"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateReviewInput struct {
	RestaurantID uint   `json:"restaurantID" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment" validate:"max=2000"`
}

// GetRestaurantReviews lists a restaurant's reviews, newest first.
func GetRestaurantReviews(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var restaurant models.Restaurant
	if err := storage.DB.Select("id").First(&restaurant, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Where("restaurant_id = ?", restaurant.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reviews)
}

// CreateReview stores one review per (user, restaurant) pair and recomputes
// the restaurant's rating aggregates in the same transaction. A second
// review from the same user is a 409, backed by the unique index.
func CreateReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, input.RestaurantID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var user models.User
	if err := storage.DB.Select("id, first_name, last_name").First(&user, userID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	review := models.Review{
		RestaurantID: restaurant.ID,
		UserID:       userID,
		UserName:     strings.TrimSpace(user.FirstName + " " + user.LastName),
		Rating:       input.Rating,
		Comment:      input.Comment,
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, restaurant.ID)
	})

	if txErr != nil {
		if isDuplicateKey(txErr) {
			utils.CreateError(iris.StatusConflict, "Already Reviewed",
				"You have already reviewed this restaurant.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

// recomputeRating re-derives the restaurant's average rating and review
// count from the reviews table, so the aggregates never drift.
func recomputeRating(tx *gorm.DB, restaurantID uint) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("restaurant_id = ?", restaurantID).
		Scan(&agg).Error; err != nil {
		return err
	}
	return tx.Model(&models.Restaurant{}).
		Where("id = ?", restaurantID).
		UpdateColumns(map[string]interface{}{
			"rating":       agg.Avg,
			"review_count": agg.Count,
		}).Error
}

func isDuplicateKey(err error) bool {
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	// Postgres unique violations surface as SQLSTATE 23505.
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
