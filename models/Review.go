package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	RestaurantID uint   `json:"restaurantID" gorm:"not null;index:idx_review_user_restaurant,unique"`
	UserID       uint   `json:"userID" gorm:"not null;index:idx_review_user_restaurant,unique"`
	UserName     string `json:"userName"` // denormalized for display
	Rating       int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      string `json:"comment" gorm:"type:text"`

	Restaurant Restaurant `json:"-" gorm:"foreignKey:RestaurantID"`
	User       User       `json:"-" gorm:"foreignKey:UserID"`
}
