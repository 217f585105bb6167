package models

import "gorm.io/gorm"

const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	Email          string       `json:"email" gorm:"uniqueIndex"`
	Password       string       `json:"-"`
	SocialLogin    bool         `json:"socialLogin"`
	SocialProvider string       `json:"socialProvider"`
	AvatarURL      string       `json:"avatarURL"`
	Role           string       `json:"role" gorm:"type:varchar(20);default:customer;index"` // customer, manager, admin
	Restaurants    []Restaurant `json:"restaurants,omitempty" gorm:"foreignKey:ManagerID;references:ID"`
}
