package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"dinereserve-server/models"
	"dinereserve-server/storage"

	"github.com/jaswdr/faker"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeds the database with a small San Francisco catalog plus a month of
// booking history on either side of today. Run with: go run ./scripts

var weekdayHours = models.WeeklyHours{
	"monday":    {Open: "11:00", Close: "22:00"},
	"tuesday":   {Open: "11:00", Close: "22:00"},
	"wednesday": {Open: "11:00", Close: "22:00"},
	"thursday":  {Open: "11:00", Close: "22:00"},
	"friday":    {Open: "11:00", Close: "23:00"},
	"saturday":  {Open: "10:00", Close: "23:00"},
	"sunday":    {Open: "10:00", Close: "21:00"},
}

var dinnerOnlyHours = models.WeeklyHours{
	"tuesday":   {Open: "17:30", Close: "22:00"},
	"wednesday": {Open: "17:30", Close: "22:00"},
	"thursday":  {Open: "17:30", Close: "22:00"},
	"friday":    {Open: "17:30", Close: "22:30"},
	"saturday":  {Open: "17:30", Close: "22:30"},
}

type seedRestaurant struct {
	Name        string
	Description string
	Cuisine     string
	PriceRange  int
	Street      string
	City        string
	State       string
	Zip         string
	Hours       models.WeeklyHours
}

var catalog = []seedRestaurant{
	{"Fog City Diner", "Classic American diner on the Embarcadero.", "American", 2, "1300 Battery St", "San Francisco", "CA", "94111", weekdayHours},
	{"Tacolicious", "Casual taqueria with a big tequila list.", "Mexican", 2, "741 Valencia St", "San Francisco", "CA", "94110", weekdayHours},
	{"The Slanted Door", "Modern Vietnamese in the Ferry Building.", "Vietnamese", 3, "1 Ferry Building", "San Francisco", "CA", "94111", weekdayHours},
	{"House of Prime Rib", "Old-school prime rib carved tableside.", "American", 3, "1906 Van Ness Ave", "San Francisco", "CA", "94109", dinnerOnlyHours},
	{"Burma Superstar", "Beloved Burmese spot famous for tea leaf salad.", "Burmese", 2, "309 Clement St", "San Francisco", "CA", "94118", weekdayHours},
	{"Zuni Cafe", "Market-driven California cooking since 1979.", "California", 3, "1658 Market St", "San Francisco", "CA", "94102", weekdayHours},
	{"La Taqueria", "Mission-style burritos, cash only.", "Mexican", 1, "2889 Mission St", "San Francisco", "CA", "94110", weekdayHours},
	{"Benu", "Tasting-menu fine dining from Corey Lee.", "Asian", 4, "22 Hawthorne St", "San Francisco", "CA", "94105", dinnerOnlyHours},
}

func main() {
	storage.InitializeDB()

	fake := faker.New()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var existing int64
	storage.DB.Model(&models.Restaurant{}).Count(&existing)
	if existing > 0 {
		log.Fatal("database already seeded, refusing to seed twice")
	}

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	users := []models.User{
		{FirstName: "Ava", LastName: "Admin", Email: "admin@dinereserve.com", Password: string(password), Role: models.RoleAdmin},
		{FirstName: "Marco", LastName: "Manager", Email: "manager@dinereserve.com", Password: string(password), Role: models.RoleManager},
		{FirstName: fake.Person().FirstName(), LastName: fake.Person().LastName(), Email: "diner1@example.com", Password: string(password), Role: models.RoleCustomer},
		{FirstName: fake.Person().FirstName(), LastName: fake.Person().LastName(), Email: "diner2@example.com", Password: string(password), Role: models.RoleCustomer},
		{FirstName: fake.Person().FirstName(), LastName: fake.Person().LastName(), Email: "diner3@example.com", Password: string(password), Role: models.RoleCustomer},
	}
	for i := range users {
		if err := storage.DB.Create(&users[i]).Error; err != nil {
			log.Fatalf("create user %s: %v", users[i].Email, err)
		}
	}
	manager := users[1]
	diners := users[2:]

	restaurants := make([]models.Restaurant, 0, len(catalog))
	for _, entry := range catalog {
		hoursJSON, err := json.Marshal(entry.Hours)
		if err != nil {
			log.Fatalf("marshal hours: %v", err)
		}
		imagesJSON, _ := json.Marshal([]string{})

		restaurant := models.Restaurant{
			ManagerID:   manager.ID,
			Name:        entry.Name,
			Description: entry.Description,
			Cuisine:     entry.Cuisine,
			PriceRange:  entry.PriceRange,
			Street:      entry.Street,
			City:        entry.City,
			State:       entry.State,
			Zip:         entry.Zip,
			Country:     "USA",
			Phone:       fake.Phone().Number(),
			Hours:       datatypes.JSON(hoursJSON),
			Images:      datatypes.JSON(imagesJSON),
			IsApproved:  true,
		}
		if err := storage.DB.Create(&restaurant).Error; err != nil {
			log.Fatalf("create restaurant %s: %v", entry.Name, err)
		}
		restaurants = append(restaurants, restaurant)
	}

	seedReviews(fake, rng, restaurants, diners)
	bookings := seedBookings(fake, rng, restaurants, diners)

	fmt.Printf("Seeded %d users, %d restaurants, %d bookings.\n", len(users), len(restaurants), bookings)
}

func seedReviews(fake faker.Faker, rng *rand.Rand, restaurants []models.Restaurant, diners []models.User) {
	for i := 0; i < 5; i++ {
		diner := diners[i%len(diners)]
		restaurant := restaurants[rng.Intn(len(restaurants))]
		review := models.Review{
			RestaurantID: restaurant.ID,
			UserID:       diner.ID,
			UserName:     diner.FirstName + " " + diner.LastName,
			Rating:       3 + rng.Intn(3),
			Comment:      fake.Lorem().Sentence(10),
		}
		// Unique per (user, restaurant); collisions from the random draw
		// are fine to skip.
		if err := storage.DB.Create(&review).Error; err != nil {
			continue
		}
		storage.DB.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).
			UpdateColumns(map[string]interface{}{
				"rating":       review.Rating,
				"review_count": restaurant.ReviewCount + 1,
			})
	}
}

var dinnerSlots = []string{"17:00", "17:30", "18:00", "18:30", "19:00", "19:30", "20:00", "20:30"}

func seedBookings(fake faker.Faker, rng *rand.Rand, restaurants []models.Restaurant, diners []models.User) int {
	today := time.Now().Truncate(24 * time.Hour)
	total := 0

	for offset := -14; offset <= 14; offset++ {
		date := today.AddDate(0, 0, offset)
		perDay := 5 + rng.Intn(11)

		for i := 0; i < perDay; i++ {
			status := pastStatus(rng)
			if offset >= 0 {
				status = futureStatus(rng)
			}

			special := ""
			if rng.Float64() < 0.3 {
				special = fake.Lorem().Sentence(6)
			}

			restaurant := restaurants[rng.Intn(len(restaurants))]
			booking := models.Booking{
				RestaurantID:    restaurant.ID,
				UserID:          diners[rng.Intn(len(diners))].ID,
				Date:            date,
				Time:            dinnerSlots[rng.Intn(len(dinnerSlots))],
				PartySize:       1 + rng.Intn(6),
				Status:          status,
				SpecialRequests: special,
			}
			if err := storage.DB.Create(&booking).Error; err != nil {
				log.Fatalf("create booking: %v", err)
			}
			total++

			if offset == 0 && status != models.BookingStatusCancelled {
				storage.DB.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).
					UpdateColumn("bookings_today", gorm.Expr("bookings_today + 1"))
			}
		}
	}

	return total
}

func pastStatus(rng *rand.Rand) string {
	if rng.Float64() < 0.8 {
		return models.BookingStatusCompleted
	}
	return models.BookingStatusCancelled
}

func futureStatus(rng *rand.Rand) string {
	if rng.Float64() < 0.7 {
		return models.BookingStatusConfirmed
	}
	return models.BookingStatusPending
}
