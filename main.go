package main

import (
	"fmt"
	"log"
	"os"

	"dinereserve-server/routes"
	"dinereserve-server/storage"
	"dinereserve-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	// Initialize services
	storage.InitializeDB()
	storage.InitializeS3()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint - CRITICAL for Render
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Routes
	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUser)
	}

	restaurants := app.Party("/api/restaurants")
	{
		restaurants.Get("/", routes.GetRestaurants)
		restaurants.Get("/search", routes.SearchRestaurants)
		restaurants.Get("/mine", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.GetManagerRestaurants)
		restaurants.Get("/{id:uint}", routes.GetRestaurantByID)
		restaurants.Get("/{id:uint}/availability", routes.GetRestaurantAvailability)
		restaurants.Get("/{id:uint}/reviews", routes.GetRestaurantReviews)
		restaurants.Post("/", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.CreateRestaurant)
		restaurants.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.UpdateRestaurant)
		restaurants.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.DeleteRestaurant)
	}

	bookings := app.Party("/api/bookings")
	{
		bookings.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBooking)
		bookings.Get("/user/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserBookings)
		bookings.Get("/restaurant/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.GetRestaurantBookings)
		bookings.Get("/{id:uint}", accessTokenVerifierMiddleware, routes.GetBookingByID)
		bookings.Patch("/{id:uint}/status", accessTokenVerifierMiddleware, routes.UpdateBookingStatus)
	}

	reviews := app.Party("/api/reviews")
	{
		reviews.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateReview)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/restaurants", routes.GetAllRestaurantsAdmin)
		admin.Get("/restaurants/pending", routes.GetPendingRestaurants)
		admin.Patch("/restaurants/{id:uint}/approve", routes.ApproveRestaurant)
		admin.Delete("/restaurants/{id:uint}/reject", routes.RejectRestaurant)
		admin.Patch("/restaurants/{id:uint}/suspend", routes.SuspendRestaurant)
		admin.Get("/bookings", routes.GetAllBookings)
		admin.Post("/bookings/recount", routes.RecountBookingsToday)
		admin.Get("/users", routes.GetAllUsers)
		admin.Get("/stats", routes.GetAdminStats)
		admin.Get("/analytics", routes.GetAdminAnalytics)
		admin.Get("/activity", routes.GetAdminActivity)
	}

	app.Post("/api/upload", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.UploadImage)
	app.Post("/api/llm", routes.Chat)
	app.Get("/api/gemini-models", routes.GetGeminiModels)

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	// Start server
	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
