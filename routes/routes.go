package routes

import (
	"net/http"
	"time"

	userRepo "garagehub/database/repository/user"
	"garagehub/handlers"
	"garagehub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers and shared dependencies the route
// registrations need.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Users        *handlers.UserHandler
	Garages      *handlers.GarageHandler
	Schedules    *handlers.ScheduleHandler
	Products     *handlers.ProductHandler
	Orders       *handlers.OrderHandler
	Appointments *handlers.AppointmentHandler
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.Register)
		api.POST("/login", hb.Users.Login)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.GetProfile)
		api.PUT("/me", hb.Users.UpdateProfile)
		api.DELETE("/me", hb.Users.DeleteAccount)
	}
}

// RegisterGarageRoutes registers the garage directory, schedule, and catalog
// endpoints. Reads are public; writes require authentication and ownership
// checks happen in the handlers.
func RegisterGarageRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/garages")
	{
		api.GET("", hb.Garages.ListGarages)
		api.GET("/:id", hb.Garages.GetGarage)
		api.GET("/:id/schedule", hb.Schedules.GetGarageSchedule)
		api.GET("/:id/available-slots", hb.Schedules.GetAvailableSlots)
		api.GET("/:id/products", hb.Products.ListGarageProducts)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.POST("", hb.Garages.CreateGarage)
		protected.PUT("/:id", hb.Garages.UpdateGarage)
		protected.DELETE("/:id", hb.Garages.DeleteGarage)
		protected.PUT("/:id/schedule", hb.Schedules.ReplaceGarageSchedule)
		protected.POST("/:id/schedule/slots", hb.Schedules.CreateScheduleSlot)
		protected.DELETE("/:id/schedule/slots/:slotID", hb.Schedules.DeactivateScheduleSlot)
		protected.POST("/:id/products", hb.Products.CreateProduct)
	}
}

// RegisterProductRoutes registers product endpoints addressed by product ID.
func RegisterProductRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/products")
	{
		api.GET("/:id", hb.Products.GetProduct)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.PUT("/:id", hb.Products.UpdateProduct)
	}
}

// RegisterOrderRoutes registers order endpoints, all authenticated.
func RegisterOrderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.Orders.CreateOrder)
		api.GET("", hb.Orders.ListMyOrders)
		api.GET("/:id", hb.Orders.GetOrder)
	}
}

// RegisterAppointmentRoutes registers the appointment booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.Appointments.ListAppointments)
		api.GET("/:id", hb.Appointments.GetAppointment)
		api.POST("", hb.Appointments.CreateAppointment)
		api.PUT("/:id", hb.Appointments.UpdateAppointment)
		api.DELETE("/:id", hb.Appointments.DeleteAppointment)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm GarageHub"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterGarageRoutes(r, hb)
	RegisterProductRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
}
