package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "transit/internal/config"
	h "transit/internal/http/handlers"
	"transit/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret([]byte(env.JWTSecret))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.RequireAuth([]byte(env.JWTSecret))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		account := api.Group("/auth")
		account.POST("/login", h.Login)
		account.POST("/register", h.Register)

		routes := api.Group("/routes")
		routes.GET("", h.GetRoutes)
		routes.GET("/:id", h.GetRoute)

		bookings := api.Group("/bookings")
		bookings.GET("", h.GetBookings)
		bookings.GET("/my", auth, h.GetMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/ticket", h.GetBookingTicket)
		bookings.POST("", auth, h.CreateBooking)
		bookings.PUT("/:id", auth, h.UpdateBooking)

		payments := api.Group("/payments")
		payments.GET("", auth, h.GetPayments)
		payments.GET("/:id", h.GetPayment)
		payments.POST("", auth, h.CreatePayment)

		locations := api.Group("/locations")
		locations.GET("", h.GetLocations)
		locations.POST("/:bus_id", auth, h.UpsertLocation)
	}

	ws := r.Group("/ws")
	{
		ws.GET("/live-tracking", h.LiveTracking)
		ws.GET("/broadcast-location/:bus_id", h.BroadcastLocation)
	}

	return r
}
