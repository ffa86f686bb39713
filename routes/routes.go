package routes

import (
	"github.com/baseelze-maker/wasel-backend/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine) {
	// Initialize handlers
	handlers.InitHandlers()

	v1 := router.Group("/api/v1")

	// Public auth endpoints
	v1.POST("/auth/signup", handlers.SignUp)
	v1.POST("/auth/signin", handlers.SignIn)

	// Everything else requires a session
	authed := v1.Group("")
	authed.Use(handlers.RequireAuth())
	{
		authed.POST("/auth/signout", handlers.SignOut)
		authed.GET("/auth/session", handlers.CurrentSession)

		// Trip endpoints
		authed.POST("/trips", handlers.CreateTrip)
		authed.GET("/trips/search", handlers.SearchTrips)
		authed.GET("/trips/:id", handlers.GetTrip)
		authed.POST("/trips/:id/close", handlers.CloseTrip)
		authed.GET("/trips/:id/share-qr", handlers.GetTripShareQR)
		authed.GET("/trips/:id/export", handlers.ExportTripLedger)
		authed.GET("/trips/:id/requests", handlers.GetTripRequests)
		authed.GET("/me/trips", handlers.GetMyTrips)

		// Request endpoints
		authed.POST("/requests", handlers.CreateRequest)
		authed.GET("/requests/:id", handlers.GetRequest)
		authed.GET("/me/requests", handlers.GetMyRequests)
		authed.POST("/requests/:id/accept", handlers.AcceptRequest)
		authed.POST("/requests/:id/decline", handlers.DeclineRequest)
		authed.POST("/requests/:id/counter", handlers.CounterRequest)
		authed.POST("/requests/:id/complete", handlers.CompleteRequest)

		// Fee endpoints
		authed.POST("/requests/:id/pay-fee", handlers.PayFee)
		authed.GET("/requests/:id/unlocked", handlers.GetUnlocked)

		// Chat endpoints
		authed.POST("/requests/:id/messages", handlers.SendMessage)
		authed.GET("/requests/:id/messages", handlers.GetMessages)
		authed.POST("/messages/:id/delivered", handlers.MarkMessageDelivered)
		authed.POST("/messages/:id/read", handlers.MarkMessageRead)

		// Notification feed
		authed.GET("/me/notifications", handlers.GetNotifications)
	}
}
