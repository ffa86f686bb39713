package handlers

import (
	"os"

	"github.com/baseelze-maker/wasel-backend/repository"
	"github.com/baseelze-maker/wasel-backend/services"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	AuthService         *services.AuthService
	TripService         *services.TripService
	RequestService      *services.RequestService
	OfferService        *services.OfferService
	FeeService          *services.FeeService
	ChatService         *services.ChatService
	NotificationService *services.NotificationService
	ExportService       *services.ExportService
}

// NewHandlerServices creates a new handler services instance
func NewHandlerServices() *HandlerServices {
	tripRepo := repository.NewTripRepository()
	requestRepo := repository.NewRequestRepository()
	feeRepo := repository.NewFeeRepository()
	chatRepo := repository.NewChatRepository()
	userRepo := repository.NewUserRepository()

	processor := services.NewPaymentProcessorFromEnv()

	return &HandlerServices{
		AuthService:         services.NewAuthService(userRepo, os.Getenv("JWT_SECRET")),
		TripService:         services.NewTripService(tripRepo),
		RequestService:      services.NewRequestService(requestRepo, tripRepo),
		OfferService:        services.NewOfferService(requestRepo, tripRepo),
		FeeService:          services.NewFeeService(feeRepo, requestRepo, tripRepo, processor),
		ChatService:         services.NewChatService(chatRepo, requestRepo, tripRepo),
		NotificationService: services.NewNotificationService(requestRepo, feeRepo),
		ExportService:       services.NewExportService(tripRepo, requestRepo, feeRepo),
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers() {
	handlerServices = NewHandlerServices()
}
