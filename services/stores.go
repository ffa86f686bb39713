// services/stores.go
//
// Store interfaces consumed by the services. The repository package provides
// the Postgres implementations; tests inject in-memory fakes. Defining the
// interfaces on the consumer side keeps the services free of SQL concerns.
package services

import (
	"time"

	"github.com/baseelze-maker/wasel-backend/models"
)

// TripStore is the persistence surface for trips
type TripStore interface {
	StoreTrip(trip *models.Trip) error
	GetTripByID(id string) (*models.Trip, error)
	GetTripByCode(code string) (*models.Trip, error)
	SearchTrips(origin, destination string, date *time.Time) ([]models.Trip, error)
	GetTripsByOwner(ownerID string) ([]models.Trip, error)
	CloseTrip(id string) error
}

// RequestStore is the persistence surface for delivery requests
type RequestStore interface {
	StoreRequest(req *models.Request) error
	GetRequestByID(id string) (*models.Request, error)
	GetRequestsByTrip(tripID string) ([]models.Request, error)
	GetRequestsByRequester(requesterID string) ([]models.RequestWithTrip, error)
	GetRequestsForOwner(ownerID string) ([]models.RequestWithTrip, error)
	UpdateStatus(id, status, fromStatus string) error
	SetCounterOffer(id string, amount float64) error
	AcceptWithCapacity(requestID, tripID string, weightKg float64, fromStatus string) error
}

// FeeStore is the persistence surface for communication fee payments
type FeeStore interface {
	StoreFeePayment(payment *models.FeePayment) error
	GetFeePaymentByRequest(requestID string) (*models.FeePayment, error)
	GetFeePaymentsForOwner(ownerID string) ([]models.FeePayment, error)
}

// ChatStore is the persistence surface for chat threads
type ChatStore interface {
	StoreMessage(msg *models.ChatMessage) error
	GetMessageByID(id string) (*models.ChatMessage, error)
	GetMessagesByRequest(requestID string) ([]models.ChatMessage, error)
	UpdateDeliveryStatus(id, status string) error
}

// UserStore is the persistence surface for users
type UserStore interface {
	StoreUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}
