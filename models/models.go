// models/models.go
package models

import (
	"time"

	"github.com/baseelze-maker/wasel-backend/utils"
)

// User represents a registered traveler or sender
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Trip represents a traveler's announced journey with spare carrying capacity
type Trip struct {
	ID                           string    `json:"id"`
	OwnerID                      string    `json:"ownerId"`
	Code                         string    `json:"code"`
	Origin                       string    `json:"origin"`
	Destination                  string    `json:"destination"`
	FinalDestination             string    `json:"finalDestination,omitempty"`
	TravelDate                   time.Time `json:"travelDate"`
	AvailableWeightKg            float64   `json:"availableWeightKg"`
	RemainingWeightKg            float64   `json:"remainingWeightKg"`
	SuggestedPrice               float64   `json:"suggestedPrice"`
	CanDeliverAtDestination      bool      `json:"canDeliverAtDestination"`
	CanDeliverAtFinalDestination bool      `json:"canDeliverAtFinalDestination"`
	Status                       string    `json:"status"`
	CreatedAt                    time.Time `json:"createdAt"`
}

// Request represents a sender's ask to have an item carried on a trip.
// Requests are never deleted; declines are terminal, kept for audit.
type Request struct {
	ID                 string    `json:"id"`
	TripID             string    `json:"tripId"`
	RequesterID        string    `json:"requesterId"`
	ItemDescription    string    `json:"itemDescription"`
	WeightKg           float64   `json:"weightKg"`
	OfferedAmount      float64   `json:"offeredAmount"`
	CounterOfferAmount *float64  `json:"counterOfferAmount,omitempty"`
	Status             string    `json:"status"`
	PickupLocation     string    `json:"pickupLocation"`
	DeliveryLocation   string    `json:"deliveryLocation"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// BindingAmount returns the price that governs the carry once accepted:
// the counter-offer when one was made, the original offer otherwise.
func (r *Request) BindingAmount() float64 {
	if r.CounterOfferAmount != nil {
		return *r.CounterOfferAmount
	}
	return r.OfferedAmount
}

// FeePayment records the flat communication fee paid for one request.
// At most one row exists per request; the table is the source of truth
// for whether chat is unlocked.
type FeePayment struct {
	ID           int       `json:"id"`
	RequestID    string    `json:"requestId"`
	PayerID      string    `json:"payerId"`
	Amount       float64   `json:"amount"`
	ProcessorRef string    `json:"processorRef"`
	PaidAt       time.Time `json:"paidAt"`
}

// ChatMessage represents one message in a request's thread
type ChatMessage struct {
	ID             string    `json:"id"`
	RequestID      string    `json:"requestId"`
	SenderID       string    `json:"senderId"`
	Text           string    `json:"text"`
	SentAt         time.Time `json:"sentAt"`
	DeliveryStatus string    `json:"deliveryStatus"`
}

// RequestWithTrip pairs a request with its owning trip, for views that
// need both sides (feeds, ledger export, traveler screens).
type RequestWithTrip struct {
	Request
	TripOrigin      string `json:"tripOrigin"`
	TripDestination string `json:"tripDestination"`
	TripOwnerID     string `json:"tripOwnerId"`
}

// Notification is one typed record in a user's feed, derived from the
// request ledger and fee history. It has no storage of its own.
type Notification struct {
	Type       string    `json:"type"`
	RequestID  string    `json:"requestId"`
	TripID     string    `json:"tripId"`
	Message    string    `json:"message"`
	Amount     float64   `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NotificationGroup buckets feed records by day boundary
type NotificationGroup struct {
	Label         string         `json:"label"` // today | yesterday | earlier
	Notifications []Notification `json:"notifications"`
}

// NewTrip creates a new Trip instance
func NewTrip(ownerID, origin, destination, finalDestination string, travelDate time.Time, availableWeightKg, suggestedPrice float64, atDest, atFinal bool) *Trip {
	return &Trip{
		ID:                           utils.GenerateID(),
		OwnerID:                      ownerID,
		Code:                         utils.GenerateCode(),
		Origin:                       origin,
		Destination:                  destination,
		FinalDestination:             finalDestination,
		TravelDate:                   travelDate,
		AvailableWeightKg:            availableWeightKg,
		RemainingWeightKg:            availableWeightKg,
		SuggestedPrice:               suggestedPrice,
		CanDeliverAtDestination:      atDest,
		CanDeliverAtFinalDestination: atFinal,
		Status:                       utils.TripStatusActive,
		CreatedAt:                    time.Now(),
	}
}

// NewRequest creates a new pending Request instance
func NewRequest(tripID, requesterID, itemDescription string, weightKg, offeredAmount float64, pickupLocation, deliveryLocation string) *Request {
	now := time.Now()
	return &Request{
		ID:               utils.GenerateID(),
		TripID:           tripID,
		RequesterID:      requesterID,
		ItemDescription:  itemDescription,
		WeightKg:         weightKg,
		OfferedAmount:    offeredAmount,
		Status:           utils.StatusPending,
		PickupLocation:   pickupLocation,
		DeliveryLocation: deliveryLocation,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NewChatMessage creates a new ChatMessage in the initial delivery state
func NewChatMessage(requestID, senderID, text string) *ChatMessage {
	return &ChatMessage{
		ID:             utils.GenerateID(),
		RequestID:      requestID,
		SenderID:       senderID,
		Text:           text,
		SentAt:         time.Now(),
		DeliveryStatus: utils.DeliverySent,
	}
}
