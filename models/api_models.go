// models/api_models.go
package models

// SignUpRequest request model
type SignUpRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// SignInRequest request model
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse response model
type SessionResponse struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user"`
}

// CreateTripRequest request model
type CreateTripRequest struct {
	Origin                       string  `json:"origin" binding:"required"`
	Destination                  string  `json:"destination" binding:"required"`
	FinalDestination             string  `json:"finalDestination"`
	TravelDate                   string  `json:"travelDate" binding:"required"` // YYYY-MM-DD
	AvailableWeightKg            float64 `json:"availableWeightKg" binding:"required,gt=0"`
	SuggestedPrice               float64 `json:"suggestedPrice" binding:"min=0"`
	CanDeliverAtDestination      bool    `json:"canDeliverAtDestination"`
	CanDeliverAtFinalDestination bool    `json:"canDeliverAtFinalDestination"`
}

// SearchTripsRequest query model
type SearchTripsRequest struct {
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
	Date        string `form:"date"` // YYYY-MM-DD, matches travel dates on or after
}

// CreateRequestRequest request model
type CreateRequestRequest struct {
	TripID           string  `json:"tripId" binding:"required"`
	ItemDescription  string  `json:"itemDescription" binding:"required"`
	WeightKg         float64 `json:"weightKg" binding:"required,gt=0"`
	OfferedAmount    float64 `json:"offeredAmount" binding:"required,gt=0"`
	PickupLocation   string  `json:"pickupLocation" binding:"required"`
	DeliveryLocation string  `json:"deliveryLocation" binding:"required"`
}

// CounterOfferRequest request model
type CounterOfferRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// SendMessageRequest request model
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// UnlockedResponse response model
type UnlockedResponse struct {
	RequestID string `json:"requestId"`
	Unlocked  bool   `json:"unlocked"`
}
