// services/offer_service.go
package services

import (
	"errors"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/repository"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// OfferService applies the counter-offer leg of the negotiation. A counter
// is a one-shot replacement price: the traveler counters once, the sender
// accepts or declines. There is no multi-round back-and-forth.
type OfferService struct {
	requests RequestStore
	trips    TripStore
}

// NewOfferService creates a new offer service
func NewOfferService(requests RequestStore, trips TripStore) *OfferService {
	return &OfferService{requests: requests, trips: trips}
}

// Counter records the traveler's counter-offer on a pending request.
// The original offered amount stays on the request; the counter becomes
// the binding price only once the sender accepts.
func (s *OfferService) Counter(requestID string, amount float64, actorID string) (*models.Request, error) {
	if err := utils.ValidatePositive(amount, "amount"); err != nil {
		return nil, err
	}

	req, err := s.requests.GetRequestByID(requestID)
	if err != nil {
		return nil, utils.NewNotFoundError("Request")
	}
	trip, err := s.trips.GetTripByID(req.TripID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve trip")
	}

	if err := ValidateTransition(req, trip, utils.ActionCounter, actorID); err != nil {
		return nil, err
	}

	// The write only matches a still-pending row; a concurrent accept
	// or decline landing first turns the counter into an illegal move.
	if err := s.requests.SetCounterOffer(requestID, utils.Round(amount)); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			current, gerr := s.requests.GetRequestByID(requestID)
			if gerr != nil {
				return nil, utils.NewInternalError("Failed to retrieve request")
			}
			return nil, utils.NewIllegalTransitionError(current.Status, utils.ActionCounter)
		}
		return nil, utils.NewInternalError("Failed to record counter-offer")
	}

	updated, err := s.requests.GetRequestByID(requestID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve request")
	}
	return updated, nil
}
