// services/request_service.go
package services

import (
	"errors"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/repository"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// RequestService is the authoritative state store for delivery requests.
// All status changes go through the transition table below; requests are
// never deleted, declines are terminal.
//
//	pending   --counter(traveler)-->  countered
//	pending   --accept(traveler)-->   primary_accepted
//	pending   --decline(traveler)-->  declined
//	countered --accept(requester)-->  primary_accepted
//	countered --decline(either)-->    declined
//	primary_accepted --pay_fee(requester)--> fee_paid
//	fee_paid  --mark_complete(either)--> completed
type RequestService struct {
	requests RequestStore
	trips    TripStore
}

// NewRequestService creates a new request service
func NewRequestService(requests RequestStore, trips TripStore) *RequestService {
	return &RequestService{requests: requests, trips: trips}
}

// transitions maps each status to its legal outgoing actions. Anything not
// listed here is rejected, never silently ignored.
var transitions = map[string]map[string]bool{
	utils.StatusPending: {
		utils.ActionCounter: true,
		utils.ActionAccept:  true,
		utils.ActionDecline: true,
	},
	utils.StatusCountered: {
		utils.ActionAccept:  true,
		utils.ActionDecline: true,
	},
	utils.StatusPrimaryAccepted: {
		utils.ActionPayFee: true,
	},
	utils.StatusFeePaid: {
		utils.ActionMarkComplete: true,
	},
	// declined and completed are terminal
}

// ValidateTransition checks that the action is legal for the request's
// current status and that the acting user holds the right seat for it.
// Illegal (status, action) pairs fail before actor checks, so a traveler
// probing a terminal request sees the same error as the requester.
func ValidateTransition(req *models.Request, trip *models.Trip, action, actorID string) error {
	allowed := transitions[req.Status]
	if !allowed[action] {
		return utils.NewIllegalTransitionError(req.Status, action)
	}

	traveler := trip.OwnerID
	requester := req.RequesterID

	switch {
	case req.Status == utils.StatusPending:
		// counter, accept, decline all belong to the traveler
		if actorID != traveler {
			return utils.NewUnauthorizedError("only the traveler can respond to a pending request")
		}
	case req.Status == utils.StatusCountered && action == utils.ActionAccept:
		if actorID != requester {
			return utils.NewUnauthorizedError("only the sender can accept a counter-offer")
		}
	case req.Status == utils.StatusCountered && action == utils.ActionDecline:
		if actorID != traveler && actorID != requester {
			return utils.NewUnauthorizedError("only the traveler or the sender can decline")
		}
	case action == utils.ActionPayFee:
		if actorID != requester {
			return utils.NewUnauthorizedError("only the sender pays the communication fee")
		}
	case action == utils.ActionMarkComplete:
		if actorID != traveler && actorID != requester {
			return utils.NewUnauthorizedError("only the traveler or the sender can complete the delivery")
		}
	}

	return nil
}

// CreateRequest validates and records a new delivery request against a trip
func (s *RequestService) CreateRequest(requesterID string, req *models.CreateRequestRequest) (*models.Request, error) {
	if err := utils.ValidateRequired(req.ItemDescription, "itemDescription"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositive(req.WeightKg, "weightKg"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositive(req.OfferedAmount, "offeredAmount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.PickupLocation, "pickupLocation"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.DeliveryLocation, "deliveryLocation"); err != nil {
		return nil, err
	}

	trip, err := s.trips.GetTripByID(req.TripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewInvalidTripError("trip not found")
		}
		return nil, utils.NewInternalError("Failed to retrieve trip")
	}
	if trip.Status != utils.TripStatusActive {
		return nil, utils.NewInvalidTripError("trip is no longer accepting requests")
	}
	if trip.OwnerID == requesterID {
		return nil, utils.NewInvalidTripError("cannot request a carry on your own trip")
	}
	if req.WeightKg > trip.RemainingWeightKg {
		return nil, utils.NewCapacityExceededError()
	}

	request := models.NewRequest(req.TripID, requesterID, req.ItemDescription,
		req.WeightKg, utils.Round(req.OfferedAmount), req.PickupLocation, req.DeliveryLocation)

	if err := s.requests.StoreRequest(request); err != nil {
		return nil, utils.NewInternalError("Failed to store request")
	}
	return request, nil
}

// Transition applies accept, decline, or mark_complete to a request.
// Counter-offers carry an amount and go through OfferService; the fee
// payment leg goes through FeeService so the payment row and the status
// write stay in one transaction.
func (s *RequestService) Transition(requestID, action, actorID string) (*models.Request, error) {
	req, trip, err := s.loadRequestAndTrip(requestID)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(req, trip, action, actorID); err != nil {
		return nil, err
	}

	// Every write is conditional on the status the validation above saw,
	// so two racing actions on one request cannot both commit: the loser's
	// write matches no row and surfaces as an illegal transition.
	switch action {
	case utils.ActionAccept:
		// Capacity is re-checked under the trip row lock: the pre-created
		// request's weight may no longer fit after earlier accepts.
		err = s.requests.AcceptWithCapacity(req.ID, trip.ID, req.WeightKg, req.Status)
		if errors.Is(err, repository.ErrCapacityExceeded) {
			return nil, utils.NewCapacityExceededError()
		}
	case utils.ActionDecline:
		err = s.requests.UpdateStatus(req.ID, utils.StatusDeclined, req.Status)
	case utils.ActionMarkComplete:
		err = s.requests.UpdateStatus(req.ID, utils.StatusCompleted, req.Status)
	default:
		return nil, utils.NewValidationError("action must be one of: accept, decline, mark_complete")
	}
	if errors.Is(err, repository.ErrStaleStatus) {
		return nil, s.staleTransition(requestID, action)
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to update request")
	}

	return s.GetRequest(requestID)
}

// GetRequest retrieves a request by ID
func (s *RequestService) GetRequest(id string) (*models.Request, error) {
	req, err := s.requests.GetRequestByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Request")
		}
		return nil, utils.NewInternalError("Failed to retrieve request")
	}
	return req, nil
}

// GetRequestsByTrip lists the ledger for a trip. Only the owner sees it.
func (s *RequestService) GetRequestsByTrip(tripID, actorID string) ([]models.Request, error) {
	trip, err := s.trips.GetTripByID(tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Trip")
		}
		return nil, utils.NewInternalError("Failed to retrieve trip")
	}
	if trip.OwnerID != actorID {
		return nil, utils.NewUnauthorizedError("only the trip owner can view its requests")
	}

	requests, err := s.requests.GetRequestsByTrip(tripID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve requests")
	}
	return requests, nil
}

// GetRequestsByRequester lists a sender's requests with their trips
func (s *RequestService) GetRequestsByRequester(requesterID string) ([]models.RequestWithTrip, error) {
	requests, err := s.requests.GetRequestsByRequester(requesterID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve requests")
	}
	return requests, nil
}

// staleTransition re-reads a request after a conditional status write
// matched nothing: a concurrent action moved it first, so the attempted
// transition is reported against the status that actually won.
func (s *RequestService) staleTransition(requestID, action string) error {
	current, err := s.GetRequest(requestID)
	if err != nil {
		return err
	}
	return utils.NewIllegalTransitionError(current.Status, action)
}

// loadRequestAndTrip fetches a request together with its owning trip
func (s *RequestService) loadRequestAndTrip(requestID string) (*models.Request, *models.Trip, error) {
	req, err := s.GetRequest(requestID)
	if err != nil {
		return nil, nil, err
	}
	trip, err := s.trips.GetTripByID(req.TripID)
	if err != nil {
		return nil, nil, utils.NewInternalError("Failed to retrieve trip")
	}
	return req, trip, nil
}
