// services/trip_service.go
package services

import (
	"errors"
	"time"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/repository"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// TripService handles trip catalog business logic
type TripService struct {
	trips TripStore
}

// NewTripService creates a new trip service
func NewTripService(trips TripStore) *TripService {
	return &TripService{trips: trips}
}

// CreateTrip validates and posts a new trip for a traveler
func (s *TripService) CreateTrip(ownerID, role string, req *models.CreateTripRequest) (*models.Trip, error) {
	if role != utils.RoleTraveler {
		return nil, utils.NewUnauthorizedError("only travelers can post trips")
	}
	if err := utils.ValidateRequired(req.Origin, "origin"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.Destination, "destination"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositive(req.AvailableWeightKg, "availableWeightKg"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNonNegative(req.SuggestedPrice, "suggestedPrice"); err != nil {
		return nil, err
	}

	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		return nil, utils.NewValidationError("travelDate must be in YYYY-MM-DD format")
	}
	if travelDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, utils.NewValidationError("travelDate cannot be in the past")
	}
	if req.CanDeliverAtFinalDestination && req.FinalDestination == "" {
		return nil, utils.NewValidationError("finalDestination is required when delivery there is offered")
	}

	trip := models.NewTrip(ownerID, req.Origin, req.Destination, req.FinalDestination,
		travelDate, req.AvailableWeightKg, utils.Round(req.SuggestedPrice),
		req.CanDeliverAtDestination, req.CanDeliverAtFinalDestination)

	if err := s.trips.StoreTrip(trip); err != nil {
		return nil, utils.NewInternalError("Failed to store trip")
	}
	return trip, nil
}

// GetTrip retrieves a trip by ID
func (s *TripService) GetTrip(id string) (*models.Trip, error) {
	trip, err := s.trips.GetTripByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Trip")
		}
		return nil, utils.NewInternalError("Failed to retrieve trip")
	}
	return trip, nil
}

// SearchTrips returns open trips matching the filters
func (s *TripService) SearchTrips(req *models.SearchTripsRequest) ([]models.Trip, error) {
	var date *time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, utils.NewValidationError("date must be in YYYY-MM-DD format")
		}
		date = &parsed
	}

	trips, err := s.trips.SearchTrips(req.Origin, req.Destination, date)
	if err != nil {
		return nil, utils.NewInternalError("Failed to search trips")
	}
	return trips, nil
}

// GetTripsByOwner returns all trips posted by a traveler
func (s *TripService) GetTripsByOwner(ownerID string) ([]models.Trip, error) {
	trips, err := s.trips.GetTripsByOwner(ownerID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve trips")
	}
	return trips, nil
}

// CloseTrip marks a trip completed. Only the owner can close it.
func (s *TripService) CloseTrip(id, actorID string) (*models.Trip, error) {
	trip, err := s.GetTrip(id)
	if err != nil {
		return nil, err
	}
	if trip.OwnerID != actorID {
		return nil, utils.NewUnauthorizedError("only the trip owner can close it")
	}
	if trip.Status != utils.TripStatusActive {
		return nil, utils.NewInvalidTripError("trip is already closed")
	}

	if err := s.trips.CloseTrip(id); err != nil {
		return nil, utils.NewInternalError("Failed to close trip")
	}
	trip.Status = utils.TripStatusCompleted
	return trip, nil
}
