// repository/trip_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/baseelze-maker/wasel-backend/models"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	DB *sql.DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository() *TripRepository {
	return &TripRepository{
		DB: GetDB(),
	}
}

const tripColumns = `id, owner_id, code, origin, destination, final_destination, travel_date,
	available_weight_kg, remaining_weight_kg, suggested_price,
	can_deliver_at_destination, can_deliver_at_final_destination, status, created_at`

// StoreTrip saves a trip to the database
func (r *TripRepository) StoreTrip(trip *models.Trip) error {
	_, err := r.DB.Exec(
		`INSERT INTO trips (id, owner_id, code, origin, destination, final_destination, travel_date,
			available_weight_kg, remaining_weight_kg, suggested_price,
			can_deliver_at_destination, can_deliver_at_final_destination, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		trip.ID, trip.OwnerID, trip.Code, trip.Origin, trip.Destination, trip.FinalDestination,
		trip.TravelDate, trip.AvailableWeightKg, trip.RemainingWeightKg, trip.SuggestedPrice,
		trip.CanDeliverAtDestination, trip.CanDeliverAtFinalDestination, trip.Status, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %v", err)
	}
	return nil
}

// GetTripByID retrieves a trip by its ID
func (r *TripRepository) GetTripByID(id string) (*models.Trip, error) {
	row := r.DB.QueryRow("SELECT "+tripColumns+" FROM trips WHERE id = $1", id)
	return scanTrip(row)
}

// GetTripByCode retrieves a trip by its share code
func (r *TripRepository) GetTripByCode(code string) (*models.Trip, error) {
	row := r.DB.QueryRow("SELECT "+tripColumns+" FROM trips WHERE code = $1", code)
	return scanTrip(row)
}

// SearchTrips returns active trips matching the given filters, soonest first.
// Empty filter values match everything; date filters on travel_date >= date.
func (r *TripRepository) SearchTrips(origin, destination string, date *time.Time) ([]models.Trip, error) {
	query := "SELECT " + tripColumns + ` FROM trips
		WHERE status = 'active'
		  AND ($1 = '' OR origin ILIKE $1)
		  AND ($2 = '' OR destination ILIKE $2)
		  AND ($3::date IS NULL OR travel_date >= $3)
		ORDER BY travel_date ASC`

	var dateArg interface{}
	if date != nil {
		dateArg = *date
	}

	rows, err := r.DB.Query(query, origin, destination, dateArg)
	if err != nil {
		return nil, fmt.Errorf("failed to search trips: %v", err)
	}
	defer rows.Close()

	return collectTrips(rows)
}

// GetTripsByOwner retrieves all trips posted by a traveler, newest first
func (r *TripRepository) GetTripsByOwner(ownerID string) ([]models.Trip, error) {
	rows, err := r.DB.Query(
		"SELECT "+tripColumns+" FROM trips WHERE owner_id = $1 ORDER BY created_at DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get trips: %v", err)
	}
	defer rows.Close()

	return collectTrips(rows)
}

// CloseTrip marks a trip completed
func (r *TripRepository) CloseTrip(id string) error {
	result, err := r.DB.Exec("UPDATE trips SET status = 'completed' WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to close trip: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to close trip: %v", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(s scanner) (*models.Trip, error) {
	var trip models.Trip
	err := s.Scan(
		&trip.ID, &trip.OwnerID, &trip.Code, &trip.Origin, &trip.Destination, &trip.FinalDestination,
		&trip.TravelDate, &trip.AvailableWeightKg, &trip.RemainingWeightKg, &trip.SuggestedPrice,
		&trip.CanDeliverAtDestination, &trip.CanDeliverAtFinalDestination, &trip.Status, &trip.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan trip: %v", err)
	}
	return &trip, nil
}

func collectTrips(rows *sql.Rows) ([]models.Trip, error) {
	var trips []models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trips: %v", err)
	}
	return trips, nil
}
