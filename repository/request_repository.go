// repository/request_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/baseelze-maker/wasel-backend/models"
)

// RequestRepository handles database operations for delivery requests
type RequestRepository struct {
	DB *sql.DB
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository() *RequestRepository {
	return &RequestRepository{
		DB: GetDB(),
	}
}

const requestColumns = `id, trip_id, requester_id, item_description, weight_kg,
	offered_amount, counter_offer_amount, status, pickup_location, delivery_location,
	created_at, updated_at`

// StoreRequest saves a new delivery request
func (r *RequestRepository) StoreRequest(req *models.Request) error {
	_, err := r.DB.Exec(
		`INSERT INTO requests (id, trip_id, requester_id, item_description, weight_kg,
			offered_amount, counter_offer_amount, status, pickup_location, delivery_location,
			created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		req.ID, req.TripID, req.RequesterID, req.ItemDescription, req.WeightKg,
		req.OfferedAmount, req.CounterOfferAmount, req.Status, req.PickupLocation,
		req.DeliveryLocation, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request: %v", err)
	}
	return nil
}

// GetRequestByID retrieves a request by its ID
func (r *RequestRepository) GetRequestByID(id string) (*models.Request, error) {
	row := r.DB.QueryRow("SELECT "+requestColumns+" FROM requests WHERE id = $1", id)
	return scanRequest(row)
}

// GetRequestsByTrip retrieves all requests against a trip, oldest first
func (r *RequestRepository) GetRequestsByTrip(tripID string) ([]models.Request, error) {
	rows, err := r.DB.Query(
		"SELECT "+requestColumns+" FROM requests WHERE trip_id = $1 ORDER BY created_at ASC",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %v", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// GetRequestsByRequester retrieves all requests a sender has made, newest first
func (r *RequestRepository) GetRequestsByRequester(requesterID string) ([]models.RequestWithTrip, error) {
	rows, err := r.DB.Query(
		`SELECT r.id, r.trip_id, r.requester_id, r.item_description, r.weight_kg,
			r.offered_amount, r.counter_offer_amount, r.status, r.pickup_location, r.delivery_location,
			r.created_at, r.updated_at, t.origin, t.destination, t.owner_id
		 FROM requests r
		 JOIN trips t ON t.id = r.trip_id
		 WHERE r.requester_id = $1
		 ORDER BY r.created_at DESC`,
		requesterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %v", err)
	}
	defer rows.Close()

	return collectRequestsWithTrip(rows)
}

// GetRequestsForOwner retrieves all requests against any trip owned by a traveler
func (r *RequestRepository) GetRequestsForOwner(ownerID string) ([]models.RequestWithTrip, error) {
	rows, err := r.DB.Query(
		`SELECT r.id, r.trip_id, r.requester_id, r.item_description, r.weight_kg,
			r.offered_amount, r.counter_offer_amount, r.status, r.pickup_location, r.delivery_location,
			r.created_at, r.updated_at, t.origin, t.destination, t.owner_id
		 FROM requests r
		 JOIN trips t ON t.id = r.trip_id
		 WHERE t.owner_id = $1
		 ORDER BY r.created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get requests: %v", err)
	}
	defer rows.Close()

	return collectRequestsWithTrip(rows)
}

// UpdateStatus moves a request from fromStatus to status. The write is
// conditional on the status the caller validated against, so a transition
// that raced with another one matches no row instead of committing an
// out-of-table move. Returns ErrStaleStatus when the condition misses.
func (r *RequestRepository) UpdateStatus(id, status, fromStatus string) error {
	result, err := r.DB.Exec(
		"UPDATE requests SET status = $2, updated_at = now() WHERE id = $1 AND status = $3",
		id, status, fromStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update request status: %v", err)
	}
	if affected == 0 {
		return r.conflictOrMissing(id)
	}
	return nil
}

// SetCounterOffer records a traveler's counter-offer and moves the request
// to countered. The original offered amount is left untouched. Conditional
// on the request still being pending.
func (r *RequestRepository) SetCounterOffer(id string, amount float64) error {
	result, err := r.DB.Exec(
		"UPDATE requests SET counter_offer_amount = $2, status = 'countered', updated_at = now() WHERE id = $1 AND status = 'pending'",
		id, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to set counter offer: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set counter offer: %v", err)
	}
	if affected == 0 {
		return r.conflictOrMissing(id)
	}
	return nil
}

// conflictOrMissing reports why a conditional status write matched no row
func (r *RequestRepository) conflictOrMissing(id string) error {
	var status string
	err := r.DB.QueryRow("SELECT status FROM requests WHERE id = $1", id).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check request status: %v", err)
	}
	return ErrStaleStatus
}

// AcceptWithCapacity performs the accept transition atomically: it locks the
// trip row, re-checks remaining capacity against the request weight, then
// decrements the capacity and writes the new status in the same transaction.
// Two concurrent accepts racing for the last kilograms serialize on the row
// lock; the loser gets ErrCapacityExceeded. The status write is conditional
// on fromStatus, the status the caller validated against: if another action
// moved the request in between, the whole transaction rolls back with
// ErrStaleStatus and no capacity is taken.
func (r *RequestRepository) AcceptWithCapacity(requestID, tripID string, weightKg float64, fromStatus string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var remaining float64
	err = tx.QueryRow(
		"SELECT remaining_weight_kg FROM trips WHERE id = $1 FOR UPDATE",
		tripID,
	).Scan(&remaining)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock trip: %v", err)
	}

	if weightKg > remaining {
		return ErrCapacityExceeded
	}

	_, err = tx.Exec(
		"UPDATE trips SET remaining_weight_kg = remaining_weight_kg - $2 WHERE id = $1",
		tripID, weightKg,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement capacity: %v", err)
	}

	result, err := tx.Exec(
		"UPDATE requests SET status = 'primary_accepted', updated_at = now() WHERE id = $1 AND status = $2",
		requestID, fromStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update request status: %v", err)
	}
	if affected == 0 {
		return ErrStaleStatus
	}

	return tx.Commit()
}

func scanRequest(s scanner) (*models.Request, error) {
	var req models.Request
	var counter sql.NullFloat64
	err := s.Scan(
		&req.ID, &req.TripID, &req.RequesterID, &req.ItemDescription, &req.WeightKg,
		&req.OfferedAmount, &counter, &req.Status, &req.PickupLocation, &req.DeliveryLocation,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan request: %v", err)
	}
	if counter.Valid {
		req.CounterOfferAmount = &counter.Float64
	}
	return &req, nil
}

func collectRequests(rows *sql.Rows) ([]models.Request, error) {
	var requests []models.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requests: %v", err)
	}
	return requests, nil
}

func collectRequestsWithTrip(rows *sql.Rows) ([]models.RequestWithTrip, error) {
	var requests []models.RequestWithTrip
	for rows.Next() {
		var req models.RequestWithTrip
		var counter sql.NullFloat64
		err := rows.Scan(
			&req.ID, &req.TripID, &req.RequesterID, &req.ItemDescription, &req.WeightKg,
			&req.OfferedAmount, &counter, &req.Status, &req.PickupLocation, &req.DeliveryLocation,
			&req.CreatedAt, &req.UpdatedAt, &req.TripOrigin, &req.TripDestination, &req.TripOwnerID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %v", err)
		}
		if counter.Valid {
			req.CounterOfferAmount = &counter.Float64
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requests: %v", err)
	}
	return requests, nil
}
