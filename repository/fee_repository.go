// repository/fee_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/baseelze-maker/wasel-backend/models"
)

// FeeRepository handles database operations for communication fee payments.
// The fee_payments table is the source of truth for chat unlocking; the
// unique index on request_id backs the at-most-one-payment guarantee.
type FeeRepository struct {
	DB *sql.DB
}

// NewFeeRepository creates a new FeeRepository
func NewFeeRepository() *FeeRepository {
	return &FeeRepository{
		DB: GetDB(),
	}
}

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

// StoreFeePayment inserts the fee payment row and moves the request to
// fee_paid in one transaction. Returns ErrDuplicate when a payment already
// exists for the request, including when two payments race.
func (r *FeeRepository) StoreFeePayment(payment *models.FeePayment) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO fee_payments (request_id, payer_id, amount, processor_ref, paid_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		payment.RequestID, payment.PayerID, payment.Amount, payment.ProcessorRef, payment.PaidAt,
	).Scan(&payment.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert fee payment: %v", err)
	}

	// Conditional on the request still being primary_accepted: if it moved
	// in between, the transaction rolls back and no payment row survives.
	result, err := tx.Exec(
		"UPDATE requests SET status = 'fee_paid', updated_at = now() WHERE id = $1 AND status = 'primary_accepted'",
		payment.RequestID,
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

// GetFeePaymentByRequest retrieves the fee payment for a request, if any
func (r *FeeRepository) GetFeePaymentByRequest(requestID string) (*models.FeePayment, error) {
	var payment models.FeePayment
	err := r.DB.QueryRow(
		`SELECT id, request_id, payer_id, amount, processor_ref, paid_at
		 FROM fee_payments WHERE request_id = $1`,
		requestID,
	).Scan(&payment.ID, &payment.RequestID, &payment.PayerID, &payment.Amount,
		&payment.ProcessorRef, &payment.PaidAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get fee payment: %v", err)
	}
	return &payment, nil
}

// GetFeePaymentsForOwner retrieves fee payments on requests against any trip
// owned by a traveler. Used to project the traveler's notification feed.
func (r *FeeRepository) GetFeePaymentsForOwner(ownerID string) ([]models.FeePayment, error) {
	rows, err := r.DB.Query(
		`SELECT f.id, f.request_id, f.payer_id, f.amount, f.processor_ref, f.paid_at
		 FROM fee_payments f
		 JOIN requests r ON r.id = f.request_id
		 JOIN trips t ON t.id = r.trip_id
		 WHERE t.owner_id = $1
		 ORDER BY f.paid_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee payments: %v", err)
	}
	defer rows.Close()

	var payments []models.FeePayment
	for rows.Next() {
		var payment models.FeePayment
		err := rows.Scan(&payment.ID, &payment.RequestID, &payment.PayerID, &payment.Amount,
			&payment.ProcessorRef, &payment.PaidAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee payment: %v", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fee payments: %v", err)
	}
	return payments, nil
}
