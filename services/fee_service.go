// services/fee_service.go
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/repository"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// FeeService charges the flat communication fee and gates chat on it.
// The fee_payments table is the source of truth; the in-process cache only
// remembers positive answers, so a cache miss always falls through to the
// database before chat is refused.
type FeeService struct {
	fees      FeeStore
	requests  RequestStore
	trips     TripStore
	processor PaymentProcessor

	mu       sync.RWMutex
	unlocked map[string]bool
}

// NewFeeService creates a new fee service
func NewFeeService(fees FeeStore, requests RequestStore, trips TripStore, processor PaymentProcessor) *FeeService {
	return &FeeService{
		fees:      fees,
		requests:  requests,
		trips:     trips,
		processor: processor,
		unlocked:  make(map[string]bool),
	}
}

// PayFee charges the communication fee for a primary-accepted request and
// moves it to fee_paid. At most one payment ever exists per request: a
// repeat call fails with DuplicatePayment, and two racing payments are
// resolved by the unique index underneath.
func (s *FeeService) PayFee(requestID, payerID string) (*models.FeePayment, error) {
	req, err := s.requests.GetRequestByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Request")
		}
		return nil, utils.NewInternalError("Failed to retrieve request")
	}

	if _, err := s.fees.GetFeePaymentByRequest(requestID); err == nil {
		return nil, utils.NewDuplicatePaymentError()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewInternalError("Failed to check fee payment")
	}

	if req.Status != utils.StatusPrimaryAccepted {
		return nil, utils.NewNotEligibleError(
			fmt.Sprintf("the communication fee can only be paid for an accepted request, not one in status %q", req.Status))
	}
	if req.RequesterID != payerID {
		return nil, utils.NewUnauthorizedError("only the sender pays the communication fee")
	}

	ref, err := s.processor.Charge(payerID, utils.CommunicationFee,
		fmt.Sprintf("Wasel communication fee for request %s", requestID))
	if err != nil {
		// Transport/processor failure: retryable, nothing was recorded.
		return nil, utils.NewUpstreamError("payment could not be processed, please try again")
	}

	payment := &models.FeePayment{
		RequestID:    requestID,
		PayerID:      payerID,
		Amount:       utils.CommunicationFee,
		ProcessorRef: ref,
		PaidAt:       time.Now(),
	}
	if err := s.fees.StoreFeePayment(payment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewDuplicatePaymentError()
		}
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, utils.NewNotEligibleError("the request is no longer awaiting the communication fee")
		}
		return nil, utils.NewInternalError("Failed to record fee payment")
	}

	s.mu.Lock()
	s.unlocked[requestID] = true
	s.mu.Unlock()

	return payment, nil
}

// IsUnlocked reports whether the communication fee has been paid for a
// request. True iff a fee payment row exists. Only the request's sender
// and the trip owner may ask, same as the chat endpoints it gates.
func (s *FeeService) IsUnlocked(requestID, actorID string) (bool, error) {
	req, err := s.requests.GetRequestByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, utils.NewNotFoundError("Request")
		}
		return false, utils.NewInternalError("Failed to retrieve request")
	}
	trip, err := s.trips.GetTripByID(req.TripID)
	if err != nil {
		return false, utils.NewInternalError("Failed to retrieve trip")
	}
	if actorID != req.RequesterID && actorID != trip.OwnerID {
		return false, utils.NewUnauthorizedError("only the sender and the traveler can view this request's unlock state")
	}

	s.mu.RLock()
	cached := s.unlocked[requestID]
	s.mu.RUnlock()
	if cached {
		return true, nil
	}

	_, err = s.fees.GetFeePaymentByRequest(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, utils.NewInternalError("Failed to check fee payment")
	}

	s.mu.Lock()
	s.unlocked[requestID] = true
	s.mu.Unlock()
	return true, nil
}

// PaymentsForOwner lists fee payments on requests against a traveler's trips
func (s *FeeService) PaymentsForOwner(ownerID string) ([]models.FeePayment, error) {
	payments, err := s.fees.GetFeePaymentsForOwner(ownerID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve fee payments")
	}
	return payments, nil
}
