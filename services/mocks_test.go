package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/repository"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// In-memory fakes implementing the store interfaces, mirroring the
// repository semantics (sentinel errors, capacity check under accept,
// fee uniqueness) so services can be exercised without a database.

type fakeTripStore struct {
	trips map[string]*models.Trip
}

func newFakeTripStore() *fakeTripStore {
	return &fakeTripStore{trips: make(map[string]*models.Trip)}
}

func (s *fakeTripStore) StoreTrip(trip *models.Trip) error {
	copied := *trip
	s.trips[trip.ID] = &copied
	return nil
}

func (s *fakeTripStore) GetTripByID(id string) (*models.Trip, error) {
	trip, ok := s.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *trip
	return &copied, nil
}

func (s *fakeTripStore) GetTripByCode(code string) (*models.Trip, error) {
	for _, trip := range s.trips {
		if trip.Code == code {
			copied := *trip
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeTripStore) SearchTrips(origin, destination string, date *time.Time) ([]models.Trip, error) {
	var result []models.Trip
	for _, trip := range s.trips {
		if trip.Status != utils.TripStatusActive {
			continue
		}
		result = append(result, *trip)
	}
	return result, nil
}

func (s *fakeTripStore) GetTripsByOwner(ownerID string) ([]models.Trip, error) {
	var result []models.Trip
	for _, trip := range s.trips {
		if trip.OwnerID == ownerID {
			result = append(result, *trip)
		}
	}
	return result, nil
}

func (s *fakeTripStore) CloseTrip(id string) error {
	trip, ok := s.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	trip.Status = utils.TripStatusCompleted
	return nil
}

type fakeRequestStore struct {
	requests  map[string]*models.Request
	tripStore *fakeTripStore

	// beforeStatusWrite, when set, runs once just before the next status
	// write, after the caller's validation read. Lets tests interleave a
	// competing transition into the gap.
	beforeStatusWrite func()
}

func (s *fakeRequestStore) fireBeforeStatusWrite() {
	if hook := s.beforeStatusWrite; hook != nil {
		s.beforeStatusWrite = nil
		hook()
	}
}

func newFakeRequestStore(trips *fakeTripStore) *fakeRequestStore {
	return &fakeRequestStore{
		requests:  make(map[string]*models.Request),
		tripStore: trips,
	}
}

func (s *fakeRequestStore) StoreRequest(req *models.Request) error {
	copied := *req
	s.requests[req.ID] = &copied
	return nil
}

func (s *fakeRequestStore) GetRequestByID(id string) (*models.Request, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (s *fakeRequestStore) GetRequestsByTrip(tripID string) ([]models.Request, error) {
	var result []models.Request
	for _, req := range s.requests {
		if req.TripID == tripID {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (s *fakeRequestStore) withTrip(req *models.Request) models.RequestWithTrip {
	out := models.RequestWithTrip{Request: *req}
	if trip, ok := s.tripStore.trips[req.TripID]; ok {
		out.TripOrigin = trip.Origin
		out.TripDestination = trip.Destination
		out.TripOwnerID = trip.OwnerID
	}
	return out
}

func (s *fakeRequestStore) GetRequestsByRequester(requesterID string) ([]models.RequestWithTrip, error) {
	var result []models.RequestWithTrip
	for _, req := range s.requests {
		if req.RequesterID == requesterID {
			result = append(result, s.withTrip(req))
		}
	}
	return result, nil
}

func (s *fakeRequestStore) GetRequestsForOwner(ownerID string) ([]models.RequestWithTrip, error) {
	var result []models.RequestWithTrip
	for _, req := range s.requests {
		if trip, ok := s.tripStore.trips[req.TripID]; ok && trip.OwnerID == ownerID {
			result = append(result, s.withTrip(req))
		}
	}
	return result, nil
}

func (s *fakeRequestStore) UpdateStatus(id, status, fromStatus string) error {
	s.fireBeforeStatusWrite()
	req, ok := s.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	if req.Status != fromStatus {
		return repository.ErrStaleStatus
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}

func (s *fakeRequestStore) SetCounterOffer(id string, amount float64) error {
	s.fireBeforeStatusWrite()
	req, ok := s.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	if req.Status != utils.StatusPending {
		return repository.ErrStaleStatus
	}
	req.CounterOfferAmount = &amount
	req.Status = utils.StatusCountered
	req.UpdatedAt = time.Now()
	return nil
}

func (s *fakeRequestStore) AcceptWithCapacity(requestID, tripID string, weightKg float64, fromStatus string) error {
	s.fireBeforeStatusWrite()
	trip, ok := s.tripStore.trips[tripID]
	if !ok {
		return repository.ErrNotFound
	}
	req, ok := s.requests[requestID]
	if !ok {
		return repository.ErrNotFound
	}
	if req.Status != fromStatus {
		return repository.ErrStaleStatus
	}
	if weightKg > trip.RemainingWeightKg {
		return repository.ErrCapacityExceeded
	}
	trip.RemainingWeightKg -= weightKg
	req.Status = utils.StatusPrimaryAccepted
	req.UpdatedAt = time.Now()
	return nil
}

type fakeFeeStore struct {
	payments     map[string]*models.FeePayment
	requestStore *fakeRequestStore
	nextID       int
}

func newFakeFeeStore(requests *fakeRequestStore) *fakeFeeStore {
	return &fakeFeeStore{
		payments:     make(map[string]*models.FeePayment),
		requestStore: requests,
	}
}

func (s *fakeFeeStore) StoreFeePayment(payment *models.FeePayment) error {
	if _, exists := s.payments[payment.RequestID]; exists {
		return repository.ErrDuplicate
	}
	s.nextID++
	payment.ID = s.nextID
	copied := *payment
	s.payments[payment.RequestID] = &copied
	// The payment row and the status write commit together or not at all.
	if err := s.requestStore.UpdateStatus(payment.RequestID, utils.StatusFeePaid, utils.StatusPrimaryAccepted); err != nil {
		delete(s.payments, payment.RequestID)
		return err
	}
	return nil
}

func (s *fakeFeeStore) GetFeePaymentByRequest(requestID string) (*models.FeePayment, error) {
	payment, ok := s.payments[requestID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *payment
	return &copied, nil
}

func (s *fakeFeeStore) GetFeePaymentsForOwner(ownerID string) ([]models.FeePayment, error) {
	var result []models.FeePayment
	for requestID, payment := range s.payments {
		req, ok := s.requestStore.requests[requestID]
		if !ok {
			continue
		}
		if trip, ok := s.requestStore.tripStore.trips[req.TripID]; ok && trip.OwnerID == ownerID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

type fakeChatStore struct {
	messages []*models.ChatMessage
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{}
}

func (s *fakeChatStore) StoreMessage(msg *models.ChatMessage) error {
	copied := *msg
	s.messages = append(s.messages, &copied)
	return nil
}

func (s *fakeChatStore) GetMessageByID(id string) (*models.ChatMessage, error) {
	for _, msg := range s.messages {
		if msg.ID == id {
			copied := *msg
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeChatStore) GetMessagesByRequest(requestID string) ([]models.ChatMessage, error) {
	var result []models.ChatMessage
	for _, msg := range s.messages {
		if msg.RequestID == requestID {
			result = append(result, *msg)
		}
	}
	return result, nil
}

func (s *fakeChatStore) UpdateDeliveryStatus(id, status string) error {
	for _, msg := range s.messages {
		if msg.ID == id {
			msg.DeliveryStatus = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) StoreUser(user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetUserByID(id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// failingProcessor simulates a payment processor outage
type failingProcessor struct{}

func (p *failingProcessor) Charge(payerID string, amount float64, description string) (string, error) {
	return "", errors.New("connection refused")
}

// fixture bundles the fakes and services for a test
type fixture struct {
	trips    *fakeTripStore
	requests *fakeRequestStore
	fees     *fakeFeeStore
	chats    *fakeChatStore
	users    *fakeUserStore

	tripService    *TripService
	requestService *RequestService
	offerService   *OfferService
	feeService     *FeeService
	chatService    *ChatService
	notifService   *NotificationService
}

func newFixture() *fixture {
	trips := newFakeTripStore()
	requests := newFakeRequestStore(trips)
	fees := newFakeFeeStore(requests)
	chats := newFakeChatStore()
	users := newFakeUserStore()

	return &fixture{
		trips:          trips,
		requests:       requests,
		fees:           fees,
		chats:          chats,
		users:          users,
		tripService:    NewTripService(trips),
		requestService: NewRequestService(requests, trips),
		offerService:   NewOfferService(requests, trips),
		feeService:     NewFeeService(fees, requests, trips, &StubPaymentProcessor{}),
		chatService:    NewChatService(chats, requests, trips),
		notifService:   NewNotificationService(requests, fees),
	}
}

// seedTrip stores an active trip owned by ownerID with the given capacity
func (f *fixture) seedTrip(t *testing.T, ownerID string, weightKg float64) *models.Trip {
	t.Helper()
	trip := models.NewTrip(ownerID, "Amman", "Dubai", "", time.Now().AddDate(0, 0, 7), weightKg, 30, true, false)
	require.NoError(t, f.trips.StoreTrip(trip))
	return trip
}

// seedRequest stores a request in the given status against a trip
func (f *fixture) seedRequest(t *testing.T, trip *models.Trip, requesterID, status string, weightKg, offered float64) *models.Request {
	t.Helper()
	req := models.NewRequest(trip.ID, requesterID, "documents", weightKg, offered, "Downtown", "Marina")
	req.Status = status
	require.NoError(t, f.requests.StoreRequest(req))
	return req
}

// assertAppCode asserts that err is an AppError with the given code
func assertAppCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}
