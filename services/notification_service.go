// services/notification_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// Notification feed record types
const (
	NotifRequestReceived  = "request_received"
	NotifCounterReceived  = "counter_received"
	NotifCounterAccepted  = "counter_accepted"
	NotifRequestAccepted  = "request_accepted"
	NotifFeePaid          = "fee_paid"
	NotifRequestDeclined  = "request_declined"
	NotifRequestCompleted = "request_completed"
)

// Day-bucket labels
const (
	GroupToday     = "today"
	GroupYesterday = "yesterday"
	GroupEarlier   = "earlier"
)

// NotificationService projects the request ledger and fee history into a
// user-facing feed. It keeps no state of its own and can be rebuilt from
// the ledger at any time.
type NotificationService struct {
	requests RequestStore
	fees     FeeStore
}

// NewNotificationService creates a new notification service
func NewNotificationService(requests RequestStore, fees FeeStore) *NotificationService {
	return &NotificationService{requests: requests, fees: fees}
}

// Feed builds the notification feed for a user, newest first, grouped by
// day boundary relative to now.
func (s *NotificationService) Feed(userID string) ([]models.NotificationGroup, error) {
	asTraveler, err := s.requests.GetRequestsForOwner(userID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve requests")
	}
	asRequester, err := s.requests.GetRequestsByRequester(userID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve requests")
	}
	feePayments, err := s.fees.GetFeePaymentsForOwner(userID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve fee payments")
	}

	return BuildFeed(time.Now(), userID, asTraveler, asRequester, feePayments), nil
}

// BuildFeed derives the feed from ledger rows. Event timestamps come from
// the rows themselves (created_at, updated_at, paid_at), so replaying the
// same rows always yields the same feed.
func BuildFeed(now time.Time, userID string, asTraveler, asRequester []models.RequestWithTrip, feePayments []models.FeePayment) []models.NotificationGroup {
	var records []models.Notification

	// Traveler side: everything that happened on the user's trips.
	for _, r := range asTraveler {
		records = append(records, models.Notification{
			Type:       NotifRequestReceived,
			RequestID:  r.ID,
			TripID:     r.TripID,
			Message:    fmt.Sprintf("New delivery request for %s → %s: %s (%.1f kg)", r.TripOrigin, r.TripDestination, r.ItemDescription, r.WeightKg),
			Amount:     r.OfferedAmount,
			OccurredAt: r.CreatedAt,
		})
		// A primary-accepted request carrying a counter-offer means the
		// sender accepted the counter; a plain accept was the traveler's
		// own action and needs no notification.
		if r.Status == utils.StatusPrimaryAccepted && r.CounterOfferAmount != nil {
			records = append(records, models.Notification{
				Type:       NotifCounterAccepted,
				RequestID:  r.ID,
				TripID:     r.TripID,
				Message:    fmt.Sprintf("Your counter-offer of %.2f was accepted", *r.CounterOfferAmount),
				Amount:     *r.CounterOfferAmount,
				OccurredAt: r.UpdatedAt,
			})
		}
		if r.Status == utils.StatusCompleted {
			records = append(records, models.Notification{
				Type:       NotifRequestCompleted,
				RequestID:  r.ID,
				TripID:     r.TripID,
				Message:    fmt.Sprintf("Delivery of %s completed", r.ItemDescription),
				OccurredAt: r.UpdatedAt,
			})
		}
	}
	for _, p := range feePayments {
		records = append(records, models.Notification{
			Type:       NotifFeePaid,
			RequestID:  p.RequestID,
			Message:    "Communication fee paid — chat is now open",
			Amount:     p.Amount,
			OccurredAt: p.PaidAt,
		})
	}

	// Sender side: how the user's own requests moved.
	for _, r := range asRequester {
		switch r.Status {
		case utils.StatusCountered:
			if r.CounterOfferAmount != nil {
				records = append(records, models.Notification{
					Type:       NotifCounterReceived,
					RequestID:  r.ID,
					TripID:     r.TripID,
					Message:    fmt.Sprintf("Counter-offer of %.2f received for %s", *r.CounterOfferAmount, r.ItemDescription),
					Amount:     *r.CounterOfferAmount,
					OccurredAt: r.UpdatedAt,
				})
			}
		case utils.StatusPrimaryAccepted:
			records = append(records, models.Notification{
				Type:       NotifRequestAccepted,
				RequestID:  r.ID,
				TripID:     r.TripID,
				Message:    fmt.Sprintf("Request accepted — pay the %.2f communication fee to unlock chat", utils.CommunicationFee),
				Amount:     r.BindingAmount(),
				OccurredAt: r.UpdatedAt,
			})
		case utils.StatusDeclined:
			records = append(records, models.Notification{
				Type:       NotifRequestDeclined,
				RequestID:  r.ID,
				TripID:     r.TripID,
				Message:    fmt.Sprintf("Request for %s was declined", r.ItemDescription),
				OccurredAt: r.UpdatedAt,
			})
		case utils.StatusCompleted:
			records = append(records, models.Notification{
				Type:       NotifRequestCompleted,
				RequestID:  r.ID,
				TripID:     r.TripID,
				Message:    fmt.Sprintf("Delivery of %s completed", r.ItemDescription),
				OccurredAt: r.UpdatedAt,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].OccurredAt.After(records[j].OccurredAt)
	})

	return groupByDay(now, records)
}

// groupByDay buckets records into today / yesterday / earlier
func groupByDay(now time.Time, records []models.Notification) []models.NotificationGroup {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfYesterday := startOfToday.AddDate(0, 0, -1)

	buckets := map[string][]models.Notification{}
	for _, rec := range records {
		switch {
		case !rec.OccurredAt.Before(startOfToday):
			buckets[GroupToday] = append(buckets[GroupToday], rec)
		case !rec.OccurredAt.Before(startOfYesterday):
			buckets[GroupYesterday] = append(buckets[GroupYesterday], rec)
		default:
			buckets[GroupEarlier] = append(buckets[GroupEarlier], rec)
		}
	}

	var groups []models.NotificationGroup
	for _, label := range []string{GroupToday, GroupYesterday, GroupEarlier} {
		if len(buckets[label]) > 0 {
			groups = append(groups, models.NotificationGroup{Label: label, Notifications: buckets[label]})
		}
	}
	return groups
}
