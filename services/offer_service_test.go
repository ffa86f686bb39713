package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baseelze-maker/wasel-backend/utils"
)

func TestCounter_RecordsCounterOffer(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)
	req := f.seedRequest(t, trip, senderID, utils.StatusPending, 2, 25)

	countered, err := f.offerService.Counter(req.ID, 35, travelerID)
	require.NoError(t, err)

	assert.Equal(t, utils.StatusCountered, countered.Status)
	require.NotNil(t, countered.CounterOfferAmount)
	assert.Equal(t, 35.0, *countered.CounterOfferAmount)
	// The original offer survives; only acceptance makes the counter binding.
	assert.Equal(t, 25.0, countered.OfferedAmount)
	assert.Equal(t, 35.0, countered.BindingAmount())
}

func TestCounter_SingleRoundOnly(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)
	req := f.seedRequest(t, trip, senderID, utils.StatusPending, 2, 25)

	_, err := f.offerService.Counter(req.ID, 35, travelerID)
	require.NoError(t, err)

	// No second round: a countered request cannot be countered again.
	_, err = f.offerService.Counter(req.ID, 40, travelerID)
	assertAppCode(t, err, "illegal_transition")
}

func TestCounter_OnlyTravelerMayCounter(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)
	req := f.seedRequest(t, trip, senderID, utils.StatusPending, 2, 25)

	_, err := f.offerService.Counter(req.ID, 35, senderID)
	assertAppCode(t, err, "unauthorized")
}

func TestCounter_RequiresPositiveAmount(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)
	req := f.seedRequest(t, trip, senderID, utils.StatusPending, 2, 25)

	_, err := f.offerService.Counter(req.ID, 0, travelerID)
	assertAppCode(t, err, "validation")

	_, err = f.offerService.Counter(req.ID, -5, travelerID)
	assertAppCode(t, err, "validation")
}

func TestCounter_ThenSenderAcceptsAtCounterPrice(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)
	req := f.seedRequest(t, trip, senderID, utils.StatusPending, 2, 25)

	_, err := f.offerService.Counter(req.ID, 35, travelerID)
	require.NoError(t, err)

	accepted, err := f.requestService.Transition(req.ID, utils.ActionAccept, senderID)
	require.NoError(t, err)

	assert.Equal(t, utils.StatusPrimaryAccepted, accepted.Status)
	assert.Equal(t, 35.0, accepted.BindingAmount())
}

func TestCounter_RacingAcceptLoses(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)
	req := f.seedRequest(t, trip, senderID, utils.StatusPending, 2, 25)

	// The accept commits between the counter's validation and its write.
	f.requests.beforeStatusWrite = func() {
		_, err := f.requestService.Transition(req.ID, utils.ActionAccept, travelerID)
		require.NoError(t, err)
	}

	_, err := f.offerService.Counter(req.ID, 35, travelerID)
	assertAppCode(t, err, "illegal_transition")

	// No counter amount sneaks onto the accepted request.
	stored, err := f.requestService.GetRequest(req.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.StatusPrimaryAccepted, stored.Status)
	assert.Nil(t, stored.CounterOfferAmount)
	assert.Equal(t, 25.0, stored.BindingAmount())
}
