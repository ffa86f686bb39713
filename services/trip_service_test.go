package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/utils"
)

func validTripRequest() *models.CreateTripRequest {
	return &models.CreateTripRequest{
		Origin:                  "Amman",
		Destination:             "Dubai",
		TravelDate:              time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		AvailableWeightKg:       10,
		SuggestedPrice:          30,
		CanDeliverAtDestination: true,
	}
}

func TestCreateTrip_PostsActiveTrip(t *testing.T) {
	f := newFixture()

	trip, err := f.tripService.CreateTrip(travelerID, utils.RoleTraveler, validTripRequest())
	require.NoError(t, err)

	assert.Equal(t, utils.TripStatusActive, trip.Status)
	assert.Equal(t, 10.0, trip.RemainingWeightKg)
	assert.Len(t, trip.Code, utils.CodeLength)

	stored, err := f.tripService.GetTrip(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.Code, stored.Code)
}

func TestCreateTrip_TravelersOnly(t *testing.T) {
	f := newFixture()

	_, err := f.tripService.CreateTrip(senderID, utils.RoleSender, validTripRequest())
	assertAppCode(t, err, "unauthorized")
}

func TestCreateTrip_Validation(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name   string
		mutate func(*models.CreateTripRequest)
	}{
		{"missing origin", func(r *models.CreateTripRequest) { r.Origin = "" }},
		{"missing destination", func(r *models.CreateTripRequest) { r.Destination = "" }},
		{"zero capacity", func(r *models.CreateTripRequest) { r.AvailableWeightKg = 0 }},
		{"negative price", func(r *models.CreateTripRequest) { r.SuggestedPrice = -1 }},
		{"bad date", func(r *models.CreateTripRequest) { r.TravelDate = "07/09/2026" }},
		{"past date", func(r *models.CreateTripRequest) { r.TravelDate = "2020-01-01" }},
		{"final delivery without final destination", func(r *models.CreateTripRequest) {
			r.CanDeliverAtFinalDestination = true
			r.FinalDestination = ""
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validTripRequest()
			tc.mutate(req)
			_, err := f.tripService.CreateTrip(travelerID, utils.RoleTraveler, req)
			assertAppCode(t, err, "validation")
		})
	}
}

func TestCloseTrip_OwnerOnlyAndOnce(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)

	_, err := f.tripService.CloseTrip(trip.ID, otherUserID)
	assertAppCode(t, err, "unauthorized")

	closed, err := f.tripService.CloseTrip(trip.ID, travelerID)
	require.NoError(t, err)
	assert.Equal(t, utils.TripStatusCompleted, closed.Status)

	_, err = f.tripService.CloseTrip(trip.ID, travelerID)
	assertAppCode(t, err, "invalid_trip")
}

func TestSearchTrips_ExcludesClosedTrips(t *testing.T) {
	f := newFixture()
	open := f.seedTrip(t, travelerID, 10)
	closed := f.seedTrip(t, travelerID, 5)
	_, err := f.tripService.CloseTrip(closed.ID, travelerID)
	require.NoError(t, err)

	trips, err := f.tripService.SearchTrips(&models.SearchTripsRequest{})
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, open.ID, trips[0].ID)
}

func TestSearchTrips_BadDateFilter(t *testing.T) {
	f := newFixture()

	_, err := f.tripService.SearchTrips(&models.SearchTripsRequest{Date: "not-a-date"})
	assertAppCode(t, err, "validation")
}
