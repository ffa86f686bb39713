// services/export_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/repository"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// ExportService generates Excel exports of a trip's request ledger
type ExportService struct {
	trips    TripStore
	requests RequestStore
	fees     FeeStore
}

// NewExportService creates a new export service
func NewExportService(trips TripStore, requests RequestStore, fees FeeStore) *ExportService {
	return &ExportService{trips: trips, requests: requests, fees: fees}
}

// ExportTripLedger generates an Excel file with the trip's requests.
// Only the trip owner can export.
func (s *ExportService) ExportTripLedger(tripID, actorID string) (*excelize.File, string, error) {
	trip, err := s.trips.GetTripByID(tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", utils.NewNotFoundError("Trip")
		}
		return nil, "", utils.NewInternalError("Failed to retrieve trip")
	}
	if trip.OwnerID != actorID {
		return nil, "", utils.NewUnauthorizedError("only the trip owner can export its ledger")
	}

	requests, err := s.requests.GetRequestsByTrip(tripID)
	if err != nil {
		return nil, "", utils.NewInternalError("Failed to retrieve requests")
	}

	f := excelize.NewFile()

	if err := s.createSummarySheet(f, trip, requests); err != nil {
		return nil, "", utils.NewInternalError("Failed to create summary sheet")
	}
	if err := s.createRequestsSheet(f, requests); err != nil {
		return nil, "", utils.NewInternalError("Failed to create requests sheet")
	}
	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_%s_Ledger_%s.xlsx",
		utils.CleanFileName(trip.Origin),
		utils.CleanFileName(trip.Destination),
		time.Now().Format("2006-01-02"))

	return f, filename, nil
}

// createSummarySheet creates Sheet 1: trip overview and status counts
func (s *ExportService) createSummarySheet(f *excelize.File, trip *models.Trip, requests []models.Request) error {
	sheetName := "Summary"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	statusCounts := map[string]int{}
	var committedWeight, committedValue float64
	for _, r := range requests {
		statusCounts[r.Status]++
		switch r.Status {
		case utils.StatusPrimaryAccepted, utils.StatusFeePaid, utils.StatusCompleted:
			committedWeight += r.WeightKg
			committedValue += r.BindingAmount()
		}
	}

	rows := [][]interface{}{
		{"Route", fmt.Sprintf("%s → %s", trip.Origin, trip.Destination)},
		{"Travel date", trip.TravelDate.Format("2006-01-02")},
		{"Status", trip.Status},
		{"Available weight (kg)", trip.AvailableWeightKg},
		{"Remaining weight (kg)", trip.RemainingWeightKg},
		{"Committed weight (kg)", committedWeight},
		{"Committed carry value", utils.Round(committedValue)},
		{"Total requests", len(requests)},
	}
	for _, status := range []string{utils.StatusPending, utils.StatusCountered,
		utils.StatusPrimaryAccepted, utils.StatusFeePaid, utils.StatusDeclined, utils.StatusCompleted} {
		rows = append(rows, []interface{}{fmt.Sprintf("Requests: %s", status), statusCounts[status]})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// createRequestsSheet creates Sheet 2: one row per request
func (s *ExportService) createRequestsSheet(f *excelize.File, requests []models.Request) error {
	sheetName := "Requests"
	f.NewSheet(sheetName)

	headers := []interface{}{"Request ID", "Item", "Weight (kg)", "Offered", "Counter-offer",
		"Binding price", "Status", "Fee paid", "Created"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return err
	}

	for i, r := range requests {
		counter := ""
		if r.CounterOfferAmount != nil {
			counter = fmt.Sprintf("%.2f", *r.CounterOfferAmount)
		}
		feePaid := "no"
		if _, err := s.fees.GetFeePaymentByRequest(r.ID); err == nil {
			feePaid = "yes"
		}
		row := []interface{}{r.ID, r.ItemDescription, r.WeightKg, r.OfferedAmount, counter,
			r.BindingAmount(), r.Status, feePaid, r.CreatedAt.Format("2006-01-02 15:04")}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
