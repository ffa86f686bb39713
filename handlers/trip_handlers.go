package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// CreateTrip handles POST /trips
func CreateTrip(c *gin.Context) {
	var request models.CreateTripRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trip, err := handlerServices.TripService.CreateTrip(currentUserID(c), currentRole(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, trip)
}

// GetTrip handles GET /trips/:id
func GetTrip(c *gin.Context) {
	trip, err := handlerServices.TripService.GetTrip(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, trip)
}

// SearchTrips handles GET /trips/search
func SearchTrips(c *gin.Context) {
	var request models.SearchTripsRequest

	if err := c.ShouldBindQuery(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trips, err := handlerServices.TripService.SearchTrips(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, trips)
}

// GetMyTrips handles GET /me/trips
func GetMyTrips(c *gin.Context) {
	trips, err := handlerServices.TripService.GetTripsByOwner(currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, trips)
}

// CloseTrip handles POST /trips/:id/close
func CloseTrip(c *gin.Context) {
	trip, err := handlerServices.TripService.CloseTrip(c.Param("id"), currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, trip)
}

// GetTripShareQR handles GET /trips/:id/share-qr and returns a PNG QR code
// pointing at the trip's share URL.
func GetTripShareQR(c *gin.Context) {
	trip, err := handlerServices.TripService.GetTrip(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	baseURL := os.Getenv("SHARE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://wasel.app"
	}
	shareURL := fmt.Sprintf("%s/trips/%s", baseURL, trip.Code)

	png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		utils.HandleError(c, utils.NewInternalError("Failed to generate QR code"))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// ExportTripLedger handles GET /trips/:id/export and streams an Excel file
func ExportTripLedger(c *gin.Context) {
	file, filename, err := handlerServices.ExportService.ExportTripLedger(c.Param("id"), currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		utils.HandleError(c, utils.NewInternalError("Failed to write export"))
		return
	}
}
