package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// CreateRequest handles POST /requests
func CreateRequest(c *gin.Context) {
	var request models.CreateRequestRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	req, err := handlerServices.RequestService.CreateRequest(currentUserID(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, req)
}

// GetRequest handles GET /requests/:id
func GetRequest(c *gin.Context) {
	req, err := handlerServices.RequestService.GetRequest(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, req)
}

// GetMyRequests handles GET /me/requests
func GetMyRequests(c *gin.Context) {
	requests, err := handlerServices.RequestService.GetRequestsByRequester(currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, requests)
}

// GetTripRequests handles GET /trips/:id/requests
func GetTripRequests(c *gin.Context) {
	requests, err := handlerServices.RequestService.GetRequestsByTrip(c.Param("id"), currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, requests)
}

// AcceptRequest handles POST /requests/:id/accept
func AcceptRequest(c *gin.Context) {
	transitionRequest(c, utils.ActionAccept)
}

// DeclineRequest handles POST /requests/:id/decline
func DeclineRequest(c *gin.Context) {
	transitionRequest(c, utils.ActionDecline)
}

// CompleteRequest handles POST /requests/:id/complete
func CompleteRequest(c *gin.Context) {
	transitionRequest(c, utils.ActionMarkComplete)
}

// transitionRequest applies a bodyless state transition to a request
func transitionRequest(c *gin.Context, action string) {
	req, err := handlerServices.RequestService.Transition(c.Param("id"), action, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, req)
}

// CounterRequest handles POST /requests/:id/counter
func CounterRequest(c *gin.Context) {
	var request models.CounterOfferRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	req, err := handlerServices.OfferService.Counter(c.Param("id"), request.Amount, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, req)
}
