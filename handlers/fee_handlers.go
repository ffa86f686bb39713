package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// PayFee handles POST /requests/:id/pay-fee
func PayFee(c *gin.Context) {
	payment, err := handlerServices.FeeService.PayFee(c.Param("id"), currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, payment)
}

// GetUnlocked handles GET /requests/:id/unlocked
func GetUnlocked(c *gin.Context) {
	requestID := c.Param("id")

	unlocked, err := handlerServices.FeeService.IsUnlocked(requestID, currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.UnlockedResponse{RequestID: requestID, Unlocked: unlocked})
}
