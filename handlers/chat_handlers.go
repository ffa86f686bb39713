package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// SendMessage handles POST /requests/:id/messages
func SendMessage(c *gin.Context) {
	var request models.SendMessageRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	msg, err := handlerServices.ChatService.Send(c.Param("id"), currentUserID(c), request.Text)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, msg)
}

// GetMessages handles GET /requests/:id/messages
func GetMessages(c *gin.Context) {
	messages, err := handlerServices.ChatService.History(c.Param("id"), currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, messages)
}

// MarkMessageDelivered handles POST /messages/:id/delivered
func MarkMessageDelivered(c *gin.Context) {
	if err := handlerServices.ChatService.MarkDelivered(c.Param("id"), currentUserID(c)); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// MarkMessageRead handles POST /messages/:id/read
func MarkMessageRead(c *gin.Context) {
	if err := handlerServices.ChatService.MarkRead(c.Param("id"), currentUserID(c)); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}
