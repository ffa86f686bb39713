package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/baseelze-maker/wasel-backend/utils"
)

// GetNotifications handles GET /me/notifications
func GetNotifications(c *gin.Context) {
	feed, err := handlerServices.NotificationService.Feed(currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, feed)
}
