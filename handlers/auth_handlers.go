package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// SignUp handles POST /auth/signup
func SignUp(c *gin.Context) {
	var request models.SignUpRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	user, err := handlerServices.AuthService.SignUp(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.SessionResponse{User: user})
}

// SignIn handles POST /auth/signin
func SignIn(c *gin.Context) {
	var request models.SignInRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	token, user, err := handlerServices.AuthService.SignIn(request.Email, request.Password)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.SessionResponse{Token: token, User: user})
}

// SignOut handles POST /auth/signout. Sessions are stateless JWTs; the
// client discards the token and the server just acknowledges.
func SignOut(c *gin.Context) {
	utils.HandleSuccess(c, true)
}

// CurrentSession handles GET /auth/session
func CurrentSession(c *gin.Context) {
	user, err := handlerServices.AuthService.CurrentSession(currentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.SessionResponse{User: user})
}
