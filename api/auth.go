package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/api/apistrings"
	models "github.com/PartnerPortal/PartnerPortal-Backend/api/models"
	basemodels "github.com/PartnerPortal/PartnerPortal-Backend/models"
	user_service "github.com/PartnerPortal/PartnerPortal-Backend/services/user"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Auth struct {
	server *Server
}

func (a Auth) router(server *Server) {
	a.server = server

	serverGroupV1 := server.router.Group("/api/v1/auth")
	serverGroupV1.POST("login", a.login)
	serverGroupV1.GET("session", a.server.AuthenticatedMiddleware(), a.session)
	serverGroupV1.POST("logout", a.server.AuthenticatedMiddleware(), a.logout)
}

func (a *Auth) login(ctx *gin.Context) {
	params := new(models.UserLoginParams)

	if err := ctx.ShouldBindJSON(params); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidLoginInput))
		return
	}

	user, err := a.server.users.Authenticate(ctx.Request.Context(), params.Email, params.Password)
	if errors.Is(err, user_service.ErrInvalidCredentials) {
		a.server.logger.WithFields(logrus.Fields{
			"email": params.Email,
		}).Info("failed login attempt")
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.IncorrectEmailPass))
		return
	} else if err != nil {
		a.server.handleError(ctx, err)
		return
	}

	token, session, err := a.server.tokenController.CreateToken(utils.TokenObject{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		a.server.handleError(ctx, err)
		return
	}

	a.setSessionCookie(ctx, token, time.Until(session.ExpiresAt))
	ctx.Set(utils.ActiveUserKey, session)

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.LoginSuccessful, models.ToSessionResponse(token, session)))
}

func (a *Auth) session(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.Unauthorized))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.SessionRetrieved, models.ToSessionResponse("", activeUser)))
}

func (a *Auth) logout(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.Unauthorized))
		return
	}

	a.server.revocations.Revoke(activeUser.TokenID, activeUser.ExpiresAt)
	a.setSessionCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.LoggedOut, nil))
}

// setSessionCookie writes the HttpOnly session cookie. A negative maxAge
// clears it.
func (a *Auth) setSessionCookie(ctx *gin.Context, value string, maxAge time.Duration) {
	seconds := int(maxAge.Seconds())
	if maxAge < 0 {
		seconds = -1
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookie, value, seconds, "/", a.server.config.CookieDomain, a.server.config.CookieSecure, true)
}
