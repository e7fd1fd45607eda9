package api

import (
	"net/http"

	"github.com/PartnerPortal/PartnerPortal-Backend/api/apistrings"
	models "github.com/PartnerPortal/PartnerPortal-Backend/api/models"
	basemodels "github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/gin-gonic/gin"
)

const (
	ThemeCookie  = "theme"
	DefaultTheme = "system"
	themeMaxAge  = 365 * 24 * 60 * 60
)

type Theme struct {
	server *Server
}

func (t Theme) router(server *Server) {
	t.server = server

	serverGroupV1 := server.router.Group("/api/v1/theme")
	serverGroupV1.GET("", t.getTheme)
	serverGroupV1.PUT("", t.setTheme)
}

func isTheme(v string) bool {
	return v == "light" || v == "dark" || v == "system"
}

func (t *Theme) getTheme(ctx *gin.Context) {
	theme, err := ctx.Cookie(ThemeCookie)
	if err != nil || !isTheme(theme) {
		theme = DefaultTheme
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("theme fetched", models.ThemeResponse{Theme: theme}))
}

func (t *Theme) setTheme(ctx *gin.Context) {
	request := models.ThemeParams{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTheme))
		return
	}

	// the frontend reads it, so not HttpOnly
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(ThemeCookie, request.Theme, themeMaxAge, "/", t.server.config.CookieDomain, t.server.config.CookieSecure, false)

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("theme updated", models.ThemeResponse{Theme: request.Theme}))
}
