package api

import (
	"net/http"
	"strings"

	"github.com/PartnerPortal/PartnerPortal-Backend/api/apistrings"
	basemodels "github.com/PartnerPortal/PartnerPortal-Backend/models"
	user_service "github.com/PartnerPortal/PartnerPortal-Backend/services/user"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/gin-gonic/gin"
)

const SessionCookie = "portal_session"

// AuthenticatedMiddleware accepts a bearer token or the session cookie.
func (s *Server) AuthenticatedMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var tokenString string

		if header := ctx.GetHeader("Authorization"); header != "" {
			tokenSplit := strings.Split(header, " ")
			if len(tokenSplit) != 2 || strings.ToLower(tokenSplit[0]) != "bearer" {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, basemodels.NewError(apistrings.InvalidBearerToken))
				return
			}
			tokenString = tokenSplit[1]
		} else if cookie, err := ctx.Cookie(SessionCookie); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, basemodels.NewError(apistrings.Unauthorized))
			return
		}

		user, err := s.tokenController.VerifyToken(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, basemodels.NewError(err.Error()))
			return
		}

		if s.revocations.IsRevoked(user.TokenID) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, basemodels.NewError(apistrings.SessionEnded))
			return
		}

		ctx.Set("user_id", user.UserID)
		ctx.Set("user_role", user.Role)
		/// Accessible User Across the App
		ctx.Set(utils.ActiveUserKey, user)
		ctx.Next()
	}
}

// RequireRole lets through users whose role ranks at least min.
// Must run after AuthenticatedMiddleware.
func RequireRole(min string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetActiveUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, basemodels.NewError(apistrings.Unauthorized))
			return
		}

		if !user_service.HasAtLeast(user.Role, min) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, basemodels.NewError(apistrings.Forbidden))
			return
		}

		ctx.Next()
	}
}

func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := allowedOrigin
		// credentials are not allowed with a wildcard origin
		if origin == "*" || origin == "" {
			if reqOrigin := c.GetHeader("Origin"); reqOrigin != "" {
				origin = reqOrigin
				c.Header("Vary", "Origin")
			} else {
				origin = "*"
			}
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST,HEAD,PATCH,OPTIONS,GET,PUT,DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
