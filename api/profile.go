package api

import (
	"errors"
	"net/http"

	"github.com/PartnerPortal/PartnerPortal-Backend/api/apistrings"
	basemodels "github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/contact"
	user_service "github.com/PartnerPortal/PartnerPortal-Backend/services/user"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Profile struct {
	server *Server
}

func (p Profile) router(server *Server) {
	p.server = server

	serverGroupV1 := server.router.Group("/api/v1/profile")
	serverGroupV1.Use(p.server.AuthenticatedMiddleware())
	serverGroupV1.GET("", p.profile)
	serverGroupV1.PATCH("", RequireRole(user_service.RolePartner), p.updateProfile)
}

func (p *Profile) profile(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.Unauthorized))
		return
	}

	profile, err := p.server.contacts.GetProfileByEmail(ctx.Request.Context(), activeUser.Email)
	if errors.Is(err, contact.ErrContactNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.ContactNotLinked))
		return
	} else if err != nil {
		p.server.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("profile fetched", profile))
}

func (p *Profile) updateProfile(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.Unauthorized))
		return
	}

	request := contact.ProfileUpdate{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		p.server.handleError(ctx, err)
		return
	}

	if request.IsEmpty() {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.EmptyProfileUpdate))
		return
	}

	// The session only carries the email, so resolve the contact first.
	current, err := p.server.contacts.GetProfileByEmail(ctx.Request.Context(), activeUser.Email)
	if errors.Is(err, contact.ErrContactNotFound) {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.ContactNotLinked))
		return
	} else if err != nil {
		p.server.handleError(ctx, err)
		return
	}

	updated, err := p.server.contacts.UpdateProfile(ctx.Request.Context(), current.ID, activeUser.Email, request)
	if err != nil {
		p.server.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("profile updated", updated))
}
