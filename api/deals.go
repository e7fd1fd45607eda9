package api

import (
	"net/http"

	"github.com/PartnerPortal/PartnerPortal-Backend/api/apistrings"
	basemodels "github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/deals"
	user_service "github.com/PartnerPortal/PartnerPortal-Backend/services/user"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Deals struct {
	server *Server
}

func (d Deals) router(server *Server) {
	d.server = server

	serverGroupV1 := server.router.Group("/api/v1/deals")
	serverGroupV1.Use(d.server.AuthenticatedMiddleware())
	serverGroupV1.GET("", d.listDeals)
	serverGroupV1.POST("", RequireRole(user_service.RolePartner), d.createDeal)
	serverGroupV1.GET("/:id", d.getDeal)
	serverGroupV1.PUT("/:id", RequireRole(user_service.RolePartner), d.updateDeal)
	serverGroupV1.DELETE("/:id", RequireRole(user_service.RolePartner), d.deleteDeal)
}

func (d *Deals) listDeals(ctx *gin.Context) {
	filter := deals.ListFilter{
		Stage: ctx.Query("stage"),
	}
	if ctx.Query("mine") == "true" {
		activeUser, err := utils.GetActiveUser(ctx)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.Unauthorized))
			return
		}
		filter.OwnerID = activeUser.UserID
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("deals fetched", d.server.deals.List(filter)))
}

func (d *Deals) createDeal(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.Unauthorized))
		return
	}

	request := deals.DealInput{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidInput, err.Error()))
		return
	}

	deal, err := d.server.deals.Create(activeUser.UserID, request)
	if err != nil {
		d.server.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("deal created", deal))
}

func (d *Deals) getDeal(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidDealID))
		return
	}

	deal, err := d.server.deals.Get(id)
	if err != nil {
		d.server.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("deal fetched", deal))
}

func (d *Deals) updateDeal(ctx *gin.Context) {
	id, ok := d.ownedDeal(ctx)
	if !ok {
		return
	}

	request := deals.DealUpdate{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidInput, err.Error()))
		return
	}

	deal, err := d.server.deals.Update(id, request)
	if err != nil {
		d.server.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("deal updated", deal))
}

func (d *Deals) deleteDeal(ctx *gin.Context) {
	id, ok := d.ownedDeal(ctx)
	if !ok {
		return
	}

	if err := d.server.deals.Delete(id); err != nil {
		d.server.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("deal deleted", nil))
}

// ownedDeal parses the id param and checks that the caller owns the deal or
// is an admin. It writes the error response itself.
func (d *Deals) ownedDeal(ctx *gin.Context) (uuid.UUID, bool) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.Unauthorized))
		return uuid.Nil, false
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidDealID))
		return uuid.Nil, false
	}

	deal, err := d.server.deals.Get(id)
	if err != nil {
		d.server.handleError(ctx, err)
		return uuid.Nil, false
	}

	if deal.OwnerID != activeUser.UserID && activeUser.Role != user_service.RoleAdmin {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.NotDealOwner))
		return uuid.Nil, false
	}

	return id, true
}
