package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/PartnerPortal/PartnerPortal-Backend/api/apistrings"
	basemodels "github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/contact"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/deals"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// handleError writes the JSON error body for err.
func (s *Server) handleError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidInput, fieldErrors(verrs)...))
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidInput, err.Error()))
		return
	}

	switch {
	case errors.Is(err, contact.ErrContactNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.ContactNotFound))
		return
	case errors.Is(err, contact.ErrInvalidContactID):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidContactID))
		return
	case errors.Is(err, contact.ErrAccountNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.AccountNotFound))
		return
	case errors.Is(err, contact.ErrInvalidAccountID):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAccountID))
		return
	case errors.Is(err, deals.ErrDealNotFound):
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.DealNotFound))
		return
	case errors.Is(err, deals.ErrInvalidAmount):
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmount))
		return
	}

	apiErr := basemodels.AsAPIError(err)
	s.logger.Error(apiErr.ErrorOut())

	msg := apiErr.Message
	if apiErr.Kind == basemodels.ErrorKindUnknown {
		msg = apistrings.ServerError
	}

	resp := basemodels.NewError(msg)
	resp.Code = apiErr.Kind.String()
	// upstream bodies only in development
	if s.config.Env == "development" {
		resp.Details = apiErr.Details
	}

	ctx.JSON(apiErr.Status, resp)
}

func fieldErrors(verrs validator.ValidationErrors) []string {
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return out
}
