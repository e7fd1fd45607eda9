package dataverse

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PartnerPortal/PartnerPortal-Backend/models"
	dataversemodels "github.com/PartnerPortal/PartnerPortal-Backend/providers/dataverse/dataverse_models"
)

// UpstreamError is attached as Details to errors raised from a non-2xx reply.
type UpstreamError struct {
	Status int    `json:"status"`
	Code   string `json:"code,omitempty"`
	Body   string `json:"body"`
}

func tokenError(status int, body []byte) *models.APIError {
	msg := "token request rejected by the identity provider"

	var te dataversemodels.TokenErrorResponse
	if err := json.Unmarshal(body, &te); err == nil && te.Error != "" {
		msg = fmt.Sprintf("%s: %s", msg, te.Error)
	}

	return models.NewAPIError(
		models.ErrorKindAuthentication,
		http.StatusUnauthorized,
		msg,
		UpstreamError{Status: status, Code: te.Error, Body: string(body)},
		nil,
	)
}

func statusError(status int, body []byte) *models.APIError {
	msg := fmt.Sprintf("dataverse returned status %d", status)
	details := UpstreamError{Status: status, Body: string(body)}

	var er dataversemodels.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		msg = er.Error.Message
		details.Code = er.Error.Code
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return models.NewAPIError(models.ErrorKindAuthentication, status, msg, details, nil)
	case status >= 400 && status < 500:
		return models.NewAPIError(models.ErrorKindRequest, status, msg, details, nil)
	case status >= 500:
		return models.NewAPIError(models.ErrorKindResponse, http.StatusBadGateway, msg, details, nil)
	default:
		return models.NewAPIError(models.ErrorKindUnknown, http.StatusBadGateway, msg, details, nil)
	}
}

func networkError(msg string, err error) *models.APIError {
	return models.NewAPIError(models.ErrorKindNetwork, 0, msg, nil, err)
}

func requestError(msg string, err error) *models.APIError {
	return models.NewAPIError(models.ErrorKindRequest, 0, msg, nil, err)
}

func responseError(msg string, err error) *models.APIError {
	return models.NewAPIError(models.ErrorKindResponse, 0, msg, nil, err)
}
