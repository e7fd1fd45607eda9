package models

import "github.com/PartnerPortal/PartnerPortal-Backend/utils"

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Version string      `json:"version"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Errors  []string    `json:"errors"`
	Details interface{} `json:"details,omitempty"`
	Version string      `json:"version"`
}

func NewError(msg string, errs ...string) *ErrorResponse {
	if errs == nil {
		errs = []string{}
	}
	return &ErrorResponse{
		Status:  "failed",
		Message: msg,
		Errors:  errs,
		Version: utils.REVISION,
	}
}

func NewSuccess(msg string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Status:  "successful",
		Message: msg,
		Data:    data,
		Version: utils.REVISION,
	}
}
