package api

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/repository"
)

// Error is the error half of a Response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

var ErrInternalServer = &Error{
	Code:    ErrCodeInternalError,
	Message: "Internal server error",
	Status:  http.StatusInternalServerError,
}

func NewBadRequest(message string) *Error {
	return &Error{Code: ErrCodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

// FromError maps service errors onto HTTP errors. Domain validation
// failures are 422, missing rows 404 and request problems 400.
func FromError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if ve, ok := domain.IsValidation(err); ok {
		return &Error{Code: string(ve.Code), Message: ve.Message, Status: http.StatusUnprocessableEntity}
	}
	var cerr *contract.Error
	if errors.As(err, &cerr) {
		return &Error{Code: string(cerr.Code), Message: cerr.Message, Status: http.StatusBadRequest}
	}
	if errors.Is(err, repository.ErrNotFound) {
		return &Error{Code: ErrCodeNotFound, Message: err.Error(), Status: http.StatusNotFound}
	}
	return ErrInternalServer
}
