package models

import "net/http"

// AppError is a structured API error carrying its HTTP status.
type AppError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

// Error constructors.
var (
	ErrNotFound = func(msg string) *AppError {
		return &AppError{Code: "NOT_FOUND", Message: msg, Status: http.StatusNotFound}
	}
	ErrBadRequest = func(msg string) *AppError {
		return &AppError{Code: "BAD_REQUEST", Message: msg, Status: http.StatusBadRequest}
	}
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "valid api-key required", Status: http.StatusUnauthorized}
	ErrInternal     = func(msg string) *AppError {
		return &AppError{Code: "INTERNAL", Message: msg, Status: http.StatusInternalServerError}
	}
	ErrNotLoaded = &AppError{Code: "NOT_LOADED", Message: "assets are still loading", Status: http.StatusConflict}
)
