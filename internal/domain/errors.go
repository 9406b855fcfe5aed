package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired, please log in again")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrForbidden      = errors.New("forbidden")
	ErrSlotTaken      = errors.New("slot is no longer available")
	ErrSuperseded     = errors.New("request superseded by a newer message")
	ErrSessionClosed  = errors.New("chat session closed")
	ErrUploadTooLarge = errors.New("upload exceeds size limit")
)
