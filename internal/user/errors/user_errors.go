package usererrors

import (
	"go-workforce/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"A user with this email already exists",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown role",
		http.StatusBadRequest,
	)

	ErrInvitationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Invitation not found",
		http.StatusNotFound,
	)

	ErrInvitationAlreadySent = apperror.New(
		apperror.CodeConflict,
		"An invitation for this email is already pending",
		http.StatusConflict,
	)
)
