package profileerrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Profile not found",
		http.StatusNotFound,
	)

	ErrInvalidSearchType = apperror.New(
		apperror.CodeInvalidInput,
		"searchBy must be either \"phone\" or \"name\"",
		http.StatusBadRequest,
	)
)
