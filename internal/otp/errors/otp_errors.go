package otperrors

import (
	"fmt"
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrOtpNotFound = apperror.New(
		apperror.CodeNotFound,
		"No verification code found for this email",
		http.StatusNotFound,
	)

	ErrOtpExpired = apperror.New(
		apperror.CodeOtpExpired,
		"Verification code has expired, please request a new one",
		http.StatusBadRequest,
	)

	ErrOtpLocked = apperror.New(
		apperror.CodeOtpLocked,
		"Too many incorrect attempts, please request a new code",
		http.StatusTooManyRequests,
	)

	ErrOtpCooldown = apperror.New(
		apperror.CodeTooManyRequests,
		"Please wait before requesting another code",
		http.StatusTooManyRequests,
	)
)

// ErrOtpMismatch membawa sisa attempt supaya client bisa menampilkannya.
func ErrOtpMismatch(remaining int) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("Incorrect verification code, %d attempt(s) remaining", remaining),
		http.StatusBadRequest,
	)
}
