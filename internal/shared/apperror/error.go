package apperror

import "fmt"

type AppError struct {
	Code       string // kode stabil untuk klien (contoh: INVALID_INPUT)
	Message    string // pesan yang aman dibaca user
	HTTPStatus int
	Details    any   // opsional, payload tambahan untuk klien (per-field errors)
	Err        error // error asli yang dibungkus (opsional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap supaya errors.Is/As menembus ke error asli.
func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap membungkus err dengan kode dan status; nil masuk, nil keluar.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetails mengembalikan salinan dengan payload detail. Salinan, bukan
// mutasi, karena AppError sentinel dipakai bersama antar request.
func (e *AppError) WithDetails(details any) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}
