package rbacerrors

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Role not found",
		http.StatusNotFound,
	)

	ErrRoleNameTaken = apperror.New(
		apperror.CodeConflict,
		"A role with the same name already exists",
		http.StatusConflict,
	)

	ErrSystemRoleImmutable = apperror.New(
		apperror.CodeInvalidState,
		"System roles cannot be created, renamed, or deleted",
		http.StatusBadRequest,
	)

	ErrInvalidRoleRef = apperror.New(
		apperror.CodeInvalidInput,
		"Role reference must be a system role name or a custom role id",
		http.StatusBadRequest,
	)

	ErrPermissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Permission not found",
		http.StatusNotFound,
	)

	ErrRoleInUse = apperror.New(
		apperror.CodeConflict,
		"Role is still assigned to at least one user",
		http.StatusConflict,
	)
)
