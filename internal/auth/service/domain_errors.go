package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/interview-board/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid email or password",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"email already registered",
	)

	ErrValidationName = commonerrors.NewDomainError(
		"VALIDATION_NAME",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"name must be 1 to 100 characters",
	)

	ErrValidationEmail = commonerrors.NewDomainError(
		"VALIDATION_EMAIL",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"email is not valid",
	)

	ErrValidationPassword = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password must be 8 to 72 characters",
	)

	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrInvalidRefreshToken = commonerrors.NewDomainError(
		"INVALID_REFRESH_TOKEN",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid refresh token",
	)

	ErrRefreshTokenExpired = commonerrors.NewDomainError(
		"REFRESH_TOKEN_EXPIRED",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"refresh token expired",
	)
)
