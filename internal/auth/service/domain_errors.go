package service

import (
	"net/http"

	commonerrors "github.com/webmovie/backend/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid email or password",
	)

	ErrInvalidRefreshToken = commonerrors.NewDomainError(
		"INVALID_REFRESH_TOKEN",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"refresh token is not valid",
	)

	ErrRefreshTokenExpired = commonerrors.NewDomainError(
		"REFRESH_TOKEN_EXPIRED",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"refresh token has expired",
	)

	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_ERROR",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"request validation failed",
	)
)
