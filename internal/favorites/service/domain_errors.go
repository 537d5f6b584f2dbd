package service

import (
	"net/http"

	commonerrors "github.com/webmovie/backend/internal/common/errors"
)

var ErrMissingMovieFields = commonerrors.NewDomainError(
	"MISSING_MOVIE_FIELDS",
	commonerrors.CategoryValidation,
	http.StatusBadRequest,
	"movie slug and name are required",
)
