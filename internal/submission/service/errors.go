package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/interview-board/internal/common/errors"
)

var ErrMissingRequiredFields = commonerrors.NewDomainError(
	"MISSING_REQUIRED_FIELDS",
	commonerrors.CategoryValidation,
	http.StatusBadRequest,
	"Missing required fields",
)
