package model

import (
	"fmt"

	"kiosk-backend/internal/shared/apperr"
)

// Error codes
const (
	ErrCodeImageNotFound   = "IMG_001"
	ErrCodeNotOwner        = "IMG_002"
	ErrCodeInvalidInput    = "IMG_003"
	ErrCodeAlreadyLinked   = "IMG_004"
	ErrCodeStorageFailure  = "IMG_005"
	ErrCodeDuplicateKey    = "IMG_006"
	ErrCodeInvalidImage    = "IMG_007"
	ErrCodeSweepIncomplete = "IMG_008"
)

var (
	ErrImageNotFound = apperr.NotFound(ErrCodeImageNotFound, "Image not found")
	ErrNotOwner      = apperr.Forbidden(ErrCodeNotOwner, "You can only delete your own images")
	ErrAlreadyLinked = apperr.Validation(ErrCodeAlreadyLinked, "Image is attached to a published article")
	ErrDuplicateKey  = apperr.Conflict(ErrCodeDuplicateKey, "An image with this key already exists")
)

func NewInvalidInputError(err error) *apperr.Error {
	return apperr.Validation(ErrCodeInvalidInput, err.Error())
}

func NewInvalidImageError(err error) *apperr.Error {
	return apperr.Validation(ErrCodeInvalidImage, err.Error())
}

func NewStorageError(op string, err error) *apperr.Error {
	return apperr.Upstream(ErrCodeStorageFailure, "Storage "+op+" failed", err)
}

// NewSweepIncompleteError reports a batch where storage did not confirm
// every key; no records of that batch were removed.
func NewSweepIncompleteError(failed, total int, err error) *apperr.Error {
	msg := fmt.Sprintf("Storage did not confirm deletion of %d of %d images", failed, total)
	return apperr.Upstream(ErrCodeSweepIncomplete, msg, err)
}
