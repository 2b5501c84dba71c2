package model

import "kiosk-backend/internal/shared/apperr"

// Error codes
const (
	ErrCodeArticleNotFound  = "ART_001"
	ErrCodeInvalidInput     = "ART_002"
	ErrCodeNotJournalMember = "ART_003"
	ErrCodeImageLink        = "ART_004"
)

var (
	ErrArticleNotFound  = apperr.NotFound(ErrCodeArticleNotFound, "Article not found")
	ErrNotJournalMember = apperr.Forbidden(ErrCodeNotJournalMember, "You must be a member of the journal to publish under it")
)

// NewImageLinkError aborts a publish whose image linking failed.
func NewImageLinkError(err error) *apperr.Error {
	return apperr.Upstream(ErrCodeImageLink, "Failed to link article images", err)
}

func NewInvalidInputError(err error) *apperr.Error {
	return apperr.Validation(ErrCodeInvalidInput, err.Error())
}
