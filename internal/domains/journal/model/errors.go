package model

import "kiosk-backend/internal/shared/apperr"

// Error codes
const (
	ErrCodeJournalNotFound = "JRN_001"
	ErrCodeMemberNotFound  = "JRN_002"
	ErrCodeNotAdmin        = "JRN_003"
	ErrCodeNotMember       = "JRN_004"
	ErrCodeAlreadyMember   = "JRN_005"
	ErrCodeSelfRemoval     = "JRN_006"
	ErrCodeInvalidInput    = "JRN_007"
	ErrCodeSlugTaken       = "JRN_008"
)

var (
	ErrJournalNotFound = apperr.NotFound(ErrCodeJournalNotFound, "Journal not found")
	ErrMemberNotFound  = apperr.NotFound(ErrCodeMemberNotFound, "Member not found")
	ErrNotAdmin        = apperr.Forbidden(ErrCodeNotAdmin, "Only journal admins can do this")
	ErrNotMember       = apperr.Forbidden(ErrCodeNotMember, "You are not a member of this journal")
	ErrAlreadyMember   = apperr.Conflict(ErrCodeAlreadyMember, "User is already a member of this journal")
	ErrSelfRemoval     = apperr.Validation(ErrCodeSelfRemoval, "You cannot remove yourself from the journal")
	ErrSlugTaken       = apperr.Conflict(ErrCodeSlugTaken, "Journal slug is already taken")
)

func NewInvalidInputError(err error) *apperr.Error {
	return apperr.Validation(ErrCodeInvalidInput, err.Error())
}
