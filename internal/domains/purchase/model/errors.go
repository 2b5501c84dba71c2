package model

import "kiosk-backend/internal/shared/apperr"

// Error codes
const (
	ErrCodeAlreadyPurchased = "PUR_001"
	ErrCodeFreeArticle      = "PUR_002"
	ErrCodeOwnArticle       = "PUR_003"
	ErrCodeInvalidAmount    = "PUR_004"
)

var (
	ErrAlreadyPurchased = apperr.Conflict(ErrCodeAlreadyPurchased, "Article already purchased")
	ErrFreeArticle      = apperr.Validation(ErrCodeFreeArticle, "Article is free")
	ErrOwnArticle       = apperr.Validation(ErrCodeOwnArticle, "You cannot buy your own article")
	ErrInvalidAmount    = apperr.Validation(ErrCodeInvalidAmount, "Amount paid must be positive")
)
