package service

import (
	"context"

	"github.com/google/uuid"

	"kiosk-backend/internal/domains/journal/model"
	"kiosk-backend/internal/domains/user"
	"kiosk-backend/internal/shared"
)

// ServiceInterface is the journal membership state machine.
type ServiceInterface interface {
	Create(ctx context.Context, creatorID uuid.UUID, req model.CreateJournalRequest) (*model.JournalResponse, error)
	GetBySlug(ctx context.Context, slug string) (*model.JournalResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.JournalResponse, error)
	ListMembers(ctx context.Context, journalID, requesterID uuid.UUID) ([]*model.MemberResponse, error)

	AddMember(ctx context.Context, journalID, adminID uuid.UUID, req model.AddMemberRequest) (*model.MemberResponse, error)
	RemoveMember(ctx context.Context, journalID, memberID, adminID uuid.UUID) error
	// ChangeRole dissolves the journal when it leaves zero admins behind.
	ChangeRole(ctx context.Context, journalID, memberID, adminID uuid.UUID, req model.ChangeRoleRequest) (*model.RoleChangeResult, error)
}

// UserLookup is the slice of the user repository this domain needs.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error)
}

// Notifier queues out-of-band notifications. Failures never fail the caller.
type Notifier interface {
	EnqueueMemberAdded(ctx context.Context, payload shared.MemberAddedPayload) error
}
