package repository

import (
	"context"

	"github.com/google/uuid"

	"kiosk-backend/internal/domains/journal/model"
)

// RepositoryInterface is the journal + membership data access contract.
// Multi-write operations are composed by the service inside one transaction.
type RepositoryInterface interface {
	// Journals
	Create(ctx context.Context, j *model.Journal) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Journal, error)
	// FindByIDForUpdate locks the journal row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Journal, error)
	FindBySlug(ctx context.Context, slug string) (*model.Journal, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.JournalWithRole, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Memberships
	CreateMember(ctx context.Context, m *model.Member) error
	FindMember(ctx context.Context, journalID, userID uuid.UUID) (*model.Member, error)
	FindMemberByID(ctx context.Context, memberID uuid.UUID) (*model.Member, error)
	ListMembers(ctx context.Context, journalID uuid.UUID) ([]*model.Member, error)
	UpdateMemberRole(ctx context.Context, memberID uuid.UUID, role model.Role) (*model.Member, error)
	DeleteMember(ctx context.Context, memberID uuid.UUID) error
	CountAdmins(ctx context.Context, journalID uuid.UUID) (int, error)
	DeleteMembers(ctx context.Context, journalID uuid.UUID) (int64, error)

	// UnlinkArticles detaches every article from the journal without deleting it.
	UnlinkArticles(ctx context.Context, journalID uuid.UUID) (int64, error)
}
