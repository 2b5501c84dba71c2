package model

import (
	"time"

	"github.com/google/uuid"
)

// Journal exists only while it has at least one ADMIN member.
type Journal struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string // markdown
	LogoURL     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member is unique per (user, journal).
type Member struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JournalID uuid.UUID
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// JournalWithRole is a journal as seen by one of its members.
type JournalWithRole struct {
	Journal
	Role        Role
	MemberCount int
}

// CascadeResult records what a zero-admin cascade removed.
type CascadeResult struct {
	MembersRemoved   int64
	ArticlesUnlinked int64
}
