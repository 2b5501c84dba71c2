package model

// Role of a member within one journal.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleWriter Role = "WRITER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleWriter
}

// CanPublish: both roles may publish under the journal.
func (r Role) CanPublish() bool {
	return r.Valid()
}

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 5000
	MaxSlugAttempts      = 3
	DefaultSlug          = "journal"
)
