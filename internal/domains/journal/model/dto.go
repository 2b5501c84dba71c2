package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// REQUESTS
// =====================================================

type CreateJournalRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

func (r CreateJournalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.By(notBlank),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&r.LogoURL, validation.NilOrNotEmpty, is.URL),
	)
}

type AddMemberRequest struct {
	Email string `json:"email"`
}

func (r AddMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.EmailFormat),
	)
}

type ChangeRoleRequest struct {
	Role Role `json:"role"`
}

func (r ChangeRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.In(RoleAdmin, RoleWriter).Error("role must be ADMIN or WRITER"),
		),
	)
}

func notBlank(value interface{}) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "must not be blank")
	}
	return nil
}

// =====================================================
// RESPONSES
// =====================================================

type JournalResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     *string   `json:"description,omitempty"`
	DescriptionHTML string    `json:"description_html,omitempty"`
	LogoURL         *string   `json:"logo_url,omitempty"`
	Role            Role      `json:"role,omitempty"`
	MemberCount     int       `json:"member_count,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type MemberUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Image *string   `json:"image,omitempty"`
}

type MemberResponse struct {
	ID        uuid.UUID   `json:"id"`
	JournalID uuid.UUID   `json:"journal_id"`
	Role      Role        `json:"role"`
	User      *MemberUser `json:"user,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// RoleChangeResult tells the caller whether the change dissolved the journal.
type RoleChangeResult struct {
	Member           *MemberResponse `json:"member,omitempty"`
	JournalDeleted   bool            `json:"journal_deleted"`
	ArticlesUnlinked int64           `json:"articles_unlinked,omitempty"`
}

func (j *Journal) ToResponse(descriptionHTML string) *JournalResponse {
	return &JournalResponse{
		ID:              j.ID,
		Name:            j.Name,
		Slug:            j.Slug,
		Description:     j.Description,
		DescriptionHTML: descriptionHTML,
		LogoURL:         j.LogoURL,
		CreatedAt:       j.CreatedAt,
	}
}

func (m *Member) ToResponse(u *MemberUser) *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		JournalID: m.JournalID,
		Role:      m.Role,
		User:      u,
		CreatedAt: m.CreatedAt,
	}
}
