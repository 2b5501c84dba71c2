package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kiosk-backend/internal/domains/journal/model"
	"kiosk-backend/internal/domains/journal/repository"
	"kiosk-backend/internal/domains/user"
	"kiosk-backend/internal/shared"
	"kiosk-backend/internal/shared/utils"
	"kiosk-backend/pkg/database"
)

type journalService struct {
	repo     repository.RepositoryInterface
	users    UserLookup
	tx       database.TxManager
	notifier Notifier
	markdown *MarkdownRenderer
	now      func() time.Time
}

func NewJournalService(
	repo repository.RepositoryInterface,
	users UserLookup,
	tx database.TxManager,
	notifier Notifier,
) ServiceInterface {
	return &journalService{
		repo:     repo,
		users:    users,
		tx:       tx,
		notifier: notifier,
		markdown: NewMarkdownRenderer(),
		now:      time.Now,
	}
}

// =====================================================
// JOURNALS
// =====================================================

// Create inserts the journal and its first ADMIN membership together.
// A slug collision gets a time-derived suffix; the whole unit is retried
// when a concurrent insert takes the slug first.
func (s *journalService) Create(ctx context.Context, creatorID uuid.UUID, req model.CreateJournalRequest) (*model.JournalResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	base := utils.GenerateSlug(req.Name)
	if base == "" {
		base = model.DefaultSlug
	}

	var journal *model.Journal
	var err error
	for attempt := 0; attempt < model.MaxSlugAttempts; attempt++ {
		journal, err = s.createOnce(ctx, creatorID, req, base, attempt)
		if !errors.Is(err, model.ErrSlugTaken) {
			break
		}
		log.Warn().Str("slug", base).Int("attempt", attempt+1).Msg("journal slug collision, retrying")
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("journal_id", journal.ID.String()).
		Str("slug", journal.Slug).
		Str("creator_id", creatorID.String()).
		Msg("journal created")

	res := journal.ToResponse(s.markdown.Render(journal.Description))
	res.Role = model.RoleAdmin
	res.MemberCount = 1
	return res, nil
}

func (s *journalService) createOnce(
	ctx context.Context,
	creatorID uuid.UUID,
	req model.CreateJournalRequest,
	base string,
	attempt int,
) (*model.Journal, error) {
	journal := &model.Journal{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		slug := base
		taken, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return err
		}
		if taken || attempt > 0 {
			// mỗi lần thử lệch 1ms để suffix khác nhau
			at := s.now().Add(time.Duration(attempt) * time.Millisecond)
			slug = utils.WithSuffix(base, utils.SlugSuffix(at))
		}
		journal.Slug = slug

		if err := s.repo.Create(ctx, journal); err != nil {
			return err
		}
		return s.repo.CreateMember(ctx, &model.Member{
			ID:        uuid.New(),
			UserID:    creatorID,
			JournalID: journal.ID,
			Role:      model.RoleAdmin,
		})
	})
	if err != nil {
		return nil, err
	}
	return journal, nil
}

func (s *journalService) GetBySlug(ctx context.Context, slug string) (*model.JournalResponse, error) {
	j, err := s.repo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	return j.ToResponse(s.markdown.Render(j.Description)), nil
}

func (s *journalService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.JournalResponse, error) {
	journals, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]*model.JournalResponse, 0, len(journals))
	for _, jr := range journals {
		item := jr.Journal.ToResponse(s.markdown.Render(jr.Description))
		item.Role = jr.Role
		item.MemberCount = jr.MemberCount
		res = append(res, item)
	}
	return res, nil
}

// =====================================================
// MEMBERSHIP
// =====================================================

func (s *journalService) ListMembers(ctx context.Context, journalID, requesterID uuid.UUID) ([]*model.MemberResponse, error) {
	if _, err := s.repo.FindByID(ctx, journalID); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindMember(ctx, journalID, requesterID); err != nil {
		if errors.Is(err, model.ErrMemberNotFound) {
			return nil, model.ErrNotMember
		}
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, journalID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]*model.MemberResponse, 0, len(members))
	for _, m := range members {
		res = append(res, m.ToResponse(toMemberUser(users[m.UserID])))
	}
	return res, nil
}

func (s *journalService) AddMember(ctx context.Context, journalID, adminID uuid.UUID, req model.AddMemberRequest) (*model.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	journal, err := s.repo.FindByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireAdmin(ctx, journalID, adminID); err != nil {
		return nil, err
	}

	target, err := s.users.FindByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindMember(ctx, journalID, target.ID); err == nil {
		return nil, model.ErrAlreadyMember
	} else if !errors.Is(err, model.ErrMemberNotFound) {
		return nil, err
	}

	member := &model.Member{
		ID:        uuid.New(),
		UserID:    target.ID,
		JournalID: journalID,
		Role:      model.RoleWriter,
	}
	if err := s.repo.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	log.Info().
		Str("journal_id", journalID.String()).
		Str("user_id", target.ID.String()).
		Str("added_by", adminID.String()).
		Msg("journal member added")

	s.notifyMemberAdded(ctx, journal, target, adminID)

	return member.ToResponse(toMemberUser(target)), nil
}

func (s *journalService) notifyMemberAdded(ctx context.Context, journal *model.Journal, target *user.User, adminID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	payload := shared.MemberAddedPayload{
		JournalID:   journal.ID.String(),
		JournalName: journal.Name,
		JournalSlug: journal.Slug,
		Email:       target.Email,
		Name:        target.Name,
		AddedBy:     adminID.String(),
		Role:        string(model.RoleWriter),
	}
	if err := s.notifier.EnqueueMemberAdded(ctx, payload); err != nil {
		log.Error().Err(err).
			Str("journal_id", journal.ID.String()).
			Str("user_id", target.ID.String()).
			Msg("failed to enqueue member added notification")
	}
}

// RemoveMember never lets an admin drop their own membership.
func (s *journalService) RemoveMember(ctx context.Context, journalID, memberID, adminID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, journalID); err != nil {
		return err
	}
	admin, err := s.requireAdmin(ctx, journalID, adminID)
	if err != nil {
		return err
	}
	if admin.ID == memberID {
		return model.ErrSelfRemoval
	}

	if _, err := s.memberOf(ctx, journalID, memberID); err != nil {
		return err
	}
	if err := s.repo.DeleteMember(ctx, memberID); err != nil {
		return err
	}

	log.Info().
		Str("journal_id", journalID.String()).
		Str("member_id", memberID.String()).
		Str("removed_by", adminID.String()).
		Msg("journal member removed")
	return nil
}

// ChangeRole updates the role, recounts admins and, at zero, removes every
// membership, detaches the journal's articles and deletes the journal. All
// of it commits or none of it does.
func (s *journalService) ChangeRole(
	ctx context.Context,
	journalID, memberID, adminID uuid.UUID,
	req model.ChangeRoleRequest,
) (*model.RoleChangeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	result := &model.RoleChangeResult{}
	var updated *model.Member
	var cascade *model.CascadeResult

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// serialises concurrent role changes on the same journal
		if _, err := s.repo.FindByIDForUpdate(ctx, journalID); err != nil {
			return err
		}
		if _, err := s.requireAdmin(ctx, journalID, adminID); err != nil {
			return err
		}
		if _, err := s.memberOf(ctx, journalID, memberID); err != nil {
			return err
		}

		var err error
		updated, err = s.repo.UpdateMemberRole(ctx, memberID, req.Role)
		if err != nil {
			return err
		}

		admins, err := s.repo.CountAdmins(ctx, journalID)
		if err != nil {
			return err
		}
		if admins > 0 {
			return nil
		}

		cascade, err = s.dissolve(ctx, journalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if cascade != nil {
		result.JournalDeleted = true
		result.ArticlesUnlinked = cascade.ArticlesUnlinked
		log.Warn().
			Str("journal_id", journalID.String()).
			Str("changed_by", adminID.String()).
			Int64("members_removed", cascade.MembersRemoved).
			Int64("articles_unlinked", cascade.ArticlesUnlinked).
			Msg("journal dissolved after last admin was demoted")
		return result, nil
	}

	users, err := s.users.FindByIDs(ctx, []uuid.UUID{updated.UserID})
	if err != nil {
		log.Error().Err(err).Str("member_id", memberID.String()).Msg("failed to load member user")
		users = nil
	}
	result.Member = updated.ToResponse(toMemberUser(users[updated.UserID]))

	log.Info().
		Str("journal_id", journalID.String()).
		Str("member_id", memberID.String()).
		Str("role", string(req.Role)).
		Msg("journal member role changed")
	return result, nil
}

// dissolve must run inside the caller's transaction.
func (s *journalService) dissolve(ctx context.Context, journalID uuid.UUID) (*model.CascadeResult, error) {
	removed, err := s.repo.DeleteMembers(ctx, journalID)
	if err != nil {
		return nil, err
	}
	unlinked, err := s.repo.UnlinkArticles(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, journalID); err != nil {
		return nil, err
	}
	return &model.CascadeResult{MembersRemoved: removed, ArticlesUnlinked: unlinked}, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *journalService) requireAdmin(ctx context.Context, journalID, userID uuid.UUID) (*model.Member, error) {
	m, err := s.repo.FindMember(ctx, journalID, userID)
	if err != nil {
		if errors.Is(err, model.ErrMemberNotFound) {
			return nil, model.ErrNotAdmin
		}
		return nil, err
	}
	if !m.IsAdmin() {
		return nil, model.ErrNotAdmin
	}
	return m, nil
}

// memberOf loads a membership and checks it belongs to journalID.
func (s *journalService) memberOf(ctx context.Context, journalID, memberID uuid.UUID) (*model.Member, error) {
	m, err := s.repo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m.JournalID != journalID {
		return nil, model.ErrMemberNotFound
	}
	return m, nil
}

func toMemberUser(u *user.User) *model.MemberUser {
	if u == nil {
		return nil
	}
	return &model.MemberUser{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}
