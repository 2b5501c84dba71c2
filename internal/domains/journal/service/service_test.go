package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	articleModel "kiosk-backend/internal/domains/article/model"
	"kiosk-backend/internal/domains/journal/model"
	"kiosk-backend/internal/domains/user"
	"kiosk-backend/internal/mocks"
	"kiosk-backend/internal/shared/apperr"
)

type fixture struct {
	svc      *journalService
	store    *mocks.Store
	notifier *mocks.MockNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := mocks.NewStore()
	notifier := &mocks.MockNotifier{}

	svc := NewJournalService(store.JournalRepo(), store.UserRepo(), store, notifier).(*journalService)
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, store: store, notifier: notifier}
}

func (f *fixture) user(t *testing.T, name string) *user.User {
	t.Helper()
	u := &user.User{
		ID:    uuid.New(),
		Name:  name,
		Email: strings.ToLower(name) + "@kiosk.test",
	}
	require.NoError(t, f.store.UserRepo().Create(context.Background(), u))
	return u
}

func (f *fixture) journal(t *testing.T, admin *user.User) *model.JournalResponse {
	t.Helper()
	j, err := f.svc.Create(context.Background(), admin.ID, model.CreateJournalRequest{Name: "The Weekly"})
	require.NoError(t, err)
	return j
}

func (f *fixture) member(t *testing.T, journalID, userID uuid.UUID) *model.Member {
	t.Helper()
	m, err := f.store.JournalRepo().FindMember(context.Background(), journalID, userID)
	require.NoError(t, err)
	return m
}

// =====================================================
// CREATE
// =====================================================

func TestCreate_SlugAndAdminMembership(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")

	first, err := f.svc.Create(context.Background(), alice.ID, model.CreateJournalRequest{Name: "My Cool Journal!"})
	require.NoError(t, err)
	assert.Equal(t, "my-cool-journal", first.Slug)
	assert.Equal(t, model.RoleAdmin, first.Role)
	assert.Equal(t, model.RoleAdmin, f.member(t, first.ID, alice.ID).Role)

	second, err := f.svc.Create(context.Background(), bob.ID, model.CreateJournalRequest{Name: "My Cool Journal!"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "my-cool-journal-"))
}

func TestCreate_NameWithoutSlugCharacters(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")

	j, err := f.svc.Create(context.Background(), alice.ID, model.CreateJournalRequest{Name: "!!!"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSlug, j.Slug)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")

	_, err := f.svc.Create(context.Background(), alice.ID, model.CreateJournalRequest{Name: "   "})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = f.svc.Create(context.Background(), alice.ID, model.CreateJournalRequest{Name: strings.Repeat("a", model.MaxNameLength+1)})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreate_RollsBackJournalWhenMembershipFails(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	f.store.FailOn("journal.CreateMember", errors.New("insert failed"))

	_, err := f.svc.Create(context.Background(), alice.ID, model.CreateJournalRequest{Name: "Half Made"})
	require.Error(t, err)
	assert.Empty(t, f.store.Journals)
	assert.Empty(t, f.store.Members)
}

func TestCreate_DescriptionRenderedAsHTML(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	desc := "A **bold** idea <script>alert(1)</script>"

	j, err := f.svc.Create(context.Background(), alice.ID, model.CreateJournalRequest{Name: "Notes", Description: &desc})
	require.NoError(t, err)
	assert.Contains(t, j.DescriptionHTML, "<strong>bold</strong>")
	assert.NotContains(t, j.DescriptionHTML, "<script>")
}

// =====================================================
// ADD / REMOVE
// =====================================================

func TestAddMember(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")
	carol := f.user(t, "Carol")
	j := f.journal(t, alice)
	ctx := context.Background()

	m, err := f.svc.AddMember(ctx, j.ID, alice.ID, model.AddMemberRequest{Email: "BOB@Kiosk.test"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleWriter, m.Role)
	require.NotNil(t, m.User)
	assert.Equal(t, bob.ID, m.User.ID)

	require.Len(t, f.notifier.MemberAdded, 1)
	assert.Equal(t, bob.Email, f.notifier.MemberAdded[0].Email)
	assert.Equal(t, j.Slug, f.notifier.MemberAdded[0].JournalSlug)

	t.Run("already a member", func(t *testing.T) {
		_, err := f.svc.AddMember(ctx, j.ID, alice.ID, model.AddMemberRequest{Email: bob.Email})
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("writer cannot add", func(t *testing.T) {
		_, err := f.svc.AddMember(ctx, j.ID, bob.ID, model.AddMemberRequest{Email: carol.Email})
		assert.ErrorIs(t, err, model.ErrNotAdmin)
	})

	t.Run("outsider cannot add", func(t *testing.T) {
		_, err := f.svc.AddMember(ctx, j.ID, carol.ID, model.AddMemberRequest{Email: carol.Email})
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.AddMember(ctx, j.ID, alice.ID, model.AddMemberRequest{Email: "nobody@kiosk.test"})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("unknown journal", func(t *testing.T) {
		_, err := f.svc.AddMember(ctx, uuid.New(), alice.ID, model.AddMemberRequest{Email: carol.Email})
		assert.ErrorIs(t, err, model.ErrJournalNotFound)
	})

	t.Run("notification failure does not fail the add", func(t *testing.T) {
		f.notifier.Err = errors.New("redis down")
		defer func() { f.notifier.Err = nil }()

		_, err := f.svc.AddMember(ctx, j.ID, alice.ID, model.AddMemberRequest{Email: carol.Email})
		require.NoError(t, err)
		assert.Equal(t, model.RoleWriter, f.member(t, j.ID, carol.ID).Role)
	})
}

func TestRemoveMember(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")
	carol := f.user(t, "Carol")
	j := f.journal(t, alice)
	other := f.journal(t, carol)
	ctx := context.Background()

	_, err := f.svc.AddMember(ctx, j.ID, alice.ID, model.AddMemberRequest{Email: bob.Email})
	require.NoError(t, err)
	aliceMember := f.member(t, j.ID, alice.ID)
	bobMember := f.member(t, j.ID, bob.ID)

	t.Run("self removal", func(t *testing.T) {
		err := f.svc.RemoveMember(ctx, j.ID, aliceMember.ID, alice.ID)
		assert.ErrorIs(t, err, model.ErrSelfRemoval)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("writer cannot remove", func(t *testing.T) {
		err := f.svc.RemoveMember(ctx, j.ID, aliceMember.ID, bob.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("membership of another journal", func(t *testing.T) {
		carolMember := f.member(t, other.ID, carol.ID)
		err := f.svc.RemoveMember(ctx, j.ID, carolMember.ID, alice.ID)
		assert.ErrorIs(t, err, model.ErrMemberNotFound)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, f.svc.RemoveMember(ctx, j.ID, bobMember.ID, alice.ID))
		assert.NotContains(t, f.store.Members, bobMember.ID)
	})
}

// =====================================================
// ROLE CHANGES
// =====================================================

func seedArticle(store *mocks.Store, authorID uuid.UUID, journalID *uuid.UUID) *articleModel.Article {
	a := &articleModel.Article{
		ID:        uuid.New(),
		Title:     "Post",
		AuthorID:  authorID,
		JournalID: journalID,
		CreatedAt: time.Now(),
	}
	store.Articles[a.ID] = a
	return a
}

func TestChangeRole_LastAdminDemotionDissolvesJournal(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")
	j := f.journal(t, alice)
	ctx := context.Background()

	_, err := f.svc.AddMember(ctx, j.ID, alice.ID, model.AddMemberRequest{Email: bob.Email})
	require.NoError(t, err)

	journalID := j.ID
	a1 := seedArticle(f.store, alice.ID, &journalID)
	a2 := seedArticle(f.store, bob.ID, &journalID)
	unrelated := seedArticle(f.store, bob.ID, nil)

	aliceMember := f.member(t, j.ID, alice.ID)
	res, err := f.svc.ChangeRole(ctx, j.ID, aliceMember.ID, alice.ID, model.ChangeRoleRequest{Role: model.RoleWriter})
	require.NoError(t, err)

	assert.True(t, res.JournalDeleted)
	assert.Nil(t, res.Member)
	assert.Equal(t, int64(2), res.ArticlesUnlinked)

	assert.NotContains(t, f.store.Journals, j.ID)
	for _, m := range f.store.Members {
		assert.NotEqual(t, j.ID, m.JournalID)
	}
	for _, a := range []*articleModel.Article{a1, a2, unrelated} {
		require.Contains(t, f.store.Articles, a.ID, "articles are kept")
		assert.Nil(t, f.store.Articles[a.ID].JournalID)
	}
}

func TestChangeRole_DemotionWithAnotherAdminKeepsJournal(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")
	j := f.journal(t, alice)
	ctx := context.Background()

	_, err := f.svc.AddMember(ctx, j.ID, alice.ID, model.AddMemberRequest{Email: bob.Email})
	require.NoError(t, err)
	bobMember := f.member(t, j.ID, bob.ID)
	aliceMember := f.member(t, j.ID, alice.ID)

	res, err := f.svc.ChangeRole(ctx, j.ID, bobMember.ID, alice.ID, model.ChangeRoleRequest{Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, res.JournalDeleted)
	require.NotNil(t, res.Member)
	assert.Equal(t, model.RoleAdmin, res.Member.Role)

	res, err = f.svc.ChangeRole(ctx, j.ID, aliceMember.ID, alice.ID, model.ChangeRoleRequest{Role: model.RoleWriter})
	require.NoError(t, err)
	assert.False(t, res.JournalDeleted)
	assert.Contains(t, f.store.Journals, j.ID)
	assert.Equal(t, model.RoleWriter, f.member(t, j.ID, alice.ID).Role)
}

func TestChangeRole_Rejections(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")
	j := f.journal(t, alice)
	ctx := context.Background()

	_, err := f.svc.AddMember(ctx, j.ID, alice.ID, model.AddMemberRequest{Email: bob.Email})
	require.NoError(t, err)
	aliceMember := f.member(t, j.ID, alice.ID)

	_, err = f.svc.ChangeRole(ctx, j.ID, aliceMember.ID, alice.ID, model.ChangeRoleRequest{Role: "OWNER"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = f.svc.ChangeRole(ctx, j.ID, aliceMember.ID, bob.ID, model.ChangeRoleRequest{Role: model.RoleWriter})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = f.svc.ChangeRole(ctx, j.ID, uuid.New(), alice.ID, model.ChangeRoleRequest{Role: model.RoleWriter})
	assert.ErrorIs(t, err, model.ErrMemberNotFound)

	assert.Equal(t, model.RoleAdmin, f.member(t, j.ID, alice.ID).Role)
}

func TestChangeRole_CascadeFailureRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	j := f.journal(t, alice)
	journalID := j.ID
	article := seedArticle(f.store, alice.ID, &journalID)
	f.store.FailOn("journal.UnlinkArticles", errors.New("lock timeout"))

	aliceMember := f.member(t, j.ID, alice.ID)
	_, err := f.svc.ChangeRole(context.Background(), j.ID, aliceMember.ID, alice.ID, model.ChangeRoleRequest{Role: model.RoleWriter})
	require.Error(t, err)

	assert.Contains(t, f.store.Journals, j.ID)
	assert.Equal(t, model.RoleAdmin, f.member(t, j.ID, alice.ID).Role)
	require.NotNil(t, f.store.Articles[article.ID].JournalID)
	assert.Equal(t, j.ID, *f.store.Articles[article.ID].JournalID)
	assert.Equal(t, 1, f.store.RollbackCount)
}

// =====================================================
// QUERIES
// =====================================================

func TestListMembers(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	bob := f.user(t, "Bob")
	carol := f.user(t, "Carol")
	j := f.journal(t, alice)
	ctx := context.Background()

	_, err := f.svc.AddMember(ctx, j.ID, alice.ID, model.AddMemberRequest{Email: bob.Email})
	require.NoError(t, err)

	members, err := f.svc.ListMembers(ctx, j.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, model.RoleAdmin, members[0].Role)
	assert.Equal(t, alice.Name, members[0].User.Name)

	_, err = f.svc.ListMembers(ctx, j.ID, carol.ID)
	assert.ErrorIs(t, err, model.ErrNotMember)
}

func TestListForUserAndGetBySlug(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "Alice")
	j := f.journal(t, alice)

	journals, err := f.svc.ListForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, journals, 1)
	assert.Equal(t, model.RoleAdmin, journals[0].Role)
	assert.Equal(t, 1, journals[0].MemberCount)

	got, err := f.svc.GetBySlug(context.Background(), " "+strings.ToUpper(j.Slug))
	require.NoError(t, err)
	assert.Equal(t, j.ID, got.ID)

	_, err = f.svc.GetBySlug(context.Background(), "missing")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
