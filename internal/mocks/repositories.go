package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	articleModel "kiosk-backend/internal/domains/article/model"
	imageModel "kiosk-backend/internal/domains/image/model"
	journalModel "kiosk-backend/internal/domains/journal/model"
	purchaseModel "kiosk-backend/internal/domains/purchase/model"
	"kiosk-backend/internal/domains/user"
	"kiosk-backend/internal/shared/utils"
)

// =====================================================
// USERS
// =====================================================

type UserRepository struct{ s *Store }

func (s *Store) UserRepo() *UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("user.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.Users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.s.Now()
		u.UpdatedAt = u.CreatedAt
	}
	r.s.Users[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("user.FindByIDs"); err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*user.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.Users[id]; ok {
			out[id] = clone(u)
		}
	}
	return out, nil
}

func (r *UserRepository) SearchByNamePrefix(ctx context.Context, prefix string, limit int) ([]*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*user.User
	for _, u := range r.s.Users {
		if strings.HasPrefix(strings.ToLower(u.Name), strings.ToLower(prefix)) {
			out = append(out, clone(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// =====================================================
// IMAGES
// =====================================================

type ImageRepository struct{ s *Store }

func (s *Store) ImageRepo() *ImageRepository { return &ImageRepository{s: s} }

func (r *ImageRepository) Create(ctx context.Context, img *imageModel.Image) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("image.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.Images {
		if existing.Key == img.Key {
			return imageModel.ErrDuplicateKey
		}
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = r.s.Now()
	}
	r.s.Images[img.ID] = clone(img)
	return nil
}

func (r *ImageRepository) FindByKey(ctx context.Context, key string) (*imageModel.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, img := range r.s.Images {
		if img.Key == key {
			return clone(img), nil
		}
	}
	return nil, imageModel.ErrImageNotFound
}

func (r *ImageRepository) DeleteByKey(ctx context.Context, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, img := range r.s.Images {
		if img.Key == key {
			delete(r.s.Images, id)
			return nil
		}
	}
	return imageModel.ErrImageNotFound
}

func (r *ImageRepository) LinkOrphans(ctx context.Context, ownerID, articleID uuid.UUID, urls []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("image.LinkOrphans"); err != nil {
		return 0, err
	}
	wanted := make(map[string]bool, len(urls))
	for _, u := range urls {
		wanted[u] = true
	}
	var n int64
	for _, img := range r.s.Images {
		if img.OwnerID == ownerID && img.IsOrphan() && wanted[img.URL] {
			id := articleID
			img.ArticleID = &id
			n++
		}
	}
	return n, nil
}

func (r *ImageRepository) ListStaleOrphans(ctx context.Context, cutoff time.Time, limit int) ([]*imageModel.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("image.ListStaleOrphans"); err != nil {
		return nil, err
	}
	var out []*imageModel.Image
	for _, img := range r.s.Images {
		if img.IsOrphan() && img.CreatedAt.Before(cutoff) {
			out = append(out, clone(img))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ImageRepository) DeleteOrphansByKeys(ctx context.Context, keys []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("image.DeleteOrphansByKeys"); err != nil {
		return 0, err
	}
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	var n int64
	for id, img := range r.s.Images {
		if wanted[img.Key] && img.IsOrphan() {
			delete(r.s.Images, id)
			n++
		}
	}
	return n, nil
}

// =====================================================
// ARTICLES
// =====================================================

type ArticleRepository struct{ s *Store }

func (s *Store) ArticleRepo() *ArticleRepository { return &ArticleRepository{s: s} }

func (r *ArticleRepository) Create(ctx context.Context, a *articleModel.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("article.Create"); err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.s.Now()
		a.UpdatedAt = a.CreatedAt
	}
	r.s.Articles[a.ID] = clone(a)
	return nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*articleModel.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.Articles[id]
	if !ok {
		return nil, articleModel.ErrArticleNotFound
	}
	return clone(a), nil
}

func (r *ArticleRepository) List(ctx context.Context, filter articleModel.ListFilter) ([]*articleModel.Article, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*articleModel.Article
	for _, a := range r.s.Articles {
		if filter.AuthorID != nil && a.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.JournalID != nil && (a.JournalID == nil || *a.JournalID != *filter.JournalID) {
			continue
		}
		matched = append(matched, clone(a))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	total := len(matched)
	start := utils.Offset(filter.Page, filter.Limit)
	if start >= total {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// =====================================================
// JOURNALS
// =====================================================

type JournalRepository struct{ s *Store }

func (s *Store) JournalRepo() *JournalRepository { return &JournalRepository{s: s} }

func (r *JournalRepository) Create(ctx context.Context, j *journalModel.Journal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("journal.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.Journals {
		if existing.Slug == j.Slug {
			return journalModel.ErrSlugTaken
		}
	}
	j.CreatedAt = r.s.Now()
	j.UpdatedAt = j.CreatedAt
	r.s.Journals[j.ID] = clone(j)
	return nil
}

func (r *JournalRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, j := range r.s.Journals {
		if j.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *JournalRepository) FindByID(ctx context.Context, id uuid.UUID) (*journalModel.Journal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.Journals[id]
	if !ok {
		return nil, journalModel.ErrJournalNotFound
	}
	return clone(j), nil
}

// FindByIDForUpdate has nothing to lock in memory.
func (r *JournalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*journalModel.Journal, error) {
	return r.FindByID(ctx, id)
}

func (r *JournalRepository) FindBySlug(ctx context.Context, slug string) (*journalModel.Journal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, j := range r.s.Journals {
		if j.Slug == slug {
			return clone(j), nil
		}
	}
	return nil, journalModel.ErrJournalNotFound
}

func (r *JournalRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*journalModel.JournalWithRole, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, m := range r.s.Members {
		counts[m.JournalID]++
	}
	var out []*journalModel.JournalWithRole
	for _, m := range r.s.Members {
		if m.UserID != userID {
			continue
		}
		if j, ok := r.s.Journals[m.JournalID]; ok {
			out = append(out, &journalModel.JournalWithRole{Journal: *j, Role: m.Role, MemberCount: counts[j.ID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *JournalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("journal.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.Journals[id]; !ok {
		return journalModel.ErrJournalNotFound
	}
	delete(r.s.Journals, id)
	return nil
}

func (r *JournalRepository) CreateMember(ctx context.Context, m *journalModel.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("journal.CreateMember"); err != nil {
		return err
	}
	for _, existing := range r.s.Members {
		if existing.UserID == m.UserID && existing.JournalID == m.JournalID {
			return journalModel.ErrAlreadyMember
		}
	}
	m.CreatedAt = r.s.Now()
	m.UpdatedAt = m.CreatedAt
	r.s.Members[m.ID] = clone(m)
	return nil
}

func (r *JournalRepository) FindMember(ctx context.Context, journalID, userID uuid.UUID) (*journalModel.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.Members {
		if m.JournalID == journalID && m.UserID == userID {
			return clone(m), nil
		}
	}
	return nil, journalModel.ErrMemberNotFound
}

func (r *JournalRepository) FindMemberByID(ctx context.Context, memberID uuid.UUID) (*journalModel.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.Members[memberID]
	if !ok {
		return nil, journalModel.ErrMemberNotFound
	}
	return clone(m), nil
}

func (r *JournalRepository) ListMembers(ctx context.Context, journalID uuid.UUID) ([]*journalModel.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*journalModel.Member
	for _, m := range r.s.Members {
		if m.JournalID == journalID {
			out = append(out, clone(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsAdmin() != out[j].IsAdmin() {
			return out[i].IsAdmin()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *JournalRepository) UpdateMemberRole(ctx context.Context, memberID uuid.UUID, role journalModel.Role) (*journalModel.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.Members[memberID]
	if !ok {
		return nil, journalModel.ErrMemberNotFound
	}
	m.Role = role
	m.UpdatedAt = r.s.Now()
	return clone(m), nil
}

func (r *JournalRepository) DeleteMember(ctx context.Context, memberID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Members[memberID]; !ok {
		return journalModel.ErrMemberNotFound
	}
	delete(r.s.Members, memberID)
	return nil
}

func (r *JournalRepository) CountAdmins(ctx context.Context, journalID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, m := range r.s.Members {
		if m.JournalID == journalID && m.IsAdmin() {
			n++
		}
	}
	return n, nil
}

func (r *JournalRepository) DeleteMembers(ctx context.Context, journalID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, m := range r.s.Members {
		if m.JournalID == journalID {
			delete(r.s.Members, id)
			n++
		}
	}
	return n, nil
}

func (r *JournalRepository) UnlinkArticles(ctx context.Context, journalID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("journal.UnlinkArticles"); err != nil {
		return 0, err
	}
	var n int64
	for _, a := range r.s.Articles {
		if a.JournalID != nil && *a.JournalID == journalID {
			a.JournalID = nil
			n++
		}
	}
	return n, nil
}

// =====================================================
// PURCHASES
// =====================================================

type PurchaseRepository struct{ s *Store }

func (s *Store) PurchaseRepo() *PurchaseRepository { return &PurchaseRepository{s: s} }

func (r *PurchaseRepository) Create(ctx context.Context, p *purchaseModel.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("purchase.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.Purchases {
		if existing.UserID == p.UserID && existing.ArticleID == p.ArticleID {
			return purchaseModel.ErrAlreadyPurchased
		}
	}
	p.CreatedAt = r.s.Now()
	r.s.Purchases[p.ID] = clone(p)
	return nil
}

func (r *PurchaseRepository) Exists(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("purchase.Exists"); err != nil {
		return false, err
	}
	for _, p := range r.s.Purchases {
		if p.UserID == userID && p.ArticleID == articleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*purchaseModel.PurchaseRecord, error) {
	return r.records(func(p *purchaseModel.Purchase, a *articleModel.Article) bool {
		return p.UserID == userID
	}, false), nil
}

func (r *PurchaseRepository) ListSalesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*purchaseModel.PurchaseRecord, error) {
	return r.records(func(p *purchaseModel.Purchase, a *articleModel.Article) bool {
		return a.AuthorID == authorID
	}, true), nil
}

func (r *PurchaseRepository) records(match func(*purchaseModel.Purchase, *articleModel.Article) bool, oldestFirst bool) []*purchaseModel.PurchaseRecord {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*purchaseModel.PurchaseRecord
	for _, p := range r.s.Purchases {
		a, ok := r.s.Articles[p.ArticleID]
		if !ok || !match(p, a) {
			continue
		}
		out = append(out, &purchaseModel.PurchaseRecord{Purchase: *p, ArticleTitle: a.Title})
	}
	sort.Slice(out, func(i, j int) bool {
		if oldestFirst {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
