package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	articleModel "kiosk-backend/internal/domains/article/model"
	imageModel "kiosk-backend/internal/domains/image/model"
	journalModel "kiosk-backend/internal/domains/journal/model"
	purchaseModel "kiosk-backend/internal/domains/purchase/model"
	"kiosk-backend/internal/domains/user"
)

// Store is an in-memory stand-in for the postgres schema shared by every
// fake repository. WithinTx restores a snapshot when fn fails, so fakes
// keep the all-or-nothing behaviour services rely on.
type Store struct {
	mu sync.Mutex

	Users     map[uuid.UUID]*user.User
	Images    map[uuid.UUID]*imageModel.Image
	Articles  map[uuid.UUID]*articleModel.Article
	Journals  map[uuid.UUID]*journalModel.Journal
	Members   map[uuid.UUID]*journalModel.Member
	Purchases map[uuid.UUID]*purchaseModel.Purchase

	// Errors makes the named operation (e.g. "image.LinkOrphans") fail.
	Errors map[string]error

	Now func() time.Time

	TxCount       int
	RollbackCount int
}

func NewStore() *Store {
	return &Store{
		Users:     make(map[uuid.UUID]*user.User),
		Images:    make(map[uuid.UUID]*imageModel.Image),
		Articles:  make(map[uuid.UUID]*articleModel.Article),
		Journals:  make(map[uuid.UUID]*journalModel.Journal),
		Members:   make(map[uuid.UUID]*journalModel.Member),
		Purchases: make(map[uuid.UUID]*purchaseModel.Purchase),
		Errors:    make(map[string]error),
		Now:       time.Now,
	}
}

// FailOn makes op return err until cleared with FailOn(op, nil).
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.Errors, op)
		return
	}
	s.Errors[op] = err
}

// injected must be called with s.mu held.
func (s *Store) injected(op string) error {
	return s.Errors[op]
}

type txKey struct{}

// WithinTx joins an outer transaction when ctx already carries one.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(bool); ok {
		return fn(ctx)
	}

	s.mu.Lock()
	s.TxCount++
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.RollbackCount++
		s.mu.Unlock()
		return err
	}
	return nil
}

type snapshot struct {
	users     map[uuid.UUID]*user.User
	images    map[uuid.UUID]*imageModel.Image
	articles  map[uuid.UUID]*articleModel.Article
	journals  map[uuid.UUID]*journalModel.Journal
	members   map[uuid.UUID]*journalModel.Member
	purchases map[uuid.UUID]*purchaseModel.Purchase
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:     cloneMap(s.Users),
		images:    cloneMap(s.Images),
		articles:  cloneMap(s.Articles),
		journals:  cloneMap(s.Journals),
		members:   cloneMap(s.Members),
		purchases: cloneMap(s.Purchases),
	}
}

func (s *Store) restore(snap snapshot) {
	s.Users = snap.users
	s.Images = snap.images
	s.Articles = snap.articles
	s.Journals = snap.journals
	s.Members = snap.members
	s.Purchases = snap.purchases
}

// cloneMap copies every value so in-place updates after the snapshot do
// not leak into it.
func cloneMap[T any](m map[uuid.UUID]*T) map[uuid.UUID]*T {
	out := make(map[uuid.UUID]*T, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

func clone[T any](v *T) *T {
	cp := *v
	return &cp
}
