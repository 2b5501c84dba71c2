package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kiosk-backend/internal/domains/journal/model"
	"kiosk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const (
	journalColumns = `id, name, slug, description, logo_url, created_at, updated_at`
	memberColumns  = `id, user_id, journal_id, role, created_at, updated_at`
)

func scanJournal(row pgx.Row) (*model.Journal, error) {
	var j model.Journal
	err := row.Scan(&j.ID, &j.Name, &j.Slug, &j.Description, &j.LogoURL, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func scanMember(row pgx.Row) (*model.Member, error) {
	var m model.Member
	if err := row.Scan(&m.ID, &m.UserID, &m.JournalID, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// =====================================================
// JOURNALS
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, j *model.Journal) error {
	query := `
		INSERT INTO journals (id, name, slug, description, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, query, j.ID, j.Name, j.Slug, j.Description, j.LogoURL).
		Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "journals_slug_key") {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("insert journal: %w", err)
	}
	return nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM journals WHERE slug = $1)`, slug).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg any) (*model.Journal, error) {
	j, err := scanJournal(database.Conn(ctx, r.pool).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrJournalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find journal: %w", err)
	}
	return j, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Journal, error) {
	return r.findOne(ctx, `SELECT `+journalColumns+` FROM journals WHERE id = $1`, id)
}

func (r *postgresRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Journal, error) {
	return r.findOne(ctx, `SELECT `+journalColumns+` FROM journals WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Journal, error) {
	return r.findOne(ctx, `SELECT `+journalColumns+` FROM journals WHERE slug = $1`, slug)
}

func (r *postgresRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.JournalWithRole, error) {
	query := `
		SELECT j.id, j.name, j.slug, j.description, j.logo_url, j.created_at, j.updated_at,
		       m.role,
		       (SELECT COUNT(*) FROM journal_members c WHERE c.journal_id = j.id)
		FROM journals j
		JOIN journal_members m ON m.journal_id = j.id
		WHERE m.user_id = $1
		ORDER BY j.name ASC
	`
	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list journals for user: %w", err)
	}
	defer rows.Close()

	var result []*model.JournalWithRole
	for rows.Next() {
		var jr model.JournalWithRole
		err := rows.Scan(
			&jr.ID, &jr.Name, &jr.Slug, &jr.Description, &jr.LogoURL, &jr.CreatedAt, &jr.UpdatedAt,
			&jr.Role, &jr.MemberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		result = append(result, &jr)
	}
	return result, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM journals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrJournalNotFound
	}
	return nil
}

// =====================================================
// MEMBERSHIPS
// =====================================================

func (r *postgresRepository) CreateMember(ctx context.Context, m *model.Member) error {
	query := `
		INSERT INTO journal_members (id, user_id, journal_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, query, m.ID, m.UserID, m.JournalID, m.Role).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "journal_members_user_id_journal_id_key") {
			return model.ErrAlreadyMember
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindMember(ctx context.Context, journalID, userID uuid.UUID) (*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM journal_members WHERE journal_id = $1 AND user_id = $2`

	m, err := scanMember(database.Conn(ctx, r.pool).QueryRow(ctx, query, journalID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) FindMemberByID(ctx context.Context, memberID uuid.UUID) (*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM journal_members WHERE id = $1`

	m, err := scanMember(database.Conn(ctx, r.pool).QueryRow(ctx, query, memberID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find member by id: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) ListMembers(ctx context.Context, journalID uuid.UUID) ([]*model.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM journal_members
		WHERE journal_id = $1
		ORDER BY (role = 'ADMIN') DESC, created_at ASC
	`
	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []*model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *postgresRepository) UpdateMemberRole(ctx context.Context, memberID uuid.UUID, role model.Role) (*model.Member, error) {
	query := `
		UPDATE journal_members
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + memberColumns

	m, err := scanMember(database.Conn(ctx, r.pool).QueryRow(ctx, query, memberID, role))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update member role: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) DeleteMember(ctx context.Context, memberID uuid.UUID) error {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM journal_members WHERE id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

func (r *postgresRepository) CountAdmins(ctx context.Context, journalID uuid.UUID) (int, error) {
	var n int
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, `SELECT COUNT(*) FROM journal_members WHERE journal_id = $1 AND role = 'ADMIN'`, journalID).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) DeleteMembers(ctx context.Context, journalID uuid.UUID) (int64, error) {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM journal_members WHERE journal_id = $1`, journalID)
	if err != nil {
		return 0, fmt.Errorf("delete members: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) UnlinkArticles(ctx context.Context, journalID uuid.UUID) (int64, error) {
	query := `UPDATE articles SET journal_id = NULL, updated_at = NOW() WHERE journal_id = $1`
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, query, journalID)
	if err != nil {
		return 0, fmt.Errorf("unlink articles: %w", err)
	}
	return tag.RowsAffected(), nil
}
