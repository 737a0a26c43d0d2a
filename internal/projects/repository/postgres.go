package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/domain"
)

const projectColumns = `id, title, client_name, client_email, phone, address, description, status,
scheduled_at, created_by_user_id, created_at, updated_at, is_deleted, deleted_at`

// sortColumns maps whitelisted sort fields to table columns.
var sortColumns = map[domain.SortField]string{
	domain.SortCreatedAt:   "created_at",
	domain.SortUpdatedAt:   "updated_at",
	domain.SortTitle:       "title",
	domain.SortStatus:      "status",
	domain.SortScheduledAt: "scheduled_at",
	domain.SortClientName:  "client_name",
}

// PostgresStore persists projects in the projects table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store over db.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts p with a fresh id. Timestamps come from the database.
func (r *PostgresStore) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	if p.Status == "" {
		p.Status = domain.StatusDraft
	}

	const q = `
INSERT INTO projects (id, title, client_name, client_email, phone, address, description, status, scheduled_at, created_by_user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + projectColumns

	for i := 0; i < 3; i++ {
		out, err := scanProject(r.db.QueryRowContext(ctx, q,
			uuid.NewString(), p.Title, p.ClientName, p.ClientEmail, p.Phone, p.Address,
			p.Description, string(p.Status), p.ScheduledAt, p.CreatedByUserID,
		))
		if err == nil {
			return out, nil
		}

		// unique violation on id → retry
		if isUniqueViolation(err) {
			continue
		}
		return domain.Project{}, fmt.Errorf("insert project: %w", err)
	}

	return domain.Project{}, fmt.Errorf("failed to generate unique project id")
}

// FindOne returns the first project matching f; ok is false when none does.
func (r *PostgresStore) FindOne(ctx context.Context, f domain.Filter) (domain.Project, bool, error) {
	where, args := buildWhere(f, 1)
	q := `SELECT ` + projectColumns + ` FROM projects WHERE ` + where + ` LIMIT 1`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, false, nil
		}
		return domain.Project{}, false, fmt.Errorf("find project: %w", err)
	}
	return p, true, nil
}

// List counts and fetches one page of projects matching f inside a single
// read-only repeatable-read transaction, so total and items share a snapshot.
func (r *PostgresStore) List(ctx context.Context, f domain.Filter, s domain.Sort, skip, limit int) (int64, []domain.Project, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return 0, nil, fmt.Errorf("begin list: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	where, args := buildWhere(f, 1)

	var total int64
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM projects WHERE `+where, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count projects: %w", err)
	}

	n := len(args)
	q := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		projectColumns, where, orderBy(s), n+1, n+2)
	rows, err := tx.QueryContext(ctx, q, append(args, limit, skip)...)
	if err != nil {
		return 0, nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, limit)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return 0, nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("commit list: %w", err)
	}
	return total, out, nil
}

// Update applies the set fields of patch to the project with the given id.
func (r *PostgresStore) Update(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	sets, args := patchAssignments(patch, 2)
	// updated_at must move forward even when two writes land in the same clock tick.
	sets = append(sets, `updated_at = GREATEST(now(), updated_at + interval '1 microsecond')`)

	q := `UPDATE projects SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + projectColumns

	p, err := scanProject(r.db.QueryRowContext(ctx, q, append([]any{id}, args...)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// buildWhere renders f as a SQL condition with placeholders starting at $next.
func buildWhere(f domain.Filter, next int) (string, []any) {
	if f.MatchNone() {
		return "FALSE", nil
	}

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", next+len(args)-1)
	}

	if f.ActiveOnly {
		conds = append(conds, "is_deleted = false")
	}
	if f.ID != "" {
		conds = append(conds, "id = "+arg(f.ID))
	}
	if f.OwnerID != "" {
		conds = append(conds, "created_by_user_id = "+arg(f.OwnerID))
	}
	if f.Status != "" {
		conds = append(conds, "status = "+arg(string(f.Status)))
	}
	for _, term := range f.Search {
		ph := arg("%" + escapeLike(term) + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %[1]s OR client_name ILIKE %[1]s OR address ILIKE %[1]s)", ph))
	}

	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), args
}

func orderBy(s domain.Sort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = sortColumns[domain.SortCreatedAt]
	}
	dir := "DESC"
	if s.Order == domain.SortAsc {
		dir = "ASC"
	}
	return pq.QuoteIdentifier(col) + " " + dir + ", id ASC"
}

func patchAssignments(p domain.ProjectPatch, next int) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, next+len(args)-1))
	}

	if v, ok := p.Title.Get(); ok {
		set("title", v)
	}
	if v, ok := p.ClientName.Get(); ok {
		set("client_name", v)
	}
	if p.ClientEmail.IsSet() {
		set("client_email", p.ClientEmail.Ptr())
	}
	if p.Phone.IsSet() {
		set("phone", p.Phone.Ptr())
	}
	if p.Address.IsSet() {
		set("address", p.Address.Ptr())
	}
	if p.Description.IsSet() {
		set("description", p.Description.Ptr())
	}
	if v, ok := p.Status.Get(); ok {
		set("status", string(v))
	}
	if p.ScheduledAt.IsSet() {
		set("scheduled_at", p.ScheduledAt.Ptr())
	}
	if v, ok := p.IsDeleted.Get(); ok {
		set("is_deleted", v)
	}
	if p.DeletedAt.IsSet() {
		set("deleted_at", p.DeletedAt.Ptr())
	}
	return sets, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (domain.Project, error) {
	var (
		p      domain.Project
		status string
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.ClientName, &p.ClientEmail, &p.Phone, &p.Address, &p.Description, &status,
		&p.ScheduledAt, &p.CreatedByUserID, &p.CreatedAt, &p.UpdatedAt, &p.IsDeleted, &p.DeletedAt,
	)
	if err != nil {
		return domain.Project{}, err
	}
	p.Status = domain.Status(status)
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
