package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

// PostgresRepository implements Repository over dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryColumns = `id, date, shift, time, content, note`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.Entry, error) {
	e := &models.Entry{}
	if err := s.Scan(&e.ID, &e.Date, &e.Shift, &e.Time, &e.Content, &e.Note); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// ListBySlot returns the rows of a slot ordered by stored time and id.
func (r *PostgresRepository) ListBySlot(ctx context.Context, slot shiftclock.Slot) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal
		WHERE date = $1 AND shift = $2
		ORDER BY time, id`
	return r.queryEntries(ctx, query, slot.Date, slot.Shift)
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Entry) (int64, error) {
	query := `INSERT INTO journal (date, shift, time, content, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, e.Date, e.Shift, e.Time, e.Content, e.Note).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// GetForUpdate loads a row and locks it for the rest of the transaction.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id int64) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal WHERE id = $1 FOR UPDATE`

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) UpdateField(ctx context.Context, id int64, field models.EntryField, value string) error {
	column, err := field.Column()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	query := fmt.Sprintf(`UPDATE journal SET %s = $1 WHERE id = $2`, column)

	res, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journal WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Search runs a case-insensitive substring match over content and note.
// Rows are ordered by stored date and time; night-shift rollover is not
// applied here.
func (r *PostgresRepository) Search(ctx context.Context, f models.SearchFilter) ([]*models.Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.Content != "" {
		args = append(args, "%"+EscapeLike(f.Content)+"%")
		where = append(where, fmt.Sprintf(`content ILIKE $%d`, len(args)))
	}
	if f.Note != "" {
		args = append(args, "%"+EscapeLike(f.Note)+"%")
		where = append(where, fmt.Sprintf(`note ILIKE $%d`, len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + entryColumns + ` FROM journal WHERE 1=1`)
	for _, w := range where {
		b.WriteString(` AND `)
		b.WriteString(w)
	}
	args = append(args, f.PageSize, f.Page*f.PageSize)
	fmt.Fprintf(&b, ` ORDER BY date, time, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return r.queryEntries(ctx, b.String(), args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
