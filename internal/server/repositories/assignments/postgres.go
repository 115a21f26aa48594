package assignments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListBySlot returns assignments in insertion order.
func (r *PostgresRepository) ListBySlot(ctx context.Context, slot shiftclock.Slot) ([]*models.Assignment, error) {
	query := `SELECT id, date, shift, name FROM engineers
		WHERE date = $1 AND shift = $2
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, slot.Date, slot.Shift)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Assignment
	for rows.Next() {
		a := &models.Assignment{}
		if err := rows.Scan(&a.ID, &a.Date, &a.Shift, &a.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Add inserts the assignment unless it already exists. It reports whether a
// row was written.
func (r *PostgresRepository) Add(ctx context.Context, slot shiftclock.Slot, name string) (bool, error) {
	query := `INSERT INTO engineers (shift, date, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (date, shift, name) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, slot.Shift, slot.Date, name)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, slot shiftclock.Slot, name string) error {
	query := `DELETE FROM engineers WHERE date = $1 AND shift = $2 AND name = $3`

	res, err := r.db.ExecContext(ctx, query, slot.Date, slot.Shift, name)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
