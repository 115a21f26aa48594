package engineers

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Engineer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, full_name, tab_number FROM engineers_info ORDER BY full_name, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Engineer
	for rows.Next() {
		e := &models.Engineer{}
		if err := rows.Scan(&e.ID, &e.FullName, &e.TabNumber); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Add(ctx context.Context, fullName, tabNumber string) (int64, error) {
	query := `INSERT INTO engineers_info (full_name, tab_number)
		VALUES ($1, $2)
		RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, fullName, tabNumber).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Remove deletes every directory record matching both name and tab number.
func (r *PostgresRepository) Remove(ctx context.Context, fullName, tabNumber string) error {
	query := `DELETE FROM engineers_info WHERE full_name = $1 AND tab_number = $2`

	res, err := r.db.ExecContext(ctx, query, fullName, tabNumber)
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
