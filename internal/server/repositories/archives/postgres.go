package archives

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a pending archive record.
func (r *PostgresRepository) Create(ctx context.Context, a *models.ReportArchive) error {
	query := `INSERT INTO report_archives (id, date, shift, storage_key, upload_status)
		VALUES ($1, $2, $3, $4, $5)`

	status := a.UploadStatus
	if status == "" {
		status = models.UploadPending
	}
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.Date, a.Shift, a.StorageKey, status); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	a.UploadStatus = status
	return nil
}

// MarkUploaded sets upload_status to completed. Exactly one row must be
// affected.
func (r *PostgresRepository) MarkUploaded(ctx context.Context, id string) error {
	query := `UPDATE report_archives SET upload_status = 'completed' WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark uploaded: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("wrong rows affected count: %d", n)
	}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.ReportArchive, error) {
	query := `SELECT id, date, shift, storage_key, upload_status, created_at
		FROM report_archives WHERE id = $1`

	a := &models.ReportArchive{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Date, &a.Shift, &a.StorageKey, &a.UploadStatus, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// ListBySlot returns the slot's archives, newest first.
func (r *PostgresRepository) ListBySlot(ctx context.Context, slot shiftclock.Slot) ([]*models.ReportArchive, error) {
	query := `SELECT id, date, shift, storage_key, upload_status, created_at
		FROM report_archives
		WHERE date = $1 AND shift = $2
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, slot.Date, slot.Shift)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ReportArchive
	for rows.Next() {
		a := &models.ReportArchive{}
		if err := rows.Scan(&a.ID, &a.Date, &a.Shift, &a.StorageKey, &a.UploadStatus, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
