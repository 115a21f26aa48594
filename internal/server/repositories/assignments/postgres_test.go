package assignments

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var slotA = shiftclock.Slot{Date: shiftclock.Date{Year: 2024, Month: 3, Day: 10}, Shift: shiftclock.ShiftA}

func TestListBySlot(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)SELECT id, date, shift, name FROM engineers\s+WHERE date = \$1 AND shift = \$2\s+ORDER BY id`).
		WithArgs(slotA.Date, slotA.Shift).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "shift", "name"}).
			AddRow(int64(1), day, shiftclock.LabelA, "Petrov").
			AddRow(int64(4), day, shiftclock.LabelA, "Ivanov"))

	got, err := repo.ListBySlot(context.Background(), slotA)
	require.NoError(t, err)

	want := []*models.Assignment{
		{ID: 1, Date: slotA.Date, Shift: shiftclock.ShiftA, Name: "Petrov"},
		{ID: 4, Date: slotA.Date, Shift: shiftclock.ShiftA, Name: "Ivanov"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	mock.ExpectQuery(`SELECT .* FROM engineers`).WillReturnError(errors.New("db down"))
	_, err = repo.ListBySlot(context.Background(), slotA)
	require.Error(t, err)
}

func TestAdd(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT INTO engineers \(shift, date, name\)\s+VALUES \(\$1, \$2, \$3\)\s+ON CONFLICT \(date, shift, name\) DO NOTHING`

	mock.ExpectExec(q).WithArgs(slotA.Shift, slotA.Date, "Petrov").WillReturnResult(sqlmock.NewResult(1, 1))
	added, err := repo.Add(context.Background(), slotA, "Petrov")
	require.NoError(t, err)
	require.True(t, added)

	mock.ExpectExec(q).WithArgs(slotA.Shift, slotA.Date, "Petrov").WillReturnResult(sqlmock.NewResult(0, 0))
	added, err = repo.Add(context.Background(), slotA, "Petrov")
	require.NoError(t, err)
	require.False(t, added, "duplicate must be a no-op")

	mock.ExpectExec(q).WillReturnError(errors.New("db down"))
	_, err = repo.Add(context.Background(), slotA, "Petrov")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `DELETE FROM engineers WHERE date = \$1 AND shift = \$2 AND name = \$3`

	mock.ExpectExec(q).WithArgs(slotA.Date, slotA.Shift, "Petrov").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Remove(context.Background(), slotA, "Petrov"))

	mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Remove(context.Background(), slotA, "Nobody"), common.ErrorNotFound)

	mock.ExpectExec(q).WillReturnError(errors.New("db down"))
	require.Error(t, repo.Remove(context.Background(), slotA, "Petrov"))
}
