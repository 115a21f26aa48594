package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/archives"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/assignments"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/engineers"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/users"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

var errBoom = errors.New("boom")

// -------- keeper --------

type fakeKeeper struct {
	db  *sql.DB
	err error
}

func (k *fakeKeeper) DB(context.Context) (*sql.DB, error) { return k.db, k.err }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// -------- clock --------

// 2024-03-10 21:00 is the night shift of 2024-03-10.
var (
	nightNow  = time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)
	nightSlot = shiftclock.Slot{Date: shiftclock.Date{Year: 2024, Month: 3, Day: 10}, Shift: shiftclock.ShiftB}
	daySlot   = shiftclock.Slot{Date: shiftclock.Date{Year: 2024, Month: 3, Day: 10}, Shift: shiftclock.ShiftA}
)

// -------- repositories --------

type fakeEntriesRepo struct {
	entries.Repository

	rows    []*models.Entry
	listErr error

	createID  int64
	createErr error
	created   []*models.Entry

	byID   map[int64]*models.Entry
	getErr error

	updateErr error
	updated   []string

	deleteErr error
	deleted   []int64

	searchRows []*models.Entry
	searchErr  error
	searched   []models.SearchFilter
}

func (f *fakeEntriesRepo) ListBySlot(_ context.Context, _ shiftclock.Slot) ([]*models.Entry, error) {
	return f.rows, f.listErr
}

func (f *fakeEntriesRepo) Create(_ context.Context, e *models.Entry) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, e)
	return f.createID, nil
}

func (f *fakeEntriesRepo) GetForUpdate(_ context.Context, id int64) (*models.Entry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (f *fakeEntriesRepo) UpdateField(_ context.Context, id int64, field models.EntryField, value string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, field.String()+"="+value)
	return nil
}

func (f *fakeEntriesRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEntriesRepo) Search(_ context.Context, filter models.SearchFilter) ([]*models.Entry, error) {
	f.searched = append(f.searched, filter)
	return f.searchRows, f.searchErr
}

type fakeAssignmentsRepo struct {
	assignments.Repository
	list      []*models.Assignment
	addResult bool
	err       error
	added     []string
	removed   []string
}

func (f *fakeAssignmentsRepo) ListBySlot(context.Context, shiftclock.Slot) ([]*models.Assignment, error) {
	return f.list, f.err
}

func (f *fakeAssignmentsRepo) Add(_ context.Context, _ shiftclock.Slot, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.added = append(f.added, name)
	return f.addResult, nil
}

func (f *fakeAssignmentsRepo) Remove(_ context.Context, _ shiftclock.Slot, name string) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, name)
	return nil
}

type fakeEngineersRepo struct {
	engineers.Repository
	list    []*models.Engineer
	err     error
	nextID  int64
	added   [][2]string
	removed [][2]string
}

func (f *fakeEngineersRepo) List(context.Context) ([]*models.Engineer, error) { return f.list, f.err }

func (f *fakeEngineersRepo) Add(_ context.Context, name, tab string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.added = append(f.added, [2]string{name, tab})
	return f.nextID, nil
}

func (f *fakeEngineersRepo) Remove(_ context.Context, name, tab string) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, [2]string{name, tab})
	return nil
}

type fakeUsersRepo struct {
	users.Repository
	created   *models.User
	createErr error
	getOut    *models.User
	getErr    error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "u-1"
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	return f.getOut, f.getErr
}

type fakeRefreshRepo struct {
	refreshtokens.Repository
	findOut   *models.RefreshToken
	findErr   error
	createErr error
	delErr    error

	created      []string
	deleted      []string
	deletedUsers []string
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, userID+":"+token)
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	return f.findOut, f.findErr
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteForUser(_ context.Context, userID string) (int64, error) {
	if f.delErr != nil {
		return 0, f.delErr
	}
	f.deletedUsers = append(f.deletedUsers, userID)
	return 1, nil
}

type fakeArchivesRepo struct {
	archives.Repository
	created []*models.ReportArchive
	list    []*models.ReportArchive
	err     error
	marked  []string
}

func (f *fakeArchivesRepo) Create(_ context.Context, a *models.ReportArchive) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, a)
	return nil
}

func (f *fakeArchivesRepo) MarkUploaded(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeArchivesRepo) ListBySlot(context.Context, shiftclock.Slot) ([]*models.ReportArchive, error) {
	return f.list, f.err
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	e  *fakeEntriesRepo
	a  *fakeAssignmentsRepo
	en *fakeEngineersRepo
	u  *fakeUsersRepo
	rt *fakeRefreshRepo
	ar *fakeArchivesRepo
}

func (m *fakeRepoManager) Entries(dbx.DBTX) entries.Repository             { return m.e }
func (m *fakeRepoManager) Assignments(dbx.DBTX) assignments.Repository     { return m.a }
func (m *fakeRepoManager) Engineers(dbx.DBTX) engineers.Repository         { return m.en }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.rt }
func (m *fakeRepoManager) Archives(dbx.DBTX) archives.Repository           { return m.ar }

type switchClock struct{ now time.Time }

func (c *switchClock) Now() time.Time { return c.now }

// mockOf returns a fresh sqlmock bound to k.
func mockOf(t *testing.T, k *fakeKeeper) sqlmock.Sqlmock {
	t.Helper()
	db, mock := newSQLMockDB(t)
	k.db = db
	return mock
}
