package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/client/client"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
	"github.com/stretchr/testify/require"
)

// fakeClient records calls; methods not overridden panic through the nil
// embedded interface.
type fakeClient struct {
	client.Client

	endpoint    string
	reconnected []string
	loggedIn    bool

	loginErr    error
	registerErr error
	logoutCalls int

	slot        shiftclock.Slot
	entries     []api.Entry
	assignments []api.Assignment
	listErr     error

	inserted   []api.InsertEntryRequest
	updated    []api.UpdateEntryRequest
	deleted    []api.DeleteEntryRequest
	deleteErr  error
	assigned   []string
	search     []api.SearchEntriesRequest
	dirAdded   []api.DirectoryEntryRequest
	archiveID  string
	archiveURL string
	archiveErr error
	marked     []string
}

func (f *fakeClient) Endpoint() string { return f.endpoint }
func (f *fakeClient) Reconnect(ep string) error {
	f.reconnected = append(f.reconnected, ep)
	f.endpoint = ep
	f.loggedIn = false
	return nil
}
func (f *fakeClient) LoggedIn() bool { return f.loggedIn }
func (f *fakeClient) Close() error   { return nil }

func (f *fakeClient) Register(ctx context.Context, username string, password []byte) error {
	return f.registerErr
}

func (f *fakeClient) Login(ctx context.Context, username string, password []byte) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	return nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.logoutCalls++
	f.loggedIn = false
	return nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) ActiveSlot(ctx context.Context) (shiftclock.Slot, error) { return f.slot, nil }

func (f *fakeClient) ListEntries(ctx context.Context, slot shiftclock.Slot) ([]api.Entry, error) {
	return f.entries, f.listErr
}

func (f *fakeClient) InsertEntry(ctx context.Context, slot shiftclock.Slot, at, content, note string) (int64, error) {
	f.inserted = append(f.inserted, api.InsertEntryRequest{Slot: slot, Time: at, Content: content, Note: note})
	return int64(len(f.inserted)), nil
}

func (f *fakeClient) UpdateEntry(ctx context.Context, id int64, field, value string) error {
	f.updated = append(f.updated, api.UpdateEntryRequest{ID: id, Field: field, Value: value})
	return nil
}

func (f *fakeClient) DeleteEntry(ctx context.Context, id int64, confirmed bool) error {
	f.deleted = append(f.deleted, api.DeleteEntryRequest{ID: id, Confirmed: confirmed})
	return f.deleteErr
}

func (f *fakeClient) ListAssignments(ctx context.Context, slot shiftclock.Slot) ([]api.Assignment, error) {
	return f.assignments, nil
}

func (f *fakeClient) AddAssignment(ctx context.Context, slot shiftclock.Slot, name string) (bool, error) {
	for _, n := range f.assigned {
		if n == name {
			return false, nil
		}
	}
	f.assigned = append(f.assigned, name)
	return true, nil
}

func (f *fakeClient) AddDirectoryEntry(ctx context.Context, fullName, tabNumber string) (int64, error) {
	f.dirAdded = append(f.dirAdded, api.DirectoryEntryRequest{FullName: fullName, TabNumber: tabNumber})
	return 1, nil
}

func (f *fakeClient) SearchEntries(ctx context.Context, req api.SearchEntriesRequest) (*api.SearchEntriesResponse, error) {
	f.search = append(f.search, req)
	return &api.SearchEntriesResponse{Page: req.Page}, nil
}

func (f *fakeClient) ArchiveReport(ctx context.Context, slot shiftclock.Slot) (string, string, error) {
	return f.archiveID, f.archiveURL, f.archiveErr
}

func (f *fakeClient) MarkReportArchived(ctx context.Context, id string) error {
	f.marked = append(f.marked, id)
	return nil
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var night = shiftclock.Slot{Date: shiftclock.Date{Year: 2024, Month: 3, Day: 10}, Shift: shiftclock.ShiftB}
