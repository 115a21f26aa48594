package client

import (
	"context"

	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

type Client interface {
	Close() error
	Endpoint() string
	Reconnect(endpoint string) error
	LoggedIn() bool

	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error

	ActiveSlot(ctx context.Context) (shiftclock.Slot, error)
	ListEntries(ctx context.Context, slot shiftclock.Slot) ([]api.Entry, error)
	InsertEntry(ctx context.Context, slot shiftclock.Slot, at, content, note string) (int64, error)
	UpdateEntry(ctx context.Context, id int64, field, value string) error
	DeleteEntry(ctx context.Context, id int64, confirmed bool) error

	ListAssignments(ctx context.Context, slot shiftclock.Slot) ([]api.Assignment, error)
	AddAssignment(ctx context.Context, slot shiftclock.Slot, name string) (bool, error)
	RemoveAssignment(ctx context.Context, slot shiftclock.Slot, name string) error

	ListDirectory(ctx context.Context) ([]api.Engineer, error)
	AddDirectoryEntry(ctx context.Context, fullName, tabNumber string) (int64, error)
	RemoveDirectoryEntry(ctx context.Context, fullName, tabNumber string) error

	SearchEntries(ctx context.Context, req api.SearchEntriesRequest) (*api.SearchEntriesResponse, error)

	ArchiveReport(ctx context.Context, slot shiftclock.Slot) (id string, url string, err error)
	MarkReportArchived(ctx context.Context, id string) error
	ListArchives(ctx context.Context, slot shiftclock.Slot) ([]api.Archive, error)
}
