package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/client/config"
	"github.com/dmitrijs2005/shiftjournal/internal/client/services"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	"github.com/dmitrijs2005/shiftjournal/internal/mailer"
	"github.com/dmitrijs2005/shiftjournal/internal/report"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

var (
	day   = shiftclock.Slot{Date: shiftclock.Date{Year: 2024, Month: 3, Day: 10}, Shift: shiftclock.ShiftA}
	night = shiftclock.Slot{Date: shiftclock.Date{Year: 2024, Month: 3, Day: 10}, Shift: shiftclock.ShiftB}
	older = shiftclock.Slot{Date: shiftclock.Date{Year: 2024, Month: 3, Day: 9}, Shift: shiftclock.ShiftB}
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// silence swaps printlnFn for a collector.
func silence(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			} else if e, ok := v.(error); ok {
				parts = append(parts, e.Error())
			}
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

type fakeAuth struct {
	host     string
	loggedIn bool
	saved    *services.Credentials

	loginErr   error
	logins     []services.Credentials
	registered []services.Credentials
	savedCalls []services.Credentials
	forgot     bool
	loggedOut  bool

	pingErr   error
	pingCalls int
}

func (f *fakeAuth) Register(_ context.Context, host, u string, p []byte) error {
	f.registered = append(f.registered, services.Credentials{Host: host, Username: u, Password: append([]byte(nil), p...)})
	return nil
}

func (f *fakeAuth) Login(_ context.Context, host, u string, p []byte) error {
	f.logins = append(f.logins, services.Credentials{Host: host, Username: u, Password: append([]byte(nil), p...)})
	if f.loginErr != nil {
		return f.loginErr
	}
	if host != "" {
		f.host = host
	}
	f.loggedIn = true
	return nil
}

func (f *fakeAuth) Logout(context.Context) error { f.loggedIn = false; f.loggedOut = true; return nil }
func (f *fakeAuth) Ping(context.Context) error   { f.pingCalls++; return f.pingErr }
func (f *fakeAuth) LoggedIn() bool               { return f.loggedIn }
func (f *fakeAuth) Host() string                 { return f.host }
func (f *fakeAuth) Close() error                 { return nil }

func (f *fakeAuth) SaveCredentials(_ context.Context, c services.Credentials) error {
	c.Password = append([]byte(nil), c.Password...)
	f.savedCalls = append(f.savedCalls, c)
	return nil
}

func (f *fakeAuth) SavedCredentials(context.Context) (*services.Credentials, error) {
	if f.saved == nil {
		return nil, nil
	}
	c := *f.saved
	c.Password = append([]byte(nil), f.saved.Password...)
	return &c, nil
}

func (f *fakeAuth) Forget(context.Context) error { f.forgot = true; f.saved = nil; return nil }

type fakeJournal struct {
	active  shiftclock.Slot
	entries []api.Entry

	added    []api.InsertEntryRequest
	edited   []api.UpdateEntryRequest
	deleted  []api.DeleteEntryRequest
	assigned []string
	searches []api.SearchEntriesRequest
	err      error
}

func (f *fakeJournal) ActiveSlot(context.Context) (shiftclock.Slot, error) { return f.active, nil }

func (f *fakeJournal) Entries(context.Context, shiftclock.Slot) ([]api.Entry, error) {
	return f.entries, f.err
}

func (f *fakeJournal) AddEntry(_ context.Context, slot shiftclock.Slot, at, content, note string) (int64, error) {
	f.added = append(f.added, api.InsertEntryRequest{Slot: slot, Time: at, Content: content, Note: note})
	return int64(len(f.added)), f.err
}

func (f *fakeJournal) EditEntry(_ context.Context, id int64, field, value string) error {
	f.edited = append(f.edited, api.UpdateEntryRequest{ID: id, Field: field, Value: value})
	return f.err
}

func (f *fakeJournal) DeleteEntry(_ context.Context, id int64, confirmed bool) error {
	f.deleted = append(f.deleted, api.DeleteEntryRequest{ID: id, Confirmed: confirmed})
	return f.err
}

func (f *fakeJournal) Engineers(context.Context, shiftclock.Slot) ([]api.Assignment, error) {
	out := make([]api.Assignment, 0, len(f.assigned))
	for i, n := range f.assigned {
		out = append(out, api.Assignment{ID: int64(i + 1), Name: n})
	}
	return out, nil
}

func (f *fakeJournal) Assign(_ context.Context, _ shiftclock.Slot, name string) (bool, error) {
	for _, n := range f.assigned {
		if n == name {
			return false, nil
		}
	}
	f.assigned = append(f.assigned, name)
	return true, nil
}

func (f *fakeJournal) Unassign(context.Context, shiftclock.Slot, string) error { return nil }
func (f *fakeJournal) Directory(context.Context) ([]api.Engineer, error)     { return nil, nil }
func (f *fakeJournal) AddToDirectory(context.Context, string, string) (int64, error) {
	return 1, nil
}
func (f *fakeJournal) RemoveFromDirectory(context.Context, string, string) error { return nil }

func (f *fakeJournal) Search(_ context.Context, content, note string, page int) (*api.SearchEntriesResponse, error) {
	f.searches = append(f.searches, api.SearchEntriesRequest{Content: content, Note: note, Page: page})
	return &api.SearchEntriesResponse{Page: page}, nil
}

type fakeReports struct {
	exportPath    string
	exportArchive bool
	result        *services.ExportResult
	err           error
	mailTo        []string
}

func (f *fakeReports) Build(context.Context, shiftclock.Slot) (*report.Report, error) {
	return &report.Report{}, nil
}

func (f *fakeReports) Export(_ context.Context, _ shiftclock.Slot, path string, archive bool) (*services.ExportResult, error) {
	f.exportPath, f.exportArchive = path, archive
	return f.result, f.err
}

func (f *fakeReports) Archives(context.Context, shiftclock.Slot) ([]api.Archive, error) {
	return []api.Archive{{ID: "a-1", UploadStatus: "completed", CreatedAt: "2024-03-11T08:40:00Z"}}, nil
}

func (f *fakeReports) ComposeMail(_ context.Context, slot shiftclock.Slot, to, cc []string) (*mailer.Message, error) {
	f.mailTo = to
	return &mailer.Message{To: to, Cc: cc, Subject: "s"}, nil
}

type fakeSettings struct{ gain int }

func (f *fakeSettings) VoiceGain(context.Context) (int, error)     { return f.gain, nil }
func (f *fakeSettings) SetVoiceGain(_ context.Context, g int) error { f.gain = g; return nil }

func newTestApp(reader *bufio.Reader) (*App, *fakeAuth, *fakeJournal) {
	fa := &fakeAuth{host: "127.0.0.1:50051", loggedIn: true}
	fj := &fakeJournal{active: night}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:   cfg,
		auth:     fa,
		journal:  fj,
		reports:  &fakeReports{},
		settings: &fakeSettings{gain: 1},
		logger:   logging.Nop{},
		session:  NewSession(night),
		reader:   reader,
		out:      io.Discard,
	}, fa, fj
}
