package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/client/client"
	"github.com/dmitrijs2005/shiftjournal/internal/client/config"
	"github.com/dmitrijs2005/shiftjournal/internal/client/services"
	"github.com/dmitrijs2005/shiftjournal/internal/filex"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	"github.com/dmitrijs2005/shiftjournal/internal/mailer"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
	"github.com/dmitrijs2005/shiftjournal/internal/voice"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	auth     services.AuthService
	journal  services.JournalService
	reports  services.ReportService
	settings services.SettingsService
	logger   logging.Logger
	db       *sql.DB
	session  *Session
	reader   *bufio.Reader
	out      io.Writer

	mu       sync.RWMutex
	mode     Mode
	userName string

	newDrafter     func() (mailer.Drafter, error)
	newTranscriber func(ctx context.Context) (voice.Transcriber, error)
	source         voice.Source
}

func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		l.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	exportDir := c.ExportDir
	if !filepath.IsAbs(exportDir) {
		if exportDir, err = filex.EnsureSubdDir(exportDir); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	apiClient, err := client.NewJournalClientService(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:   c,
		auth:     services.NewAuthService(apiClient, db, l),
		journal:  services.NewJournalService(apiClient),
		reports:  services.NewReportService(apiClient, exportDir, l),
		settings: services.NewSettingsService(db),
		logger:   l,
		db:       db,
		session:  NewSession(shiftclock.Active(shiftclock.SystemClock{})),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		source:   voice.NewCommandSource(c.Voice.RecorderCommand),
	}
	a.newDrafter = a.defaultDrafter
	a.newTranscriber = a.defaultTranscriber
	return a, nil
}

func (a *App) defaultDrafter() (mailer.Drafter, error) {
	m := a.config.Mail
	switch m.Backend {
	case config.MailBackendGraph:
		return mailer.NewGraphDrafter(m.GraphTenant, m.GraphClientID, m.GraphToken, a.out), nil
	case config.MailBackendEML, "":
		return &mailer.EMLDrafter{Dir: m.DraftDir}, nil
	default:
		return nil, fmt.Errorf("unknown mail backend %q", m.Backend)
	}
}

func (a *App) defaultTranscriber(ctx context.Context) (voice.Transcriber, error) {
	v := a.config.Voice
	key := os.Getenv(v.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("environment variable %s is not set", v.APIKeyEnv)
	}
	return voice.NewGeminiTranscriber(ctx, key, v.Model, v.Language)
}

// Run starts the REPL and releases the connection and database on return.
func (a *App) Run(ctx context.Context) {
	defer a.close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.auth.LoggedIn()
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) getStatus() string {
	a.mu.RLock()
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s += string(a.mode) + " "
	}
	a.mu.RUnlock()

	slot := a.session.Slot()
	return fmt.Sprintf("(%s%s %s)", s, slot.Date, slot.Shift)
}

// pingTimeout bounds a single watcher ping.
var pingTimeout = 3 * time.Second

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode between online and offline. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
