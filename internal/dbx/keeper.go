package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
)

// DefaultCheckInterval is how often Watch pings the connection.
const DefaultCheckInterval = 5 * time.Minute

// Opener opens a fresh database handle.
type Opener func(ctx context.Context) (*sql.DB, error)

// Keeper owns the database handle and reopens it when a health check fails.
// Checks run lazily before each use (DB) and periodically (Watch).
type Keeper struct {
	mu     sync.Mutex
	db     *sql.DB
	open   Opener
	logger logging.Logger
}

// NewKeeper opens the initial handle. A failed initial open is reported as
// ErrConnection.
func NewKeeper(ctx context.Context, open Opener, logger logging.Logger) (*Keeper, error) {
	db, err := open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConnection, err)
	}
	return &Keeper{db: db, open: open, logger: logger}, nil
}

// DB returns a live handle, reconnecting first if the current one does not
// answer a ping.
func (k *Keeper) DB(ctx context.Context) (*sql.DB, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.check(ctx); err != nil {
		return nil, err
	}
	return k.db, nil
}

// Check runs one health check, reconnecting if needed.
func (k *Keeper) Check(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.check(ctx)
}

func (k *Keeper) check(ctx context.Context) error {
	if k.db != nil {
		err := k.db.PingContext(ctx)
		if err == nil {
			return nil
		}
		k.logger.Warn(ctx, "database ping failed", "error", err)
		_ = k.db.Close()
		k.db = nil
	}

	db, err := k.open(ctx)
	if err == nil {
		err = db.PingContext(ctx)
		if err != nil {
			_ = db.Close()
		}
	}
	if err != nil {
		k.logger.Error(ctx, "database reconnect failed", "error", err)
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	}

	k.db = db
	k.logger.Info(ctx, "database connection restored")
	return nil
}

// Watch runs Check every interval until ctx is cancelled. Failures are
// logged and retried on the next tick.
func (k *Keeper) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = k.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Close closes the current handle.
func (k *Keeper) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.db == nil {
		return nil
	}
	err := k.db.Close()
	k.db = nil
	return err
}
