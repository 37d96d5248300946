// Package storage routes persistence calls to PostgreSQL while it is
// reachable and to process-local memory otherwise.
//
// The adapter starts in ModeRelational when the database could be opened,
// pinged and migrated, and in ModeDegraded otherwise. Degraded is
// absorbing: once entered the adapter never returns to the database and
// nothing written to memory is copied back.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/dbx"
	"github.com/webedt/webedt/internal/logging"
	"github.com/webedt/webedt/internal/server/repositories/repomanager"
	"github.com/webedt/webedt/internal/server/repositories/sessions"
	"github.com/webedt/webedt/internal/server/repositories/users"
)

type Mode int32

const (
	ModeRelational Mode = iota
	ModeDegraded
)

func (m Mode) String() string {
	switch m {
	case ModeRelational:
		return "postgres"
	case ModeDegraded:
		return "memory"
	default:
		return fmt.Sprintf("Mode(%d)", int32(m))
	}
}

const defaultPingTimeout = 5 * time.Second

type Adapter struct {
	mode     atomic.Int32
	degraded chan struct{}
	once     sync.Once

	db       *sql.DB
	manager  repomanager.RepositoryManager
	users    users.Repository
	sessions sessions.Repository

	memUsers    *users.MemoryRepository
	memSessions *sessions.MemoryRepository

	logger      logging.Logger
	pingTimeout time.Duration
}

type Option func(*Adapter)

// WithRepositoryManager replaces the PostgreSQL repository manager.
func WithRepositoryManager(m repomanager.RepositoryManager) Option {
	return func(a *Adapter) { a.manager = m }
}

func WithPingTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.pingTimeout = d }
}

func newAdapter(logger logging.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = logging.Nop()
	}
	a := &Adapter{
		degraded:    make(chan struct{}),
		manager:     repomanager.NewPostgresRepositoryManager(),
		memUsers:    users.NewMemoryRepository(),
		memSessions: sessions.NewMemoryRepository(),
		logger:      logger.With("component", "storage"),
		pingTimeout: defaultPingTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// New returns a relational adapter over an already opened database. It
// neither pings nor migrates.
func New(db *sql.DB, logger logging.Logger, opts ...Option) *Adapter {
	a := newAdapter(logger, opts...)
	a.db = db
	a.users = a.manager.Users(db)
	a.sessions = a.manager.Sessions(db)
	a.mode.Store(int32(ModeRelational))
	return a
}

// NewMemory returns an adapter that starts degraded.
func NewMemory(logger logging.Logger, opts ...Option) *Adapter {
	a := newAdapter(logger, opts...)
	a.mode.Store(int32(ModeDegraded))
	a.once.Do(func() { close(a.degraded) })
	return a
}

// Open connects to dsn, verifies the connection and applies migrations.
// It never fails: any problem is logged and the adapter comes up degraded.
func Open(ctx context.Context, dsn string, logger logging.Logger, opts ...Option) *Adapter {
	if dsn == "" {
		a := NewMemory(logger, opts...)
		a.logger.Warn(ctx, "no database configured, using in-memory storage")
		return a
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		a := NewMemory(logger, opts...)
		a.logger.Warn(ctx, "database open failed, using in-memory storage", "error", err)
		return a
	}

	a := New(db, logger, opts...)

	pingCtx, cancel := context.WithTimeout(ctx, a.pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		a.Degrade(ctx, fmt.Sprintf("database ping failed: %v", err))
		return a
	}
	if err := a.manager.RunMigrations(ctx, db); err != nil {
		a.Degrade(ctx, fmt.Sprintf("database migration failed: %v", err))
		return a
	}

	a.logger.Info(ctx, "storage ready", "mode", ModeRelational.String())
	return a
}

func (a *Adapter) Mode() Mode {
	return Mode(a.mode.Load())
}

// Degraded is closed once the adapter has switched to memory.
func (a *Adapter) Degraded() <-chan struct{} {
	return a.degraded
}

// Degrade switches to memory. Only the first call has any effect.
func (a *Adapter) Degrade(ctx context.Context, reason string) {
	if !a.mode.CompareAndSwap(int32(ModeRelational), int32(ModeDegraded)) {
		return
	}
	a.once.Do(func() { close(a.degraded) })
	a.logger.Warn(ctx, "database unavailable, falling back to in-memory storage", "reason", reason)
}

// Watch pings the database every interval and degrades on the first
// failure. It returns when ctx is done or the adapter is degraded.
func (a *Adapter) Watch(ctx context.Context, interval time.Duration) {
	if a.db == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.degraded:
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, a.pingTimeout)
			err := a.db.PingContext(pingCtx)
			cancel()
			if err != nil && ctx.Err() == nil {
				a.Degrade(ctx, fmt.Sprintf("database ping failed: %v", err))
				return
			}
		}
	}
}

func (a *Adapter) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// isDomainError reports errors that describe the request rather than the
// health of the store. These are returned as is and never trigger fallback.
func isDomainError(err error) bool {
	return errors.Is(err, common.ErrNotFound) ||
		errors.Is(err, common.ErrNoFieldsToUpdate) ||
		errors.Is(err, common.ErrEmailTaken) ||
		errors.Is(err, common.ErrAlreadyExists) ||
		errors.Is(err, common.ErrValidation)
}

func (a *Adapter) noteFailure(ctx context.Context, op string, err error) {
	if dbx.IsConnError(err) {
		a.Degrade(ctx, fmt.Sprintf("%s: %v", op, err))
	}
}

// rejected turns a PostgreSQL data or constraint error into a validation
// error so it reaches the client as a 400 and is not retried on memory.
func rejected(err error) error {
	if dbx.IsDataError(err) {
		return fmt.Errorf("%w: %w", common.NewValidationError("Invalid field value"), err)
	}
	return err
}

// read runs rel in relational mode and mem in degraded mode. A relational
// failure is reported as common.ErrStorageUnavailable.
func read[T any](ctx context.Context, a *Adapter, op string, rel, mem func() (T, error)) (T, error) {
	if a.Mode() == ModeDegraded {
		return mem()
	}

	v, err := rel()
	err = rejected(err)
	if err == nil || isDomainError(err) || ctx.Err() != nil {
		return v, err
	}

	a.noteFailure(ctx, op, err)
	a.logger.Error(ctx, "relational read failed", "op", op, "error", err)

	var zero T
	return zero, fmt.Errorf("%s: %w", op, common.ErrStorageUnavailable)
}

// write tries rel first in relational mode and re-runs the call against
// memory when rel fails for a storage reason.
func write[T any](ctx context.Context, a *Adapter, op string, rel, mem func() (T, error)) (T, error) {
	if a.Mode() == ModeRelational {
		v, err := rel()
		err = rejected(err)
		if err == nil || isDomainError(err) || ctx.Err() != nil {
			return v, err
		}

		a.noteFailure(ctx, op, err)
		a.logger.Warn(ctx, "relational write failed, writing to memory", "op", op, "error", err)
	}
	return mem()
}
