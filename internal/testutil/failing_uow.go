package testutil

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/alexanderramin/timeplan/internal/db"
)

// FailingUoW runs transactions against DB but makes the FailOn-th write whose
// SQL contains Match return Err. An empty Match counts every write; reads are
// never counted. The transaction is rolled back whenever fn fails.
type FailingUoW struct {
	DB     *sql.DB
	Match  string
	FailOn int
	Err    error

	mu    sync.Mutex
	seen  int
	fired bool
}

// Fired reports whether the injected error was returned.
func (u *FailingUoW) Fired() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.fired
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// trip counts query and reports whether it should fail.
func (u *FailingUoW) trip(query string) bool {
	if u.Match != "" && !strings.Contains(query, u.Match) {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seen++
	if u.seen == u.FailOn {
		u.fired = true
		return true
	}
	return false
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.trip(query) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
