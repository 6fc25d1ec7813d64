package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger serializes every fund-wide mutation behind a single lock and runs
// it in one transaction. A proportional split needs one consistent snapshot
// of invested capital across all members, so two ledger-mutating operations
// must never interleave their reads and writes; the same lock also keeps
// payout authorization from reading a balance mid-distribution.
type Ledger struct {
	db  *gorm.DB
	log *zap.Logger
	mu  sync.Mutex
}

func NewLedger(db *gorm.DB, log *zap.Logger) *Ledger {
	return &Ledger{db: db, log: log}
}

// DB returns the underlying handle for read-only queries.
func (l *Ledger) DB() *gorm.DB {
	return l.db
}

// Write runs fn inside a transaction while holding the ledger lock. An
// error from fn rolls back every member update, so a distribution is never
// left half applied.
func (l *Ledger) Write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db.WithContext(ctx).Transaction(fn)
}
