package services

import (
	"testing"

	"basilisk-fund/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// :memory: is unique per connection; the shared cache keeps gorm's
	// pooled connections on the same database.
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Member{},
		&models.Investment{},
		&models.Payout{},
		&models.Bet{},
		&models.Allocation{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	// The shared in-memory database persists across tests in this package.
	db.Exec("DELETE FROM allocations")
	db.Exec("DELETE FROM payouts")
	db.Exec("DELETE FROM investments")
	db.Exec("DELETE FROM bets")
	db.Exec("DELETE FROM members")

	return db
}

func newTestLedger(db *gorm.DB) *Ledger {
	return NewLedger(db, zap.NewNop())
}

func createTestMember(t *testing.T, db *gorm.DB, name string, invested int64, active bool) models.Member {
	t.Helper()
	m := models.Member{
		Name:          name,
		Email:         name + "@example.com",
		TotalInvested: decimal.NewFromInt(invested),
		IsActive:      active,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("failed to create member %s: %v", name, err)
	}
	return m
}

func memberEarnings(t *testing.T, db *gorm.DB, id uint) decimal.Decimal {
	t.Helper()
	var m models.Member
	if err := db.First(&m, id).Error; err != nil {
		t.Fatalf("failed to load member %d: %v", id, err)
	}
	return m.TotalEarnings
}

func requireDecimalEqual(t *testing.T, want, got decimal.Decimal, msg string) {
	t.Helper()
	if !want.Equal(got) {
		t.Errorf("%s: expected %s, got %s", msg, want, got)
	}
}
