package services

import (
	"context"
	"errors"
	"testing"

	"basilisk-fund/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newTestBetService(db *Ledger) *BetService {
	return NewBetService(db, NewDistributionService(zap.NewNop()), zap.NewNop())
}

func TestCreateResolvedBetDistributes(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	a := createTestMember(t, db, "alice", 5000, true)
	b := createTestMember(t, db, "bob", 10000, true)

	bet, err := svc.Create(context.Background(), models.CreateBetRequest{
		Description: "Lakers ML",
		Amount:      decimal.NewFromInt(500),
		Outcome:     models.BetOutcomeWon,
		ProfitLoss:  decimal.NewFromInt(450),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	requireDecimalEqual(t, decimal.NewFromInt(150), memberEarnings(t, db, a.ID), "alice earnings")
	requireDecimalEqual(t, decimal.NewFromInt(300), memberEarnings(t, db, b.ID), "bob earnings")

	var count int64
	db.Model(&models.Allocation{}).Where("bet_id = ?", bet.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 allocations, got %d", count)
	}
}

func TestCreatePendingBetNoDistribution(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	a := createTestMember(t, db, "alice", 5000, true)

	_, err := svc.Create(context.Background(), models.CreateBetRequest{
		Description: "pending parlay",
		Amount:      decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	requireDecimalEqual(t, decimal.Zero, memberEarnings(t, db, a.ID), "no earnings for pending bet")
}

func TestCreateWonBetZeroProfitNoDistribution(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	a := createTestMember(t, db, "alice", 5000, true)

	bet, err := svc.Create(context.Background(), models.CreateBetRequest{
		Description: "push",
		Amount:      decimal.NewFromInt(100),
		Outcome:     models.BetOutcomeWon,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	requireDecimalEqual(t, decimal.Zero, memberEarnings(t, db, a.ID), "zero-profit win is a no-op")

	var count int64
	db.Model(&models.Allocation{}).Where("bet_id = ?", bet.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected no allocations, got %d", count)
	}
}

func TestEditBetWonToLost(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	a := createTestMember(t, db, "alice", 5000, true)
	b := createTestMember(t, db, "bob", 10000, true)

	bet, err := svc.Create(context.Background(), models.CreateBetRequest{
		Description: "Lakers ML",
		Amount:      decimal.NewFromInt(500),
		Outcome:     models.BetOutcomeWon,
		ProfitLoss:  decimal.NewFromInt(450),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Correcting a mis-entered result: the 450 win is reversed, then the
	// -300 loss is applied.
	_, err = svc.Update(context.Background(), bet.ID, models.UpdateBetRequest{
		Description: "Lakers ML",
		Amount:      decimal.NewFromInt(500),
		Outcome:     models.BetOutcomeLost,
		ProfitLoss:  decimal.NewFromInt(-300),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	requireDecimalEqual(t, decimal.NewFromInt(-100), memberEarnings(t, db, a.ID), "alice after edit")
	requireDecimalEqual(t, decimal.NewFromInt(-200), memberEarnings(t, db, b.ID), "bob after edit")
}

func TestEditPendingToResolved(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	a := createTestMember(t, db, "alice", 5000, true)

	bet, err := svc.Create(context.Background(), models.CreateBetRequest{
		Description: "pending single",
		Amount:      decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), bet.ID, models.UpdateBetRequest{
		Description: "pending single",
		Amount:      decimal.NewFromInt(100),
		Outcome:     models.BetOutcomeWon,
		ProfitLoss:  decimal.NewFromInt(90),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	requireDecimalEqual(t, decimal.NewFromInt(90), memberEarnings(t, db, a.ID), "alice after resolution")
}

func TestEditResolvedToPending(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	a := createTestMember(t, db, "alice", 5000, true)

	bet, err := svc.Create(context.Background(), models.CreateBetRequest{
		Description: "voided match",
		Amount:      decimal.NewFromInt(100),
		Outcome:     models.BetOutcomeWon,
		ProfitLoss:  decimal.NewFromInt(90),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), bet.ID, models.UpdateBetRequest{
		Description: "voided match",
		Amount:      decimal.NewFromInt(100),
		Outcome:     models.BetOutcomePending,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	requireDecimalEqual(t, decimal.Zero, memberEarnings(t, db, a.ID), "reversal only, no new distribution")
}

func TestDeleteResolvedBetReverses(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	a := createTestMember(t, db, "alice", 5000, true)
	b := createTestMember(t, db, "bob", 10000, true)

	bet, err := svc.Create(context.Background(), models.CreateBetRequest{
		Description: "deleted entry",
		Amount:      decimal.NewFromInt(500),
		Outcome:     models.BetOutcomeWon,
		ProfitLoss:  decimal.NewFromInt(450),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), bet.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	requireDecimalEqual(t, decimal.Zero, memberEarnings(t, db, a.ID), "alice restored")
	requireDecimalEqual(t, decimal.Zero, memberEarnings(t, db, b.ID), "bob restored")

	var count int64
	db.Model(&models.Bet{}).Count(&count)
	if count != 0 {
		t.Errorf("expected bet removed, found %d", count)
	}
}

func TestBetNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err := svc.Update(context.Background(), uuid.New(), models.UpdateBetRequest{
		Description: "ghost",
		Outcome:     models.BetOutcomePending,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBetValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	cases := []struct {
		name    string
		outcome string
		pl      int64
		want    error
	}{
		{"pending with profit", models.BetOutcomePending, 50, ErrProfitLossMismatch},
		{"won with loss", models.BetOutcomeWon, -50, ErrProfitLossMismatch},
		{"lost with profit", models.BetOutcomeLost, 50, ErrProfitLossMismatch},
		{"unknown outcome", "cancelled", 0, ErrInvalidOutcome},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), models.CreateBetRequest{
			Description: tc.name,
			Amount:      decimal.NewFromInt(100),
			Outcome:     tc.outcome,
			ProfitLoss:  decimal.NewFromInt(tc.pl),
		})
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestListBetsStats(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestBetService(newTestLedger(db))

	createTestMember(t, db, "alice", 5000, true)

	seed := []models.CreateBetRequest{
		{Description: "w1", Amount: decimal.NewFromInt(100), Outcome: models.BetOutcomeWon, ProfitLoss: decimal.NewFromInt(450)},
		{Description: "w2", Amount: decimal.NewFromInt(100), Outcome: models.BetOutcomeWon, ProfitLoss: decimal.NewFromInt(675)},
		{Description: "l1", Amount: decimal.NewFromInt(100), Outcome: models.BetOutcomeLost, ProfitLoss: decimal.NewFromInt(-300)},
		{Description: "p1", Amount: decimal.NewFromInt(100)},
	}
	for _, req := range seed {
		if _, err := svc.Create(context.Background(), req); err != nil {
			t.Fatalf("Create %s failed: %v", req.Description, err)
		}
	}

	bets, stats, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(bets) != 4 {
		t.Errorf("expected 4 bets, got %d", len(bets))
	}
	if stats.TotalBets != 4 {
		t.Errorf("expected total 4, got %d", stats.TotalBets)
	}
	requireDecimalEqual(t, decimal.NewFromInt(1125), stats.TotalWinnings, "total winnings")
	requireDecimalEqual(t, decimal.NewFromInt(300), stats.TotalLosses, "total losses abs")
	if stats.PendingBets != 1 {
		t.Errorf("expected 1 pending, got %d", stats.PendingBets)
	}
	if want := 100 * 2.0 / 3.0; stats.WinRate < want-0.01 || stats.WinRate > want+0.01 {
		t.Errorf("expected win rate ~%.2f, got %.2f", want, stats.WinRate)
	}
}
