package jobs

import (
	"context"
	"time"

	"basilisk-fund/internal/services"

	"go.uber.org/zap"
)

// ReconciliationJob periodically rebuilds member earnings from the bet
// history. Reconcile is idempotent, so an unchanged ledger produces a
// report with zero drift.
type ReconciliationJob struct {
	service *services.ReconciliationService
	log     *zap.Logger
}

func NewReconciliationJob(service *services.ReconciliationService, log *zap.Logger) *ReconciliationJob {
	return &ReconciliationJob{service: service, log: log}
}

// Start begins the periodic reconciliation job
func (j *ReconciliationJob) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			j.run()
		}
	}()
}

func (j *ReconciliationJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	report, err := j.service.Reconcile(ctx)
	if err != nil {
		j.log.Error("scheduled reconciliation failed", zap.Error(err))
		return
	}

	drifted := 0
	for _, u := range report.Updates {
		if !u.Difference.IsZero() {
			drifted++
		}
	}
	if drifted > 0 {
		j.log.Warn("scheduled reconciliation corrected drift",
			zap.Int("members_corrected", drifted),
			zap.String("net_profit", report.NetProfit.String()))
	}
}
