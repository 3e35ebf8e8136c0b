package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/engagement"
	"bookcatalog-backend/internal/domains/engagement/model"
)

// SweepOrphansHandler runs the nightly orphan sweep: entity deletes are not
// transactional across the two stores, so leftover metadata documents are
// reconciled here.
type SweepOrphansHandler struct {
	service engagement.Service
}

func NewSweepOrphansHandler(svc engagement.Service) *SweepOrphansHandler {
	return &SweepOrphansHandler{service: svc}
}

func (h *SweepOrphansHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	total := 0
	for _, kind := range []model.Kind{model.KindBook, model.KindAuthor} {
		removed, err := h.service.SweepOrphans(ctx, kind)
		total += removed
		if err != nil {
			return fmt.Errorf("sweep %s metadata: %w", kind, err)
		}
	}

	log.Info().Int("removed", total).Msg("Orphan sweep completed")
	return nil
}

// ReconcileAggregatesHandler recomputes aggregates from the stored review
// arrays and repairs drifted documents.
type ReconcileAggregatesHandler struct {
	service engagement.Service
}

func NewReconcileAggregatesHandler(svc engagement.Service) *ReconcileAggregatesHandler {
	return &ReconcileAggregatesHandler{service: svc}
}

func (h *ReconcileAggregatesHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	total := 0
	for _, kind := range []model.Kind{model.KindBook, model.KindAuthor} {
		repaired, err := h.service.ReconcileAggregates(ctx, kind)
		total += repaired
		if err != nil {
			return fmt.Errorf("reconcile %s aggregates: %w", kind, err)
		}
	}

	log.Info().Int("repaired", total).Msg("Aggregate reconciliation completed")
	return nil
}
