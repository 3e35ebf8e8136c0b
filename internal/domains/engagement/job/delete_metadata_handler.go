package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/engagement"
	"bookcatalog-backend/internal/domains/engagement/model"
)

// DeleteMetadataHandler removes the engagement document after its owning
// entity row was deleted. Enqueued by the API; asynq retries cover transient
// store failures, the nightly sweep covers the rest.
type DeleteMetadataHandler struct {
	service engagement.Service
}

func NewDeleteMetadataHandler(svc engagement.Service) *DeleteMetadataHandler {
	return &DeleteMetadataHandler{service: svc}
}

func (h *DeleteMetadataHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.DeleteMetadataPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteMetadata payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	entityID, err := uuid.Parse(payload.EntityID)
	if err != nil {
		return fmt.Errorf("invalid entity id %q: %w", payload.EntityID, err)
	}

	if err := h.service.DeleteMetadata(ctx, payload.Kind, entityID); err != nil {
		log.Error().
			Err(err).
			Str("kind", string(payload.Kind)).
			Str("entity_id", payload.EntityID).
			Msg("Failed to delete metadata")
		return fmt.Errorf("delete metadata: %w", err)
	}

	log.Info().
		Str("kind", string(payload.Kind)).
		Str("entity_id", payload.EntityID).
		Msg("Metadata document deleted")

	return nil
}
