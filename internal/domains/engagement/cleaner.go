package engagement

import (
	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/engagement/model"
)

// Cleaner schedules asynchronous removal of the metadata document that
// shadows a deleted catalog entity. Implemented by the task queue client.
type Cleaner interface {
	EnqueueMetadataDelete(kind model.Kind, entityID uuid.UUID) error
}
