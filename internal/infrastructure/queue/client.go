package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"bookcatalog-backend/internal/domains/engagement/model"
	"bookcatalog-backend/internal/shared"
)

// Client enqueues background tasks from the API process.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

// EnqueueMetadataDelete schedules the best-effort removal of an engagement
// document after its entity row was deleted. Retries are asynq's job; a
// task that exhausts them is picked up by the nightly orphan sweep.
func (c *Client) EnqueueMetadataDelete(kind model.Kind, entityID uuid.UUID) error {
	payload, err := json.Marshal(model.DeleteMetadataPayload{
		Kind:     kind,
		EntityID: entityID.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeMetadataDelete, payload)

	_, err = c.client.Enqueue(
		task,
		asynq.Queue(shared.QueueEngagement),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue metadata delete: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
