package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"plantdefender/internal/models"
)

type Publisher struct {
	client *redis.Client
	stream string
	now    func() time.Time
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{
		client: client,
		stream: stream,
		now:    time.Now,
	}
}

func (p *Publisher) Publish(ctx context.Context, task Task) (string, error) {
	if p == nil || p.client == nil {
		return "", nil
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = p.now()
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: task.values(),
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return id, nil
}

// ScanCreated announces a persisted scan to the archive worker.
func (p *Publisher) ScanCreated(ctx context.Context, scan models.Scan) error {
	_, err := p.Publish(ctx, Task{
		Type:   TaskScanCreated,
		ScanID: scan.ID,
		UserID: scan.UserID,
	})
	return err
}
