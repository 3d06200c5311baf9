package queue

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TaskScanCreated = "scan.created"
	TaskCleanup     = "cleanup"
)

// Task is one stream entry. Values travel as flat string fields.
type Task struct {
	ID         string
	Type       string
	ScanID     string
	UserID     string
	EnqueuedAt time.Time
}

func (t Task) values() map[string]any {
	values := map[string]any{
		"type":       t.Type,
		"enqueuedAt": t.EnqueuedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.ScanID != "" {
		values["scanId"] = t.ScanID
	}
	if t.UserID != "" {
		values["userId"] = t.UserID
	}
	return values
}

func decodeTask(msg redis.XMessage) (Task, error) {
	task := Task{
		ID:     msg.ID,
		Type:   stringValue(msg.Values, "type"),
		ScanID: stringValue(msg.Values, "scanId"),
		UserID: stringValue(msg.Values, "userId"),
	}
	if task.Type == "" {
		return Task{}, fmt.Errorf("message %s has no type", msg.ID)
	}

	if raw := stringValue(msg.Values, "enqueuedAt"); raw != "" {
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Task{}, fmt.Errorf("message %s enqueuedAt: %w", msg.ID, err)
		}
		task.EnqueuedAt = at
	}
	return task, nil
}

func stringValue(values map[string]interface{}, key string) string {
	switch v := values[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
