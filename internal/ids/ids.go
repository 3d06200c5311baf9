package ids

import (
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// New returns a random UUID string used for user and scan identifiers.
func New() string {
	return uuid.NewString()
}

// Sortable returns a KSUID for t; its lexical order follows time order.
func Sortable(t time.Time) string {
	id, err := ksuid.NewRandomWithTime(t)
	if err != nil {
		return ksuid.New().String()
	}
	return id.String()
}
