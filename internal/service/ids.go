package service

import (
	"context"
	"fmt"
	"time"

	"github.com/halaqahq/halaqa/internal/storage"
)

// IDGenerator mints entity keys by concatenating the current timestamp
// with a durable monotonically increasing counter. Keys are therefore
// increasing and sortable, and never reused across restarts.
type IDGenerator struct {
	store storage.Store
	now   func() time.Time
}

// NewIDGenerator creates an IDGenerator backed by the store's counter.
func NewIDGenerator(store storage.Store) *IDGenerator {
	return &IDGenerator{store: store, now: time.Now}
}

// Next returns a fresh key. The counter advance is durable before the
// key is handed out.
func (g *IDGenerator) Next(ctx context.Context) (string, error) {
	n, err := g.store.NextID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to advance id counter: %w", err)
	}
	return fmt.Sprintf("%d%d", g.now().UnixNano(), n), nil
}
