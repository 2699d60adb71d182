package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jlanza/canasta/internal/attribute"
)

const (
	// EventStream receives each game's attributed events after import.
	EventStream = "events.attributed.acb"

	// QualityStream receives the per-game quality reports.
	QualityStream = "quality.reports.acb"
)

// RedisStreamPublisher fans imported games out to downstream consumers
// (stats aggregation, the prediction trainer) over Redis streams.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishAttributedEvents publishes one imported game's event batch.
func (p *RedisStreamPublisher) PublishAttributedEvents(ctx context.Context, gameID int, events []attribute.AttributedEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encoding events of game %d: %w", gameID, err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: EventStream,
		Values: map[string]interface{}{
			"game_id":   gameID,
			"events":    string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

// PublishQualityReport publishes the quality summary of one imported game.
func (p *RedisStreamPublisher) PublishQualityReport(ctx context.Context, report *attribute.QualityReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding quality report of game %d: %w", report.GameID, err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: QualityStream,
		Values: map[string]interface{}{
			"game_id":   report.GameID,
			"report":    string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
