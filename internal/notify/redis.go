// Package notify announces finished cleaning runs on Redis.
//
// Every run is published on the EVENT_APPLICANTS_CLEANED channel and its
// summary is kept in the cleaner:last_run hash for dashboards that poll.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	Channel    = "EVENT_APPLICANTS_CLEANED"
	LastRunKey = "cleaner:last_run"
	lastRunTTL = 7 * 24 * time.Hour
	eventType  = "EVENT_APPLICANTS_CLEANED"
)

// Event is the JSON payload published for a run.
type Event struct {
	Type        string         `json:"type"`
	RunID       string         `json:"runId"`
	Input       string         `json:"input"`
	Output      string         `json:"output"`
	InputRows   int            `json:"inputRows"`
	OutputRows  int            `json:"outputRows"`
	Dropped     int            `json:"dropped"`
	Corrections int            `json:"corrections"`
	Anomalies   map[string]int `json:"anomalies,omitempty"`
	FinishedAt  time.Time      `json:"finishedAt"`
}

// Publisher sends run events through a Redis client.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher returns a Publisher over rdb.
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Publish stores ev as the last run and broadcasts it.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	ev.Type = eventType
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pipe := p.rdb.TxPipeline()
	pipe.HSet(ctx, LastRunKey, map[string]any{
		"run_id":      ev.RunID,
		"output_rows": ev.OutputRows,
		"dropped":     ev.Dropped,
		"corrections": ev.Corrections,
		"finished_at": ev.FinishedAt.UTC().Format(time.RFC3339),
		"payload":     string(payload),
	})
	pipe.Expire(ctx, LastRunKey, lastRunTTL)
	pipe.Publish(ctx, Channel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish %s: %w", Channel, err)
	}
	return nil
}
