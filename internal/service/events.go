package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/engivid/engivid-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CatalogEventKind identifies the kind of catalog change.
type CatalogEventKind string

const (
	EventVideoCreated    CatalogEventKind = "video.created"
	EventVideoUpdated    CatalogEventKind = "video.updated"
	EventVideoDeleted    CatalogEventKind = "video.deleted"
	EventSubjectCreated  CatalogEventKind = "subject.created"
	EventSubjectDeleted  CatalogEventKind = "subject.deleted"
	EventLecturerCreated CatalogEventKind = "lecturer.created"
)

// CatalogEvent is published to the catalog events channel whenever a
// professor changes the catalog, and relayed to WebSocket subscribers.
type CatalogEvent struct {
	Kind      CatalogEventKind `json:"kind"`
	EntityID  int              `json:"entityId"`
	SubjectID int              `json:"subjectId,omitempty"`
	Title     string           `json:"title,omitempty"`
	At        time.Time        `json:"at"`
}

// CatalogEvents publishes catalog change events over Redis Pub/Sub.
// Publishing is best-effort: a failed publish is logged, never surfaced.
type CatalogEvents struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewCatalogEvents creates a new CatalogEvents publisher.
func NewCatalogEvents(rdb *redis.Client, log zerolog.Logger) *CatalogEvents {
	return &CatalogEvents{
		rdb: rdb,
		log: log.With().Str("component", "catalog_events").Logger(),
	}
}

// Publish sends an event to the catalog channel.
func (e *CatalogEvents) Publish(ctx context.Context, event CatalogEvent) {
	if e == nil || e.rdb == nil {
		return
	}
	event.At = time.Now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		e.log.Error().Err(err).Msg("Marshal event failed")
		return
	}

	if err := e.rdb.Publish(ctx, config.CacheKey.CatalogEventsChannel(), payload).Err(); err != nil {
		e.log.Warn().Err(err).Str("kind", string(event.Kind)).Msg("Publish event failed")
	}
}
