package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/engivid/engivid-backend/internal/config"
	"github.com/engivid/engivid-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ViewCountWorker consumes the video view queue and applies the counts
// to PostgreSQL, keeping the hot read path off the database.
type ViewCountWorker struct {
	videoRepo repository.VideoRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewViewCountWorker creates a new ViewCountWorker.
func NewViewCountWorker(videoRepo repository.VideoRepository, rdb *redis.Client, log zerolog.Logger) *ViewCountWorker {
	return &ViewCountWorker{
		videoRepo: videoRepo,
		rdb:       rdb,
		log:       log.With().Str("component", "view_count_worker").Logger(),
	}
}

type viewPayload struct {
	VideoID  int       `json:"video_id"`
	ViewedAt time.Time `json:"viewed_at"`
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *ViewCountWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *ViewCountWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.QueueKey.VideoViewQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	var payload viewPayload
	if err := json.Unmarshal([]byte(result[1]), &payload); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.persistView(ctx, &payload); err != nil {
		w.log.Error().Err(err).
			Int("video_id", payload.VideoID).
			Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.QueueKey.VideoViewQueue, result[1])
		sleepCtx(ctx, 5*time.Second)
	}
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first,
// so a retry backoff cannot hold up shutdown.
func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (w *ViewCountWorker) persistView(ctx context.Context, p *viewPayload) error {
	// A view against a deleted video is a no-op, not an error.
	return w.videoRepo.IncrementViews(ctx, p.VideoID, 1)
}

// drain processes all remaining items in the queue before shutdown.
func (w *ViewCountWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.QueueKey.VideoViewQueue).Result()
		if err != nil {
			break
		}

		var payload viewPayload
		if err := json.Unmarshal([]byte(result), &payload); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.persistView(ctx, &payload); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.QueueKey.VideoViewQueue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
