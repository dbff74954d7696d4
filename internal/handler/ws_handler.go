package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/engivid/engivid-backend/internal/config"
	ws "github.com/engivid/engivid-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams catalog change events to connected clients.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// CatalogStream godoc
// WS /ws/v1/catalog/stream
// Upgrades to WebSocket and relays catalog change events published over
// Redis Pub/Sub. The client may send ping actions to keep the read
// deadline fresh; any read error closes the stream.
func (h *WSHandler) CatalogStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// The subscription must outlive the HTTP request context, which Gin
	// cancels when the handler returns the hijacked connection.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := h.rdb.Subscribe(ctx, config.CacheKey.CatalogEventsChannel())
	defer pubsub.Close()

	h.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("Client connected")

	go func() {
		defer cancel()
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}

			switch msg.Action {
			case ws.ActionPing:
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			default:
				_ = ws.WriteError(conn, "unknown action: "+string(msg.Action))
			}
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			h.log.Debug().Msg("Client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			frame := ws.CatalogFrame{
				Event:   ws.EventCatalog,
				Payload: json.RawMessage(msg.Payload),
			}
			if err := ws.WriteTyped(conn, frame); err != nil {
				h.log.Debug().Err(err).Msg("Write failed, closing stream")
				return
			}
		}
	}
}
