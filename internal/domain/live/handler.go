package live

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/wedloom/wedloom-api/internal/domain/event"
	"github.com/wedloom/wedloom-api/internal/pkg/response"
)

// WebSocket constants
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Registry is the subset of the event service the hub handler needs.
type Registry interface {
	GetBySlug(ctx context.Context, slug string) (*event.Event, error)
}

// Handler handles slideshow WebSocket requests
type Handler struct {
	registry Registry
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates live handler
func NewHandler(registry Registry, hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{
		registry: registry,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				// Allow all in development
				if len(allowedOrigins) == 0 {
					return true
				}

				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}

				log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
				return false
			},
		},
	}
}

// Serve handles GET /live/{slug}, upgrading to a WebSocket that streams
// photo_added events for the event.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	e, err := h.registry.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			response.NotFound(w, "Event not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	viewer := &Connection{
		EventID: e.ID,
		Send:    make(chan []byte, 64),
	}
	h.hub.Register(viewer)

	go h.wsWriter(conn, viewer)
	h.wsReader(conn, viewer)
}

// wsReader drains client frames; viewers only listen, so everything but
// pongs is discarded.
func (h *Handler) wsReader(conn *websocket.Conn, viewer *Connection) {
	defer func() {
		h.hub.Unregister(viewer)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) wsWriter(conn *websocket.Conn, viewer *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-viewer.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Routes returns live router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{slug}", h.Serve)

	return r
}
