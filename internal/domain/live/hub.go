package live

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wedloom/wedloom-api/internal/pkg/mediastore"
)

const eventChannelPrefix = "live:event:"

// Event is what slideshow clients receive.
type Event struct {
	Type    string                 `json:"type"`
	EventID string                 `json:"event_id"`
	Photo   *mediastore.Descriptor `json:"photo,omitempty"`
}

// Connection is one slideshow viewer
type Connection struct {
	EventID string
	Send    chan []byte
}

// Hub fans freshly ingested photos out to connected slideshow viewers,
// one room per event. Redis Pub/Sub carries events across instances; a
// nil client keeps broadcasts instance-local.
type Hub struct {
	rooms map[string]map[*Connection]bool

	redis  *redis.Client
	pubsub *redis.PubSub

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a slideshow hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		rooms:      make(map[string]map[*Connection]bool),
		redis:      redisClient,
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		ctx:        ctx,
		cancel:     cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.PSubscribe(ctx, eventChannelPrefix+"*")
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.rooms[conn.EventID] == nil {
				h.rooms[conn.EventID] = make(map[*Connection]bool)
			}
			h.rooms[conn.EventID][conn] = true
			h.mu.Unlock()
			log.Debug().Str("event_id", conn.EventID).Msg("Slideshow viewer connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.rooms[conn.EventID]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.Send)
				}
				if len(conns) == 0 {
					delete(h.rooms, conn.EventID)
				}
			}
			h.mu.Unlock()
			log.Debug().Str("event_id", conn.EventID).Msg("Slideshow viewer disconnected")
		}
	}
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			eventID := strings.TrimPrefix(msg.Channel, eventChannelPrefix)
			if eventID == msg.Channel {
				continue
			}
			h.broadcastLocal(eventID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcastLocal(eventID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.rooms[eventID] {
		select {
		case conn.Send <- data:
		default:
			// Slow viewer, drop the frame
			log.Warn().Str("event_id", eventID).Msg("Slideshow send buffer full")
		}
	}
}

// Register adds a viewer
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a viewer
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// PublishPhoto announces a freshly ingested photo to every viewer of
// the event, across all instances when Redis is available.
func (h *Hub) PublishPhoto(eventID string, d *mediastore.Descriptor) {
	data, err := json.Marshal(&Event{Type: "photo_added", EventID: eventID, Photo: d})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal slideshow event")
		return
	}

	if h.redis != nil {
		if err := h.redis.Publish(h.ctx, eventChannelPrefix+eventID, data).Err(); err != nil {
			log.Error().Err(err).Str("event_id", eventID).Msg("Redis publish failed")
			h.broadcastLocal(eventID, data)
		}
		return
	}

	h.broadcastLocal(eventID, data)
}

// RoomSize returns the number of local viewers of an event
func (h *Hub) RoomSize(eventID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[eventID])
}

// Shutdown gracefully shuts down the hub
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}
