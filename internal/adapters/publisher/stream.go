package publisher

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tarwn/consuming-logs/internal/application/common"
	"github.com/tarwn/consuming-logs/internal/domain/events"
)

const (
	writeWait = 5 * time.Second
	pongWait  = 60 * time.Second
)

// StreamHub pushes every published event to connected websocket subscribers
// as one JSON text message. A subscriber whose buffer fills is disconnected
// so a slow reader never stalls a tick.
type StreamHub struct {
	buffer   int
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	out  chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.out) })
}

// NewStreamHub creates a hub buffering up to buffer events per subscriber
func NewStreamHub(buffer int) *StreamHub {
	if buffer <= 0 {
		buffer = 64
	}
	return &StreamHub{
		buffer: buffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Subscribers returns how many clients are connected
func (h *StreamHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Publish implements events.Publisher
func (h *StreamHub) Publish(ctx context.Context, evts ...events.Event) error {
	msgs := make([][]byte, 0, len(evts))
	for _, e := range evts {
		b, err := events.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", e.EventType(), err)
		}
		msgs = append(msgs, b)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		for _, m := range msgs {
			select {
			case sub.out <- m:
			default:
				common.LoggerFromContext(ctx).Log("WARNING", "[Stream] Dropping slow subscriber", nil)
				h.removeLocked(sub)
			}
			if _, ok := h.subscribers[sub]; !ok {
				break
			}
		}
	}
	return nil
}

// Close disconnects every subscriber
func (h *StreamHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		h.removeLocked(sub)
	}
}

func (h *StreamHub) add() *subscriber {
	sub := &subscriber{out: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *StreamHub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

func (h *StreamHub) removeLocked(sub *subscriber) {
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		sub.close()
	}
}

// Handler upgrades the request and streams events until either side closes
func (h *StreamHub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sub := h.add()
		defer h.remove(sub)

		// The reader only drains control frames and notices disconnects
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(pongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case msg, ok := <-sub.out:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream closed"),
						time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}
	}
}

// StreamServer serves a StreamHub over HTTP
type StreamServer struct {
	hub      *StreamHub
	listener net.Listener
	server   *http.Server
}

// NewStreamServer binds host:port and routes path to the hub. Port 0 picks a free port.
func NewStreamServer(host string, port int, path string, hub *StreamHub) (*StreamServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen for event stream: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(path, hub.Handler())

	return &StreamServer{
		hub:      hub,
		listener: listener,
		server:   &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
	}, nil
}

// Addr returns the bound address
func (s *StreamServer) Addr() string {
	return s.listener.Addr().String()
}

// Start serves in the background
func (s *StreamServer) Start() {
	go func() {
		_ = s.server.Serve(s.listener)
	}()
}

// Shutdown disconnects subscribers and stops the server
func (s *StreamServer) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.server.Shutdown(ctx)
}
