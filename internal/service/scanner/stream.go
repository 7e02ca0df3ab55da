package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"SigPull/internal/domain/models"
	drepo "SigPull/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Stream implements a SnapshotStream backed by the scanner WebSocket feed.
// Each frame carries a partial or full field map for one symbol.
type Stream struct {
	apiKey         string
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// NewStream creates a scanner SnapshotStream.
func NewStream(apiKey, websocketURL string, symbols []string, reconnectDelay, pingInterval time.Duration) drepo.SnapshotStream {
	return &Stream{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (s *Stream) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", s.websocketURL, s.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("scanner connect: %w", err)
	}
	s.conn = conn
	s.connected = true
	log.Printf("scanner: connected")
	return nil
}

// Subscribe subscribes to configured symbols.
func (s *Stream) Subscribe(ctx context.Context) error {
	if s.conn == nil || !s.connected {
		return fmt.Errorf("scanner not connected")
	}
	for _, sym := range s.symbols {
		msg := map[string]string{"type": "subscribe", "symbol": sym}
		if err := s.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", sym, err)
		}
		log.Printf("scanner: subscribed %s", sym)
	}
	return nil
}

type wsFrame struct {
	Type   string                 `json:"type"`
	Symbol string                 `json:"symbol"`
	T      int64                  `json:"t"` // ms
	Fields map[string]interface{} `json:"fields"`
}

// Read streams SnapshotEvents and errors.
func (s *Stream) Read(ctx context.Context) (<-chan *models.SnapshotEvent, <-chan error) {
	events := make(chan *models.SnapshotEvent, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(s.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if s.conn != nil {
					_ = s.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(events)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if s.conn == nil {
					errs <- fmt.Errorf("scanner conn nil")
					return
				}
				_, b, err := s.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("scanner read: %w", err)
					return
				}
				var f wsFrame
				if err := json.Unmarshal(b, &f); err != nil {
					// ignore non-snapshot frames
					continue
				}
				if f.Type != "snapshot" || f.Symbol == "" {
					continue
				}
				ev := &models.SnapshotEvent{
					Symbol:    f.Symbol,
					Timestamp: f.T / 1000,
					Fields:    models.MarketSnapshot(f.Fields),
				}
				select {
				case events <- ev:
				default:
					// drop on backpressure
				}
			}
		}
	}()

	return events, errs
}

// Reconnect closes and reconnects.
func (s *Stream) Reconnect(ctx context.Context) error {
	_ = s.Close()
	time.Sleep(s.reconnectDelay)
	if err := s.Connect(ctx); err != nil {
		return err
	}
	return s.Subscribe(ctx)
}

// Close closes the WS connection.
func (s *Stream) Close() error {
	s.connected = false
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (s *Stream) IsConnected() bool { return s.connected }
