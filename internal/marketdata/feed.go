package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/observability"
)

// FeedConfig configures WebSocket feed behavior.
type FeedConfig struct {
	// ReconnectDelay is initial delay before reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay is maximum delay between reconnect attempts.
	MaxReconnectDelay time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
}

// DefaultFeedConfig returns default feed configuration.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		ReadTimeout:       60 * time.Second,
	}
}

// barMessage is the wire format for one settled daily bar.
type barMessage struct {
	Symbol      string  `json:"symbol"`
	TimestampMs int64   `json:"timestamp_ms"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
	Volume      float64 `json:"volume"`
}

// Feed streams settled bars from a WebSocket endpoint into a channel,
// reconnecting with exponential backoff until closed. Malformed messages
// are counted and skipped, never fatal.
type Feed struct {
	endpoint string
	config   FeedConfig

	bars   chan *domain.Bar
	closed atomic.Bool
	done   chan struct{}
	wg     sync.WaitGroup

	connMu sync.Mutex
	conn   *websocket.Conn

	dropped atomic.Uint64
}

// NewFeed connects to the endpoint and starts streaming.
func NewFeed(ctx context.Context, endpoint string, config *FeedConfig) (*Feed, error) {
	cfg := DefaultFeedConfig()
	if config != nil {
		cfg = *config
	}

	f := &Feed{
		endpoint: endpoint,
		config:   cfg,
		bars:     make(chan *domain.Bar, 64),
		done:     make(chan struct{}),
	}

	if err := f.connect(ctx); err != nil {
		return nil, err
	}

	f.wg.Add(1)
	go f.readLoop()

	return f, nil
}

// Bars returns the channel of incoming bars. The channel is closed when the
// feed shuts down.
func (f *Feed) Bars() <-chan *domain.Bar {
	return f.bars
}

// Dropped returns the count of malformed messages skipped so far.
func (f *Feed) Dropped() uint64 {
	return f.dropped.Load()
}

// Close shuts the feed down and waits for the reader to exit.
func (f *Feed) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(f.done)

	f.connMu.Lock()
	if f.conn != nil {
		f.conn.Close()
	}
	f.connMu.Unlock()

	f.wg.Wait()
	close(f.bars)
	return nil
}

func (f *Feed) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, f.endpoint, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}

	f.connMu.Lock()
	f.conn = conn
	f.connMu.Unlock()
	return nil
}

// readLoop reads messages until shutdown, reconnecting on read errors.
func (f *Feed) readLoop() {
	defer f.wg.Done()

	delay := f.config.ReconnectDelay
	for {
		f.connMu.Lock()
		conn := f.conn
		f.connMu.Unlock()

		if conn != nil {
			if f.config.ReadTimeout > 0 {
				conn.SetReadDeadline(time.Now().Add(f.config.ReadTimeout))
			}
			_, payload, err := conn.ReadMessage()
			if err == nil {
				delay = f.config.ReconnectDelay
				f.deliver(payload)
				continue
			}
		}

		if f.closed.Load() {
			return
		}

		// Reconnect with backoff.
		select {
		case <-f.done:
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > f.config.MaxReconnectDelay {
			delay = f.config.MaxReconnectDelay
		}
		observability.DefaultMetrics.FeedReconnects.Inc()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := f.connect(ctx)
		cancel()
		if err != nil && f.closed.Load() {
			return
		}
	}
}

func (f *Feed) deliver(payload []byte) {
	observability.DefaultMetrics.FeedMessages.Inc()

	var msg barMessage
	if err := json.Unmarshal(payload, &msg); err != nil || msg.Symbol == "" {
		f.dropped.Add(1)
		observability.DefaultMetrics.FeedMessagesDropped.Inc()
		return
	}

	bar := &domain.Bar{
		Symbol:      msg.Symbol,
		TimestampMs: msg.TimestampMs,
		Open:        msg.Open,
		High:        msg.High,
		Low:         msg.Low,
		Close:       msg.Close,
		Volume:      msg.Volume,
	}

	select {
	case f.bars <- bar:
	case <-f.done:
	}
}
