// Package feed maintains a live price cache fed by the venue's websocket
// trade stream. It satisfies the broker's PriceSource contract.
package feed

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	reconnectDelay = 5 * time.Second
)

// Feed keeps the latest observed price per symbol.
type Feed struct {
	baseURL string
	symbols []string
	logger  *zap.SugaredLogger

	mu     sync.RWMutex
	prices map[string]float64

	conn     *websocket.Conn
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewFeed creates a feed for the given stream endpoint and symbols.
func NewFeed(baseURL string, symbols []string, logger *zap.SugaredLogger) *Feed {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Feed{
		baseURL:  baseURL,
		symbols:  symbols,
		logger:   logger,
		prices:   make(map[string]float64),
		stopChan: make(chan struct{}),
	}
}

// Price returns the last observed price for the symbol.
func (f *Feed) Price(symbol string) (float64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	price, ok := f.prices[symbol]
	return price, ok
}

// SetPrice injects a price directly. Used before the stream warms up and in
// tests.
func (f *Feed) SetPrice(symbol string, price float64) {
	f.mu.Lock()
	f.prices[symbol] = price
	f.mu.Unlock()
}

// Start runs the connect/read/reconnect loop in the background.
func (f *Feed) Start() {
	go f.loop()
}

// Stop terminates the background loop.
func (f *Feed) Stop() {
	f.stopOnce.Do(func() { close(f.stopChan) })
}

func (f *Feed) loop() {
	for {
		select {
		case <-f.stopChan:
			f.logger.Info("price feed stopped")
			return
		default:
			if err := f.connect(); err != nil {
				f.logger.Warnf("price feed connect failed: %v, retrying in %s", err, reconnectDelay)
				f.sleep(reconnectDelay)
				continue
			}
			f.logger.Info("price feed connected")
			if err := f.readMessages(); err != nil {
				f.logger.Warnf("price feed read error: %v", err)
			}
			if f.conn != nil {
				f.conn.Close()
			}
			f.sleep(reconnectDelay)
		}
	}
}

func (f *Feed) sleep(d time.Duration) {
	select {
	case <-time.After(d):
	case <-f.stopChan:
	}
}

// connect dials the combined trade stream for all configured symbols.
func (f *Feed) connect() error {
	streams := make([]string, 0, len(f.symbols))
	for _, s := range f.symbols {
		streams = append(streams, strings.ToLower(s)+"@aggTrade")
	}
	wsURL := fmt.Sprintf("%s/stream?streams=%s", f.baseURL, strings.Join(streams, "/"))
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	f.conn = conn
	return nil
}

// streamMessage is the combined-stream envelope around a trade event.
type streamMessage struct {
	Stream string `json:"stream"`
	Data   struct {
		Symbol string      `json:"s"`
		Price  json.Number `json:"p"`
	} `json:"data"`
}

// readMessages blocks on the connection until it breaks, keeping the
// connection alive with ping/pong.
func (f *Feed) readMessages() error {
	conn := f.conn
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()
	pingStop := make(chan struct{})
	defer close(pingStop)

	go func() {
		for {
			select {
			case <-pingTicker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-pingStop:
				return
			case <-f.stopChan:
				return
			}
		}
	}()

	for {
		select {
		case <-f.stopChan:
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		default:
			_, message, err := conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("read message: %w", err)
			}

			var msg streamMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				f.logger.Debugf("skipping unparsable feed message: %v", err)
				continue
			}
			price, err := msg.Data.Price.Float64()
			if err != nil || msg.Data.Symbol == "" {
				continue
			}
			f.SetPrice(msg.Data.Symbol, price)
		}
	}
}
