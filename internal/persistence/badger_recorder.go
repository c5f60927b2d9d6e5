package persistence

import (
	"encoding/json"
	"errors"
	"fmt"

	"dex-trading-bot/internal/models"

	"github.com/dgraph-io/badger/v3"
)

// ErrNotFound is returned by the read helpers when no record exists.
var ErrNotFound = errors.New("record not found")

const (
	orderPrefix = "order/"
	tradePrefix = "trade/"
)

// BadgerRecorder stores orders and trades as JSON documents in BadgerDB.
type BadgerRecorder struct {
	db *badger.DB
}

// NewBadgerRecorder opens (or creates) the database at dbPath.
func NewBadgerRecorder(dbPath string) (*BadgerRecorder, error) {
	opts := badger.DefaultOptions(dbPath)
	// Silence badger's internal logging.
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", dbPath, err)
	}
	return &BadgerRecorder{db: db}, nil
}

// SaveOrder upserts the order under order/<id>.
func (r *BadgerRecorder) SaveOrder(order *models.Order) error {
	return r.put(orderPrefix+order.ID, order)
}

// SaveTrade upserts the trade under trade/<id>.
func (r *BadgerRecorder) SaveTrade(botID string, trade *models.Trade) error {
	return r.put(tradePrefix+trade.ID, TradeRecord{BotID: botID, Trade: trade})
}

func (r *BadgerRecorder) put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Order reads an order back by id. Used for inspection and tests; the
// scheduler itself never reads.
func (r *BadgerRecorder) Order(id string) (*models.Order, error) {
	var order models.Order
	if err := r.get(orderPrefix+id, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Trade reads a trade record back by id.
func (r *BadgerRecorder) Trade(id string) (*TradeRecord, error) {
	var record TradeRecord
	if err := r.get(tradePrefix+id, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *BadgerRecorder) get(key string, out any) error {
	return r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

// Close flushes and closes the database.
func (r *BadgerRecorder) Close() error {
	return r.db.Close()
}
