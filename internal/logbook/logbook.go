package logbook

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DurableCap is how many entries are kept in durable storage (snapshots and
// the Redis tail). The in-memory history is unbounded for the session.
const DurableCap = 100

const redisKey = "pos:activity_log"

// Book is the terminal's activity log: timestamped text lines mirrored to the
// structured logger and, when configured, to a capped Redis list.
type Book struct {
	mu      sync.Mutex
	entries []string
	rdb     *redis.Client
	logger  *zap.Logger
}

func New(logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Book{logger: logger}
}

// SetRedis attaches a Redis sink for the durable tail.
func (b *Book) SetRedis(rdb *redis.Client) {
	b.mu.Lock()
	b.rdb = rdb
	b.mu.Unlock()
}

// Add appends a timestamped entry.
func (b *Book) Add(message string) {
	entry := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), message)

	b.mu.Lock()
	b.entries = append(b.entries, entry)
	rdb := b.rdb
	b.mu.Unlock()

	b.logger.Info(message)

	if rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := rdb.LPush(ctx, redisKey, entry).Err(); err != nil {
			b.logger.Warn("activity log redis push failed", zap.Error(err))
			return
		}
		if err := rdb.LTrim(ctx, redisKey, 0, DurableCap-1).Err(); err != nil {
			b.logger.Warn("activity log redis trim failed", zap.Error(err))
		}
	}
}

// Addf appends a formatted entry.
func (b *Book) Addf(format string, args ...any) {
	b.Add(fmt.Sprintf(format, args...))
}

// All returns the full in-memory history.
func (b *Book) All() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}

// Tail returns the durable slice of the history: the most recent DurableCap
// entries, oldest first.
func (b *Book) Tail() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := 0
	if len(b.entries) > DurableCap {
		start = len(b.entries) - DurableCap
	}
	out := make([]string, len(b.entries)-start)
	copy(out, b.entries[start:])
	return out
}

// Replace swaps the history wholesale, used by snapshot load and import.
func (b *Book) Replace(entries []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make([]string, len(entries))
	copy(b.entries, entries)
}

// Clear wipes the history.
func (b *Book) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = nil
}
