package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/troopdesk/troopdesk-backend/internal/report"
)

var errRefresh = errors.New("store unavailable")

// memList is an in-memory JobList keyed by list name.
type memList struct {
	mu    sync.Mutex
	lists map[string][]string
	dels  int
}

func newMemList() *memList {
	return &memList{lists: map[string][]string{}}
}

func (l *memList) BLPop(_ context.Context, _ time.Duration, keys ...string) *redis.StringSliceCmd {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		if items := l.lists[key]; len(items) > 0 {
			l.lists[key] = items[1:]
			return redis.NewStringSliceResult([]string{key, items[0]}, nil)
		}
	}
	return redis.NewStringSliceResult(nil, redis.Nil)
}

func (l *memList) RPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, v := range values {
		switch v := v.(type) {
		case []byte:
			l.lists[key] = append(l.lists[key], string(v))
		default:
			l.lists[key] = append(l.lists[key], fmt.Sprint(v))
		}
	}
	return redis.NewIntResult(int64(len(l.lists[key])), nil)
}

func (l *memList) LLen(_ context.Context, key string) *redis.IntCmd {
	l.mu.Lock()
	defer l.mu.Unlock()
	return redis.NewIntResult(int64(len(l.lists[key])), nil)
}

func (l *memList) Del(_ context.Context, keys ...string) *redis.IntCmd {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dels++
	var n int64
	for _, key := range keys {
		n += int64(len(l.lists[key]))
		delete(l.lists, key)
	}
	return redis.NewIntResult(n, nil)
}

func (l *memList) len(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lists[key])
}

// countingRefresher counts refreshes and fails while fail is set.
type countingRefresher struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (r *countingRefresher) Refresh(context.Context) (*report.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.fail {
		return nil, errRefresh
	}
	return &report.Summary{}, nil
}
