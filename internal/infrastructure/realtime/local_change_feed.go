package realtime

import (
	"context"
	"sync"

	"trade_portal/internal/usecase/interfaces"
)

// LocalChangeFeed is an in-process change feed for single-instance and
// local runs without NATS. Handlers run synchronously on the publisher's
// goroutine and must not block.
type LocalChangeFeed struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func(interfaces.Change)
}

var _ interfaces.IChangeFeed = (*LocalChangeFeed)(nil)

func NewLocalChangeFeed() *LocalChangeFeed {
	return &LocalChangeFeed{subs: map[string]map[int]func(interfaces.Change){}}
}

func (f *LocalChangeFeed) Publish(_ context.Context, change interfaces.Change) error {
	if !validTable(change.Table) {
		return ErrInvalidTable
	}

	f.mu.RLock()
	handlers := make([]func(interfaces.Change), 0, len(f.subs[change.Table]))
	for _, h := range f.subs[change.Table] {
		handlers = append(handlers, h)
	}
	f.mu.RUnlock()

	for _, h := range handlers {
		h(change)
	}
	return nil
}

func (f *LocalChangeFeed) Subscribe(table string, onChange func(interfaces.Change)) (func(), error) {
	if !validTable(table) {
		return nil, ErrInvalidTable
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	if f.subs[table] == nil {
		f.subs[table] = map[int]func(interfaces.Change){}
	}
	f.subs[table][id] = onChange
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs[table], id)
			f.mu.Unlock()
		})
	}, nil
}
