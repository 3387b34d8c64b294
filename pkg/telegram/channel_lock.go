package telegram

import (
	"fmt"
	"strings"
	"sync"
)

// ChannelLock не даёт двум задачам одновременно парсить один канал.
type ChannelLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewChannelLock() *ChannelLock {
	return &ChannelLock{locks: make(map[string]*sync.Mutex)}
}

// TryLock захватывает канал username или сразу возвращает ErrChannelBusy.
// Возвращённая функция освобождает блокировку.
func (l *ChannelLock) TryLock(username string) (func(), error) {
	key := strings.ToLower(username)

	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mu.Unlock()

	if !lock.TryLock() {
		return nil, fmt.Errorf("%s: %w", username, ErrChannelBusy)
	}
	var once sync.Once
	return func() { once.Do(lock.Unlock) }, nil
}
