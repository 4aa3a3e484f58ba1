package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// userQueues holds pending updates per user. A key is present while a
// worker owns it; the worker removes the key when the queue runs dry.
type userQueues struct {
	mu      sync.Mutex
	pending map[string][]tgbotapi.Update
}

// push appends u to key's queue and reports whether the caller must start
// a worker for it.
func (q *userQueues) push(key string, u tgbotapi.Update) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[string][]tgbotapi.Update)
	}
	list, running := q.pending[key]
	q.pending[key] = append(list, u)
	return !running
}

// next pops the oldest update for key. When none is left the key is
// released and ok is false; the worker must then exit.
func (q *userQueues) next(key string) (tgbotapi.Update, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	list := q.pending[key]
	if len(list) == 0 {
		delete(q.pending, key)
		return tgbotapi.Update{}, false
	}
	q.pending[key] = list[1:]
	return list[0], true
}

func (q *userQueues) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// updateKey identifies the user an update belongs to.
func updateKey(u tgbotapi.Update) string {
	switch {
	case u.CallbackQuery != nil && u.CallbackQuery.From != nil:
		return userKey(u.CallbackQuery.From.ID)
	case u.Message != nil && u.Message.From != nil:
		return userKey(u.Message.From.ID)
	default:
		return ""
	}
}
