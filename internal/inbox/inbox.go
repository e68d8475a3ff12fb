// Package inbox holds customer messages and the replies sent to them.
package inbox

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"DashboardPro/internal/apperr"
)

type Reply struct {
	ID     string    `json:"id"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

type Message struct {
	ID      int64   `json:"id"`
	Sender  string  `json:"sender"`
	Preview string  `json:"preview"`
	Time    string  `json:"time"`
	Unread  bool    `json:"unread"`
	Replies []Reply `json:"replies"`
}

func Seed() []Message {
	return []Message{
		{ID: 1, Sender: "Alice Johnson", Preview: "Hey, I have a question about my order...", Time: "2 min ago", Unread: true},
		{ID: 2, Sender: "Bob Smith", Preview: "Thanks for the quick delivery!", Time: "1 hour ago", Unread: true},
		{ID: 3, Sender: "Carol White", Preview: "When will the new products be available?", Time: "3 hours ago"},
		{ID: 4, Sender: "David Brown", Preview: "I need help with my account settings.", Time: "1 day ago"},
	}
}

type Store struct {
	mu    sync.RWMutex
	items []Message
	now   func() time.Time
}

func NewStore(seed ...Message) *Store {
	s := &Store{now: time.Now}
	for _, m := range seed {
		m.Replies = append([]Reply(nil), m.Replies...)
		s.items = append(s.items, m)
	}
	return s
}

func (s *Store) List(ctx context.Context) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.items))
	for i, m := range s.items {
		out[i] = clone(m)
	}
	return out, nil
}

func (s *Store) Unread(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, m := range s.items {
		if m.Unread {
			n++
		}
	}
	return n
}

// Open returns the message and marks it read.
func (s *Store) Open(ctx context.Context, id int64) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Message{}, apperr.NotFound("message", id)
	}
	s.items[i].Unread = false
	return clone(s.items[i]), nil
}

// Reply appends a reply to the message. Blank bodies are rejected.
func (s *Store) Reply(ctx context.Context, id int64, body string) (Reply, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Reply{}, apperr.Required("body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Reply{}, apperr.NotFound("message", id)
	}

	r := Reply{ID: uuid.NewString(), Body: body, SentAt: s.now().UTC()}
	s.items[i].Replies = append(s.items[i].Replies, r)
	return r, nil
}

func (s *Store) indexOf(id int64) int {
	for i, m := range s.items {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func clone(m Message) Message {
	m.Replies = append([]Reply(nil), m.Replies...)
	return m
}
