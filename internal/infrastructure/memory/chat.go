package memory

import (
	"context"
	"sync"

	appchat "github.com/Zhima-Mochi/minishop-modules/internal/application/chat"
	domchat "github.com/Zhima-Mochi/minishop-modules/internal/domain/chat"
)

var (
	_ domchat.MessageRepository = (*MessageRepository)(nil)
	_ appchat.DeliveryPort      = (*ChatHub)(nil)
)

type MessageRepository struct {
	mu     sync.RWMutex
	byConv map[string][]domchat.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{byConv: make(map[string][]domchat.Message)}
}

func (r *MessageRepository) Save(ctx context.Context, m *domchat.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byConv[m.ConversationID] = append(r.byConv[m.ConversationID], *m)
	return nil
}

// ListByConversation returns up to limit of the most recent messages,
// oldest first.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string, limit int) ([]domchat.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.byConv[conversationID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]domchat.Message(nil), msgs...), nil
}

const (
	listenerBuffer              = 16
	maxListenersPerConversation = 50
)

// ChatHub fans messages out to live listeners of a conversation. Listeners
// whose buffer is full miss the message; history still has it.
type ChatHub struct {
	mu        sync.Mutex
	listeners map[string]map[chan domchat.Message]struct{}
}

func NewChatHub() *ChatHub {
	return &ChatHub{listeners: make(map[string]map[chan domchat.Message]struct{})}
}

// Listen registers a listener until cancel is called.
func (h *ChatHub) Listen(conversationID string) (<-chan domchat.Message, func(), bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.listeners[conversationID]
	if len(set) >= maxListenersPerConversation {
		return nil, func() {}, false
	}
	if set == nil {
		set = make(map[chan domchat.Message]struct{})
		h.listeners[conversationID] = set
	}
	ch := make(chan domchat.Message, listenerBuffer)
	set[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(set, ch)
			if len(set) == 0 {
				delete(h.listeners, conversationID)
			}
			close(ch)
		})
	}
	return ch, cancel, true
}

func (h *ChatHub) Deliver(ctx context.Context, m domchat.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.listeners[m.ConversationID]
	if len(set) == 0 {
		return domchat.ErrNoRecipients
	}
	for ch := range set {
		select {
		case ch <- m:
		default:
		}
	}
	return nil
}
