// Package chat holds the conversation state machine: an append-only message
// list where each accepted submission is followed, after the assistant's
// turnaround, by exactly one reply.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/longevitylab/gerograph/internal/assistant"
)

var (
	// ErrEmptyMessage rejects empty or whitespace-only submissions.
	ErrEmptyMessage = errors.New("chat: empty message")
	// ErrBusy rejects a submission while a reply is still pending.
	ErrBusy = errors.New("chat: reply pending")
	// ErrClosed rejects submissions after teardown.
	ErrClosed = errors.New("chat: thread closed")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	IsError   bool      `json:"is_error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Thread is one conversation. Submissions are gated: empty input and
// submit-while-pending are no-ops reported as sentinel errors. The deferred
// reply runs in its own goroutine and is cancelled by Close.
type Thread struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	asst     assistant.Assistant
	timeout  time.Duration
	messages []Message
	pending  bool
	closed   bool

	baseCtx context.Context
	cancel  context.CancelFunc

	// Overridable for deterministic tests.
	NewID func() string
	Now   func() time.Time
}

func NewThread(asst assistant.Assistant, timeout time.Duration) *Thread {
	ctx, cancel := context.WithCancel(context.Background())
	return &Thread{
		asst:    asst,
		timeout: timeout,
		baseCtx: ctx,
		cancel:  cancel,
		NewID:   func() string { return uuid.New().String() },
		Now:     time.Now,
	}
}

// Submit appends the user message and schedules the assistant reply. The
// query context must already carry the resolved selection.
func (t *Thread) Submit(qc assistant.QueryContext) error {
	text := strings.TrimSpace(qc.Text)
	if text == "" {
		return ErrEmptyMessage
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.pending {
		t.mu.Unlock()
		return ErrBusy
	}
	t.messages = append(t.messages, Message{
		ID:        t.NewID(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: t.Now(),
	})
	t.pending = true
	t.mu.Unlock()

	qc.Text = text
	t.wg.Add(1)
	go t.deliver(qc)
	return nil
}

func (t *Thread) deliver(qc assistant.QueryContext) {
	defer t.wg.Done()

	ctx := t.baseCtx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	reply, err := t.asst.SubmitQuery(ctx, qc)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = false
	if t.closed {
		return
	}

	msg := Message{
		ID:        t.NewID(),
		Role:      RoleAssistant,
		Timestamp: t.Now(),
	}
	switch {
	case err == nil:
		msg.Text = reply
	case errors.Is(err, context.Canceled):
		// Teardown cancelled the reply; nothing to append.
		return
	case errors.Is(err, assistant.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		msg.Text = "The assistant took too long to respond. Please try again."
		msg.IsError = true
	default:
		msg.Text = "The assistant is unreachable right now. Please try again."
		msg.IsError = true
	}
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the conversation so far.
func (t *Thread) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Message(nil), t.messages...)
}

// Pending reports whether a reply is in flight.
func (t *Thread) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Wait blocks until all in-flight replies have been delivered. Test hook.
func (t *Thread) Wait() {
	t.wg.Wait()
}

// Close cancels any in-flight reply and rejects further submissions.
func (t *Thread) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.cancel()
	t.wg.Wait()
}
