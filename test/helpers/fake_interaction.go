package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/eartask-go/internal/application/interaction"
)

// FakePrompter answers every prompt with Answer and records the messages
type FakePrompter struct {
	mu       sync.Mutex
	Answer   bool
	messages []string
}

// NewFakePrompter creates a prompter that always answers answer
func NewFakePrompter(answer bool) *FakePrompter {
	return &FakePrompter{Answer: answer}
}

func (p *FakePrompter) Confirm(ctx context.Context, message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	return p.Answer
}

// Messages returns every prompt shown
func (p *FakePrompter) Messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.messages...)
}

// Notification is one recorded Notify call
type Notification struct {
	Message string
	Kind    interaction.Kind
}

// FakeNotifier records notifications
type FakeNotifier struct {
	mu            sync.Mutex
	notifications []Notification
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) Notify(message string, kind interaction.Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, Notification{Message: message, Kind: kind})
}

// Notifications returns every notification in order
func (n *FakeNotifier) Notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.notifications...)
}

// Messages returns the notification texts in order
func (n *FakeNotifier) Messages() []string {
	var out []string
	for _, item := range n.Notifications() {
		out = append(out, item.Message)
	}
	return out
}

// Last returns the most recent notification
func (n *FakeNotifier) Last() (Notification, bool) {
	items := n.Notifications()
	if len(items) == 0 {
		return Notification{}, false
	}
	return items[len(items)-1], true
}
