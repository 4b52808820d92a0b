package view

import (
	"strings"
	"sync"
)

// Level classifies a notice.
type Level string

const (
	LevelStatus  Level = "status"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a one-shot message that is not tied to a field, e.g. the account
// creation result.
type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Notices is a FIFO of pending notices. Drain empties it, so every notice is
// rendered exactly once. The zero value is ready to use.
type Notices struct {
	mu    sync.Mutex
	items []Notice
}

// Add queues a notice. Blank text is ignored.
func (n *Notices) Add(level Level, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if level == "" {
		level = LevelStatus
	}
	n.mu.Lock()
	n.items = append(n.items, Notice{Level: level, Text: text})
	n.mu.Unlock()
}

func (n *Notices) Status(text string)  { n.Add(LevelStatus, text) }
func (n *Notices) Warning(text string) { n.Add(LevelWarning, text) }
func (n *Notices) Error(text string)   { n.Add(LevelError, text) }

// Len reports how many notices are pending.
func (n *Notices) Len() int {
	if n == nil {
		return 0
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}

// Peek returns the pending notices without consuming them.
func (n *Notices) Peek() []Notice {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return normalizeNotices(n.items)
}

// Drain returns the pending notices in insertion order and clears the queue.
// Repeated notices with the same level and text collapse into one.
func (n *Notices) Drain() []Notice {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	items := n.items
	n.items = nil
	n.mu.Unlock()
	return normalizeNotices(items)
}

func normalizeNotices(items []Notice) []Notice {
	if len(items) == 0 {
		return nil
	}

	out := make([]Notice, 0, len(items))
	seen := make(map[Notice]struct{}, len(items))
	for _, item := range items {
		item.Text = strings.TrimSpace(item.Text)
		if item.Text == "" {
			continue
		}
		if _, exists := seen[item]; exists {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
