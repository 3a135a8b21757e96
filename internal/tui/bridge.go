package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/handlewatch/internal/scheduler"
)

// Bridge is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, the poller sink needs
// a pointer that survives copies so it can send messages from its own
// goroutine.
type Bridge struct {
	mu      sync.RWMutex
	program *tea.Program
}

// NewBridge creates a bridge with no program attached. Messages sent before
// SetProgram are dropped.
func NewBridge() *Bridge {
	return &Bridge{}
}

// SetProgram sets the tea.Program reference (thread-safe).
func (b *Bridge) SetProgram(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	b.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (b *Bridge) Send(msg tea.Msg) {
	b.mu.RLock()
	p := b.program
	b.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Sink forwards poller results to the program as ResultMsg values.
func (b *Bridge) Sink(r scheduler.Result) {
	b.Send(ResultMsg{Result: r})
}

var _ scheduler.Sink = (*Bridge)(nil).Sink
