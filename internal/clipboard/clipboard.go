package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"

	"netmonitor/internal/domain"
	"netmonitor/internal/logging"
)

var ErrUnsupported = errors.New("system clipboard is not available on this host")

// System writes to the host clipboard (pbcopy, xclip, xsel, wl-copy or the
// Windows API, whichever atotto/clipboard finds).
type System struct{}

func NewSystem() (*System, error) {
	if clipboard.Unsupported {
		return nil, ErrUnsupported
	}
	return &System{}, nil
}

func (*System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ReadAll returns the current clipboard content.
func (*System) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// Memory keeps the last copied text in process. Used on headless hosts.
type Memory struct {
	mu     sync.RWMutex
	text   string
	writes int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.text = text
	m.writes++
	return nil
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.text, nil
}

// Writes returns how many times the clipboard was written.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.writes
}

// New picks the clipboard named by kind ("system" or "memory"). A missing
// system clipboard degrades to memory with a warning.
func New(kind string, logger *logging.Logger) domain.Clipboard {
	if kind != "system" {
		return NewMemory()
	}

	sys, err := NewSystem()
	if err != nil {
		logger.Warn("falling back to in-memory clipboard", logging.AttachError(err)...)
		return NewMemory()
	}
	return sys
}

var (
	_ domain.Clipboard = (*System)(nil)
	_ domain.Clipboard = (*Memory)(nil)
)
