package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

var (
	ErrUnavailable     = errors.New("clipboard: no clipboard utility available")
	ErrUnsupportedType = errors.New("clipboard: content type not supported")
	ErrDenied          = errors.New("clipboard: write denied")
)

// Plain text content types.
const (
	TypeText = "text/plain"
	TypeHTML = "text/html"
	TypePNG  = "image/png"
)

// System writes to the desktop clipboard. Plain text goes through
// atotto/clipboard; HTML and PNG payloads need a MIME aware utility
// (wl-copy or xclip) since plain text clipboards cannot carry them.
type System struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// NewSystem returns the desktop clipboard.
func NewSystem() *System {
	return &System{lookPath: exec.LookPath, getenv: os.Getenv}
}

// Write places data on the clipboard under the content type.
func (s *System) Write(ctx context.Context, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mt := baseType(contentType)
	if mt == TypeText {
		if clipboard.Unsupported {
			return ErrUnavailable
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			return fmt.Errorf("%w: %v", ErrDenied, err)
		}
		return nil
	}
	if mt != TypeHTML && mt != TypePNG {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	args, err := s.typedCommand(mt)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = bytes.NewReader(data)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s: %v %s", ErrDenied, args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (s *System) typedCommand(mt string) ([]string, error) {
	if s.getenv("WAYLAND_DISPLAY") != "" {
		if p, err := s.lookPath("wl-copy"); err == nil {
			return []string{p, "--type", mt}, nil
		}
	}
	if p, err := s.lookPath("xclip"); err == nil {
		return []string{p, "-selection", "clipboard", "-t", mt, "-i"}, nil
	}
	return nil, fmt.Errorf("%w: %s needs wl-copy or xclip", ErrUnavailable, mt)
}

func baseType(ct string) string {
	mt, _, _ := strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// Entry is one clipboard write.
type Entry struct {
	ContentType string
	Data        []byte
}

// Memory is an in-process clipboard. Each workspace of the studio server
// owns one so copies can be fetched back over HTTP.
type Memory struct {
	mu      sync.RWMutex
	current *Entry
	history []Entry
	deny    error
}

// NewMemory returns an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// Deny makes every following write fail with err wrapped in ErrDenied.
// A nil err allows writes again.
func (m *Memory) Deny(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deny = err
}

// Write replaces the clipboard content.
func (m *Memory) Write(ctx context.Context, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deny != nil {
		return fmt.Errorf("%w: %v", ErrDenied, m.deny)
	}
	e := Entry{ContentType: contentType, Data: bytes.Clone(data)}
	m.current = &e
	m.history = append(m.history, e)
	return nil
}

// Read returns the current content.
func (m *Memory) Read() (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Entry{}, false
	}
	return Entry{ContentType: m.current.ContentType, Data: bytes.Clone(m.current.Data)}, true
}

// History returns every successful write, oldest first.
func (m *Memory) History() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, len(m.history))
	copy(out, m.history)
	return out
}
