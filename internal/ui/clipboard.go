package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/company/fastapi-configurator/internal/output"
)

// CopyMethod says how text reached the clipboard.
type CopyMethod string

const (
	CopiedSystem CopyMethod = "system clipboard"
	CopiedOSC52  CopyMethod = "terminal (OSC 52)"
)

// Clipboard copies text with the system clipboard, falling back to an OSC 52
// escape sequence written to the terminal.
type Clipboard struct {
	// Terminal receives the OSC 52 sequence. Nil disables the fallback.
	Terminal io.Writer

	write       func(string) error
	unsupported bool
}

// NewClipboard uses the system clipboard and stdout for the fallback.
func NewClipboard() *Clipboard {
	return &Clipboard{
		Terminal:    os.Stdout,
		write:       clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

// Copy puts text on the clipboard.
func (c *Clipboard) Copy(text string) (CopyMethod, error) {
	var sysErr error
	if c.unsupported || c.write == nil {
		sysErr = fmt.Errorf("no system clipboard available")
	} else if sysErr = c.write(text); sysErr == nil {
		return CopiedSystem, nil
	}
	output.Debug("system clipboard failed, trying OSC 52", "err", sysErr)

	if c.Terminal == nil {
		return "", fmt.Errorf("copying to clipboard: %w", sysErr)
	}
	seq := osc52.New(text)
	switch term := os.Getenv("TERM"); {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.Terminal); err != nil {
		return "", fmt.Errorf("copying to clipboard: %w", err)
	}
	return CopiedOSC52, nil
}
