package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	"github.com/andrescamacho/eartask-go/internal/domain/batch"
)

// ConsolePrompter asks yes/no questions on the terminal. Anything but an
// explicit yes, including EOF, is a no.
type ConsolePrompter struct {
	mu     sync.Mutex
	source io.Reader
	in     *bufio.Reader
	out    io.Writer
}

func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{source: in, in: bufio.NewReader(in), out: out}
}

func (p *ConsolePrompter) Confirm(ctx context.Context, message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ReadLine prompts for a free-text answer
func (p *ConsolePrompter) ReadLine(label string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ProgressLine renders live batch progress on a single rewritten line
type ProgressLine struct {
	mu     sync.Mutex
	out    io.Writer
	label  string
	active bool
}

func NewProgressLine(out io.Writer, label string) *ProgressLine {
	return &ProgressLine{out: out, label: label}
}

// Update redraws the line; the line is closed once every call is attempted
func (l *ProgressLine) Update(p batch.Progress) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, "\r%s %d/%d  ✓ %d  ✗ %d", l.label, p.Current, p.Total, p.SuccessCount, p.FailCount)
	l.active = true
	if p.Done() {
		fmt.Fprintln(l.out)
		l.active = false
	}
}

// Break ends an unfinished line so other output starts on a fresh one
func (l *ProgressLine) Break() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.active {
		fmt.Fprintln(l.out)
		l.active = false
	}
}

// ConsoleNotifier prints notifications as status lines
type ConsoleNotifier struct {
	mu       sync.Mutex
	out      io.Writer
	progress *ProgressLine
}

// NewConsoleNotifier creates a notifier; progress may be nil
func NewConsoleNotifier(out io.Writer, progress *ProgressLine) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, progress: progress}
}

func (n *ConsoleNotifier) Notify(message string, kind interaction.Kind) {
	if n.progress != nil {
		n.progress.Break()
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", notificationIcon(kind), message)
}

func notificationIcon(kind interaction.Kind) string {
	switch kind {
	case interaction.KindSuccess:
		return "✓"
	case interaction.KindFail:
		return "✗"
	default:
		return "•"
	}
}
