// Package console prints build progress for the user.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gookit/color"
	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
)

var _ ports.Console = (*Console)(nil)

// labels holds the status prefix per operation, indexed by outcome.
var labels = map[domain.OpKind][3]string{
	domain.OpCompile: {"Built:", "Built with warnings:", "Build error:"},
	domain.OpLink:    {"Linked:", "Linked with warnings:", "Link error:"},
	domain.OpArchive: {"Archived:", "Archived with warnings:", "Archive error:"},
}

var styles = [3]*color.Theme{color.Success, color.Warn, color.Danger}

// Console implements ports.Console on top of gookit/color.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	colored bool
}

// New creates a Console printing status lines to stdout and fatal errors to stderr.
func New() *Console {
	return &Console{out: os.Stdout, errOut: os.Stderr, colored: true}
}

// SetOutput redirects the console.
func (c *Console) SetOutput(out, errOut io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = out
	c.errOut = errOut
}

// SetColor enables or disables colored labels.
func (c *Console) SetColor(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colored = enabled
}

// Status prints one line such as "Built: main.c".
func (c *Console) Status(op domain.OpKind, outcome domain.Outcome, subject string) {
	set, ok := labels[op]
	if !ok || outcome < domain.OutcomeSuccess || outcome > domain.OutcomeError {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, "%s %s\n", c.paint(styles[outcome], set[outcome]), subject)
}

// Echo prints the captured output of a step, stdout first.
func (c *Console) Echo(stdout, stderr []byte) {
	if len(stdout) == 0 && len(stderr) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.out.Write(stdout)
	_, _ = c.out.Write(stderr)
}

// Fatal prints "<path>: <error>" in red. The path is omitted when empty.
func (c *Console) Fatal(path string, err error) {
	msg := err.Error()
	if path != "" {
		msg = path + ": " + msg
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.errOut, c.paint(color.Danger, msg))
}

func (c *Console) paint(theme *color.Theme, text string) string {
	if !c.colored {
		return text
	}
	return theme.Sprint(text)
}
