package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Loader is the boundary to whatever consumes a finished batch.
type Loader interface {
	Load(ctx context.Context, artifact Artifact) error
	Delete(ctx context.Context, artifact Artifact) error
}

var (
	_ Loader = (*FvwmLoader)(nil)
	_ Loader = (*PrintLoader)(nil)
)

// FvwmLoader talks to a running FVWM through its command module.
type FvwmLoader struct {
	command []string
	delay   time.Duration
}

// NewFvwmLoader takes the command line used to reach FVWM, e.g.
// "FvwmCommand" or "FvwmCommand -f /tmp/fvwm-fifo".
func NewFvwmLoader(command string, delay time.Duration) *FvwmLoader {
	return &FvwmLoader{
		command: strings.Fields(command),
		delay:   delay,
	}
}

func (l *FvwmLoader) Load(ctx context.Context, artifact Artifact) error {
	return l.send(ctx, fmt.Sprintf(`Read "%s"`, artifact.Path))
}

// Delete has FVWM remove the batch once the delay passed. Read is handled
// asynchronously by FVWM, so removing the files right away would race it.
func (l *FvwmLoader) Delete(ctx context.Context, artifact Artifact) error {
	return l.send(ctx, cleanupDirective(l.delay, artifact.Dir))
}

// cleanupDirective asks FVWM to remove dir once delay has passed.
func cleanupDirective(delay time.Duration, dir string) string {
	return fmt.Sprintf("Schedule %d Exec exec rm -rf '%s'", delay.Milliseconds(), dir)
}

func (l *FvwmLoader) send(ctx context.Context, directive string) error {
	if len(l.command) == 0 {
		return fmt.Errorf("no fvwm command configured")
	}

	args := append(l.command[1:len(l.command):len(l.command)], directive)
	cmd := exec.CommandContext(ctx, l.command[0], args...)

	log.WithFields(log.Fields{"command": l.command[0], "directive": directive}).Debug("Sending directive to FVWM")

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to run %s: %w (%s)", l.command[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

// PrintLoader writes the directives to w, for use from an FVWM PipeRead.
type PrintLoader struct {
	w     io.Writer
	delay time.Duration
}

func NewPrintLoader(w io.Writer, delay time.Duration) *PrintLoader {
	return &PrintLoader{w: w, delay: delay}
}

func (l *PrintLoader) Load(ctx context.Context, artifact Artifact) error {
	f, err := os.Open(artifact.Path)
	if err != nil {
		return fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(l.w, f); err != nil {
		return fmt.Errorf("failed to print menu: %w", err)
	}
	return nil
}

// Delete prints the cleanup as a final directive. FVWM runs it as part of
// the PipeRead, after the pictures have been loaded.
func (l *PrintLoader) Delete(ctx context.Context, artifact Artifact) error {
	if _, err := fmt.Fprintln(l.w, cleanupDirective(l.delay, artifact.Dir)); err != nil {
		return fmt.Errorf("failed to print cleanup: %w", err)
	}
	return nil
}
