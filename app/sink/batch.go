package sink

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

const (
	menuFileName = "menu.fvwm"
	mediaDirName = "media"
)

var ErrClosed = errors.New("batch is closed")

// Artifact locates a written batch on disk
type Artifact struct {
	Path string // directive file
	Dir  string // batch directory, holding the file and its media
}

// Batch accumulates the directives of every feed in one run. It owns a
// temporary directory with the directive file and the converted pictures
// the directives point at.
type Batch struct {
	dir      string
	mediaDir string
	file     *os.File
	writer   *bufio.Writer
	lines    int
	closed   bool
}

// Open creates a new batch directory under parent, or under the system
// temporary directory when parent is empty.
func Open(parent string) (*Batch, error) {
	dir, err := os.MkdirTemp(parent, "fvwm-rss-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create batch directory: %w", err)
	}

	mediaDir := filepath.Join(dir, mediaDirName)
	if err := os.Mkdir(mediaDir, 0755); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	file, err := os.Create(filepath.Join(dir, menuFileName))
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to create menu file: %w", err)
	}

	log.WithFields(log.Fields{"dir": dir}).Debug("Batch opened")

	return &Batch{
		dir:      dir,
		mediaDir: mediaDir,
		file:     file,
		writer:   bufio.NewWriter(file),
	}, nil
}

// Append writes lines to the directive file, one directive per line.
func (b *Batch) Append(lines ...string) error {
	if b.closed {
		return ErrClosed
	}

	for _, line := range lines {
		if _, err := b.writer.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write directive: %w", err)
		}
	}
	b.lines += len(lines)

	return nil
}

func (b *Batch) Dir() string {
	return b.dir
}

func (b *Batch) MediaDir() string {
	return b.mediaDir
}

func (b *Batch) Path() string {
	return b.file.Name()
}

func (b *Batch) Lines() int {
	return b.lines
}

func (b *Batch) Artifact() Artifact {
	return Artifact{Path: b.Path(), Dir: b.dir}
}

// Close flushes and closes the directive file. Calling it again is a no-op.
func (b *Batch) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	flushErr := b.writer.Flush()
	closeErr := b.file.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to flush menu file: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close menu file: %w", closeErr)
	}
	return nil
}

// Commit closes the batch, hands it to the loader and then asks the loader
// to delete it. Deletion is requested even when loading failed. When the
// loader could neither load nor delete, nothing will read the batch and it
// is removed here.
func (b *Batch) Commit(ctx context.Context, loader Loader) error {
	var loadErr error
	if err := b.Close(); err != nil {
		loadErr = err
	} else if err := loader.Load(ctx, b.Artifact()); err != nil {
		loadErr = fmt.Errorf("failed to load menu: %w", err)
	}

	if err := loader.Delete(ctx, b.Artifact()); err != nil {
		err = fmt.Errorf("failed to schedule cleanup: %w", err)
		if loadErr != nil {
			b.remove()
		}
		return errors.Join(loadErr, err)
	}

	if loadErr == nil {
		log.WithFields(log.Fields{
			"path":  b.Path(),
			"lines": b.lines,
		}).Debug("Batch committed")
	}

	return loadErr
}

func (b *Batch) remove() {
	if err := os.RemoveAll(b.dir); err != nil {
		log.WithFields(log.Fields{"dir": b.dir, "error": err}).Warn("Failed to remove batch")
		return
	}
	log.WithFields(log.Fields{"dir": b.dir}).Debug("Batch removed")
}
