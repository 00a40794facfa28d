// Package scratch manages the per-request temporary files that hold uploaded
// audio while it is transcribed.
//
// Acquire writes the upload under a unique name and returns a Handle; the
// caller defers Handle.Release, which is idempotent and treats an already
// missing file as released.
package scratch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/audioscribe/logger"
)

// ErrEmptyUpload is returned when the reader yields no bytes.
var ErrEmptyUpload = errors.New("scratch: upload is empty")

// Manager creates scratch files in a shared directory.
type Manager struct {
	dir     string
	maxName int
	log     *logger.Logger
}

// New creates a manager. The directory is created lazily on first Acquire.
func New(cfg Config, log *logger.Logger) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		dir:     cfg.Dir,
		maxName: cfg.MaxNameLength,
		log:     log.WithComponent("scratch"),
	}
}

// Dir returns the scratch directory.
func (m *Manager) Dir() string { return m.dir }

// Acquire writes r to a new file named <uuid>-<originalName> and returns its handle.
// On any error no file is left behind.
func (m *Manager) Acquire(ctx context.Context, r io.Reader, originalName string) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// MkdirAll succeeds when the directory already exists, so concurrent callers are safe.
	if err := os.MkdirAll(m.dir, 0o750); err != nil {
		return nil, fmt.Errorf("scratch: create directory: %w", err)
	}

	path := filepath.Join(m.dir, uuid.NewString()+"-"+m.safeName(originalName))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("scratch: create file: %w", err)
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && n == 0 {
		err = ErrEmptyUpload
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrEmptyUpload) {
			return nil, err
		}
		return nil, fmt.Errorf("scratch: write file: %w", err)
	}

	m.log.Debug("scratch file created", logger.Fields("path", path, "bytes", n))
	return &Handle{path: path, size: n, log: m.log}, nil
}

// safeName reduces a client-supplied filename to a bare, bounded base name.
func (m *Manager) safeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == '/' {
			return '_'
		}
		return r
	}, name)
	if name == "." || name == "/" || name == "" || name == ".." {
		name = "upload"
	}
	if m.maxName > 0 && len(name) > m.maxName {
		ext := filepath.Ext(name)
		if len(ext) >= m.maxName {
			ext = ""
		}
		name = name[:m.maxName-len(ext)] + ext
	}
	return name
}

// Handle references one scratch file. It is owned by a single request.
type Handle struct {
	path string
	size int64
	log  *logger.Logger

	once sync.Once
	err  error
}

// Path returns the file location.
func (h *Handle) Path() string { return h.path }

// Size returns the number of bytes written.
func (h *Handle) Size() int64 { return h.size }

// Release deletes the file. Only the first call does any work; a file that is
// already gone counts as released.
func (h *Handle) Release() error {
	h.once.Do(func() {
		err := os.Remove(h.path)
		if err != nil && !os.IsNotExist(err) {
			h.err = fmt.Errorf("scratch: remove %s: %w", h.path, err)
			return
		}
		h.log.Debug("scratch file released", logger.Fields("path", h.path))
	})
	return h.err
}
