package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/janhq/translate-mock/internal/config"
)

// sniffLen is how many leading bytes are inspected for content detection.
const sniffLen = 3072

// ErrNotFound is returned when an artifact does not exist.
var ErrNotFound = errors.New("artifact not found")

// Artifact describes a stored file.
type Artifact struct {
	Key         string
	Size        int64
	ContentType string
	// Text is set when the sniffed type descends from text/plain.
	Text bool
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// LocalStorage keeps document artifacts as flat files in one directory.
type LocalStorage struct {
	basePath string
	log      zerolog.Logger
}

// NewLocalStorage creates the storage rooted at the configured document directory.
func NewLocalStorage(cfg *config.Config, log zerolog.Logger) (*LocalStorage, error) {
	return NewLocalStorageAt(cfg.DocumentDir, log)
}

// NewLocalStorageAt creates the storage rooted at basePath, creating it if needed.
func NewLocalStorageAt(basePath string, log zerolog.Logger) (*LocalStorage, error) {
	logger := log.With().Str("component", "local-storage").Logger()

	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("document directory is not configured")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}

	logger.Info().Str("path", basePath).Msg("local storage initialized")
	return &LocalStorage{basePath: basePath, log: logger}, nil
}

func (l *LocalStorage) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid artifact key %q", key)
	}
	return filepath.Join(l.basePath, key), nil
}

// Save writes body under key and reports its size and sniffed content type.
func (l *LocalStorage) Save(ctx context.Context, key string, body io.Reader) (Artifact, error) {
	fullPath, err := l.path(key)
	if err != nil {
		return Artifact{}, err
	}

	br := bufio.NewReaderSize(body, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return Artifact{}, fmt.Errorf("failed to read artifact: %w", err)
	}
	detected := mimetype.Detect(head)
	contentType := detected.String()

	file, err := os.Create(fullPath)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to create file: %w", err)
	}
	written, copyErr := io.Copy(file, br)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(fullPath)
		return Artifact{}, fmt.Errorf("failed to write file: %w", errors.Join(copyErr, closeErr))
	}

	l.log.Debug().
		Str("key", key).
		Int64("bytes", written).
		Str("content_type", contentType).
		Msg("artifact stored")

	return Artifact{Key: key, Size: written, ContentType: contentType, Text: isText(detected)}, nil
}

// Open returns a reader for key and its size.
func (l *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	fullPath, err := l.path(key)
	if err != nil {
		return nil, 0, err
	}
	file, err := os.Open(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("failed to stat file: %w", err)
	}
	return file, info.Size(), nil
}

// Delete removes key. Removing a missing artifact is not an error.
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	l.log.Debug().Str("key", key).Msg("artifact deleted")
	return nil
}

// Health checks that the directory is still writable.
func (l *LocalStorage) Health(ctx context.Context) error {
	tmp, err := os.CreateTemp(l.basePath, ".health-*")
	if err != nil {
		return fmt.Errorf("document directory not writable: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	return os.Remove(name)
}
