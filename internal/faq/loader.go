// Package faq loads the FAQ document and matches user questions against it.
package faq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/capitalize-ai/faq-chatbot/internal/model"
	"github.com/capitalize-ai/faq-chatbot/pkg/logger"
)

// DefaultGreeting is the initial bot message used when no FAQ file exists.
const DefaultGreeting = "Hello! I'm your PSITS Nexus assistant. How can I help you today?"

// ErrDecode is returned when the FAQ file exists but cannot be parsed.
var ErrDecode = errors.New("faq: malformed document")

// DefaultDocument returns the built-in document served when the FAQ file is absent.
func DefaultDocument() *model.FAQDocument {
	return &model.FAQDocument{
		InitialMessage:  DefaultGreeting,
		FAQDatabase:     []model.FAQRecord{},
		CommonQuestions: []string{},
	}
}

// LoaderConfig configures a FileLoader.
type LoaderConfig struct {
	Path  string
	Cache bool
}

// FileLoader reads the FAQ document from a JSON file on disk.
type FileLoader struct {
	path   string
	cache  bool
	logger *logger.Logger

	mu      sync.RWMutex
	cached  *model.FAQDocument
	modTime time.Time
	size    int64
}

// NewFileLoader creates a new FAQ file loader.
func NewFileLoader(cfg LoaderConfig, log *logger.Logger) *FileLoader {
	return &FileLoader{
		path:   cfg.Path,
		cache:  cfg.Cache,
		logger: log,
	}
}

// Load returns the current FAQ document. A missing file yields
// DefaultDocument; a file that cannot be read or decoded yields an error.
func (l *FileLoader) Load(ctx context.Context) (*model.FAQDocument, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		if isAbsent(err) {
			l.invalidate()
			return DefaultDocument(), nil
		}
		return nil, fmt.Errorf("failed to stat faq file: %w", err)
	}

	if l.cache {
		if doc := l.lookup(info); doc != nil {
			return doc, nil
		}
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if isAbsent(err) {
			l.invalidate()
			return DefaultDocument(), nil
		}
		return nil, fmt.Errorf("failed to read faq file: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if l.cache {
		l.store(doc, info)
		l.logger.Debug("faq document reloaded",
			zap.String("path", l.path),
			zap.Int("records", len(doc.FAQDatabase)),
		)
		return doc.Clone(), nil
	}

	return doc, nil
}

// isAbsent reports whether err means there is no file at the path,
// including a path that runs through a regular file.
func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func (l *FileLoader) lookup(info fs.FileInfo) *model.FAQDocument {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.cached == nil || !l.modTime.Equal(info.ModTime()) || l.size != info.Size() {
		return nil
	}
	return l.cached.Clone()
}

func (l *FileLoader) store(doc *model.FAQDocument, info fs.FileInfo) {
	l.mu.Lock()
	l.cached = doc.Clone()
	l.modTime = info.ModTime()
	l.size = info.Size()
	l.mu.Unlock()
}

func (l *FileLoader) invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

// Decode parses a FAQ document from its JSON form.
func Decode(data []byte) (*model.FAQDocument, error) {
	var doc model.FAQDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if doc.FAQDatabase == nil {
		doc.FAQDatabase = []model.FAQRecord{}
	}
	if doc.CommonQuestions == nil {
		doc.CommonQuestions = []string{}
	}
	return &doc, nil
}
