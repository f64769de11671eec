package ai

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrPromptNotFound - no prompt file exists for the requested key.
var ErrPromptNotFound = errors.New("prompt not found")

// Prompt keys correspond to <key>.md files in the prompts directory.
const (
	PromptLesson           = "lesson"
	PromptCheatSheet       = "cheat_sheet"
	PromptSentenceAnalysis = "sentence_analysis"
)

// PromptProvider loads prompt templates from disk and caches them for
// the process lifetime. Placeholders of the form {{NAME}} are replaced
// per request.
type PromptProvider struct {
	dir       string
	cacheLock sync.RWMutex
	cache     map[string]string
	logger    *zap.Logger
}

// NewPromptProvider creates a provider over the given directory.
func NewPromptProvider(dir string, logger *zap.Logger) *PromptProvider {
	return &PromptProvider{
		dir:    dir,
		cache:  make(map[string]string),
		logger: logger.Named("PromptProvider"),
	}
}

// Get returns the prompt for key with placeholders substituted.
func (p *PromptProvider) Get(key string, placeholders map[string]string) (string, error) {
	p.cacheLock.RLock()
	content, ok := p.cache[key]
	p.cacheLock.RUnlock()

	if !ok {
		path := filepath.Join(p.dir, key+".md")
		raw, err := os.ReadFile(path)
		if err != nil {
			p.logger.Error("Failed to read prompt file", zap.String("path", path), zap.Error(err))
			return "", fmt.Errorf("%w: key='%s'", ErrPromptNotFound, key)
		}
		content = string(raw)
		p.cacheLock.Lock()
		p.cache[key] = content
		p.cacheLock.Unlock()
		p.logger.Info("Prompt loaded into cache", zap.String("key", key), zap.Int("bytes", len(content)))
	}

	for name, value := range placeholders {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content, nil
}

// Reload drops the cache; the next Get re-reads from disk. Used by
// tests that swap prompt fixtures.
func (p *PromptProvider) Reload() {
	p.cacheLock.Lock()
	p.cache = make(map[string]string)
	p.cacheLock.Unlock()
}
