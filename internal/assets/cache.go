// Package assets selects background images and fonts for slides from
// curated directories. All lookups go through a process-wide read-only
// cache keyed by directory path, populated once and invalidated only by
// an explicit Reload.
package assets

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Role names the logical slot a background is selected for. The value
// is the subdirectory under the assets root.
type Role string

const (
	RoleHook                 Role = "hook-slides"
	RoleContent              Role = "content-slides"
	RoleCTA                  Role = "cta-slides"
	RoleCheatSheetHook       Role = "cheat-sheet-hook"
	RoleCheatSheetBackground Role = "cheat-sheet-backgrounds"
)

const fontsSubdir = "fonts"

var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// Library caches the contents of the asset directories.
type Library struct {
	root   string
	logger *zap.Logger

	mu          sync.RWMutex
	dirListings map[string][]string // dir -> sorted image paths
	dataURIs    map[string]string   // file path -> data URI
	fontCSS     string
	fontsLoaded bool
	placeholder string
}

// NewLibrary creates a Library over the given assets root.
func NewLibrary(root string, logger *zap.Logger) *Library {
	return &Library{
		root:        root,
		logger:      logger.Named("AssetLibrary"),
		dirListings: make(map[string][]string),
		dataURIs:    make(map[string]string),
	}
}

// Reload drops every cached listing, data URI and the font CSS. The
// next lookup re-reads from disk. Used by tests that swap fixtures.
func (l *Library) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dirListings = make(map[string][]string)
	l.dataURIs = make(map[string]string)
	l.fontCSS = ""
	l.fontsLoaded = false
}

// Images returns the cached image paths for a role. A missing or empty
// directory yields an empty slice, never an error: callers fall back to
// a gradient background.
func (l *Library) Images(role Role) []string {
	dir := filepath.Join(l.root, string(role))

	l.mu.RLock()
	paths, ok := l.dirListings[dir]
	l.mu.RUnlock()
	if ok {
		return paths
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Warn("Asset directory unavailable", zap.String("dir", dir), zap.Error(err))
		entries = nil
	}
	paths = make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := imageExtensions[ext]; ok {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	l.mu.Lock()
	l.dirListings[dir] = paths
	l.mu.Unlock()

	l.logger.Debug("Asset directory scanned", zap.String("dir", dir), zap.Int("images", len(paths)))
	return paths
}

// DataURI reads a file and returns it as a base64 data URI, cached per
// path. An unreadable file yields "" so a single bad asset degrades to
// the gradient fallback instead of failing the document.
func (l *Library) DataURI(path string) string {
	l.mu.RLock()
	uri, ok := l.dataURIs[path]
	l.mu.RUnlock()
	if ok {
		return uri
	}

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error("Failed to read asset file", zap.String("path", path), zap.Error(err))
		return ""
	}
	mimeType := imageExtensions[strings.ToLower(filepath.Ext(path))]
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	uri = fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	l.mu.Lock()
	l.dataURIs[path] = uri
	l.mu.Unlock()
	return uri
}

// FontCSS builds @font-face declarations for every .ttf/.otf file in
// the fonts directory, with the font family named after the file. Built
// once per cache generation, not once per slide.
func (l *Library) FontCSS() string {
	l.mu.RLock()
	if l.fontsLoaded {
		css := l.fontCSS
		l.mu.RUnlock()
		return css
	}
	l.mu.RUnlock()

	dir := filepath.Join(l.root, fontsSubdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Warn("Fonts directory unavailable", zap.String("dir", dir), zap.Error(err))
	}

	var b strings.Builder
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			l.logger.Error("Failed to read font file", zap.String("path", path), zap.Error(err))
			continue
		}
		family := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		fmt.Fprintf(&b,
			"@font-face{font-family:'%s';src:url('data:font/truetype;base64,%s') format('truetype');font-display:block;}\n",
			family, base64.StdEncoding.EncodeToString(data),
		)
		l.logger.Info("Font loaded", zap.String("family", family))
	}
	css := b.String()

	l.mu.Lock()
	l.fontCSS = css
	l.fontsLoaded = true
	l.mu.Unlock()
	return css
}
