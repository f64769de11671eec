package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"go.uber.org/zap"

	"lesson-server/internal/model"
)

var slideFileRe = regexp.MustCompile(`^slide-(\d+)\.png$`)

// Index reads the generated-item library straight off the output
// directory. There is no database: a directory with a metadata.json is
// a finished item, anything else is invisible.
type Index struct {
	outputDir string
	logger    *zap.Logger
}

func NewIndex(outputDir string, logger *zap.Logger) *Index {
	return &Index{outputDir: outputDir, logger: logger.Named("Library")}
}

// sidecar is the subset of the flat metadata object the library needs.
type sidecar struct {
	Title         string          `json:"title"`
	OriginalTopic string          `json:"originalTopic"`
	Language      model.Language  `json:"language"`
	EpisodeNumber int             `json:"episodeNumber"`
	Type          model.Kind      `json:"type"`
	CreatedAt     string          `json:"createdAt"`
	Assets        json.RawMessage `json:"assets"`
}

func (s *sidecar) applyLegacyDefaults() {
	if s.Language == "" {
		s.Language = model.LanguageKorean
	}
	if s.EpisodeNumber == 0 {
		s.EpisodeNumber = 1
	}
	if s.Type == "" {
		s.Type = model.KindLesson
	}
}

func (s *sidecar) topic() string {
	if s.OriginalTopic != "" {
		return s.OriginalTopic
	}
	return s.Title
}

// List returns every finished item, newest first. Directories without
// a readable metadata sidecar are skipped with a warning rather than
// failing the whole listing.
func (i *Index) List() ([]model.ItemSummary, error) {
	entries, err := os.ReadDir(i.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.ItemSummary{}, nil
		}
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	summaries := make([]model.ItemSummary, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		meta, err := i.readSidecar(id)
		if err != nil {
			if !os.IsNotExist(err) {
				i.logger.Warn("skipping item with bad metadata",
					zap.String("id", id),
					zap.Error(err),
				)
			}
			continue
		}

		summaries = append(summaries, model.ItemSummary{
			ID:            id,
			Topic:         meta.topic(),
			Title:         meta.Title,
			Slides:        i.countSlides(id),
			Language:      meta.Language,
			EpisodeNumber: meta.EpisodeNumber,
			Type:          meta.Type,
			CreatedAt:     meta.CreatedAt,
		})
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		return parseCreatedAt(summaries[a].CreatedAt).After(parseCreatedAt(summaries[b].CreatedAt))
	})
	return summaries, nil
}

// Get returns the full read model for one item, with 1-based slide
// URLs under /output. A missing or unparsable sidecar both yield
// ErrNotFound: a half-written metadata.json means the item is not
// finished yet, and callers fall back to the job record.
func (i *Index) Get(id string) (*model.ItemDetail, error) {
	meta, err := i.readSidecar(id)
	if err != nil {
		if !os.IsNotExist(err) {
			i.logger.Warn("unreadable metadata treated as missing",
				zap.String("id", id),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}

	count := i.countSlides(id)
	slides := make([]string, count)
	for n := 1; n <= count; n++ {
		slides[n-1] = fmt.Sprintf("/output/%s/slide-%d.png", id, n)
	}

	assets := meta.Assets
	if len(assets) == 0 {
		assets = json.RawMessage("[]")
	}

	return &model.ItemDetail{
		ID:            id,
		Topic:         meta.topic(),
		Title:         meta.Title,
		Language:      meta.Language,
		EpisodeNumber: meta.EpisodeNumber,
		Type:          meta.Type,
		Slides:        slides,
		Assets:        assets,
	}, nil
}

func (i *Index) readSidecar(id string) (*sidecar, error) {
	data, err := os.ReadFile(filepath.Join(i.outputDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta sidecar
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata for %s: %w", id, err)
	}
	meta.applyLegacyDefaults()
	return &meta, nil
}

// countSlides counts the slide-N.png files in an item directory. Slides
// are written strictly in order, so the count matches the numbering.
func (i *Index) countSlides(id string) int {
	entries, err := os.ReadDir(filepath.Join(i.outputDir, id))
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && slideFileRe.MatchString(entry.Name()) {
			count++
		}
	}
	return count
}

func parseCreatedAt(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
