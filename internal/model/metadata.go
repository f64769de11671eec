package model

import (
	"encoding/json"
	"time"
)

// Metadata is the canonical per-item record written as metadata.json
// next to the slide images. Document holds the generated document's own
// fields (title, slides, tokens, ...) flattened into the same object,
// matching the original sidecar layout.
type Metadata struct {
	Document      json.RawMessage
	OriginalTopic string
	Language      Language
	Type          Kind
	EpisodeNumber int
	CreatedAt     time.Time
}

type metadataEnvelope struct {
	OriginalTopic string   `json:"originalTopic"`
	Language      Language `json:"language"`
	Type          Kind     `json:"type,omitempty"`
	EpisodeNumber int      `json:"episodeNumber,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// MarshalJSON merges the document fields and the envelope fields into a
// single flat JSON object, the way the original server spread the
// document into the sidecar.
func (m Metadata) MarshalJSON() ([]byte, error) {
	merged := map[string]json.RawMessage{}
	if len(m.Document) > 0 {
		if err := json.Unmarshal(m.Document, &merged); err != nil {
			return nil, err
		}
	}
	env, err := json.Marshal(metadataEnvelope{
		OriginalTopic: m.OriginalTopic,
		Language:      m.Language,
		Type:          m.Type,
		EpisodeNumber: m.EpisodeNumber,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	var envFields map[string]json.RawMessage
	if err := json.Unmarshal(env, &envFields); err != nil {
		return nil, err
	}
	for k, v := range envFields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// ItemSummary is one row of the library listing.
type ItemSummary struct {
	ID            string   `json:"id"`
	Topic         string   `json:"topic"`
	Title         string   `json:"title"`
	Slides        int      `json:"slides"`
	Language      Language `json:"language"`
	EpisodeNumber int      `json:"episodeNumber"`
	Type          Kind     `json:"type"`
	CreatedAt     string   `json:"createdAt"`
}

// ItemDetail is the full library read model for one generated item.
type ItemDetail struct {
	ID            string          `json:"id"`
	Topic         string          `json:"topic"`
	Title         string          `json:"title"`
	Language      Language        `json:"language"`
	EpisodeNumber int             `json:"episodeNumber"`
	Type          Kind            `json:"type"`
	Slides        []string        `json:"slides"`
	Assets        json.RawMessage `json:"assets"`
}
