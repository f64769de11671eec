package model

import "time"

// JobStage is one step of the per-item generation state machine.
type JobStage string

const (
	StageReceived         JobStage = "received"
	StageContentGenerated JobStage = "content-generated"
	StageSlidesRendering  JobStage = "slides-rendering"
	StageMetadataWritten  JobStage = "metadata-written"
	StageComplete         JobStage = "complete"
	StageFailed           JobStage = "failed"
)

// Terminal reports whether the stage ends the state machine.
func (s JobStage) Terminal() bool {
	return s == StageComplete || s == StageFailed
}

// JobRecord is the explicit status record kept per identifier so that
// a mid-pipeline failure is observable instead of an indefinite
// pending state.
type JobRecord struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"type"`
	Stage       JobStage  `json:"stage"`
	Slide       int       `json:"slide,omitempty"` // 1-based slide being rendered, 0 outside rendering
	TotalSlides int       `json:"totalSlides,omitempty"`
	Error       string    `json:"error,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
