package job

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"lesson-server/internal/ai"
	"lesson-server/internal/assets"
	"lesson-server/internal/id"
	"lesson-server/internal/model"
	"lesson-server/internal/rasterizer"
	"lesson-server/internal/render"
)

// Orchestrator runs the full generation pipeline for one request:
// content generation, slide rendering, rasterization, and the metadata
// sidecar. Start methods validate, register a job record, and return
// the identifier immediately; the pipeline itself runs on a background
// goroutine. Jobs sharing an identifier are serialized, so a repeated
// topic is last-writer-wins rather than interleaved.
type Orchestrator struct {
	ai        ai.Client
	engine    *render.Engine
	raster    rasterizer.Rasterizer
	assets    *assets.Library
	store     *Store
	outputDir string
	logger    *zap.Logger

	mu    sync.Mutex
	locks map[string]*idLock
}

// idLock serializes pipelines sharing an identifier. Entries are
// reference counted and evicted once the last same-id job finishes, so
// the lock map does not grow with every distinct topic ever requested.
type idLock struct {
	mu   sync.Mutex
	refs int
}

func NewOrchestrator(
	aiClient ai.Client,
	engine *render.Engine,
	raster rasterizer.Rasterizer,
	library *assets.Library,
	store *Store,
	outputDir string,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		ai:        aiClient,
		engine:    engine,
		raster:    raster,
		assets:    library,
		store:     store,
		outputDir: outputDir,
		logger:    logger.Named("Orchestrator"),
		locks:     make(map[string]*idLock),
	}
}

// StartLesson kicks off lesson generation and returns the identifier
// the client should poll. An unknown language falls back to Korean.
func (o *Orchestrator) StartLesson(topic string, language model.Language) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: topic", model.ErrEmptyInput)
	}
	if !language.Valid() {
		language = model.LanguageKorean
	}

	jobID := id.ForLesson(topic)
	o.store.Begin(jobID, model.KindLesson)
	o.launch(jobID, model.KindLesson, func(ctx context.Context) error {
		return o.runLesson(ctx, jobID, topic, language)
	})
	return jobID, nil
}

// StartCheatSheet kicks off cheat sheet generation.
func (o *Orchestrator) StartCheatSheet(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: topic", model.ErrEmptyInput)
	}

	jobID := id.ForCheatSheet(topic)
	o.store.Begin(jobID, model.KindCheatSheet)
	o.launch(jobID, model.KindCheatSheet, func(ctx context.Context) error {
		return o.runCheatSheet(ctx, jobID, topic)
	})
	return jobID, nil
}

// StartSentenceAnalysis kicks off a per-token sentence breakdown. The
// returned identifier is tentative, derived from the sentence itself;
// if the generated document carries its own id the record is renamed
// and both identifiers keep resolving.
func (o *Orchestrator) StartSentenceAnalysis(sentence string) (string, error) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return "", fmt.Errorf("%w: sentence", model.ErrEmptyInput)
	}

	jobID := id.ForSentence(sentence)
	o.store.Begin(jobID, model.KindSentenceAnalysis)
	o.launch(jobID, model.KindSentenceAnalysis, func(ctx context.Context) error {
		return o.runSentenceAnalysis(ctx, jobID, sentence)
	})
	return jobID, nil
}

func (o *Orchestrator) launch(jobID string, kind model.Kind, pipeline func(ctx context.Context) error) {
	go func() {
		lock := o.acquireLock(jobID)
		defer o.releaseLock(jobID, lock)

		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("pipeline panic: %v", r)
				o.logger.Error("generation panicked",
					zap.String("id", jobID),
					zap.Any("panic", r),
				)
				o.store.Fail(jobID, err)
				jobsTotal.WithLabelValues(string(kind), "failed").Inc()
			}
		}()

		started := time.Now()
		if err := pipeline(context.Background()); err != nil {
			o.logger.Error("generation failed",
				zap.String("id", jobID),
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			o.store.Fail(jobID, err)
			jobsTotal.WithLabelValues(string(kind), "failed").Inc()
			return
		}

		o.store.Complete(jobID)
		jobsTotal.WithLabelValues(string(kind), "completed").Inc()
		jobDuration.WithLabelValues(string(kind)).Observe(time.Since(started).Seconds())
		o.logger.Info("generation completed",
			zap.String("id", jobID),
			zap.String("kind", string(kind)),
			zap.Duration("took", time.Since(started)),
		)
	}()
}

func (o *Orchestrator) acquireLock(jobID string) *idLock {
	o.mu.Lock()
	lock, ok := o.locks[jobID]
	if !ok {
		lock = &idLock{}
		o.locks[jobID] = lock
	}
	lock.refs++
	o.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (o *Orchestrator) releaseLock(jobID string, lock *idLock) {
	lock.mu.Unlock()

	o.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(o.locks, jobID)
	}
	o.mu.Unlock()
}

// background substitutes the generated gradient placeholder when a
// role's pool has nothing to offer.
func (o *Orchestrator) background(uri string) string {
	if uri == "" {
		return o.assets.Placeholder()
	}
	return uri
}

func (o *Orchestrator) runLesson(ctx context.Context, jobID, topic string, language model.Language) error {
	doc, err := o.ai.GenerateLesson(ctx, topic, language)
	if err != nil {
		return err
	}
	o.store.Advance(jobID, model.StageContentGenerated)
	o.store.SetTotal(jobID, len(doc.Slides))

	outDir := filepath.Join(o.outputDir, jobID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	fontCSS := o.assets.FontCSS()
	contentSeq := o.assets.Shuffle(assets.RoleContent)
	contentIdx := 0

	total := len(doc.Slides)
	for i, slide := range doc.Slides {
		var backgroundURI string
		switch {
		case i == 0:
			backgroundURI = o.assets.Pick(assets.RoleHook)
		case i == total-1:
			backgroundURI = o.assets.Pick(assets.RoleCTA)
		default:
			backgroundURI = contentSeq.At(contentIdx)
			contentIdx++
		}

		visual := render.Visual{
			BackgroundURI: o.background(backgroundURI),
			FontCSS:       fontCSS,
		}
		html, err := o.engine.LessonSlide(slide, i, total, visual)
		if err != nil {
			return err
		}
		if err := o.renderSlide(ctx, jobID, model.KindLesson, outDir, i, total, html); err != nil {
			return err
		}
	}

	rawDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding lesson document: %w", err)
	}
	return o.writeMetadata(jobID, outDir, model.Metadata{
		Document:      rawDoc,
		OriginalTopic: topic,
		Language:      language,
		CreatedAt:     time.Now(),
	})
}

func (o *Orchestrator) runCheatSheet(ctx context.Context, jobID, topic string) error {
	doc, err := o.ai.GenerateCheatSheet(ctx, topic)
	if err != nil {
		return err
	}
	o.store.Advance(jobID, model.StageContentGenerated)
	o.store.SetTotal(jobID, len(doc.Slides))

	outDir := filepath.Join(o.outputDir, jobID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	fontCSS := o.assets.FontCSS()
	// All slides after the hook share a single shuffled background.
	sharedBackground := o.assets.Shuffle(assets.RoleCheatSheetBackground).At(0)

	total := len(doc.Slides)
	for i, slide := range doc.Slides {
		backgroundURI := sharedBackground
		if i == 0 {
			backgroundURI = o.assets.Pick(assets.RoleCheatSheetHook)
		}

		visual := render.Visual{
			BackgroundURI: o.background(backgroundURI),
			FontCSS:       fontCSS,
		}
		html, err := o.engine.CheatSheetSlide(slide, i, total, visual)
		if err != nil {
			return err
		}
		if err := o.renderSlide(ctx, jobID, model.KindCheatSheet, outDir, i, total, html); err != nil {
			return err
		}
	}

	rawDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding cheat sheet document: %w", err)
	}
	return o.writeMetadata(jobID, outDir, model.Metadata{
		Document:      rawDoc,
		OriginalTopic: topic,
		Language:      model.LanguageKorean,
		Type:          model.KindCheatSheet,
		CreatedAt:     time.Now(),
	})
}

func (o *Orchestrator) runSentenceAnalysis(ctx context.Context, jobID, sentence string) error {
	doc, err := o.ai.GenerateSentenceAnalysis(ctx, sentence)
	if err != nil {
		return err
	}

	finalID := jobID
	if doc.ID != "" {
		finalID = id.ForSentence(doc.ID)
		o.store.Rename(jobID, finalID)
	}
	o.store.Advance(jobID, model.StageContentGenerated)
	o.store.SetTotal(jobID, len(doc.Tokens))

	outDir := filepath.Join(o.outputDir, finalID)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	fontCSS := o.assets.FontCSS()
	total := len(doc.Tokens)
	for i := range doc.Tokens {
		html, err := o.engine.TokenSlide(doc, i, render.Visual{FontCSS: fontCSS})
		if err != nil {
			return err
		}
		if err := o.renderSlide(ctx, jobID, model.KindSentenceAnalysis, outDir, i, total, html); err != nil {
			return err
		}
	}

	topic := doc.Sentence.Translation
	if topic == "" {
		topic = sentence
	}
	rawDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding sentence analysis: %w", err)
	}
	return o.writeMetadata(jobID, outDir, model.Metadata{
		Document:      rawDoc,
		OriginalTopic: topic,
		Language:      model.LanguageKorean,
		Type:          model.KindSentenceAnalysis,
		CreatedAt:     time.Now(),
	})
}

// renderSlide rasterizes one slide and writes it as slide-<n>.png,
// n being 1-based. Slides are written strictly in order so a polling
// client never observes slide N without slide N-1.
func (o *Orchestrator) renderSlide(ctx context.Context, jobID string, kind model.Kind, outDir string, index, total int, html string) error {
	o.store.Rendering(jobID, index+1, total)

	png, err := o.raster.Render(ctx, html)
	if err != nil {
		return fmt.Errorf("slide %d/%d: %w", index+1, total, err)
	}

	target := filepath.Join(outDir, fmt.Sprintf("slide-%d.png", index+1))
	if err := os.WriteFile(target, png, 0o644); err != nil {
		return fmt.Errorf("writing slide %d: %w", index+1, err)
	}

	slidesRendered.WithLabelValues(string(kind)).Inc()
	return nil
}

// writeMetadata persists the metadata sidecar after every slide is on
// disk, making the item visible to the library.
func (o *Orchestrator) writeMetadata(jobID, outDir string, meta model.Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "metadata.json"), data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}

	o.store.Advance(jobID, model.StageMetadataWritten)
	return nil
}
