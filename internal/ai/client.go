package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"lesson-server/internal/config"
	"lesson-server/internal/model"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_server_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "kind", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lesson_server_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model", "kind"},
	)
	aiTotalTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lesson_server_ai_total_tokens",
			Help:    "Histogram of total token counts (prompt + completion).",
			Buckets: prometheus.LinearBuckets(350, 350, 20),
		},
		[]string{"model", "kind"},
	)
)

// Client generates structured lesson content. Implementations must
// return fully validated documents or an error wrapping
// model.ErrContentGenerationFailed / model.ErrInvalidDocument.
type Client interface {
	GenerateLesson(ctx context.Context, topic string, language model.Language) (*model.LessonDocument, error)
	GenerateCheatSheet(ctx context.Context, topic string) (*model.CheatSheetDocument, error)
	GenerateSentenceAnalysis(ctx context.Context, sentence string) (*model.SentenceAnalysisDocument, error)
}

type openAIClient struct {
	client  *openaigo.Client
	model   string
	prompts *PromptProvider
	cfg     config.AIConfig
	logger  *zap.Logger
}

// NewClient builds the OpenAI-backed content generator.
func NewClient(cfg config.AIConfig, prompts *PromptProvider, logger *zap.Logger) Client {
	clientCfg := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &openAIClient{
		client:  openaigo.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		prompts: prompts,
		cfg:     cfg,
		logger:  logger.Named("AIClient"),
	}
}

func (c *openAIClient) GenerateLesson(ctx context.Context, topic string, language model.Language) (*model.LessonDocument, error) {
	raw, err := c.generateJSON(ctx, string(model.KindLesson), PromptLesson, map[string]string{
		"TOPIC":         topic,
		"LANGUAGE_NAME": language.Name(),
	})
	if err != nil {
		return nil, err
	}
	var doc model.LessonDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse lesson JSON: %v", model.ErrContentGenerationFailed, err)
	}
	if err := ValidateLesson(&doc, c.logger); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *openAIClient) GenerateCheatSheet(ctx context.Context, topic string) (*model.CheatSheetDocument, error) {
	raw, err := c.generateJSON(ctx, string(model.KindCheatSheet), PromptCheatSheet, map[string]string{
		"TOPIC": topic,
	})
	if err != nil {
		return nil, err
	}
	var doc model.CheatSheetDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse cheat sheet JSON: %v", model.ErrContentGenerationFailed, err)
	}
	if err := ValidateCheatSheet(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *openAIClient) GenerateSentenceAnalysis(ctx context.Context, sentence string) (*model.SentenceAnalysisDocument, error) {
	raw, err := c.generateJSON(ctx, string(model.KindSentenceAnalysis), PromptSentenceAnalysis, map[string]string{
		"SENTENCE": sentence,
	})
	if err != nil {
		return nil, err
	}
	var doc model.SentenceAnalysisDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse sentence analysis JSON: %v", model.ErrContentGenerationFailed, err)
	}
	if err := ValidateSentenceAnalysis(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// generateJSON runs one prompt through the chat API with bounded
// retries and returns the extracted JSON object bytes.
func (c *openAIClient) generateJSON(ctx context.Context, kind, promptKey string, placeholders map[string]string) ([]byte, error) {
	prompt, err := c.prompts.Get(promptKey, placeholders)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrContentGenerationFailed, err)
	}

	log := c.logger.With(zap.String("kind", kind), zap.String("model", c.model))

	var lastErr error
	attempts := c.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			delay := c.cfg.BaseRetryDelay * time.Duration(attempt-1)
			log.Warn("Retrying AI request", zap.Int("attempt", attempt), zap.Duration("delay", delay))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", model.ErrContentGenerationFailed, ctx.Err())
			}
		}

		content, err := c.complete(ctx, kind, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		jsonText, err := ExtractJSON(content)
		if err != nil {
			log.Warn("AI response contained no JSON object", zap.Int("attempt", attempt), zap.Int("response_len", len(content)))
			lastErr = err
			continue
		}
		return []byte(jsonText), nil
	}
	return nil, lastErr
}

func (c *openAIClient) complete(ctx context.Context, kind, prompt string) (string, error) {
	callCtx := ctx
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	resp, err := c.client.CreateChatCompletion(callCtx, openaigo.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	duration := time.Since(startTime)

	if err != nil {
		c.logger.Error("AI API request failed", zap.String("kind", kind), zap.Duration("duration", duration), zap.Error(err))
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "kind": kind, "status": "error"}).Inc()
		return "", fmt.Errorf("%w: %v", model.ErrContentGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "kind": kind, "status": "error_empty_response"}).Inc()
		return "", fmt.Errorf("%w: empty response", model.ErrContentGenerationFailed)
	}

	content := resp.Choices[0].Message.Content
	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "kind": kind, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model, "kind": kind}).Observe(duration.Seconds())

	totalTokens := resp.Usage.TotalTokens
	if totalTokens == 0 {
		// Some OpenAI-compatible gateways omit usage; estimate locally.
		if tke, tkErr := tiktoken.EncodingForModel(c.model); tkErr == nil {
			totalTokens = len(tke.Encode(prompt, nil, nil)) + len(tke.Encode(content, nil, nil))
		}
	}
	if totalTokens > 0 {
		aiTotalTokens.With(prometheus.Labels{"model": c.model, "kind": kind}).Observe(float64(totalTokens))
	}

	c.logger.Info("AI response received",
		zap.String("kind", kind),
		zap.Duration("duration", duration),
		zap.Int("response_len", len(content)),
		zap.Int("total_tokens", totalTokens),
	)
	return content, nil
}
