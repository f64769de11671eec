package rasterizer

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"lesson-server/internal/config"
	"lesson-server/internal/model"
)

const (
	canvasWidth  = 1080
	canvasHeight = 1350
)

// Rasterizer converts a standalone HTML document into a PNG image.
type Rasterizer interface {
	Render(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Chrome drives a headless browser through the DevTools protocol. A
// single browser process is shared for the lifetime of the server;
// each Render call opens a fresh tab so documents never see each
// other's state. Concurrent renders are capped by a weighted
// semaphore.
type Chrome struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	sem         *semaphore.Weighted
	timeout     time.Duration
	logger      *zap.Logger
}

func NewChrome(cfg config.RasterizerConfig, logger *zap.Logger) (*Chrome, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("force-device-scale-factor", "1"),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	logger.Info("rasterizer initialized",
		zap.Int64("concurrency", concurrency),
		zap.Duration("timeout", cfg.Timeout),
	)

	return &Chrome{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		sem:         semaphore.NewWeighted(concurrency),
		timeout:     cfg.Timeout,
		logger:      logger,
	}, nil
}

// Render loads html into a new tab sized to the slide canvas and
// captures it as a PNG. The result is checked to be exactly
// 1080x1350 before being returned.
func (c *Chrome) Render(ctx context.Context, html string) ([]byte, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: acquiring render slot: %v", model.ErrRasterizationFailed, err)
	}
	defer c.sem.Release(1)

	tabCtx, cancelTab := chromedp.NewContext(c.allocCtx)
	defer cancelTab()

	renderCtx := tabCtx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(tabCtx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	var buf []byte
	err := chromedp.Run(renderCtx,
		chromedp.EmulateViewport(canvasWidth, canvasHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRasterizationFailed, err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding screenshot: %v", model.ErrRasterizationFailed, err)
	}
	if cfg.Width != canvasWidth || cfg.Height != canvasHeight {
		return nil, fmt.Errorf("%w: screenshot is %dx%d, want %dx%d",
			model.ErrRasterizationFailed, cfg.Width, cfg.Height, canvasWidth, canvasHeight)
	}

	c.logger.Debug("slide rendered",
		zap.Int("bytes", len(buf)),
		zap.Duration("took", time.Since(started)),
	)
	return buf, nil
}

// Close shuts down the shared browser process.
func (c *Chrome) Close() error {
	c.allocCancel()
	return nil
}
