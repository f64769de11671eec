package assets

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const (
	canvasWidth  = 1080
	canvasHeight = 1350
)

// Placeholder returns a rendered 1080x1350 gradient background as a PNG
// data URI. It is the embedded fallback when a role directory holds no
// images, so even a fallback slide ships with all assets inline. The
// render happens once and is cached.
func (l *Library) Placeholder() string {
	l.mu.RLock()
	cached := l.placeholder
	l.mu.RUnlock()
	if cached != "" {
		return cached
	}

	uri, err := renderGradientPNG()
	if err != nil {
		l.logger.Error("Failed to render placeholder background", zap.Error(err))
		return ""
	}

	l.mu.Lock()
	l.placeholder = uri
	l.mu.Unlock()
	return uri
}

// renderGradientPNG draws the same indigo-to-purple diagonal gradient
// the CSS fallback uses (#667eea to #764ba2).
func renderGradientPNG() (string, error) {
	dc := gg.NewContext(canvasWidth, canvasHeight)
	grad := gg.NewLinearGradient(0, 0, canvasWidth, canvasHeight)
	grad.AddColorStop(0, color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff})
	grad.AddColorStop(1, color.RGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, canvasWidth, canvasHeight)
	dc.Fill()

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
