package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lesson-server/internal/model"
	"lesson-server/internal/render"
)

const viewportMeta = `<meta name="viewport" content="width=device-width, initial-scale=1" />`

// fitScript scales the fixed 1080x1350 canvas down to the embedding
// iframe so previews show without scrollbars.
const fitScript = `
<script>(function(){
  function fit(){
    var targetW=1080, targetH=1350;
    var el=document.body.querySelector('div');
    if(!el) return;
    var scale=Math.min(window.innerWidth/targetW, window.innerHeight/targetH);
    el.style.transformOrigin='center center';
    el.style.transform='scale('+scale+')';
    el.style.width=targetW+'px';
    el.style.height=targetH+'px';
    document.body.style.margin='0';
    document.body.style.padding='0';
    document.body.style.overflow='hidden';
    document.documentElement.style.overflow='hidden';
    document.body.style.display='flex';
    document.body.style.alignItems='center';
    document.body.style.justifyContent='center';
    document.body.style.background='transparent';
    document.body.style.height='100vh';
  }
  window.addEventListener('resize', fit);
  fit();
})();</script>`

// injectPreviewChrome adds the viewport meta and fit script to a slide
// document so it scales inside an iframe.
func injectPreviewChrome(html string) string {
	html = strings.Replace(html, "<head>", "<head>"+viewportMeta, 1)
	return strings.Replace(html, "</body>", fitScript+"</body>", 1)
}

type sentencePreviewRequest struct {
	Analysis *model.SentenceAnalysisDocument `json:"analysis"`
	Index    int                             `json:"index"`
}

// previewSentenceAnalysis renders one slide of a caller-supplied
// analysis document without touching the disk or the AI. Used by the
// editing UI for live feedback.
func (h *Handler) previewSentenceAnalysis(c *gin.Context) {
	var req sentencePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Analysis == nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "Missing analysis JSON"})
		return
	}

	if len(req.Analysis.Tokens) == 0 {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<html><body>No slides</body></html>"))
		return
	}

	index := req.Index
	if index < 0 {
		index = 0
	}
	if index > len(req.Analysis.Tokens)-1 {
		index = len(req.Analysis.Tokens) - 1
	}

	html, err := h.engine.TokenSlide(req.Analysis, index, render.Visual{FontCSS: h.assets.FontCSS()})
	if err != nil {
		h.logger.Error("preview render failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Error: "Failed to render preview"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(injectPreviewChrome(html)))
}

// previewSandbox renders a free-form sandbox slide from the request
// body.
func (h *Handler) previewSandbox(c *gin.Context) {
	var data render.SandboxData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(data.Headline) == "" {
		c.JSON(http.StatusBadRequest, APIError{Error: "Missing headline"})
		return
	}

	html, err := h.engine.Sandbox(data, h.assets.FontCSS())
	if err != nil {
		h.logger.Error("sandbox render failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Error: "Failed to render preview"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(injectPreviewChrome(html)))
}
