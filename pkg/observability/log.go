package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports layout, pipeline and cache events as debug log lines.
// The CLI installs it when running with --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

var (
	_ LayoutHooks   = (*LogHooks)(nil)
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)

func (h *LogHooks) OnPassStart(_ context.Context, root string, boxes int) {
	h.logger.Debug("layout pass", "root", root, "boxes", boxes)
}

func (h *LogHooks) OnPassComplete(_ context.Context, root string, placed int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout pass failed", "root", root, "err", err)
		return
	}
	h.logger.Debug("layout pass done", "root", root, "placed", placed, "took", d)
}

func (h *LogHooks) OnDecodeStart(_ context.Context, format string, size int) {
	h.logger.Debug("decoding document", "format", format, "bytes", size)
}

func (h *LogHooks) OnDecodeComplete(_ context.Context, format string, boxes int, d time.Duration, err error) {
	h.logger.Debug("decoded document", "format", format, "boxes", boxes, "took", d, "err", err)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, name string, boxes int) {
	h.logger.Debug("layout", "scene", name, "boxes", boxes)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, name string, d time.Duration, err error) {
	h.logger.Debug("layout complete", "scene", name, "took", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render complete", "formats", formats, "took", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
