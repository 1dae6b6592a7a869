package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line. It implements all hook
// interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for pipeline, cache and HTTP events.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnDecodeStart(_ context.Context, path string) {
	h.logger.Debug("decode start", "path", path)
}

func (h *LogHooks) OnDecodeComplete(_ context.Context, path string, cells int, d time.Duration, err error) {
	h.logger.Debug("decode done", "path", path, "cells", cells, "duration", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, cells int) {
	h.logger.Debug("render start", "cells", cells)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, primitives int, d time.Duration, err error) {
	h.logger.Debug("render done", "primitives", primitives, "duration", d, "err", err)
}

func (h *LogHooks) OnConvertComplete(_ context.Context, formats []string, layers int, d time.Duration, err error) {
	h.logger.Debug("convert done", "formats", formats, "layers", layers, "duration", d, "err", err)
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

func (h *LogHooks) OnRequest(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
