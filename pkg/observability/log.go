package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug lines to a
// charmbracelet logger. The CLI registers it under --verbose.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Register installs h as the render, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnRenderStart(_ context.Context, scene string, formats []string) {
	h.Logger.Debug("render start", "scene", scene, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, scene string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "scene", scene, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("render done", "scene", scene, "formats", formats, "duration", d)
}

func (h *LogHooks) OnFrame(_ context.Context, scene string, frame int, d time.Duration) {
	h.Logger.Debug("frame", "scene", scene, "frame", frame, "duration", d)
}

func (h *LogHooks) OnTool(_ context.Context, tool string, d time.Duration, err error) {
	h.Logger.Debug("external tool", "tool", tool, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
