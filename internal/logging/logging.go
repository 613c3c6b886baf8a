// Package logging owns the process-wide structured logger.
//
// The logger is stored behind an atomic so hot paths can fetch it with L()
// without locking, and reconfiguration (flags, env, scene load) can swap it
// at any time. Warp inversion warnings route through here unless a caller
// installs its own slog.Logger on the transform.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

// Options selects the handler for the process logger.
type Options struct {
	Level string // debug | info | warn | error (default info)
	JSON  bool   // JSON handler instead of text
	Quiet bool   // drop everything, used by -quiet runs
}

var def atomic.Value

func init() {
	cfg := &slog.HandlerOptions{Level: slog.LevelInfo}
	h := slog.NewTextHandler(os.Stderr, cfg)
	def.Store(slog.New(h))
}

// discardHandler matches the contract of slog.DiscardHandler, which the
// local toolchain predates: Enabled reports false for every level and all
// records are dropped.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Configure replaces the process logger. Safe to call concurrently with L.
func Configure(opts Options) {
	if opts.Quiet {
		def.Store(slog.New(discardHandler{}))
		return
	}
	cfg := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(os.Stderr, cfg)
	} else {
		h = slog.NewTextHandler(os.Stderr, cfg)
	}
	def.Store(slog.New(h))
}

func parseLevel(s string) slog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the current process logger.
func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}

// InitFromEnv configures the logger from NWARP_LOG_LEVEL and
// NWARP_LOG_JSON. Unset or malformed values fall back to the defaults.
func InitFromEnv() {
	lvl := os.Getenv("NWARP_LOG_LEVEL")
	jsonStr := os.Getenv("NWARP_LOG_JSON")
	json := false
	if b, err := strconv.ParseBool(strings.TrimSpace(jsonStr)); err == nil {
		json = b
	}
	Configure(Options{Level: lvl, JSON: json})
}
