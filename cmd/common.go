/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/valpere/tlpad/internal/cache"
	"github.com/valpere/tlpad/internal/clipboard"
	"github.com/valpere/tlpad/internal/config"
	"github.com/valpere/tlpad/internal/detector"
	"github.com/valpere/tlpad/internal/language"
	"github.com/valpere/tlpad/internal/messages"
	"github.com/valpere/tlpad/internal/session"
	"github.com/valpere/tlpad/internal/speech"
	"github.com/valpere/tlpad/internal/status"
	"github.com/valpere/tlpad/internal/store"
	"github.com/valpere/tlpad/internal/translator"
)

// buildService constructs the configured translation service, wrapped in the
// configured cache. The returned close func releases the cache connection.
func buildService(ctx context.Context, cfg *config.Config) (translator.TranslationService, func(), error) {
	var svc translator.TranslationService

	switch cfg.Service {
	case config.ServiceGoogle:
		svc = translator.NewGoogleService(cfg.Google.Credentials)
	case config.ServiceMyMemory:
		svc = translator.NewMyMemoryService(cfg.MyMemory.Email, cfg.MyMemory.BaseURL, cfg.Timeout)
	default:
		return nil, nil, fmt.Errorf("unknown service: %s", cfg.Service)
	}

	noop := func() {}

	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return translator.NewCachedService(svc, cache.NewInMemoryCache(cfg.Cache.TTL)), noop, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:       cfg.Cache.RedisURL,
			TTL:       cfg.Cache.TTL,
			KeyPrefix: cfg.Cache.KeyPrefix,
		})
		if err != nil {
			logger.Warnw("redis cache unavailable, translating without cache", "error", err)
			return svc, noop, nil
		}
		return translator.NewCachedService(svc, rc), func() { _ = rc.Close() }, nil
	default:
		return svc, noop, nil
	}
}

// openHistory returns nil when history is disabled.
func openHistory(cfg *config.Config) (*store.Store, error) {
	if noHistory, _ := rootCmd.PersistentFlags().GetBool("no-history"); noHistory || !cfg.History.Enabled {
		return nil, nil
	}
	db, err := store.New(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return db, nil
}

func newResolver(cfg *config.Config) *language.Resolver {
	if !cfg.DetectSource {
		return language.NewResolver(language.DefaultFallback, nil)
	}
	return language.NewResolver(language.DefaultFallback, detector.NewFor(language.Supported))
}

type controllerOptions struct {
	view           session.View
	display        status.Display
	revealInterval time.Duration
}

// newController wires a session controller from the loaded config. The
// returned close func stops the controller and releases every resource it
// opened.
func newController(ctx context.Context, cfg *config.Config, opts controllerOptions) (*session.Controller, func(), error) {
	svc, closeSvc, err := buildService(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	db, err := openHistory(cfg)
	if err != nil {
		closeSvc()
		return nil, nil, err
	}

	sessionOpts := session.Options{
		Service:        svc,
		ServiceConfig:  cfg.ServiceConfig(),
		Resolver:       newResolver(cfg),
		Messages:       messages.New(cfg.Locale),
		View:           opts.view,
		Status:         opts.display,
		Clipboard:      clipboard.NewSystem(),
		Speaker:        speech.NewCommandSpeaker(cfg.Speech.Command),
		Logger:         logger,
		SourceLang:     cfg.SourceLang,
		TargetLang:     cfg.TargetLang,
		MaxChars:       cfg.MaxChars,
		RevealInterval: opts.revealInterval,
		StatusWindow:   cfg.StatusWindow,
	}
	// A nil *store.Store must not become a non-nil Recorder.
	if db != nil {
		sessionOpts.History = db
	}

	ctrl := session.New(sessionOpts)

	closeAll := func() {
		ctrl.Close()
		closeSvc()
		if db != nil {
			if err := db.Close(); err != nil {
				logger.Warnw("failed to close history", "error", err)
			}
		}
	}
	return ctrl, closeAll, nil
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
