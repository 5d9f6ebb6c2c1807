// Package session implements the translation session controller: it owns the
// source and output text, keeps at most one translation in flight, reveals
// results character by character and serves copy and speak requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/valpere/tlpad/internal"
	"github.com/valpere/tlpad/internal/clipboard"
	"github.com/valpere/tlpad/internal/language"
	"github.com/valpere/tlpad/internal/messages"
	"github.com/valpere/tlpad/internal/reveal"
	"github.com/valpere/tlpad/internal/speech"
	"github.com/valpere/tlpad/internal/status"
	"github.com/valpere/tlpad/internal/translator"
)

type Options struct {
	Service       translator.TranslationService
	ServiceConfig translator.ServiceConfig

	// Resolver maps the "auto" source to a concrete code. Defaults to the
	// fixed English fallback.
	Resolver *language.Resolver

	Messages  *messages.Catalog
	View      View
	Status    status.Display
	Clipboard clipboard.Clipboard
	Speaker   speech.Speaker
	History   Recorder
	Logger    *zap.SugaredLogger

	SourceLang string
	TargetLang string

	MaxChars int

	// RevealInterval paces the reveal; zero or less shows results at once.
	RevealInterval time.Duration

	// StatusWindow is how long a status message stays up; zero means status.DefaultWindow.
	StatusWindow time.Duration
}

type Controller struct {
	svc      translator.TranslationService
	svcCfg   translator.ServiceConfig
	resolver *language.Resolver
	msgs     *messages.Catalog
	view     View
	clip     clipboard.Clipboard
	speaker  speech.Speaker
	history  Recorder
	log      *zap.SugaredLogger
	maxChars int

	revealer *reveal.Revealer
	banner   *status.Banner

	mu    sync.Mutex
	state State

	// revealing is the handle of the reveal allowed to write the output; nil when idle.
	revealing *reveal.Handle

	speechGen  uint64
	speechDone chan struct{}
}

func New(opts Options) *Controller {
	c := &Controller{
		svc:      opts.Service,
		svcCfg:   opts.ServiceConfig,
		resolver: opts.Resolver,
		msgs:     opts.Messages,
		view:     opts.View,
		clip:     opts.Clipboard,
		speaker:  opts.Speaker,
		history:  opts.History,
		log:      opts.Logger,
		maxChars: opts.MaxChars,
		revealer: reveal.New(opts.RevealInterval),
	}

	if c.resolver == nil {
		c.resolver = language.NewResolver(language.DefaultFallback, nil)
	}
	if c.msgs == nil {
		c.msgs = messages.New("en")
	}
	if c.view == nil {
		c.view = nopView{}
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	if c.maxChars <= 0 {
		c.maxChars = DefaultMaxChars
	}

	window := opts.StatusWindow
	if window <= 0 {
		window = status.DefaultWindow
	}
	c.banner = status.New(opts.Status, window)

	sourceLang := opts.SourceLang
	if sourceLang == "" {
		sourceLang = language.Auto
	}
	c.state = State{
		SourceLang: sourceLang,
		TargetLang: opts.TargetLang,
		Output:     c.msgs.T(messages.Placeholder),
	}

	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns the message on the banner, if one is visible.
func (c *Controller) Status() (status.Message, bool) {
	return c.banner.Current()
}

// SetSourceText replaces the source text, truncated to the character limit,
// and resets the output panel to the placeholder.
func (c *Controller) SetSourceText(text string) Counter {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SourceText = truncate(text, c.maxChars)
	c.stopRevealLocked()
	c.state.HasResult = false
	c.state.Translation = ""
	c.setOutputLocked(c.msgs.T(messages.Placeholder))

	counter := c.counterLocked()
	c.view.CounterChanged(counter)
	return counter
}

func (c *Controller) Counter() Counter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counterLocked()
}

func (c *Controller) counterLocked() Counter {
	n := utf8.RuneCountInString(c.state.SourceText)
	return Counter{
		Count: n,
		Limit: c.maxChars,
		Text:  c.msgs.Tf(messages.CharCount, map[string]any{"Count": n, "Limit": c.maxChars}),
	}
}

// SetSourceLang accepts a language code or language.Auto.
func (c *Controller) SetSourceLang(code string) error {
	if err := language.Validate(code); err != nil {
		return err
	}
	if language.IsAuto(code) {
		code = language.Auto
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SourceLang = language.Normalize(code)
	return nil
}

func (c *Controller) SetTargetLang(code string) error {
	if err := language.ValidateTarget(code); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.TargetLang = language.Normalize(code)
	return nil
}

// Submit translates the current source text between the current languages.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	text, src, tgt := c.state.SourceText, c.state.SourceLang, c.state.TargetLang
	c.mu.Unlock()

	return c.translate(ctx, text, src, tgt)
}

// Translate makes text and the given languages the session input, then
// translates it the same way Submit does.
func (c *Controller) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if err := language.Validate(sourceLang); err != nil {
		return "", err
	}
	if err := language.ValidateTarget(targetLang); err != nil {
		return "", err
	}

	if err := c.SetSourceLang(sourceLang); err != nil {
		return "", err
	}
	if err := c.SetTargetLang(targetLang); err != nil {
		return "", err
	}
	c.SetSourceText(text)

	return c.Submit(ctx)
}

func (c *Controller) translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		c.banner.Error(c.msgs.T(messages.EmptyInput))
		return "", ErrEmptyInput
	}

	c.mu.Lock()
	if c.state.Busy {
		c.mu.Unlock()
		c.banner.Error(c.msgs.T(messages.Busy))
		return "", ErrTranslationInProgress
	}
	c.setBusyLocked(true)
	c.stopRevealLocked()
	c.state.HasResult = false
	c.state.Translation = ""
	c.setOutputLocked(c.msgs.T(messages.Translating))
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.setBusyLocked(false)
		c.mu.Unlock()
	}()

	req := translator.TranslateRequest{
		Text:       trimmed,
		SourceLang: c.resolver.ResolveSource(sourceLang, trimmed),
		TargetLang: language.Normalize(targetLang),
	}

	result, err := c.svc.Translate(ctx, c.svcCfg, req)
	if err == nil && result == nil {
		err = fmt.Errorf("%w: empty result", ErrMalformedResponse)
	}
	if err != nil {
		err = classify(err)
		c.log.Warnw("translation failed",
			"service", c.svc.Name(),
			"langpair", req.LangPair(),
			"error", err)

		c.mu.Lock()
		c.setOutputLocked(c.msgs.T(messages.OutputFailed))
		c.mu.Unlock()

		c.banner.Error(c.msgs.T(messages.TranslationFailed))
		return "", err
	}

	c.log.Debugw("translation completed",
		"service", result.ServiceName,
		"langpair", req.LangPair(),
		"latency", result.Latency,
		"chars", utf8.RuneCountInString(result.TranslatedText))

	c.mu.Lock()
	c.state.Translation = result.TranslatedText
	c.state.HasResult = true
	c.setOutputLocked("")
	c.revealing = c.revealer.Start(result.TranslatedText, c.emitReveal)
	c.mu.Unlock()

	c.banner.Success(c.msgs.T(messages.TranslationCompleted))
	c.record(ctx, req, result)

	return result.TranslatedText, nil
}

// classify makes sure every service error matches one of the two service
// error kinds.
func classify(err error) error {
	if errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrNetworkOrServiceFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrNetworkOrServiceFailure, err)
}

func (c *Controller) record(ctx context.Context, req translator.TranslateRequest, result *translator.ServiceResult) {
	if c.history == nil {
		return
	}
	err := c.history.Record(ctx, internal.HistoryEntry{
		SourceText:     req.Text,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
		TranslatedText: result.TranslatedText,
		ServiceName:    result.ServiceName,
		Timestamp:      time.Now(),
	})
	if err != nil {
		c.log.Warnw("failed to record translation history", "error", err)
	}
}

func (c *Controller) emitReveal(h *reveal.Handle, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.revealing != h {
		return
	}
	c.setOutputLocked(prefix)
}

func (c *Controller) stopRevealLocked() {
	if c.revealing == nil {
		return
	}
	c.revealing.Stop()
	c.revealing = nil
}

// Swap exchanges the source and target languages and, when a translation is
// present, the source and output texts.
func (c *Controller) Swap() error {
	c.mu.Lock()

	if language.IsAuto(c.state.SourceLang) {
		c.mu.Unlock()
		c.banner.Error(c.msgs.T(messages.InvalidSwap))
		return ErrInvalidSwap
	}

	c.state.SourceLang, c.state.TargetLang = c.state.TargetLang, c.state.SourceLang

	if c.state.HasResult {
		c.stopRevealLocked()

		previousSource := c.state.SourceText
		c.state.SourceText = truncate(c.state.Translation, c.maxChars)
		if previousSource != "" {
			c.state.Translation = previousSource
			c.setOutputLocked(previousSource)
		} else {
			c.state.Translation = ""
			c.state.HasResult = false
			c.setOutputLocked(c.msgs.T(messages.Placeholder))
		}
		c.view.CounterChanged(c.counterLocked())
	}

	c.mu.Unlock()
	return nil
}

func (c *Controller) result() (text, lang string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Translation, c.state.TargetLang, c.state.HasResult && c.state.Translation != ""
}

// Copy writes the current translation to the clipboard.
func (c *Controller) Copy(ctx context.Context) error {
	text, _, ok := c.result()
	if !ok {
		c.banner.Error(c.msgs.T(messages.NothingToCopy))
		return ErrNothingToCopy
	}

	if c.clip == nil {
		c.banner.Error(c.msgs.T(messages.CopyFailed))
		return fmt.Errorf("%w: %w", ErrClipboard, clipboard.ErrUnavailable)
	}

	if err := c.clip.WriteText(ctx, text); err != nil {
		c.log.Warnw("clipboard write failed", "error", err)
		c.banner.Error(c.msgs.T(messages.CopyFailed))
		return fmt.Errorf("%w: %w", ErrClipboard, err)
	}

	c.banner.Success(c.msgs.T(messages.Copied))
	return nil
}

// Speak reads the current translation aloud in the target language. It
// returns once speech has started; completion is reported on the banner.
func (c *Controller) Speak(ctx context.Context) error {
	text, lang, ok := c.result()
	if !ok {
		c.banner.Error(c.msgs.T(messages.NothingToSpeak))
		return ErrNothingToSpeak
	}

	if c.speaker == nil || !c.speaker.Available() {
		c.banner.Error(c.msgs.T(messages.SpeechUnsupported))
		return ErrUnsupportedPlatform
	}

	// Supersede the running utterance before cancelling it so its
	// completion is ignored.
	c.mu.Lock()
	c.speechGen++
	gen := c.speechGen
	c.setSpeakingLocked(false)
	c.mu.Unlock()

	c.speaker.Cancel()

	done, err := c.speaker.Speak(ctx, speech.NewUtterance(text, lang))
	if err != nil {
		if errors.Is(err, speech.ErrUnsupported) {
			c.banner.Error(c.msgs.T(messages.SpeechUnsupported))
			return ErrUnsupportedPlatform
		}
		c.log.Warnw("speech failed to start", "error", err)
		c.banner.Error(c.msgs.T(messages.SpeechFailed))
		return fmt.Errorf("speech failed: %w", err)
	}

	c.mu.Lock()
	finished := make(chan struct{})
	c.speechDone = finished
	if gen == c.speechGen {
		c.setSpeakingLocked(true)
	}
	c.mu.Unlock()

	c.banner.Success(c.msgs.T(messages.Speaking))

	go c.awaitSpeech(gen, done, finished)
	return nil
}

func (c *Controller) awaitSpeech(gen uint64, done <-chan error, finished chan struct{}) {
	defer close(finished)

	err := <-done

	c.mu.Lock()
	current := gen == c.speechGen
	if current {
		c.setSpeakingLocked(false)
	}
	c.mu.Unlock()

	// A newer utterance owns the marker and the banner.
	if !current {
		return
	}

	if err != nil {
		c.log.Warnw("speech failed", "error", err)
		c.banner.Error(c.msgs.T(messages.SpeechFailed))
		return
	}
	c.banner.Success(c.msgs.T(messages.SpeechCompleted))
}

// Wait blocks until the running reveal and speech, if any, have finished.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	h := c.revealing
	speechDone := c.speechDone
	c.mu.Unlock()

	if h != nil {
		select {
		case <-h.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if speechDone != nil {
		select {
		case <-speechDone:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close stops the reveal, any speech and the status timer.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopRevealLocked()
	c.mu.Unlock()

	if c.speaker != nil {
		c.speaker.Cancel()
	}
	c.banner.Close()
}

func (c *Controller) setOutputLocked(text string) {
	c.state.Output = text
	c.view.OutputChanged(text)
}

func (c *Controller) setBusyLocked(busy bool) {
	if c.state.Busy == busy {
		return
	}
	c.state.Busy = busy
	c.view.BusyChanged(busy)
}

func (c *Controller) setSpeakingLocked(active bool) {
	if c.state.Speaking == active {
		return
	}
	c.state.Speaking = active
	c.view.SpeakingChanged(active)
}
