package coordinator

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/kbukum/dictate/capture"
	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/logger"
	"github.com/kbukum/dictate/messaging"
	"github.com/kbukum/dictate/metrics"
	"github.com/kbukum/dictate/settings"
)

// Recorder is the capture collaborator.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (capture.AudioBuffer, error)
}

// Transcriber converts captured audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio capture.AudioBuffer) (string, error)
}

// Refiner rewrites a transcript in a writing style.
type Refiner interface {
	Refine(ctx context.Context, text string, style settings.WritingStyle) (string, error)
}

// Tab describes the browser tab a session targets.
type Tab struct {
	ID  int
	URL string
}

// Tabs resolves the user's active tab.
type Tabs interface {
	Active(ctx context.Context) (Tab, error)
}

// InjectorInstaller loads the page-side injector into a tab. Called when
// the liveness probe finds no receiver.
type InjectorInstaller func(ctx context.Context, tabID int) error

// Deps are the coordinator's collaborators.
type Deps struct {
	Capture         Recorder
	Transcriber     Transcriber
	Refiner         Refiner
	Settings        settings.Store
	Bus             messaging.Bus
	Tabs            Tabs
	InstallInjector InjectorInstaller
	Keepalive       Keepalive
	Log             *logger.Logger
	Metrics         *metrics.Metrics
}

// Coordinator is the single process-wide dictation state machine.
type Coordinator struct {
	deps Deps
	log  *logger.Logger

	mu      sync.Mutex
	state   State
	session *Session
}

// New creates a coordinator. Capture, Transcriber, Settings, Bus and Tabs
// are required; Refiner, Keepalive, Log and Metrics are optional.
func New(deps Deps) (*Coordinator, error) {
	if deps.Capture == nil {
		return nil, stderrors.New("coordinator: capture is required")
	}
	if deps.Transcriber == nil {
		return nil, stderrors.New("coordinator: transcriber is required")
	}
	if deps.Settings == nil {
		return nil, stderrors.New("coordinator: settings store is required")
	}
	if deps.Bus == nil {
		return nil, stderrors.New("coordinator: bus is required")
	}
	if deps.Tabs == nil {
		return nil, stderrors.New("coordinator: tabs resolver is required")
	}
	if deps.Keepalive == nil {
		deps.Keepalive = NopKeepalive{}
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return &Coordinator{
		deps:  deps,
		log:   deps.Log.WithComponent("coordinator"),
		state: StateIdle,
	}, nil
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle is the single user entry point. From idle it starts a recording,
// from recording it stops and runs the pipeline, while the pipeline runs
// it is dropped.
func (c *Coordinator) Toggle(ctx context.Context) error {
	c.mu.Lock()

	switch c.state {
	case StateIdle:
		err := c.startLocked(ctx)
		c.mu.Unlock()
		return err

	case StateRecording:
		err := c.stopLocked(ctx)
		c.mu.Unlock()
		return err

	default:
		state := c.state
		c.mu.Unlock()
		c.log.Debug("toggle ignored", logger.Fields(logger.FieldState, string(state)))
		c.deps.Metrics.ToggleIgnored()
		return nil
	}
}

// startLocked begins a session. Caller holds c.mu; state is idle.
func (c *Coordinator) startLocked(ctx context.Context) error {
	tab, err := c.deps.Tabs.Active(ctx)
	if err != nil {
		return errors.Internal(err)
	}
	if !Addressable(tab.URL) {
		return errors.PageUnsupported(tab.URL)
	}

	target := PageTarget(tab.ID)
	if err := c.ensureInjector(ctx, tab.ID, target); err != nil {
		return err
	}

	if err := c.deps.Capture.Start(ctx); err != nil {
		c.notify(target, messaging.TypeTranscriptionError, messaging.ErrorPayload{Error: errors.UserMessage(err)})
		return err
	}

	c.session = newSession(tab.ID)
	c.state = StateRecording
	c.deps.Keepalive.Start()
	c.deps.Metrics.SessionStarted()

	c.log.Info("recording started", logger.Fields(
		logger.FieldSessionID, c.session.ID.String(),
		logger.FieldTabID, tab.ID,
	))
	c.notify(target, messaging.TypeRecordingStarted, nil)
	return nil
}

// stopLocked ends the recording and hands the audio to the pipeline.
// Caller holds c.mu; state is recording.
func (c *Coordinator) stopLocked(ctx context.Context) error {
	sess := c.session
	c.deps.Keepalive.Stop()

	audio, err := c.deps.Capture.Stop(ctx)
	if err != nil {
		c.failLocked(sess, err)
		return err
	}

	c.state = StateProcessing
	c.deps.Metrics.ObserveAudioBytes(len(audio.Data))
	c.log.Info("recording stopped", logger.Fields(
		logger.FieldSessionID, sess.ID.String(),
		logger.FieldBytes, len(audio.Data),
		logger.FieldMIMEType, audio.MIMEType,
	))
	c.notify(sess.Target(), messaging.TypeRecordingStopped, nil)

	// The pipeline outlives the toggle call. It must not be cancelled when
	// the caller's context ends with the user gesture.
	go c.runPipeline(context.WithoutCancel(ctx), sess, audio)
	return nil
}

// runPipeline transcribes, optionally refines and delivers. Strictly
// sequential; runs outside the lock, only state transitions take it.
func (c *Coordinator) runPipeline(ctx context.Context, sess *Session, audio capture.AudioBuffer) {
	log := c.log.WithFields(logger.Fields(logger.FieldSessionID, sess.ID.String()))

	started := time.Now()
	text, err := c.deps.Transcriber.Transcribe(ctx, audio)
	c.deps.Metrics.ObserveStage("transcription", time.Since(started))
	if err != nil {
		c.fail(sess, err)
		return
	}

	text = c.refine(ctx, sess, text, log)

	_, err = c.deps.Bus.Request(ctx, messaging.Message{
		Type:    messaging.TypeTranscriptionComplete,
		Target:  sess.Target(),
		Payload: messaging.TextPayload{Text: text},
	})
	if err != nil {
		log.Warn("transcript not delivered", logger.ErrorFields("deliver", err))
		c.deps.Metrics.DeliveryFailure()
		c.deps.Metrics.SessionFailed(string(errors.CodeOf(err)))
	} else {
		c.deps.Metrics.SessionCompleted()
		log.Info("transcript delivered", logger.Fields(logger.FieldBytes, len(text)))
	}

	c.reset(sess)
}

// refine runs the optional refinement stage. Failure is non-fatal: the
// raw transcript is returned and the fallback is logged.
func (c *Coordinator) refine(ctx context.Context, sess *Session, text string, log *logger.Logger) string {
	ref := c.deps.Settings.Refinement()
	if !ref.Configured() || c.deps.Refiner == nil {
		return text
	}

	c.setState(StateRefining)
	c.notify(sess.Target(), messaging.TypeRefinementStarted, nil)

	started := time.Now()
	refined, err := c.deps.Refiner.Refine(ctx, text, ref.Style)
	c.deps.Metrics.ObserveStage("refinement", time.Since(started))
	if err != nil {
		log.Warn("refinement failed, delivering raw transcript", logger.ErrorFields("refine", err))
		c.deps.Metrics.RefinementFallback()
		return text
	}
	return refined
}

// fail reports an unrecoverable pipeline error to the page and releases
// the session.
func (c *Coordinator) fail(sess *Session, err error) {
	c.mu.Lock()
	c.failLocked(sess, err)
	c.mu.Unlock()
}

func (c *Coordinator) failLocked(sess *Session, err error) {
	code := errors.CodeOf(err)
	c.log.Error("session failed", logger.Fields(
		logger.FieldSessionID, sess.ID.String(),
		logger.FieldError, err.Error(),
		"code", string(code),
	))
	c.notify(sess.Target(), messaging.TypeTranscriptionError, messaging.ErrorPayload{Error: errors.UserMessage(err)})
	c.deps.Metrics.SessionFailed(string(code))
	c.state = StateIdle
	c.session = nil
}

// reset returns to idle after a completed pipeline.
func (c *Coordinator) reset(sess *Session) {
	c.mu.Lock()
	if c.session == sess {
		c.session = nil
	}
	c.state = StateIdle
	c.mu.Unlock()
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// ensureInjector checks the page context is listening and installs it when
// it is not.
func (c *Coordinator) ensureInjector(ctx context.Context, tabID int, target string) error {
	ping := messaging.Message{Type: messaging.TypePing, Target: target}

	_, err := c.deps.Bus.Request(ctx, ping)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, messaging.ErrNoReceiver) {
		return errors.Internal(err)
	}

	if c.deps.InstallInjector == nil {
		return errors.PageUnsupported(target)
	}
	c.log.Debug("injector absent, installing", logger.Fields(logger.FieldTabID, tabID))
	if err := c.deps.InstallInjector(ctx, tabID); err != nil {
		return errors.PageUnsupported(target).WithCause(err)
	}
	if _, err := c.deps.Bus.Request(ctx, ping); err != nil {
		return errors.PageUnsupported(target).WithCause(err)
	}
	return nil
}

// notify posts a fire-and-forget page message. Delivery failure is logged,
// never fatal.
func (c *Coordinator) notify(target string, typ messaging.Type, payload any) {
	err := c.deps.Bus.Post(context.Background(), messaging.Message{
		Type:    typ,
		Target:  target,
		Payload: payload,
	})
	if err != nil && !stderrors.Is(err, messaging.ErrNoReceiver) {
		c.log.Warn("notification not delivered", logger.Fields(
			logger.FieldTarget, target,
			"type", string(typ),
			logger.FieldError, err.Error(),
		))
	}
}

// Addressable reports whether an injector can run in a page with this
// URL. Browser UI, extension and store pages cannot host page scripts.
func Addressable(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
