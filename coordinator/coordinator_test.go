package coordinator

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/dictate/capture"
	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/messaging"
	"github.com/kbukum/dictate/settings"
)

type stubRecorder struct {
	mu       sync.Mutex
	startErr error
	stopErr  error
	buffer   capture.AudioBuffer
	starts   int
	stops    int
}

func (r *stubRecorder) Start(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
	return r.startErr
}

func (r *stubRecorder) Stop(context.Context) (capture.AudioBuffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
	return r.buffer, r.stopErr
}

type stubTranscriber struct {
	text string
	err  error
	// block, when set, holds Transcribe until released.
	block chan struct{}
	// entered is closed once Transcribe has been called.
	entered chan struct{}
}

func (t *stubTranscriber) Transcribe(context.Context, capture.AudioBuffer) (string, error) {
	if t.entered != nil {
		close(t.entered)
	}
	if t.block != nil {
		<-t.block
	}
	return t.text, t.err
}

type stubRefiner struct {
	fn func(text string, style settings.WritingStyle) (string, error)
}

func (r *stubRefiner) Refine(_ context.Context, text string, style settings.WritingStyle) (string, error) {
	return r.fn(text, style)
}

type stubTabs struct {
	tab Tab
	err error
}

func (t *stubTabs) Active(context.Context) (Tab, error) { return t.tab, t.err }

type countingKeepalive struct {
	mu     sync.Mutex
	starts int
	stops  int
}

func (k *countingKeepalive) Start() {
	k.mu.Lock()
	k.starts++
	k.mu.Unlock()
}

func (k *countingKeepalive) Stop() {
	k.mu.Lock()
	k.stops++
	k.mu.Unlock()
}

func (k *countingKeepalive) counts() (int, int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.starts, k.stops
}

// pageRecorder registers as the page handler and collects everything the
// coordinator sends it.
type pageRecorder struct {
	mu       sync.Mutex
	messages []messaging.Message
	insertEr error
}

func (p *pageRecorder) bind(router *messaging.Router, target string) {
	router.Handle(target, func(_ context.Context, msg messaging.Message) (messaging.Message, error) {
		p.mu.Lock()
		p.messages = append(p.messages, msg)
		p.mu.Unlock()
		if msg.Type == messaging.TypeTranscriptionComplete {
			return messaging.Message{}, p.insertEr
		}
		return messaging.Message{}, nil
	})
}

func (p *pageRecorder) types() []messaging.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]messaging.Type, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Type)
	}
	return out
}

func (p *pageRecorder) payload(typ messaging.Type) any {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range p.messages {
		if m.Type == typ {
			return m.Payload
		}
	}
	return nil
}

type fixture struct {
	coord    *Coordinator
	router   *messaging.Router
	recorder *stubRecorder
	page     *pageRecorder
	keep     *countingKeepalive
	store    *settings.MemoryStore
}

func newFixture(t *testing.T, transcriber Transcriber, refiner Refiner) *fixture {
	t.Helper()

	router := messaging.NewRouter()
	page := &pageRecorder{}
	page.bind(router, "page:7")

	recorder := &stubRecorder{buffer: capture.AudioBuffer{Data: []byte("opus"), MIMEType: "audio/webm;codecs=opus"}}
	keep := &countingKeepalive{}
	store := settings.NewMemoryStore()

	coord, err := New(Deps{
		Capture:     recorder,
		Transcriber: transcriber,
		Refiner:     refiner,
		Settings:    store,
		Bus:         router,
		Tabs:        &stubTabs{tab: Tab{ID: 7, URL: "https://example.com/doc"}},
		Keepalive:   keep,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &fixture{coord: coord, router: router, recorder: recorder, page: page, keep: keep, store: store}
}

func waitForState(t *testing.T, c *Coordinator, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("state = %v, want %v", c.State(), want)
}

func TestToggle_FullSessionDeliversTranscript(t *testing.T) {
	fx := newFixture(t, &stubTranscriber{text: "hello world"}, nil)
	ctx := context.Background()

	if err := fx.coord.Toggle(ctx); err != nil {
		t.Fatalf("start toggle: %v", err)
	}
	if got := fx.coord.State(); got != StateRecording {
		t.Fatalf("state = %v, want recording", got)
	}

	if err := fx.coord.Toggle(ctx); err != nil {
		t.Fatalf("stop toggle: %v", err)
	}
	waitForState(t, fx.coord, StateIdle)

	payload, ok := fx.page.payload(messaging.TypeTranscriptionComplete).(messaging.TextPayload)
	if !ok || payload.Text != "hello world" {
		t.Errorf("delivered payload = %#v, want hello world", payload)
	}

	types := fx.page.types()
	wantOrder := []messaging.Type{
		messaging.TypeRecordingStarted,
		messaging.TypeRecordingStopped,
		messaging.TypeTranscriptionComplete,
	}
	// Injector liveness pings are interleaved; check relative order only.
	var seen []messaging.Type
	for _, typ := range types {
		if typ != messaging.TypePing {
			seen = append(seen, typ)
		}
	}
	if len(seen) != len(wantOrder) {
		t.Fatalf("page messages = %v, want %v", seen, wantOrder)
	}
	for i := range wantOrder {
		if seen[i] != wantOrder[i] {
			t.Fatalf("page messages = %v, want %v", seen, wantOrder)
		}
	}

	starts, stops := fx.keep.counts()
	if starts != 1 || stops != 1 {
		t.Errorf("keepalive starts/stops = %d/%d, want 1/1", starts, stops)
	}
	if fx.recorder.starts != 1 || fx.recorder.stops != 1 {
		t.Errorf("recorder starts/stops = %d/%d, want 1/1", fx.recorder.starts, fx.recorder.stops)
	}
}

func TestToggle_IgnoredWhileProcessing(t *testing.T) {
	tr := &stubTranscriber{text: "late", block: make(chan struct{}), entered: make(chan struct{})}
	fx := newFixture(t, tr, nil)
	ctx := context.Background()

	if err := fx.coord.Toggle(ctx); err != nil {
		t.Fatalf("start toggle: %v", err)
	}
	if err := fx.coord.Toggle(ctx); err != nil {
		t.Fatalf("stop toggle: %v", err)
	}
	<-tr.entered

	if err := fx.coord.Toggle(ctx); err != nil {
		t.Fatalf("toggle while processing must be a silent no-op, got %v", err)
	}
	if got := fx.coord.State(); got != StateProcessing {
		t.Fatalf("state = %v, want processing after dropped toggle", got)
	}
	if fx.recorder.starts != 1 {
		t.Errorf("dropped toggle must not start capture, starts = %d", fx.recorder.starts)
	}

	close(tr.block)
	waitForState(t, fx.coord, StateIdle)
}

func TestToggle_RefinementApplied(t *testing.T) {
	refiner := &stubRefiner{fn: func(text string, style settings.WritingStyle) (string, error) {
		if style != settings.StyleProfessional {
			t.Errorf("style = %v, want professional", style)
		}
		return strings.ToUpper(text), nil
	}}
	fx := newFixture(t, &stubTranscriber{text: "hello"}, refiner)
	fx.store.SetLLMKey("sk-test")
	fx.store.SetStyle(settings.StyleProfessional)
	ctx := context.Background()

	_ = fx.coord.Toggle(ctx)
	_ = fx.coord.Toggle(ctx)
	waitForState(t, fx.coord, StateIdle)

	payload, _ := fx.page.payload(messaging.TypeTranscriptionComplete).(messaging.TextPayload)
	if payload.Text != "HELLO" {
		t.Errorf("delivered %q, want refined HELLO", payload.Text)
	}
	if !contains(fx.page.types(), messaging.TypeRefinementStarted) {
		t.Error("page must be told refinement started")
	}
}

func TestToggle_RefinementFailureFallsBack(t *testing.T) {
	refiner := &stubRefiner{fn: func(string, settings.WritingStyle) (string, error) {
		return "", errors.RateLimited("refinement")
	}}
	fx := newFixture(t, &stubTranscriber{text: "raw transcript"}, refiner)
	fx.store.SetLLMKey("sk-test")
	fx.store.SetStyle(settings.StyleCasual)
	ctx := context.Background()

	_ = fx.coord.Toggle(ctx)
	_ = fx.coord.Toggle(ctx)
	waitForState(t, fx.coord, StateIdle)

	payload, _ := fx.page.payload(messaging.TypeTranscriptionComplete).(messaging.TextPayload)
	if payload.Text != "raw transcript" {
		t.Errorf("delivered %q, want the raw transcript", payload.Text)
	}
	if contains(fx.page.types(), messaging.TypeTranscriptionError) {
		t.Error("refinement failure must not surface as a session error")
	}
}

func TestToggle_RefinementSkippedWhenUnconfigured(t *testing.T) {
	called := false
	refiner := &stubRefiner{fn: func(text string, _ settings.WritingStyle) (string, error) {
		called = true
		return text, nil
	}}
	fx := newFixture(t, &stubTranscriber{text: "plain"}, refiner)
	// LLM key set but no style: not configured.
	fx.store.SetLLMKey("sk-test")
	ctx := context.Background()

	_ = fx.coord.Toggle(ctx)
	_ = fx.coord.Toggle(ctx)
	waitForState(t, fx.coord, StateIdle)

	if called {
		t.Error("refiner must not run without a complete refinement config")
	}
	if contains(fx.page.types(), messaging.TypeRefinementStarted) {
		t.Error("page must not be told refinement started")
	}
}

func TestToggle_TranscriptionFailureReportsUserMessage(t *testing.T) {
	fx := newFixture(t, &stubTranscriber{err: errors.Auth("transcription")}, nil)
	ctx := context.Background()

	_ = fx.coord.Toggle(ctx)
	_ = fx.coord.Toggle(ctx)
	waitForState(t, fx.coord, StateIdle)

	payload, ok := fx.page.payload(messaging.TypeTranscriptionError).(messaging.ErrorPayload)
	if !ok || payload.Error == "" {
		t.Fatalf("expected a user-presentable error payload, got %#v", payload)
	}
	if payload.Error != errors.Auth("transcription").Message {
		t.Errorf("payload = %q, want the user message, not the diagnostic", payload.Error)
	}
	if contains(fx.page.types(), messaging.TypeTranscriptionComplete) {
		t.Error("no transcript must be delivered after a failure")
	}
}

func TestToggle_CaptureStartFailureStaysIdle(t *testing.T) {
	fx := newFixture(t, &stubTranscriber{text: "unused"}, nil)
	fx.recorder.startErr = errors.Device(capture.ReasonPermissionDenied.Message(), nil)
	ctx := context.Background()

	if err := fx.coord.Toggle(ctx); !errors.Is(err, errors.ErrCodeDevice) {
		t.Fatalf("expected DEVICE_ERROR, got %v", err)
	}
	if got := fx.coord.State(); got != StateIdle {
		t.Errorf("state = %v, want idle after start failure", got)
	}
	starts, _ := fx.keep.counts()
	if starts != 0 {
		t.Error("keepalive must not start when capture fails")
	}
	if !contains(fx.page.types(), messaging.TypeTranscriptionError) {
		t.Error("start failure must be reported to the page")
	}
}

func TestToggle_UnsupportedPage(t *testing.T) {
	fx := newFixture(t, &stubTranscriber{text: "unused"}, nil)
	fx.coord.deps.Tabs = &stubTabs{tab: Tab{ID: 7, URL: "chrome://settings"}}
	ctx := context.Background()

	if err := fx.coord.Toggle(ctx); !errors.Is(err, errors.ErrCodePageUnsupported) {
		t.Fatalf("expected PAGE_UNSUPPORTED, got %v", err)
	}
	if fx.recorder.starts != 0 {
		t.Error("capture must not start for an unsupported page")
	}
}

func TestEnsureInjector_InstallsWhenAbsent(t *testing.T) {
	router := messaging.NewRouter()
	page := &pageRecorder{}
	recorder := &stubRecorder{buffer: capture.AudioBuffer{Data: []byte("a"), MIMEType: "audio/webm"}}

	installed := 0
	coord, err := New(Deps{
		Capture:     recorder,
		Transcriber: &stubTranscriber{text: "ok"},
		Settings:    settings.NewMemoryStore(),
		Bus:         router,
		Tabs:        &stubTabs{tab: Tab{ID: 3, URL: "https://example.com"}},
		InstallInjector: func(_ context.Context, tabID int) error {
			installed++
			page.bind(router, PageTarget(tabID))
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := coord.Toggle(context.Background()); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if installed != 1 {
		t.Errorf("installer called %d times, want 1", installed)
	}
	if coord.State() != StateRecording {
		t.Errorf("state = %v, want recording", coord.State())
	}
}

func TestEnsureInjector_InstallFailure(t *testing.T) {
	router := messaging.NewRouter()
	coord, err := New(Deps{
		Capture:     &stubRecorder{},
		Transcriber: &stubTranscriber{},
		Settings:    settings.NewMemoryStore(),
		Bus:         router,
		Tabs:        &stubTabs{tab: Tab{ID: 3, URL: "https://example.com"}},
		InstallInjector: func(context.Context, int) error {
			return stderrors.New("scripting blocked")
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := coord.Toggle(context.Background()); !errors.Is(err, errors.ErrCodePageUnsupported) {
		t.Fatalf("expected PAGE_UNSUPPORTED, got %v", err)
	}
	if coord.State() != StateIdle {
		t.Errorf("state = %v, want idle", coord.State())
	}
}

func TestAddressable(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://example.com/doc", true},
		{"http://localhost:8080", true},
		{"chrome://extensions", false},
		{"chrome-extension://abc/options.html", false},
		{"about:blank", false},
		{"file:///tmp/notes.txt", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Addressable(tc.url); got != tc.want {
			t.Errorf("Addressable(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func contains(types []messaging.Type, want messaging.Type) bool {
	for _, typ := range types {
		if typ == want {
			return true
		}
	}
	return false
}
