package capture

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/logger"
)

// Surface is the audio capture surface. One Surface owns the microphone for
// the lifetime of a recording session.
type Surface struct {
	cfg        Config
	device     Device
	newEncoder EncoderFactory
	log        *logger.Logger

	mu        sync.Mutex
	recording bool
	stream    Stream
	encoder   Encoder
	startedAt time.Time
	collected *AudioBuffer

	// fragMu guards fragments separately: the encoder delivers data
	// synchronously from Start/Stop, which already hold mu.
	fragMu    sync.Mutex
	fragments [][]byte
}

// NewSurface creates a capture surface over the given device and encoder
// factory.
func NewSurface(cfg Config, device Device, newEncoder EncoderFactory, log *logger.Logger) *Surface {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Surface{
		cfg:        cfg,
		device:     device,
		newEncoder: newEncoder,
		log:        log.WithComponent("capture"),
	}
}

// Start acquires the microphone and begins encoding. A Start while already
// recording is rejected; the coordinator's single-session invariant makes
// that a programming error rather than a user flow.
func (s *Surface) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recording {
		return errors.Internal(stderrors.New("capture already recording"))
	}

	stream, err := s.device.Acquire(ctx, DefaultConstraints())
	if err != nil {
		var devErr *DeviceError
		if stderrors.As(err, &devErr) {
			return errors.Device(devErr.Reason.Message(), devErr)
		}
		return errors.Device(DeviceReason("").Message(), err)
	}

	s.resetFragments()
	s.collected = nil

	encoder, err := s.newEncoder(stream, EncoderOptions{
		MIMEType:      s.cfg.MIMEType,
		BitsPerSecond: s.cfg.BitsPerSecond,
		OnData:        s.appendFragment,
	})
	if err != nil {
		releaseTracks(stream)
		if stderrors.Is(err, ErrUnsupportedFormat) {
			return errors.UnsupportedFormat(s.cfg.MIMEType)
		}
		return errors.Internal(err)
	}

	if err := encoder.Start(s.cfg.FlushInterval); err != nil {
		releaseTracks(stream)
		return errors.Internal(err)
	}

	s.stream = stream
	s.encoder = encoder
	s.recording = true
	s.startedAt = time.Now()

	s.log.Debug("recording started", logger.Fields(
		logger.FieldMIMEType, encoder.MIMEType(),
	))
	return nil
}

// Stop finalizes encoding, concatenates all flushed fragments and returns
// the buffer with its MIME type. The stream's tracks are released whether
// or not stop succeeds. Calling Stop again after a successful stop returns
// the already-collected buffer; Stop with nothing recorded at all fails
// with NoActiveSession.
func (s *Surface) Stop(ctx context.Context) (AudioBuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording {
		if s.collected != nil {
			return *s.collected, nil
		}
		return AudioBuffer{}, errors.NoActiveSession()
	}

	stream := s.stream
	encoder := s.encoder
	elapsed := time.Since(s.startedAt)

	s.recording = false
	s.stream = nil
	s.encoder = nil

	// The device must come back on every path.
	defer releaseTracks(stream)

	stopErr := encoder.Stop(ctx)

	buf := AudioBuffer{
		Data:     s.takeFragments(),
		MIMEType: encoder.MIMEType(),
	}

	if stopErr != nil && len(buf.Data) == 0 {
		return AudioBuffer{}, errors.Internal(stopErr)
	}
	if stopErr != nil {
		// Partial audio may still be transcribable.
		s.log.Warn("encoder stop failed, returning partial audio",
			logger.ErrorFields("encoder_stop", stopErr))
	}

	s.validateSize(len(buf.Data), elapsed)
	s.collected = &buf

	s.log.Debug("recording stopped", logger.Fields(
		logger.FieldBytes, len(buf.Data),
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	return buf, nil
}

// IsRecording reports whether a recording is in progress.
func (s *Surface) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// Destroy force-releases all device resources. Idempotent.
func (s *Surface) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encoder != nil {
		if err := s.encoder.Stop(context.Background()); err != nil {
			s.log.Warn("encoder stop during destroy failed",
				logger.ErrorFields("encoder_stop", err))
		}
		s.encoder = nil
	}
	if s.stream != nil {
		releaseTracks(s.stream)
		s.stream = nil
	}
	s.recording = false
	s.resetFragments()
	s.collected = nil
}

// appendFragment collects one flushed fragment. Invoked by the encoder.
func (s *Surface) appendFragment(fragment []byte) {
	if len(fragment) == 0 {
		return
	}
	// Copy: the encoder may reuse its buffer.
	frag := make([]byte, len(fragment))
	copy(frag, fragment)

	s.fragMu.Lock()
	s.fragments = append(s.fragments, frag)
	s.fragMu.Unlock()
}

// takeFragments concatenates and clears the collected fragments.
func (s *Surface) takeFragments() []byte {
	s.fragMu.Lock()
	defer s.fragMu.Unlock()

	total := 0
	for _, f := range s.fragments {
		total += len(f)
	}
	out := make([]byte, 0, total)
	for _, f := range s.fragments {
		out = append(out, f...)
	}
	s.fragments = nil
	return out
}

func (s *Surface) resetFragments() {
	s.fragMu.Lock()
	s.fragments = nil
	s.fragMu.Unlock()
}

// validateSize flags likely data loss without failing the stop: the
// collected bytes are checked against a hard floor and against the size
// implied by elapsed duration at the target bitrate.
func (s *Surface) validateSize(actual int, elapsed time.Duration) {
	expected := int(elapsed.Seconds() * float64(s.cfg.BitsPerSecond) / 8)

	switch {
	case actual < s.cfg.MinBytes:
		s.log.Warn("collected audio below minimum size, likely data loss", logger.Fields(
			logger.FieldBytes, actual,
			"min_bytes", s.cfg.MinBytes,
		))
	case expected > 0 && float64(actual) < float64(expected)*s.cfg.MinExpectedFraction:
		s.log.Warn("collected audio well below expected size, likely data loss", logger.Fields(
			logger.FieldBytes, actual,
			"expected_bytes", expected,
		))
	}
}

func releaseTracks(s Stream) {
	if s == nil {
		return
	}
	for _, t := range s.Tracks() {
		t.Stop()
	}
}
