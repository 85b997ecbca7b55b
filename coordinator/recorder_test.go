package coordinator

import (
	"context"
	"testing"

	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/messaging"
)

func TestBusRecorder_RoundTrip(t *testing.T) {
	router := messaging.NewRouter()
	recording := false
	router.Handle("capture", func(_ context.Context, msg messaging.Message) (messaging.Message, error) {
		switch msg.Type {
		case messaging.TypeStartRecording:
			recording = true
			return messaging.Message{Type: messaging.TypeRecordingStarted}, nil
		case messaging.TypeStopRecording:
			recording = false
			return messaging.Message{
				Type: messaging.TypeStopRecording,
				Payload: messaging.StopRecordingResult{
					OK:       true,
					Audio:    []byte("audio"),
					MIMEType: "audio/webm;codecs=opus",
				},
			}, nil
		}
		return messaging.Message{}, nil
	})

	r := NewBusRecorder(router, "capture")
	ctx := context.Background()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !recording {
		t.Fatal("start message not delivered")
	}

	buf, err := r.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if string(buf.Data) != "audio" || buf.MIMEType != "audio/webm;codecs=opus" {
		t.Errorf("buffer = %+v", buf)
	}
}

func TestBusRecorder_StopErrorRebuildsTypedError(t *testing.T) {
	router := messaging.NewRouter()
	router.Handle("capture", func(_ context.Context, msg messaging.Message) (messaging.Message, error) {
		return messaging.Message{
			Type: messaging.TypeStopRecording,
			Payload: messaging.StopRecordingResult{
				Code:  string(errors.ErrCodeNoActiveSession),
				Error: "No active recording to stop.",
			},
		}, nil
	})

	_, err := NewBusRecorder(router, "capture").Stop(context.Background())
	if !errors.Is(err, errors.ErrCodeNoActiveSession) {
		t.Fatalf("expected NO_ACTIVE_SESSION, got %v", err)
	}
}

func TestBusRecorder_MissingContext(t *testing.T) {
	r := NewBusRecorder(messaging.NewRouter(), "capture")
	if err := r.Start(context.Background()); err == nil {
		t.Fatal("expected error when capture context is absent")
	}
}
