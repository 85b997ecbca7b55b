package messaging

import (
	"context"
	"errors"
	"testing"
)

func TestRouter_RequestReply(t *testing.T) {
	r := NewRouter()
	r.Handle("capture", func(_ context.Context, msg Message) (Message, error) {
		if msg.Type != TypeStopRecording {
			t.Errorf("unexpected type %s", msg.Type)
		}
		return Message{Type: TypeStopRecording, Payload: StopRecordingResult{OK: true, MIMEType: "audio/webm"}}, nil
	})

	reply, err := r.Request(context.Background(), Message{Type: TypeStopRecording, Target: "capture"})
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	result, ok := reply.Payload.(StopRecordingResult)
	if !ok || !result.OK {
		t.Errorf("unexpected reply payload: %v", reply.Payload)
	}
}

func TestRouter_MissingReceiver(t *testing.T) {
	r := NewRouter()

	_, err := r.Request(context.Background(), Message{Type: TypePing, Target: "page:1"})
	if !errors.Is(err, ErrNoReceiver) {
		t.Errorf("expected ErrNoReceiver, got %v", err)
	}

	if err := r.Post(context.Background(), Message{Type: TypeRecordingStarted, Target: "page:1"}); !errors.Is(err, ErrNoReceiver) {
		t.Errorf("expected ErrNoReceiver from Post, got %v", err)
	}
}

func TestRouter_Post(t *testing.T) {
	r := NewRouter()
	var got []Type
	r.Handle("page:7", func(_ context.Context, msg Message) (Message, error) {
		got = append(got, msg.Type)
		return Message{}, nil
	})

	for _, typ := range []Type{TypeRecordingStarted, TypeRecordingStopped, TypeRefinementStarted} {
		if err := r.Post(context.Background(), Message{Type: typ, Target: "page:7"}); err != nil {
			t.Fatalf("Post(%s) error = %v", typ, err)
		}
	}
	if len(got) != 3 {
		t.Errorf("expected 3 deliveries, got %d", len(got))
	}
}

func TestRouter_RemoveAndPresent(t *testing.T) {
	r := NewRouter()
	r.Handle("page:1", func(_ context.Context, msg Message) (Message, error) {
		return Message{}, nil
	})

	if !r.Present("page:1") {
		t.Error("expected receiver present after Handle")
	}
	r.Remove("page:1")
	if r.Present("page:1") {
		t.Error("expected receiver absent after Remove")
	}
	r.Remove("page:1") // removing twice is fine
}

func TestRouter_HandlerError(t *testing.T) {
	r := NewRouter()
	boom := errors.New("handler boom")
	r.Handle("page:1", func(_ context.Context, _ Message) (Message, error) {
		return Message{}, boom
	})

	if err := r.Post(context.Background(), Message{Type: TypePing, Target: "page:1"}); !errors.Is(err, boom) {
		t.Errorf("expected handler error, got %v", err)
	}
}
