package capture

import (
	"context"
	"testing"

	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/messaging"
)

func TestBind_StartStopOverBus(t *testing.T) {
	enc := &fakeEncoder{fragments: [][]byte{[]byte("op"), []byte("us")}}
	surface := NewSurface(Config{}, &fakeDevice{stream: newFakeStream()}, factoryFor(enc), nil)

	router := messaging.NewRouter()
	Bind(router, "capture", surface, nil)
	ctx := context.Background()

	if _, err := router.Request(ctx, messaging.Message{Type: messaging.TypePing, Target: "capture"}); err != nil {
		t.Fatalf("ping: %v", err)
	}

	reply, err := router.Request(ctx, messaging.Message{Type: messaging.TypeStartRecording, Target: "capture"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if reply.Type != messaging.TypeRecordingStarted {
		t.Errorf("start reply type = %v", reply.Type)
	}
	if !surface.IsRecording() {
		t.Fatal("surface must be recording after start message")
	}

	reply, err = router.Request(ctx, messaging.Message{Type: messaging.TypeStopRecording, Target: "capture"})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	result, ok := reply.Payload.(messaging.StopRecordingResult)
	if !ok || !result.OK {
		t.Fatalf("stop result = %#v", reply.Payload)
	}
	if string(result.Audio) != "opus" {
		t.Errorf("audio = %q, want opus", result.Audio)
	}
	if result.MIMEType == "" {
		t.Error("stop result must carry the MIME type")
	}
}

func TestBind_StopWithoutRecordingReturnsCodedResult(t *testing.T) {
	surface := NewSurface(Config{}, &fakeDevice{stream: newFakeStream()}, factoryFor(&fakeEncoder{}), nil)
	router := messaging.NewRouter()
	Bind(router, "capture", surface, nil)

	reply, err := router.Request(context.Background(), messaging.Message{Type: messaging.TypeStopRecording, Target: "capture"})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	result, _ := reply.Payload.(messaging.StopRecordingResult)
	if result.OK {
		t.Fatal("stop without a recording must not report OK")
	}
	if result.Code != string(errors.ErrCodeNoActiveSession) {
		t.Errorf("code = %q, want NO_ACTIVE_SESSION", result.Code)
	}
	if result.Error == "" {
		t.Error("result must carry a user-presentable message")
	}
}
