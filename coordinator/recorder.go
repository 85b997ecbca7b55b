package coordinator

import (
	"context"
	"fmt"

	"github.com/kbukum/dictate/capture"
	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/messaging"
)

// BusRecorder adapts a bus-hosted capture surface to the Recorder
// interface. Hosts that run capture in a separate execution context wire
// this in place of a direct Surface.
type BusRecorder struct {
	bus    messaging.Bus
	target string
}

// NewBusRecorder creates a Recorder that drives the capture context
// registered under target.
func NewBusRecorder(bus messaging.Bus, target string) *BusRecorder {
	return &BusRecorder{bus: bus, target: target}
}

// Start asks the capture context to begin recording.
func (r *BusRecorder) Start(ctx context.Context) error {
	_, err := r.bus.Request(ctx, messaging.Message{
		Type:   messaging.TypeStartRecording,
		Target: r.target,
	})
	return err
}

// Stop asks the capture context to stop and yield its audio. Typed errors
// are rebuilt from the result payload so the error taxonomy survives the
// context boundary.
func (r *BusRecorder) Stop(ctx context.Context) (capture.AudioBuffer, error) {
	reply, err := r.bus.Request(ctx, messaging.Message{
		Type:   messaging.TypeStopRecording,
		Target: r.target,
	})
	if err != nil {
		return capture.AudioBuffer{}, errors.Internal(err)
	}

	result, ok := reply.Payload.(messaging.StopRecordingResult)
	if !ok {
		return capture.AudioBuffer{}, errors.Internal(fmt.Errorf("unexpected stop-recording payload %T", reply.Payload))
	}
	if !result.OK {
		return capture.AudioBuffer{}, errors.New(errors.ErrorCode(result.Code), result.Error)
	}
	return capture.AudioBuffer{Data: result.Audio, MIMEType: result.MIMEType}, nil
}
