package capture

import (
	"context"

	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/logger"
	"github.com/kbukum/dictate/messaging"
)

// Bind registers the surface as the message receiver for target on the
// router. The capture surface runs in its own execution context; the
// coordinator reaches it through start/stop messages, and the keepalive
// ping lands here to keep the context from being suspended.
func Bind(r *messaging.Router, target string, s *Surface, log *logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("capture")

	r.Handle(target, func(ctx context.Context, msg messaging.Message) (messaging.Message, error) {
		switch msg.Type {
		case messaging.TypePing:
			return messaging.Message{Type: messaging.TypePing}, nil

		case messaging.TypeStartRecording:
			if err := s.Start(ctx); err != nil {
				return messaging.Message{}, err
			}
			return messaging.Message{Type: messaging.TypeRecordingStarted}, nil

		case messaging.TypeStopRecording:
			buf, err := s.Stop(ctx)
			if err != nil {
				// The full diagnostic stays in this context's log; only
				// the user-presentable message crosses the boundary.
				log.Error("stop failed", logger.ErrorFields("stop", err))
				return messaging.Message{
					Type: messaging.TypeStopRecording,
					Payload: messaging.StopRecordingResult{
						Code:  string(errors.CodeOf(err)),
						Error: errors.UserMessage(err),
					},
				}, nil
			}
			return messaging.Message{
				Type: messaging.TypeStopRecording,
				Payload: messaging.StopRecordingResult{
					OK:       true,
					Audio:    buf.Data,
					MIMEType: buf.MIMEType,
				},
			}, nil
		}

		log.Debug("unhandled message", logger.Fields("type", string(msg.Type)))
		return messaging.Message{}, nil
	})
}
