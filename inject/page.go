package inject

import (
	"context"

	"github.com/kbukum/dictate/logger"
	"github.com/kbukum/dictate/messaging"
)

// StatusListener observes pipeline state changes for the page's visual
// indicator. The indicator itself is outside this package; errors arrive
// already user-presentable.
type StatusListener func(state messaging.Type, detail string)

// FocusProvider returns the currently focused element, nil when nothing
// focusable has focus.
type FocusProvider func() Editable

// Bind registers the injector as the message receiver for target on the
// router. It answers the liveness probe, snapshots the caret anchor when
// recording starts, delivers completed transcripts into the saved anchor
// and forwards status changes to the listener.
func Bind(r *messaging.Router, target string, injector *Injector, focused FocusProvider, onStatus StatusListener, log *logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("page")
	if focused == nil {
		focused = func() Editable { return nil }
	}
	if onStatus == nil {
		onStatus = func(messaging.Type, string) {}
	}

	r.Handle(target, func(_ context.Context, msg messaging.Message) (messaging.Message, error) {
		switch msg.Type {
		case messaging.TypePing:
			return messaging.Message{Type: messaging.TypePing}, nil

		case messaging.TypeTranscriptionComplete:
			payload, _ := msg.Payload.(messaging.TextPayload)
			if err := injector.InsertText(payload.Text); err != nil {
				log.Warn("text delivery failed", logger.ErrorFields("insert", err))
				return messaging.Message{}, err
			}
			onStatus(msg.Type, "")
			return messaging.Message{}, nil

		case messaging.TypeTranscriptionError:
			payload, _ := msg.Payload.(messaging.ErrorPayload)
			onStatus(msg.Type, payload.Error)
			return messaging.Message{}, nil

		case messaging.TypeRecordingStarted:
			// Snapshot the caret now; focus commonly moves to the page
			// indicator before the transcript comes back.
			if err := injector.SaveAnchor(focused()); err != nil {
				log.Warn("anchor not saved", logger.ErrorFields("save_anchor", err))
			}
			onStatus(msg.Type, "")
			return messaging.Message{}, nil

		case messaging.TypeRecordingStopped, messaging.TypeRefinementStarted:
			onStatus(msg.Type, "")
			return messaging.Message{}, nil
		}

		log.Debug("unhandled message", logger.Fields("type", string(msg.Type)))
		return messaging.Message{}, nil
	})
}
