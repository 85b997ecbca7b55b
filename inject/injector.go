package inject

import (
	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/logger"
)

// Injector performs precise text insertion into the focused editable
// element of one page.
type Injector struct {
	log    *logger.Logger
	anchor anchor
}

// New creates an injector.
func New(log *logger.Logger) *Injector {
	if log == nil {
		log = logger.Nop()
	}
	return &Injector{log: log.WithComponent("injector")}
}

// SaveAnchor captures the insertion point on the currently focused element.
// Called at the moment recording starts. Returns NotEditable (and clears
// any previous anchor) when the element accepts no text.
func (i *Injector) SaveAnchor(target Editable) error {
	i.anchor.clear()

	if target == nil || !target.IsEditable() {
		return errors.NotEditable()
	}

	switch el := target.(type) {
	case TextControl:
		start, end := el.Selection()
		i.anchor = anchor{kind: anchorOffsets, target: target, start: start, end: end}
	case RichRegion:
		rng, err := el.CloneSelectionRange()
		if err != nil {
			return errors.NotEditable().WithCause(err)
		}
		i.anchor = anchor{kind: anchorRange, target: target, rng: rng}
	default:
		return errors.NotEditable()
	}

	i.log.Debug("anchor saved")
	return nil
}

// InsertText splices text at the saved anchor, moves the caret to
// immediately after the inserted text, emits a synthetic input notification
// and refocuses the target. The anchor is consumed. A missing anchor or a
// target that is no longer connected/editable is a delivery failure, not a
// fatal error: no mutation happens and NotEditable is returned for the
// caller to report.
func (i *Injector) InsertText(text string) error {
	a := i.anchor
	i.anchor.clear()

	if a.kind == anchorNone {
		return errors.NotEditable()
	}
	if a.target == nil || !a.target.IsConnected() || !a.target.IsEditable() {
		return errors.NotEditable()
	}

	switch a.kind {
	case anchorOffsets:
		return i.insertIntoControl(a, text)
	case anchorRange:
		return i.insertIntoRegion(a, text)
	}
	return errors.NotEditable()
}

// insertIntoControl splices text between the saved offsets, replacing any
// originally-selected span.
func (i *Injector) insertIntoControl(a anchor, text string) error {
	control, ok := a.target.(TextControl)
	if !ok {
		return errors.NotEditable()
	}

	value := control.Value()
	start, end := clampSpan(a.start, a.end, len(value))

	control.SetValue(value[:start] + text + value[end:])
	caret := start + len(text)
	control.SetSelection(caret, caret)

	control.DispatchInput()
	control.Focus()

	i.log.Debug("text inserted", logger.Fields(logger.FieldBytes, len(text)))
	return nil
}

// insertIntoRegion restores the cloned range, replaces its contents with a
// single text node and collapses the selection after it.
func (i *Injector) insertIntoRegion(a anchor, text string) error {
	if a.rng == nil || !a.rng.IsValid() {
		return errors.NotEditable()
	}

	if err := a.rng.Select(); err != nil {
		return errors.NotEditable().WithCause(err)
	}
	if err := a.rng.DeleteContents(); err != nil {
		return errors.NotEditable().WithCause(err)
	}
	if err := a.rng.InsertText(text); err != nil {
		return errors.NotEditable().WithCause(err)
	}
	if err := a.rng.CollapseAfter(); err != nil {
		return errors.NotEditable().WithCause(err)
	}

	a.target.DispatchInput()
	a.target.Focus()

	i.log.Debug("text inserted", logger.Fields(logger.FieldBytes, len(text)))
	return nil
}

// HasAnchor reports whether an anchor is currently saved.
func (i *Injector) HasAnchor() bool {
	return i.anchor.kind != anchorNone
}

// clampSpan bounds a saved (start, end) span to the current value length.
// The document may have mutated since the anchor was saved; staleness is
// accepted best-effort rather than failing the insertion.
func clampSpan(start, end, max int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	if start > max {
		start = max
	}
	if end > max {
		end = max
	}
	return start, end
}
