package inject

// Editable is the common surface of insertion targets.
type Editable interface {
	// IsEditable reports whether the element currently accepts text.
	IsEditable() bool
	// IsConnected reports whether the element is still attached to its
	// document.
	IsConnected() bool
	// Focus gives the element input focus.
	Focus()
	// DispatchInput emits a synthetic input notification so reactive
	// frameworks bound to the element observe the change.
	DispatchInput()
}

// TextControl is a simple linear text control (input, textarea). Offsets
// index the control's text buffer.
type TextControl interface {
	Editable

	// Value returns the control's current text.
	Value() string
	// SetValue replaces the control's text.
	SetValue(v string)
	// Selection returns the current (start, end) selection offsets.
	Selection() (start, end int)
	// SetSelection sets the selection, collapsing to a caret when
	// start == end.
	SetSelection(start, end int)
}

// RichRegion is a structured editable region (contenteditable). Its
// selection is represented by an opaque Range snapshot.
type RichRegion interface {
	Editable

	// CloneSelectionRange snapshots the current selection. The clone is
	// owned by the caller and stays usable after the live selection moves.
	CloneSelectionRange() (Range, error)
}

// Range is a cloned selection range inside a rich region.
type Range interface {
	// IsValid reports whether the range still points at connected content.
	IsValid() bool
	// Select restores the range as the active selection.
	Select() error
	// DeleteContents removes everything within the range.
	DeleteContents() error
	// InsertText inserts text as a single text node at the range start.
	InsertText(text string) error
	// CollapseAfter collapses the active selection to immediately after
	// the inserted content.
	CollapseAfter() error
}
