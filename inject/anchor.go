package inject

// anchorKind discriminates the saved anchor representation.
type anchorKind int

const (
	anchorNone anchorKind = iota
	anchorOffsets
	anchorRange
)

// anchor is a saved insertion point. It is owned by one Injector for one
// interaction and must not be reused after insertion.
type anchor struct {
	kind   anchorKind
	target Editable

	// Offsets into a TextControl's buffer (anchorOffsets).
	start, end int

	// Cloned selection range (anchorRange).
	rng Range
}

func (a *anchor) clear() {
	*a = anchor{}
}
