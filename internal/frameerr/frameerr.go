// Package frameerr declares the error kinds shared by the frame composition
// packages. Every kind except ErrMissingArt is recoverable: the card is still
// produced and the condition is logged.
package frameerr

import "errors"

var (
	// ErrInvalidGeometry reports non-positive dimensions or a degenerate zoom.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrMissingTemplate reports an empty or absent path template.
	ErrMissingTemplate = errors.New("missing template")

	// ErrUnresolvedPlaceholder reports a template placeholder with no parameter.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrUnclassifiableColor reports color codes that were dropped during classification.
	ErrUnclassifiableColor = errors.New("unclassifiable color")

	// ErrMisconfiguredFrameStyle reports bounds or templates missing for an optional feature.
	ErrMisconfiguredFrameStyle = errors.New("misconfigured frame style")

	// ErrMissingArt reports a card without an art reference. The card is skipped.
	ErrMissingArt = errors.New("missing art reference")
)
