// Package fontmatch quantifies how visually similar two fonts are and keeps
// a bounded ranking of the best matches seen among a stream of candidates.
//
// For each character under comparison, a glyph outline is flattened into a
// planar polygon Region, the candidate's Region is rescaled so its bounding
// box matches the reference's, and the two Regions are scored by Jaccard
// distance (one minus intersection-over-union). The per-character scores are
// averaged and expressed as a percentage of difference: 0% is an exact shape
// match, 100% means no overlap at all. A fixed-capacity Scoreboard retains
// the lowest (best) scores.
//
// Fetching candidate fonts is a collaborator concern; see the googlefonts
// subpackage for the Google Fonts catalog client.
package fontmatch

import "errors"

// Sentinel errors for the conditions that make a single candidate
// unscoreable. The driver skips the candidate and moves on; they are
// deterministic, so retrying is pointless.
var (
	// ErrGlyphNotFound indicates a font has no outline for a requested
	// character.
	ErrGlyphNotFound = errors.New("glyph not found")

	// ErrDegenerateRegion indicates a region with a zero-extent bounding
	// box, such as a space character, for which no scale factor exists.
	ErrDegenerateRegion = errors.New("degenerate region")

	// ErrUnsupportedFormat indicates an outline source that cannot be
	// decoded, e.g. a CFF-flavored .otf file.
	ErrUnsupportedFormat = errors.New("unsupported font format")
)

// OutlineSource provides glyph outlines for a single font. Implementations
// must be safe for concurrent use; Font is, and test fakes typically are by
// being read-only.
type OutlineSource interface {
	// GlyphRegion returns the unioned polygon region for one character.
	// It fails with ErrGlyphNotFound if the font has no outline for c.
	GlyphRegion(c rune) (Region, error)
}

// Candidate pairs an outline source with the label reported for it on the
// scoreboard, typically a file URL or path.
type Candidate struct {
	Label  string
	Source OutlineSource
}
