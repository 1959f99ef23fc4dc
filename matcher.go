package fontmatch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultChars is the character set compared when none is configured.
// Distinctive letterforms give the strongest signal; callers matching a
// display face should pick its most characteristic glyphs instead.
const DefaultChars = "ABC"

// Matcher scores candidate fonts against a fixed reference font over a
// fixed character set. The reference regions are extracted once at
// construction and shared, read-only, by all comparisons, so a Matcher is
// safe for concurrent use.
type Matcher struct {
	chars      []rune
	workers    int
	log        *logrus.Logger
	refRegions map[rune]Region
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithChars sets the characters used for matching.
func WithChars(chars string) MatcherOption {
	return func(m *Matcher) { m.chars = []rune(chars) }
}

// WithWorkers sets the number of candidates Run evaluates in parallel.
// Candidate comparisons share no mutable state, so this is a pure
// throughput knob; 1 reproduces strictly sequential evaluation.
func WithWorkers(n int) MatcherOption {
	return func(m *Matcher) { m.workers = n }
}

// WithLogger routes the matcher's skip/progress logging.
func WithLogger(log *logrus.Logger) MatcherOption {
	return func(m *Matcher) { m.log = log }
}

// NewMatcher extracts the reference font's regions for the configured
// character set. A reference that cannot produce every requested character
// is unusable for any comparison, so extraction failure is fatal here
// rather than deferred to the per-candidate path.
func NewMatcher(ref OutlineSource, opts ...MatcherOption) (*Matcher, error) {
	m := &Matcher{
		chars:   []rune(DefaultChars),
		workers: 1,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if len(m.chars) == 0 {
		return nil, errors.New("no characters to match")
	}
	if m.workers < 1 {
		m.workers = 1
	}

	m.refRegions = make(map[rune]Region, len(m.chars))
	for _, c := range m.chars {
		reg, err := ref.GlyphRegion(c)
		if err != nil {
			return nil, fmt.Errorf("reference font: %w", err)
		}
		m.refRegions[c] = reg
	}
	return m, nil
}

// Chars returns the characters the matcher compares.
func (m *Matcher) Chars() []rune {
	return append([]rune(nil), m.chars...)
}

// ReferenceRegion returns the reference font's extracted region for one of
// the matcher's characters.
func (m *Matcher) ReferenceRegion(c rune) (Region, bool) {
	r, ok := m.refRegions[c]
	return r, ok
}

// Compare scores one candidate against the reference and returns the
// aggregate difference percentage. Any character failing to score
// (ErrGlyphNotFound, ErrDegenerateRegion, ErrUnsupportedFormat) fails the
// whole comparison; a partial character set is never averaged.
func (m *Matcher) Compare(cand OutlineSource) (float64, error) {
	scores := make([]float64, 0, len(m.chars))
	for _, c := range m.chars {
		ref := m.refRegions[c]

		reg, err := cand.GlyphRegion(c)
		if err != nil {
			return 0, fmt.Errorf("candidate glyph %q: %w", c, err)
		}
		factor, err := ScaleBetween(ref, reg)
		if err != nil {
			return 0, fmt.Errorf("candidate glyph %q: %w", c, err)
		}
		scores = append(scores, CharacterScore(ref, reg.Scale(factor)))
	}
	return AggregateScore(scores), nil
}

// NormalizedRegions extracts a character from the candidate and returns the
// reference region alongside the candidate region rescaled onto it. Used
// for rendering overlay previews of a finished match.
func (m *Matcher) NormalizedRegions(cand OutlineSource, c rune) (ref, scaled Region, err error) {
	ref, ok := m.refRegions[c]
	if !ok {
		return Region{}, Region{}, fmt.Errorf("%q: %w", c, ErrGlyphNotFound)
	}
	reg, err := cand.GlyphRegion(c)
	if err != nil {
		return Region{}, Region{}, err
	}
	factor, err := ScaleBetween(ref, reg)
	if err != nil {
		return Region{}, Region{}, err
	}
	return ref, reg.Scale(factor), nil
}

// Run drains the candidate stream, scoring each candidate and inserting the
// result into board. Candidates that fail to score are logged and skipped;
// one bad candidate never affects another. Evaluation uses the configured
// number of workers, and only the board's own insert lock serializes them.
func (m *Matcher) Run(candidates <-chan Candidate, board *Scoreboard) {
	var wg sync.WaitGroup
	wg.Add(m.workers)
	for w := 0; w < m.workers; w++ {
		go func() {
			defer wg.Done()
			for cand := range candidates {
				score, err := m.Compare(cand.Source)
				if err != nil {
					m.log.WithError(err).Warnf("skipping %s", cand.Label)
					continue
				}
				m.log.Debugf("%s: %.2f%%", cand.Label, score)
				board.Insert(score, cand.Label)
			}
		}()
	}
	wg.Wait()
}
