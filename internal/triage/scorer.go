package triage

import "regexp"

// Scoring constants. The weights in the catalog and the threshold in the
// decision policy are tuning knobs; these govern how matches combine.
const (
	// fallbackScore is returned when no category matches. Total absence of
	// recognizable signal is still mildly actionable, never scored as zero.
	fallbackScore = 0.4

	// corroborationBonus is added per extra matching pattern within one
	// category, capped so a single category cannot dominate via enumeration.
	corroborationBonus    = 0.02
	corroborationBonusCap = 0.1

	// reproducibilityBonus applies when the text claims the failure repeats.
	reproducibilityBonus = 0.1

	// statusCodeBonus applies when the text mentions an explicit 4xx/5xx
	// status, error, or exit code.
	statusCodeBonus = 0.05
)

var (
	reproducibilityRe = regexp.MustCompile(`(?i)(consistently|always|repeatedly) fail`)
	statusCodeRe      = regexp.MustCompile(`(?i)(error code|status code|exit code|returned) [45]\d\d`)
)

// CategoryMatch records one matched category and the pattern strings that
// matched, for explainability.
type CategoryMatch struct {
	Category FailureCategory
	Patterns []string
}

// ScoreResult is the outcome of scoring one summary. Score is always in
// [0.0, 1.0]. Matches is empty only when Score is exactly the fallback.
type ScoreResult struct {
	Score   float64
	Matches []CategoryMatch
}

// Scorer computes confidence scores for failure summaries against a catalog.
// Pure and stateless: the same text always yields the same result.
type Scorer struct {
	catalog Catalog
}

// NewScorer creates a Scorer over the given catalog.
func NewScorer(catalog Catalog) *Scorer {
	return &Scorer{catalog: catalog}
}

// Score determines how actionable a failure summary is, on a 0.0-1.0 scale.
// A higher score means higher confidence that this is a real bug needing
// attention; lower scores suggest transient or environmental issues.
// Empty input and zero matches are normal outcomes, not errors.
func (s *Scorer) Score(summary string) ScoreResult {
	matches := s.matchCategories(summary)

	if len(matches) == 0 {
		return ScoreResult{Score: fallbackScore}
	}

	// Mean of per-category scores, not a sum: matching many weak categories
	// cannot trivially outrank matching one strong one.
	total := 0.0
	for _, m := range matches {
		bonus := corroborationBonus * float64(len(m.Patterns))
		if bonus > corroborationBonusCap {
			bonus = corroborationBonusCap
		}
		total += s.weightOf(m.Category) + bonus
	}
	score := total / float64(len(matches))

	// Unconditional heuristics, independent of category matching.
	if reproducibilityRe.MatchString(summary) {
		score += reproducibilityBonus
	}
	if statusCodeRe.MatchString(summary) {
		score += statusCodeBonus
	}

	if score > 1.0 {
		score = 1.0
	}

	return ScoreResult{Score: score, Matches: matches}
}

// weightOf returns the base weight for a category present in the catalog.
func (s *Scorer) weightOf(category FailureCategory) float64 {
	for _, entry := range s.catalog {
		if entry.Category == category {
			return entry.Weight
		}
	}
	return 0
}

// matchCategories tests every pattern of every catalog entry independently,
// in catalog order, and records which patterns matched per category.
func (s *Scorer) matchCategories(summary string) []CategoryMatch {
	var matches []CategoryMatch
	for _, entry := range s.catalog {
		var matched []string
		for _, re := range entry.Patterns {
			if re.MatchString(summary) {
				matched = append(matched, re.String())
			}
		}
		if len(matched) > 0 {
			matches = append(matches, CategoryMatch{
				Category: entry.Category,
				Patterns: matched,
			})
		}
	}
	return matches
}
