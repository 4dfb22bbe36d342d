package triage

import "regexp"

// FailureCategory identifies a coarse class of CI failure.
type FailureCategory string

const (
	CategoryAssertionError FailureCategory = "assertion_error"
	CategoryNullPointer    FailureCategory = "null_pointer"
	CategoryTimeout        FailureCategory = "timeout"
	CategoryEnvironmental  FailureCategory = "environmental"
	CategoryDataIssues     FailureCategory = "data_issues"
)

// CatalogEntry binds one failure category to its detection patterns and
// base confidence weight.
type CatalogEntry struct {
	Category FailureCategory
	Patterns []*regexp.Regexp
	Weight   float64
}

// Catalog is an ordered list of category detectors. The order is part of the
// contract: scoring iterates entries deterministically, so matched categories
// always come back in the same order for the same input.
type Catalog []CatalogEntry

// defaultCatalog is built once at init and never mutated afterwards.
// Categories are deliberately coarse and overlap-tolerant: a summary matching
// several categories is a well-described failure, not an ambiguous one.
var defaultCatalog = Catalog{
	{
		Category: CategoryAssertionError,
		Weight:   0.9,
		Patterns: compilePatterns(
			`AssertionError`,
			`assert.*failed`,
			`expected.*but got`,
			`comparison.*failed`,
			`Failed: .*!=.*`,
		),
	},
	{
		Category: CategoryNullPointer,
		Weight:   0.85,
		Patterns: compilePatterns(
			`NullPointerException`,
			`null reference`,
			`none.*reference`,
			`undefined.*reference`,
		),
	},
	{
		Category: CategoryTimeout,
		Weight:   0.7,
		Patterns: compilePatterns(
			`timeout`,
			`timed out`,
			`connection.*refused`,
			`request.*timed out`,
			`deadline exceeded`,
		),
	},
	{
		Category: CategoryEnvironmental,
		Weight:   0.5,
		Patterns: compilePatterns(
			`permission denied`,
			`access.*denied`,
			`unauthorized`,
			`configuration.*missing`,
			`insufficient.*permissions`,
		),
	},
	{
		Category: CategoryDataIssues,
		Weight:   0.8,
		Patterns: compilePatterns(
			`invalid.*format`,
			`data.*inconsistent`,
			`schema.*validation`,
			`missing.*field`,
			`type.*mismatch`,
		),
	},
}

// DefaultCatalog returns the built-in failure category catalog. Read-only
// after process start; safe for unlimited concurrent use.
func DefaultCatalog() Catalog {
	return defaultCatalog
}

// compilePatterns compiles patterns case-insensitively. A malformed pattern
// is a configuration defect and panics at startup, not a runtime error.
func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}
