package rewrite

import "regexp"

const (
	loggerAccessorExpressionConstant        = "Logger.Instance"
	themeManagerAccessorExpressionConstant  = "ThemeManager.Instance"
	configurationAccessorExpressionConstant = "ConfigurationManager.Instance"
	loggerFieldReferenceConstant            = "logger"
	themeManagerFieldReferenceConstant      = "themeManager"
	configurationFieldReferenceConstant     = "config"
)

// ReplacementRule maps one singleton accessor expression to the injected
// field reference that replaces it.
type ReplacementRule struct {
	// Expression is the literal accessor text being replaced.
	Expression string
	// FieldReference is the injected field identifier substituted in.
	FieldReference string

	pattern *regexp.Regexp
}

// ReplacementCount reports how many occurrences of one accessor expression
// were rewritten within a region.
type ReplacementCount struct {
	Expression  string
	Occurrences int
}

// DefaultReplacementRules returns the ordered accessor-to-field replacement
// rules applied during migration.
func DefaultReplacementRules() []ReplacementRule {
	return []ReplacementRule{
		newReplacementRule(loggerAccessorExpressionConstant, loggerFieldReferenceConstant),
		newReplacementRule(themeManagerAccessorExpressionConstant, themeManagerFieldReferenceConstant),
		newReplacementRule(configurationAccessorExpressionConstant, configurationFieldReferenceConstant),
	}
}

func newReplacementRule(accessorExpression string, fieldReference string) ReplacementRule {
	return ReplacementRule{
		Expression:     accessorExpression,
		FieldReference: fieldReference,
		pattern:        regexp.MustCompile(regexp.QuoteMeta(accessorExpression)),
	}
}

// RewriteReferences applies the replacement rules to the region in order and
// reports the net occurrence delta per rule. Replacement is exact-literal and
// not scope aware: occurrences inside comments or string literals are
// rewritten as well, which is an accepted limitation of the migration.
func RewriteReferences(region string, replacementRules []ReplacementRule) (string, []ReplacementCount) {
	replacementCounts := make([]ReplacementCount, 0, len(replacementRules))

	rewrittenRegion := region
	for _, replacementRule := range replacementRules {
		occurrencesBefore := len(replacementRule.pattern.FindAllStringIndex(rewrittenRegion, -1))
		rewrittenRegion = replacementRule.pattern.ReplaceAllString(rewrittenRegion, replacementRule.FieldReference)
		occurrencesAfter := len(replacementRule.pattern.FindAllStringIndex(rewrittenRegion, -1))

		replacementCounts = append(replacementCounts, ReplacementCount{
			Expression:  replacementRule.Expression,
			Occurrences: occurrencesBefore - occurrencesAfter,
		})
	}

	return rewrittenRegion, replacementCounts
}

// MergeReplacementCounts sums counts gathered from disjoint regions,
// preserving rule order from the first slice.
func MergeReplacementCounts(firstCounts []ReplacementCount, secondCounts []ReplacementCount) []ReplacementCount {
	mergedCounts := make([]ReplacementCount, len(firstCounts))
	copy(mergedCounts, firstCounts)
	for _, secondCount := range secondCounts {
		merged := false
		for mergedIndex := range mergedCounts {
			if mergedCounts[mergedIndex].Expression == secondCount.Expression {
				mergedCounts[mergedIndex].Occurrences += secondCount.Occurrences
				merged = true
				break
			}
		}
		if !merged {
			mergedCounts = append(mergedCounts, secondCount)
		}
	}
	return mergedCounts
}
