package migrate

import "github.com/supertui/dimigrate/internal/rewrite"

const (
	outcomeKindMigratedStringConstant = "migrated"
	outcomeKindSkippedStringConstant  = "skipped"
	outcomeKindFailedStringConstant   = "failed"

	// SkipReasonAlreadyMigrated marks files carrying the injected field marker.
	SkipReasonAlreadyMigrated = "already migrated"
	// SkipReasonNoChanges marks files whose transformed content equals the input.
	SkipReasonNoChanges = "no changes"
	// FailureReasonMissingFile marks plan entries absent from disk.
	FailureReasonMissingFile = "file not found"
	// FailureReasonNoClassName marks files without a widget class declaration.
	FailureReasonNoClassName = "no class name"
	// FailureReasonNoConstructor marks files without an extractable no-argument constructor.
	FailureReasonNoConstructor = "no constructor"
)

// OutcomeKind enumerates the terminal states of one file migration.
type OutcomeKind string

// Terminal migration states.
const (
	OutcomeMigrated OutcomeKind = OutcomeKind(outcomeKindMigratedStringConstant)
	OutcomeSkipped  OutcomeKind = OutcomeKind(outcomeKindSkippedStringConstant)
	OutcomeFailed   OutcomeKind = OutcomeKind(outcomeKindFailedStringConstant)
)

// FileOutcome records the result of migrating a single widget file.
type FileOutcome struct {
	FileName     string
	Kind         OutcomeKind
	Reason       string
	ClassName    string
	Replacements []rewrite.ReplacementCount
}

// RunSummary aggregates file outcomes for a whole migration run. Every file
// in the plan yields exactly one outcome, so the three counters always sum to
// the number of files considered.
type RunSummary struct {
	Outcomes      []FileOutcome
	MigratedCount int
	SkippedCount  int
	FailedCount   int
}

func (summary *RunSummary) record(outcome FileOutcome) {
	summary.Outcomes = append(summary.Outcomes, outcome)
	switch outcome.Kind {
	case OutcomeMigrated:
		summary.MigratedCount++
	case OutcomeSkipped:
		summary.SkippedCount++
	case OutcomeFailed:
		summary.FailedCount++
	}
}

// TotalCount returns the number of files that produced an outcome.
func (summary RunSummary) TotalCount() int {
	return len(summary.Outcomes)
}
