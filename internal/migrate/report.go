package migrate

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/supertui/dimigrate/internal/rewrite"
)

const (
	fileStartedLineTemplateConstant    = "\nProcessing: %s\n"
	classFoundLineTemplateConstant     = "  Class: %s\n"
	constructorFoundLineConstant       = "  Found parameterless constructor\n"
	replacementLineTemplateConstant    = "  Replaced %d occurrence(s) of %s\n"
	migratedOutcomeLineConstant        = "  Migrated successfully\n"
	skippedOutcomeLineTemplateConstant = "  Skipped: %s\n"
	failedOutcomeLineTemplateConstant  = "  Failed: %s\n"
	summaryHeadingLineConstant         = "\nMigration complete:\n"

	summaryFileColumnHeaderConstant    = "File"
	summaryClassColumnHeaderConstant   = "Class"
	summaryOutcomeColumnHeaderConstant = "Outcome"
	summaryReasonColumnHeaderConstant  = "Reason"
	summaryTotalFooterTemplateConstant = "Total %d"
	summaryFooterCountsTemplate        = "migrated %d / skipped %d / failed %d"
	emptyCellConstant                  = ""
)

// ConsoleReporter renders per-file progress lines and the final summary table
// to a writer. It implements OutcomeReporter.
type ConsoleReporter struct {
	outputWriter io.Writer
	successColor *color.Color
	skipColor    *color.Color
	failureColor *color.Color
}

// NewConsoleReporter constructs a ConsoleReporter writing to outputWriter.
func NewConsoleReporter(outputWriter io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		outputWriter: outputWriter,
		successColor: color.New(color.FgGreen),
		skipColor:    color.New(color.FgYellow),
		failureColor: color.New(color.FgRed, color.Bold),
	}
}

// FileStarted announces the file about to be processed.
func (reporter *ConsoleReporter) FileStarted(fileName string) {
	fmt.Fprintf(reporter.outputWriter, fileStartedLineTemplateConstant, fileName)
}

// ClassFound reports the located widget class name.
func (reporter *ConsoleReporter) ClassFound(className string) {
	fmt.Fprintf(reporter.outputWriter, classFoundLineTemplateConstant, className)
}

// ConstructorFound reports that the no-argument constructor was extracted.
func (reporter *ConsoleReporter) ConstructorFound() {
	fmt.Fprint(reporter.outputWriter, constructorFoundLineConstant)
}

// ReplacementApplied reports the occurrence count for one accessor pattern.
// Patterns without occurrences are not reported.
func (reporter *ConsoleReporter) ReplacementApplied(replacementCount rewrite.ReplacementCount) {
	if replacementCount.Occurrences == 0 {
		return
	}
	fmt.Fprintf(reporter.outputWriter, replacementLineTemplateConstant, replacementCount.Occurrences, replacementCount.Expression)
}

// OutcomeRecorded renders the terminal state of one file in the matching color.
func (reporter *ConsoleReporter) OutcomeRecorded(outcome FileOutcome) {
	switch outcome.Kind {
	case OutcomeMigrated:
		reporter.successColor.Fprint(reporter.outputWriter, migratedOutcomeLineConstant)
	case OutcomeSkipped:
		reporter.skipColor.Fprintf(reporter.outputWriter, skippedOutcomeLineTemplateConstant, outcome.Reason)
	case OutcomeFailed:
		reporter.failureColor.Fprintf(reporter.outputWriter, failedOutcomeLineTemplateConstant, outcome.Reason)
	}
}

// SummaryRendered prints the aggregated run counters as a table with one row
// per processed file.
func (reporter *ConsoleReporter) SummaryRendered(summary RunSummary) {
	fmt.Fprint(reporter.outputWriter, summaryHeadingLineConstant)

	summaryTable := tablewriter.NewWriter(reporter.outputWriter)
	summaryTable.SetHeader([]string{
		summaryFileColumnHeaderConstant,
		summaryClassColumnHeaderConstant,
		summaryOutcomeColumnHeaderConstant,
		summaryReasonColumnHeaderConstant,
	})
	summaryTable.SetAutoFormatHeaders(false)
	summaryTable.SetBorder(false)
	summaryTable.SetCenterSeparator(emptyCellConstant)
	summaryTable.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, outcome := range summary.Outcomes {
		summaryTable.Append([]string{outcome.FileName, outcome.ClassName, string(outcome.Kind), outcome.Reason})
	}

	summaryTable.SetFooter([]string{
		fmt.Sprintf(summaryTotalFooterTemplateConstant, summary.TotalCount()),
		emptyCellConstant,
		strconv.Itoa(summary.MigratedCount),
		fmt.Sprintf(summaryFooterCountsTemplate, summary.MigratedCount, summary.SkippedCount, summary.FailedCount),
	})

	summaryTable.Render()
}
