package migrate_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/supertui/dimigrate/internal/migrate"
	"github.com/supertui/dimigrate/internal/rewrite"
)

func newPlainConsoleReporter(testInstance *testing.T) (*migrate.ConsoleReporter, *bytes.Buffer) {
	testInstance.Helper()

	previousNoColorSetting := color.NoColor
	color.NoColor = true
	testInstance.Cleanup(func() {
		color.NoColor = previousNoColorSetting
	})

	outputBuffer := &bytes.Buffer{}
	return migrate.NewConsoleReporter(outputBuffer), outputBuffer
}

func TestConsoleReporterRendersProgressLines(testInstance *testing.T) {
	reporter, outputBuffer := newPlainConsoleReporter(testInstance)

	reporter.FileStarted("TodoWidget.cs")
	reporter.ClassFound("TodoWidget")
	reporter.ConstructorFound()
	reporter.ReplacementApplied(rewrite.ReplacementCount{Expression: "Logger.Instance", Occurrences: 2})
	reporter.ReplacementApplied(rewrite.ReplacementCount{Expression: "ThemeManager.Instance", Occurrences: 0})
	reporter.OutcomeRecorded(migrate.FileOutcome{FileName: "TodoWidget.cs", Kind: migrate.OutcomeMigrated})

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "Processing: TodoWidget.cs")
	require.Contains(testInstance, renderedOutput, "Class: TodoWidget")
	require.Contains(testInstance, renderedOutput, "Found parameterless constructor")
	require.Contains(testInstance, renderedOutput, "Replaced 2 occurrence(s) of Logger.Instance")
	require.NotContains(testInstance, renderedOutput, "ThemeManager.Instance")
	require.Contains(testInstance, renderedOutput, "Migrated successfully")
}

func TestConsoleReporterRendersTerminalOutcomeReasons(testInstance *testing.T) {
	reporter, outputBuffer := newPlainConsoleReporter(testInstance)

	reporter.OutcomeRecorded(migrate.FileOutcome{Kind: migrate.OutcomeSkipped, Reason: migrate.SkipReasonAlreadyMigrated})
	reporter.OutcomeRecorded(migrate.FileOutcome{Kind: migrate.OutcomeFailed, Reason: migrate.FailureReasonNoConstructor})

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "Skipped: already migrated")
	require.Contains(testInstance, renderedOutput, "Failed: no constructor")
}

func TestConsoleReporterRendersSummaryTable(testInstance *testing.T) {
	reporter, outputBuffer := newPlainConsoleReporter(testInstance)

	renderedSummary := migrate.RunSummary{
		Outcomes: []migrate.FileOutcome{
			{FileName: "TodoWidget.cs", ClassName: "TodoWidget", Kind: migrate.OutcomeMigrated},
			{FileName: "BrokenWidget.cs", ClassName: "BrokenWidget", Kind: migrate.OutcomeFailed, Reason: migrate.FailureReasonNoConstructor},
		},
		MigratedCount: 1,
		FailedCount:   1,
	}
	reporter.SummaryRendered(renderedSummary)

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "Migration complete:")
	require.Contains(testInstance, renderedOutput, "TodoWidget.cs")
	require.Contains(testInstance, renderedOutput, "BrokenWidget.cs")
	require.Contains(testInstance, renderedOutput, "Total 2")
	require.Contains(testInstance, renderedOutput, "migrated 1 / skipped 0 / failed 1")
}
