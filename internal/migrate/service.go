package migrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/supertui/dimigrate/internal/rewrite"
)

const (
	widgetFileFieldNameConstant       = "widget_file"
	classNameFieldNameConstant        = "class_name"
	outcomeFieldNameConstant          = "outcome"
	reasonFieldNameConstant           = "reason"
	widgetsDirectoryFieldNameConstant = "widgets_directory"
	widgetCountFieldNameConstant      = "widget_count"

	runStartedMessageConstant       = "Widget migration started"
	fileMigratedMessageConstant     = "Widget file migrated"
	fileSkippedMessageConstant      = "Widget file skipped"
	fileFailedMessageConstant       = "Widget file migration failed"
	runCompletedMessageConstant     = "Widget migration completed"
	migratedCountFieldNameConstant  = "migrated"
	skippedCountFieldNameConstant   = "skipped"
	failedCountFieldNameConstant    = "failed"
	stagedWritePatternTemplate      = "%s.migrate-*"
	readFileErrorTemplateConstant   = "unable to read widget file: %v"
	stageFileErrorTemplateConstant  = "unable to stage rewritten content: %v"
	renameFileErrorTemplateConstant = "unable to replace widget file: %v"
)

// ServiceDependencies describes the collaborators required by the Service.
type ServiceDependencies struct {
	Logger      *zap.Logger
	Transformer *rewrite.Transformer
	Reporter    OutcomeReporter
}

// OutcomeReporter receives per-file progress events and the final summary.
// Implementations render human-facing console output; structured logging is
// handled by the Service itself.
type OutcomeReporter interface {
	FileStarted(fileName string)
	ClassFound(className string)
	ConstructorFound()
	ReplacementApplied(replacementCount rewrite.ReplacementCount)
	OutcomeRecorded(outcome FileOutcome)
	SummaryRendered(summary RunSummary)
}

// Service sequences the migration of every file in a plan and aggregates
// outcome counters. Files are processed strictly in plan order; each file is
// read, transformed in memory, and written back independently, so a failure
// never affects the remaining files.
type Service struct {
	logger      *zap.Logger
	transformer *rewrite.Transformer
	reporter    OutcomeReporter
}

// NewService constructs a Service with the provided dependencies. A nil
// logger degrades to a no-op logger and a nil transformer to the default
// rewrite engine.
func NewService(dependencies ServiceDependencies) *Service {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	transformer := dependencies.Transformer
	if transformer == nil {
		transformer = rewrite.NewTransformer()
	}

	return &Service{
		logger:      logger,
		transformer: transformer,
		reporter:    dependencies.Reporter,
	}
}

// Execute migrates every file in the plan and returns the aggregated
// summary. Per-file errors are recorded as failed outcomes and never abort
// the run; only context cancellation stops processing early.
func (service *Service) Execute(executionContext context.Context, plan Plan) (RunSummary, error) {
	service.logger.Info(
		runStartedMessageConstant,
		zap.String(widgetsDirectoryFieldNameConstant, plan.WidgetsDirectory),
		zap.Int(widgetCountFieldNameConstant, len(plan.WidgetFiles)),
	)

	summary := RunSummary{}
	for _, widgetFileName := range plan.WidgetFiles {
		if contextError := executionContext.Err(); contextError != nil {
			return summary, contextError
		}

		if service.reporter != nil {
			service.reporter.FileStarted(widgetFileName)
		}

		outcome := service.processFile(filepath.Join(plan.WidgetsDirectory, widgetFileName), widgetFileName)
		summary.record(outcome)
		service.logOutcome(outcome)
		if service.reporter != nil {
			service.reporter.OutcomeRecorded(outcome)
		}
	}

	service.logger.Info(
		runCompletedMessageConstant,
		zap.Int(migratedCountFieldNameConstant, summary.MigratedCount),
		zap.Int(skippedCountFieldNameConstant, summary.SkippedCount),
		zap.Int(failedCountFieldNameConstant, summary.FailedCount),
	)
	if service.reporter != nil {
		service.reporter.SummaryRendered(summary)
	}

	return summary, nil
}

// processFile runs the per-file state machine: read, locate class, check
// idempotence marker, transform, and persist. The original file is only ever
// overwritten after the full transformation succeeded in memory.
func (service *Service) processFile(widgetFilePath string, widgetFileName string) FileOutcome {
	contentBytes, readError := os.ReadFile(widgetFilePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return FileOutcome{FileName: widgetFileName, Kind: OutcomeFailed, Reason: FailureReasonMissingFile}
		}
		return FileOutcome{FileName: widgetFileName, Kind: OutcomeFailed, Reason: fmt.Sprintf(readFileErrorTemplateConstant, readError)}
	}
	content := string(contentBytes)

	className, classFound := rewrite.LocateClassName(content)
	if !classFound {
		return FileOutcome{FileName: widgetFileName, Kind: OutcomeFailed, Reason: FailureReasonNoClassName}
	}
	if service.reporter != nil {
		service.reporter.ClassFound(className)
	}

	if rewrite.HasInjectedFields(content) {
		return FileOutcome{FileName: widgetFileName, Kind: OutcomeSkipped, Reason: SkipReasonAlreadyMigrated, ClassName: className}
	}

	transformResult, transformError := service.transformer.Apply(content, className)
	if transformError != nil {
		reason := transformError.Error()
		if errors.Is(transformError, rewrite.ErrConstructorNotFound) {
			reason = FailureReasonNoConstructor
		}
		return FileOutcome{FileName: widgetFileName, Kind: OutcomeFailed, Reason: reason, ClassName: className}
	}
	if service.reporter != nil {
		service.reporter.ConstructorFound()
		for _, replacementCount := range transformResult.Replacements {
			service.reporter.ReplacementApplied(replacementCount)
		}
	}

	if !transformResult.Changed {
		return FileOutcome{
			FileName:     widgetFileName,
			Kind:         OutcomeSkipped,
			Reason:       SkipReasonNoChanges,
			ClassName:    className,
			Replacements: transformResult.Replacements,
		}
	}

	if writeError := service.writeStaged(widgetFilePath, transformResult.Content); writeError != nil {
		return FileOutcome{FileName: widgetFileName, Kind: OutcomeFailed, Reason: writeError.Error(), ClassName: className}
	}

	return FileOutcome{
		FileName:     widgetFileName,
		Kind:         OutcomeMigrated,
		ClassName:    className,
		Replacements: transformResult.Replacements,
	}
}

// writeStaged persists content through a temporary file in the target
// directory followed by an atomic rename, so an interrupted run never leaves
// a partially written widget file behind.
func (service *Service) writeStaged(widgetFilePath string, content string) error {
	fileInfo, statError := os.Stat(widgetFilePath)
	if statError != nil {
		return fmt.Errorf(stageFileErrorTemplateConstant, statError)
	}

	stagedFile, createError := os.CreateTemp(filepath.Dir(widgetFilePath), fmt.Sprintf(stagedWritePatternTemplate, filepath.Base(widgetFilePath)))
	if createError != nil {
		return fmt.Errorf(stageFileErrorTemplateConstant, createError)
	}
	stagedFilePath := stagedFile.Name()

	if _, writeError := stagedFile.WriteString(content); writeError != nil {
		stagedFile.Close()
		os.Remove(stagedFilePath)
		return fmt.Errorf(stageFileErrorTemplateConstant, writeError)
	}
	if closeError := stagedFile.Close(); closeError != nil {
		os.Remove(stagedFilePath)
		return fmt.Errorf(stageFileErrorTemplateConstant, closeError)
	}
	if chmodError := os.Chmod(stagedFilePath, fileInfo.Mode().Perm()); chmodError != nil {
		os.Remove(stagedFilePath)
		return fmt.Errorf(stageFileErrorTemplateConstant, chmodError)
	}

	if renameError := os.Rename(stagedFilePath, widgetFilePath); renameError != nil {
		os.Remove(stagedFilePath)
		return fmt.Errorf(renameFileErrorTemplateConstant, renameError)
	}

	return nil
}

func (service *Service) logOutcome(outcome FileOutcome) {
	outcomeFields := []zap.Field{
		zap.String(widgetFileFieldNameConstant, outcome.FileName),
		zap.String(classNameFieldNameConstant, outcome.ClassName),
		zap.String(outcomeFieldNameConstant, string(outcome.Kind)),
		zap.String(reasonFieldNameConstant, outcome.Reason),
	}

	switch outcome.Kind {
	case OutcomeMigrated:
		service.logger.Info(fileMigratedMessageConstant, outcomeFields...)
	case OutcomeSkipped:
		service.logger.Info(fileSkippedMessageConstant, outcomeFields...)
	case OutcomeFailed:
		service.logger.Warn(fileFailedMessageConstant, outcomeFields...)
	}
}
