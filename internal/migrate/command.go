package migrate

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/supertui/dimigrate/internal/utils"
)

const (
	commandUseConstant              = "migrate"
	commandShortDescriptionConstant = "Rewrite widget sources to constructor injection"
	commandLongDescriptionConstant  = "migrate converts the configured widget source files from singleton accessor usage to constructor-injected dependencies, preserving a backward-compatible no-argument constructor in each class."

	widgetsDirectoryFlagNameConstant  = "widgets-dir"
	widgetsDirectoryFlagUsageConstant = "Directory containing the widget source files"
	planFlagNameConstant              = "plan"
	planFlagUsageConstant             = "Optional YAML migration plan overriding the built-in widget list"
	debugFlagNameConstant             = "debug"
	debugFlagUsageConstant            = "Enable debug logging for the migration run"

	planResolutionErrorTemplateConstant = "unable to resolve migration plan: %w"
	runFailureTemplateConstant          = "migration completed with %d failed file(s)"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ServiceProvider constructs a migration service from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) *Service

type commandOptions struct {
	debugLoggingEnabled bool
	widgetsDirectory    string
	planFilePath        string
}

// CommandBuilder assembles the migrate Cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ServiceProvider       ServiceProvider
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the migrate command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runMigrate,
	}

	command.Flags().String(widgetsDirectoryFlagNameConstant, defaultWidgetsDirectoryConstant, widgetsDirectoryFlagUsageConstant)
	command.Flags().String(planFlagNameConstant, "", planFlagUsageConstant)
	command.Flags().Bool(debugFlagNameConstant, false, debugFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runMigrate(command *cobra.Command, _ []string) error {
	options := builder.parseOptions(command)
	logger := builder.resolveLogger(options.debugLoggingEnabled)

	migrationPlan, planError := builder.resolvePlan(options)
	if planError != nil {
		return fmt.Errorf(planResolutionErrorTemplateConstant, planError)
	}

	reporter := NewConsoleReporter(utils.NewFlushingWriter(command.OutOrStdout()))
	service := builder.resolveService(ServiceDependencies{
		Logger:   logger,
		Reporter: reporter,
	})

	summary, executionError := service.Execute(command.Context(), migrationPlan)
	if executionError != nil {
		return executionError
	}

	if summary.FailedCount > 0 {
		return fmt.Errorf(runFailureTemplateConstant, summary.FailedCount)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) commandOptions {
	configuration := builder.resolveConfiguration()

	debugEnabled := configuration.EnableDebugLogging
	if command != nil {
		contextAccessor := utils.NewCommandContextAccessor()
		if logLevel, available := contextAccessor.LogLevel(command.Context()); available {
			if strings.EqualFold(logLevel, string(utils.LogLevelDebug)) {
				debugEnabled = true
			}
		}
		if command.Flags().Changed(debugFlagNameConstant) {
			flagValue, _ := command.Flags().GetBool(debugFlagNameConstant)
			debugEnabled = flagValue
		}
	}

	widgetsDirectory := configuration.WidgetsDirectory
	planFilePath := configuration.PlanFile
	if command != nil {
		if command.Flags().Changed(widgetsDirectoryFlagNameConstant) {
			flagValue, _ := command.Flags().GetString(widgetsDirectoryFlagNameConstant)
			widgetsDirectory = flagValue
		}
		if command.Flags().Changed(planFlagNameConstant) {
			flagValue, _ := command.Flags().GetString(planFlagNameConstant)
			planFilePath = flagValue
		}
	}

	return commandOptions{
		debugLoggingEnabled: debugEnabled,
		widgetsDirectory:    strings.TrimSpace(widgetsDirectory),
		planFilePath:        strings.TrimSpace(planFilePath),
	}
}

func (builder *CommandBuilder) resolvePlan(options commandOptions) (Plan, error) {
	if len(options.planFilePath) > 0 {
		loadedPlan, loadError := LoadPlan(options.planFilePath)
		if loadError != nil {
			return Plan{}, loadError
		}
		if len(options.widgetsDirectory) > 0 && options.widgetsDirectory != defaultWidgetsDirectoryConstant {
			loadedPlan.WidgetsDirectory = options.widgetsDirectory
		}
		return loadedPlan, nil
	}

	migrationPlan := DefaultPlan()
	if len(options.widgetsDirectory) > 0 {
		migrationPlan.WidgetsDirectory = options.widgetsDirectory
	}
	return migrationPlan.Sanitize()
}

func (builder *CommandBuilder) resolveLogger(enableDebug bool) *zap.Logger {
	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if enableDebug {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.DebugLevel))
	}
	return logger
}

func (builder *CommandBuilder) resolveService(dependencies ServiceDependencies) *Service {
	if builder.ServiceProvider != nil {
		return builder.ServiceProvider(dependencies)
	}
	return NewService(dependencies)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
