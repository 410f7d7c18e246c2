package migrate

import (
	"strings"

	pathutils "github.com/supertui/dimigrate/internal/utils/path"
)

var migrateConfigurationHomeDirectoryExpander = pathutils.NewHomeExpander()

const (
	widgetsDirectoryConfigKeySuffixConstant = ".widgets_directory"
	planFileConfigKeySuffixConstant         = ".plan_file"
	debugConfigKeySuffixConstant            = ".debug"
)

// CommandConfiguration captures persisted configuration for the widget
// migration command.
type CommandConfiguration struct {
	WidgetsDirectory   string `mapstructure:"widgets_directory"`
	PlanFile           string `mapstructure:"plan_file"`
	EnableDebugLogging bool   `mapstructure:"debug"`
}

// DefaultCommandConfiguration returns baseline configuration values for the
// migration command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		WidgetsDirectory:   defaultWidgetsDirectoryConstant,
		PlanFile:           "",
		EnableDebugLogging: false,
	}
}

// DefaultConfigurationValues exposes the baseline configuration as viper
// default entries beneath the provided root key.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + widgetsDirectoryConfigKeySuffixConstant: defaults.WidgetsDirectory,
		rootKey + planFileConfigKeySuffixConstant:         defaults.PlanFile,
		rootKey + debugConfigKeySuffixConstant:            defaults.EnableDebugLogging,
	}
}

// Sanitize trims configured values and expands home directory shortcuts.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.WidgetsDirectory = migrateConfigurationHomeDirectoryExpander.Expand(strings.TrimSpace(configuration.WidgetsDirectory))
	sanitized.PlanFile = migrateConfigurationHomeDirectoryExpander.Expand(strings.TrimSpace(configuration.PlanFile))
	if len(sanitized.WidgetsDirectory) == 0 {
		sanitized.WidgetsDirectory = defaultWidgetsDirectoryConstant
	}
	return sanitized
}
