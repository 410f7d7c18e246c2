package migrate

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	pathutils "github.com/supertui/dimigrate/internal/utils/path"
)

const (
	defaultWidgetsDirectoryConstant      = "Widgets"
	planPathRequiredMessageConstant      = "migration plan path must be provided"
	planLoadErrorTemplateConstant        = "failed to load migration plan: %w"
	planParseErrorTemplateConstant       = "failed to parse migration plan: %w"
	planEmptyFileListMessageConstant     = "migration plan must list at least one widget file"
	planBlankFileEntryTemplateConstant   = "migration plan entry %d is blank"
	planFileNameSeparatorTrimSetConstant = " \t"
)

var defaultPlanFileNameSanitizer = pathutils.NewFileNameSanitizer()

// Plan describes one migration run: the directory holding widget sources and
// the ordered list of file names to process.
type Plan struct {
	WidgetsDirectory string   `yaml:"widgets_directory" mapstructure:"widgets_directory"`
	WidgetFiles      []string `yaml:"widget_files" mapstructure:"widget_files"`
}

// DefaultPlan returns the built-in migration plan covering the widget files
// that still use singleton accessors.
func DefaultPlan() Plan {
	return Plan{
		WidgetsDirectory: defaultWidgetsDirectoryConstant,
		WidgetFiles: []string{
			"SettingsWidget.cs",
			"ShortcutHelpWidget.cs",
			"TodoWidget.cs",
			"CommandPaletteWidget.cs",
			"SystemMonitorWidget.cs",
			"TaskManagementWidget.cs",
			"GitStatusWidget.cs",
			"FileExplorerWidget.cs",
			"AgendaWidget.cs",
			"ProjectStatsWidget.cs",
			"KanbanBoardWidget.cs",
		},
	}
}

// LoadPlan reads a migration plan from a YAML file and validates it. A plan
// without a widgets directory inherits the built-in default directory.
func LoadPlan(planFilePath string) (Plan, error) {
	trimmedPath := strings.TrimSpace(planFilePath)
	if len(trimmedPath) == 0 {
		return Plan{}, errors.New(planPathRequiredMessageConstant)
	}

	planContent, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Plan{}, fmt.Errorf(planLoadErrorTemplateConstant, readError)
	}

	var loadedPlan Plan
	if unmarshalError := yaml.Unmarshal(planContent, &loadedPlan); unmarshalError != nil {
		return Plan{}, fmt.Errorf(planParseErrorTemplateConstant, unmarshalError)
	}

	return loadedPlan.Sanitize()
}

// Sanitize normalizes the plan and validates its file list.
func (plan Plan) Sanitize() (Plan, error) {
	sanitizedPlan := plan
	sanitizedPlan.WidgetsDirectory = strings.TrimSpace(plan.WidgetsDirectory)
	if len(sanitizedPlan.WidgetsDirectory) == 0 {
		sanitizedPlan.WidgetsDirectory = defaultWidgetsDirectoryConstant
	}

	for entryIndex, widgetFileName := range plan.WidgetFiles {
		if len(strings.Trim(widgetFileName, planFileNameSeparatorTrimSetConstant)) == 0 {
			return Plan{}, fmt.Errorf(planBlankFileEntryTemplateConstant, entryIndex)
		}
	}

	sanitizedPlan.WidgetFiles = defaultPlanFileNameSanitizer.Sanitize(plan.WidgetFiles)
	if len(sanitizedPlan.WidgetFiles) == 0 {
		return Plan{}, errors.New(planEmptyFileListMessageConstant)
	}

	return sanitizedPlan, nil
}
