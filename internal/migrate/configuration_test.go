package migrate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supertui/dimigrate/internal/migrate"
)

func TestDefaultConfigurationValuesUseRootKeyPrefix(testInstance *testing.T) {
	defaults := migrate.DefaultConfigurationValues("tools.migrate")

	require.Equal(testInstance, "Widgets", defaults["tools.migrate.widgets_directory"])
	require.Equal(testInstance, "", defaults["tools.migrate.plan_file"])
	require.Equal(testInstance, false, defaults["tools.migrate.debug"])
}

func TestCommandConfigurationSanitizeAppliesDefaults(testInstance *testing.T) {
	sanitized := migrate.CommandConfiguration{
		WidgetsDirectory: "  ",
		PlanFile:         "  plan.yaml ",
	}.Sanitize()

	require.Equal(testInstance, "Widgets", sanitized.WidgetsDirectory)
	require.Equal(testInstance, "plan.yaml", sanitized.PlanFile)
}
