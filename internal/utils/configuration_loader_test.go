package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supertui/dimigrate/internal/utils"
)

const (
	loaderEmbeddedConfigurationConstant = "common:\n  log_level: info\n  log_format: console\ntools:\n  migrate:\n    widgets_directory: Widgets\n"
	loaderFileConfigurationConstant     = "common:\n  log_level: debug\n"
	loaderEnvironmentPrefixConstant     = "DIMIGRATE"
)

type loaderTestConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
	Tools struct {
		Migrate struct {
			WidgetsDirectory string `mapstructure:"widgets_directory"`
		} `mapstructure:"migrate"`
	} `mapstructure:"tools"`
}

func TestLoadConfigurationUsesEmbeddedDefaults(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader("config", "yaml", loaderEnvironmentPrefixConstant, []string{testInstance.TempDir()})
	loader.SetEmbeddedConfiguration([]byte(loaderEmbeddedConfigurationConstant))

	var configuration loaderTestConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration("", nil, &configuration)
	require.NoError(testInstance, loadError)
	require.Empty(testInstance, loadedConfiguration.ConfigFileUsed)
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, "Widgets", configuration.Tools.Migrate.WidgetsDirectory)
}

func TestLoadConfigurationFileOverridesEmbeddedDefaults(testInstance *testing.T) {
	configurationFilePath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(loaderFileConfigurationConstant), 0o644))

	loader := utils.NewConfigurationLoader("config", "yaml", loaderEnvironmentPrefixConstant, nil)
	loader.SetEmbeddedConfiguration([]byte(loaderEmbeddedConfigurationConstant))

	var configuration loaderTestConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration(configurationFilePath, nil, &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, configurationFilePath, loadedConfiguration.ConfigFileUsed)
	require.Equal(testInstance, "debug", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
}

func TestLoadConfigurationAppliesExplicitDefaults(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader("config", "yaml", loaderEnvironmentPrefixConstant, nil)

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration("", map[string]any{
		"common.log_level":                "warn",
		"tools.migrate.widgets_directory": "CustomWidgets",
	}, &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "warn", configuration.Common.LogLevel)
	require.Equal(testInstance, "CustomWidgets", configuration.Tools.Migrate.WidgetsDirectory)
}

func TestLoadConfigurationRejectsMalformedFile(testInstance *testing.T) {
	configurationFilePath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("common: {broken"), 0o644))

	loader := utils.NewConfigurationLoader("config", "yaml", loaderEnvironmentPrefixConstant, nil)

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration(configurationFilePath, nil, &configuration)
	require.Error(testInstance, loadError)
}
