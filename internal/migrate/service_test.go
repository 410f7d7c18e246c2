package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/supertui/dimigrate/internal/migrate"
	"github.com/supertui/dimigrate/internal/rewrite"
)

const serviceFixtureArchiveConstant = `-- TodoWidget.cs --
using System;

namespace SuperTUI.Widgets
{
    public class TodoWidget : WidgetBase
    {
        private string title;

        public TodoWidget()
        {
            title = ConfigurationManager.Instance.Get("todo.title");
            Logger.Instance.Log("todo widget created");
        }

        private void Refresh()
        {
            ThemeManager.Instance.Apply(this);
        }
    }
}
-- DoneWidget.cs --
using System;

namespace SuperTUI.Widgets
{
    public class DoneWidget : WidgetBase
    {
        private readonly ILogger logger;

        public DoneWidget()
        {
        }
    }
}
-- BrokenWidget.cs --
using System;

namespace SuperTUI.Widgets
{
    public class BrokenWidget : WidgetBase
    {
        public BrokenWidget(string caption)
        {
        }
    }
}
-- PlainFile.cs --
using System;

namespace SuperTUI.Helpers
{
    public class MigrationHelper
    {
    }
}
`

func seedWidgetsDirectory(testInstance *testing.T) string {
	testInstance.Helper()

	widgetsDirectory := testInstance.TempDir()
	fixtureArchive := txtar.Parse([]byte(serviceFixtureArchiveConstant))
	for _, archiveFile := range fixtureArchive.Files {
		widgetFilePath := filepath.Join(widgetsDirectory, archiveFile.Name)
		require.NoError(testInstance, os.WriteFile(widgetFilePath, archiveFile.Data, 0o644))
	}

	return widgetsDirectory
}

func TestServiceExecuteProcessesEveryPlanEntry(testInstance *testing.T) {
	widgetsDirectory := seedWidgetsDirectory(testInstance)
	plan := migrate.Plan{
		WidgetsDirectory: widgetsDirectory,
		WidgetFiles: []string{
			"TodoWidget.cs",
			"DoneWidget.cs",
			"BrokenWidget.cs",
			"PlainFile.cs",
			"MissingWidget.cs",
		},
	}

	service := migrate.NewService(migrate.ServiceDependencies{})
	summary, executionError := service.Execute(context.Background(), plan)
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, 1, summary.MigratedCount)
	require.Equal(testInstance, 1, summary.SkippedCount)
	require.Equal(testInstance, 3, summary.FailedCount)
	require.Equal(testInstance, len(plan.WidgetFiles), summary.TotalCount())

	outcomesByFile := map[string]migrate.FileOutcome{}
	for _, outcome := range summary.Outcomes {
		outcomesByFile[outcome.FileName] = outcome
	}

	require.Equal(testInstance, migrate.OutcomeMigrated, outcomesByFile["TodoWidget.cs"].Kind)
	require.Equal(testInstance, "TodoWidget", outcomesByFile["TodoWidget.cs"].ClassName)
	require.Equal(testInstance, migrate.OutcomeSkipped, outcomesByFile["DoneWidget.cs"].Kind)
	require.Equal(testInstance, migrate.SkipReasonAlreadyMigrated, outcomesByFile["DoneWidget.cs"].Reason)
	require.Equal(testInstance, migrate.OutcomeFailed, outcomesByFile["BrokenWidget.cs"].Kind)
	require.Equal(testInstance, migrate.FailureReasonNoConstructor, outcomesByFile["BrokenWidget.cs"].Reason)
	require.Equal(testInstance, migrate.OutcomeFailed, outcomesByFile["PlainFile.cs"].Kind)
	require.Equal(testInstance, migrate.FailureReasonNoClassName, outcomesByFile["PlainFile.cs"].Reason)
	require.Equal(testInstance, migrate.OutcomeFailed, outcomesByFile["MissingWidget.cs"].Kind)
	require.Equal(testInstance, migrate.FailureReasonMissingFile, outcomesByFile["MissingWidget.cs"].Reason)

	migratedContent, readError := os.ReadFile(filepath.Join(widgetsDirectory, "TodoWidget.cs"))
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(migratedContent), rewrite.InjectedFieldMarker)
	require.Contains(testInstance, string(migratedContent), "title = config.Get(\"todo.title\");")
	require.Contains(testInstance, string(migratedContent), "themeManager.Apply(this);")
	require.Equal(testInstance, 1, strings.Count(string(migratedContent), "Logger.Instance"))

	brokenContent, readError := os.ReadFile(filepath.Join(widgetsDirectory, "BrokenWidget.cs"))
	require.NoError(testInstance, readError)
	require.NotContains(testInstance, string(brokenContent), rewrite.InjectedFieldMarker)
}

func TestServiceExecuteIsIdempotent(testInstance *testing.T) {
	widgetsDirectory := seedWidgetsDirectory(testInstance)
	plan := migrate.Plan{WidgetsDirectory: widgetsDirectory, WidgetFiles: []string{"TodoWidget.cs"}}
	service := migrate.NewService(migrate.ServiceDependencies{})

	firstSummary, firstError := service.Execute(context.Background(), plan)
	require.NoError(testInstance, firstError)
	require.Equal(testInstance, 1, firstSummary.MigratedCount)

	migratedContent, readError := os.ReadFile(filepath.Join(widgetsDirectory, "TodoWidget.cs"))
	require.NoError(testInstance, readError)

	secondSummary, secondError := service.Execute(context.Background(), plan)
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, 0, secondSummary.MigratedCount)
	require.Equal(testInstance, 1, secondSummary.SkippedCount)
	require.Equal(testInstance, migrate.SkipReasonAlreadyMigrated, secondSummary.Outcomes[0].Reason)

	unchangedContent, rereadError := os.ReadFile(filepath.Join(widgetsDirectory, "TodoWidget.cs"))
	require.NoError(testInstance, rereadError)
	require.Equal(testInstance, string(migratedContent), string(unchangedContent))
}

func TestServiceExecuteStopsOnCancelledContext(testInstance *testing.T) {
	cancelledContext, cancelFunction := context.WithCancel(context.Background())
	cancelFunction()

	service := migrate.NewService(migrate.ServiceDependencies{})
	summary, executionError := service.Execute(cancelledContext, migrate.Plan{
		WidgetsDirectory: testInstance.TempDir(),
		WidgetFiles:      []string{"TodoWidget.cs"},
	})
	require.ErrorIs(testInstance, executionError, context.Canceled)
	require.Zero(testInstance, summary.TotalCount())
}

func TestServiceExecutePreservesFilePermissions(testInstance *testing.T) {
	widgetsDirectory := seedWidgetsDirectory(testInstance)
	widgetFilePath := filepath.Join(widgetsDirectory, "TodoWidget.cs")
	require.NoError(testInstance, os.Chmod(widgetFilePath, 0o640))

	service := migrate.NewService(migrate.ServiceDependencies{})
	summary, executionError := service.Execute(context.Background(), migrate.Plan{
		WidgetsDirectory: widgetsDirectory,
		WidgetFiles:      []string{"TodoWidget.cs"},
	})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, 1, summary.MigratedCount)

	fileInfo, statError := os.Stat(widgetFilePath)
	require.NoError(testInstance, statError)
	require.Equal(testInstance, os.FileMode(0o640), fileInfo.Mode().Perm())
}
