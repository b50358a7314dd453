package remote

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/taskdeck/internal/model"
)

// These tests need a disposable Postgres database; they drop its tables.
func integrationStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	url := os.Getenv("TASKDECK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TASKDECK_TEST_DATABASE_URL not set")
	}

	store, err := Open(NewConfig(url))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.TestConnection(ctx))
	_, err = store.db.ExecContext(ctx, `DROP TABLE IF EXISTS accounts, tasks, code_components, projects, email_templates, report_templates, settings CASCADE`)
	require.NoError(t, err)
	return store
}

func TestIntegrationInitializeTwice(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	require.NoError(t, store.InitializeTables(ctx))
	require.NoError(t, store.InitializeTables(ctx))

	templates, settings, err := store.SeedCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, templates)
	assert.Equal(t, 1, settings)

	report, err := store.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, report.OK(), "missing: %v %v", report.MissingTables, report.MissingColumns)
}

func TestIntegrationProjectDeleteCascade(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()
	require.NoError(t, store.InitializeTables(ctx))

	project, err := store.CreateProject(ctx, ProjectCreate{Name: "Site", Status: "active"})
	require.NoError(t, err)

	_, err = store.CreateAccount(ctx, AccountCreate{ProjectID: project.ID, Username: "admin", Password: "pw", Website: "https://site.dev"})
	require.NoError(t, err)
	task, err := store.CreateTask(ctx, TaskCreate{ProjectID: &project.ID, Title: "Launch", Priority: "high", Status: "todo", Date: "2025-01-10"})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", task.Date)
	component, err := store.CreateCodeComponent(ctx, CodeComponentCreate{ProjectID: &project.ID, Name: "Hero"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteProject(ctx, project.ID))

	accounts, err := store.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Nil(t, tasks[0].ProjectID)

	components, err := store.ListCodeComponents(ctx)
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, component.ID, components[0].ID)
	assert.Nil(t, components[0].ProjectID)
}

func TestIntegrationDefaultTemplateProtected(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()
	require.NoError(t, store.InitializeTables(ctx))

	templates, err := store.ListReportTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 3)

	err = store.DeleteReportTemplate(ctx, templates[0].ID)
	assert.ErrorIs(t, err, model.ErrDefaultTemplate)

	after, err := store.ListReportTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 3)
}
