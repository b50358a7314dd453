package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/taskdeck/internal/local"
	"github.com/eleven-am/taskdeck/internal/logger"
	"github.com/eleven-am/taskdeck/internal/model"
	"github.com/eleven-am/taskdeck/internal/remote"
)

func strPtr(s string) *string { return &s }

func newLocal() *local.Store {
	return local.New(local.NewMemoryKV())
}

// loadedRemote returns an orchestrator in remote mode over a fake remote.
func loadedRemote(t *testing.T) (*Orchestrator, *fakeRemote, *local.Store) {
	t.Helper()
	fake := newFakeRemote()
	store := newLocal()
	o := New(fake, store, WithLogger(logger.Nop()))
	require.NoError(t, o.LoadData(context.Background()))
	require.Equal(t, ModeRemote, o.Mode())
	require.True(t, o.IsDatabaseAvailable())
	return o, fake, store
}

func TestLoadDataWithoutRemote(t *testing.T) {
	o := New(nil, newLocal(), WithLogger(logger.Nop()))
	assert.Equal(t, ModeInit, o.Mode())

	require.NoError(t, o.LoadData(context.Background()))
	assert.Equal(t, ModeLocalOnly, o.Mode())
	assert.False(t, o.IsDatabaseAvailable())

	assert.Empty(t, o.Projects())
	assert.Empty(t, o.Accounts())
	assert.Empty(t, o.Tasks())
	assert.Empty(t, o.EmailTemplates())
	assert.Empty(t, o.CodeComponents())
	assert.Empty(t, o.ReportTemplates())
	assert.Equal(t, model.DefaultSettings(), o.Settings())
}

func TestLoadDataUnconfiguredRemote(t *testing.T) {
	store, err := remote.Open(remote.NewConfig(""))
	require.NoError(t, err)

	o := New(store, newLocal(), WithLogger(logger.Nop()))
	require.NoError(t, o.LoadData(context.Background()))
	assert.Equal(t, ModeLocalOnly, o.Mode())
	assert.False(t, o.IsDatabaseAvailable())
}

func TestLoadDataProbeFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(`SELECT 1`).WillReturnError(errors.New("dial tcp: connection refused"))

	ctx := context.Background()
	store := newLocal()
	_, err = store.CreateProject(ctx, model.ProjectInput{Name: "Offline"})
	require.NoError(t, err)

	o := New(remote.NewWithDB(sqlx.NewDb(db, "postgres")), store, WithLogger(logger.Nop()))
	require.NoError(t, o.LoadData(ctx))
	assert.Equal(t, ModeLocalOnly, o.Mode())
	require.Len(t, o.Projects(), 1)
	assert.Equal(t, "Offline", o.Projects()[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDataInitializeFails(t *testing.T) {
	fake := newFakeRemote()
	o := New(&initFailRemote{fakeRemote: fake}, newLocal(), WithLogger(logger.Nop()))
	require.NoError(t, o.LoadData(context.Background()))
	assert.Equal(t, ModeLocalOnly, o.Mode())
	assert.False(t, o.IsDatabaseAvailable())
}

type initFailRemote struct{ *fakeRemote }

func (r *initFailRemote) InitializeTables(context.Context) error {
	return errors.New("permission denied for schema public")
}

func TestLoadDataLocalFailure(t *testing.T) {
	o := New(nil, local.New(brokenKV{}), WithLogger(logger.Nop()))
	err := o.LoadData(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local storage")
}

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk I/O error")
}
func (brokenKV) Set(context.Context, string, []byte) error { return errors.New("disk I/O error") }
func (brokenKV) Close() error                              { return nil }

func TestLoadDataRemote(t *testing.T) {
	o, _, _ := loadedRemote(t)

	templates := o.ReportTemplates()
	require.Len(t, templates, 3)
	for _, tmpl := range templates {
		assert.True(t, tmpl.IsDefault)
	}
	assert.Equal(t, "light", o.Settings().Theme)
}

func TestMutationsUseRemote(t *testing.T) {
	o, fake, store := loadedRemote(t)
	ctx := context.Background()

	p, err := o.AddProject(ctx, model.ProjectInput{Name: "Site"})
	require.NoError(t, err)
	assert.Equal(t, "104", p.ID, "ids 101-103 went to the seeded templates")
	assert.Equal(t, model.ProjectActive, p.Status)

	edited, err := o.EditProject(ctx, p.ID, model.ProjectPatch{Domain: strPtr("site.test")})
	require.NoError(t, err)
	assert.Equal(t, "site.test", edited.Domain)
	assert.Equal(t, "site.test", o.Projects()[0].Domain)

	assert.Len(t, fake.projects, 1)
	localProjects, err := store.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, localProjects, "remote writes do not touch local storage")
	assert.True(t, o.IsDatabaseAvailable())
}

func TestFallbackAfterRemoteFailure(t *testing.T) {
	o, fake, store := loadedRemote(t)
	ctx := context.Background()

	fake.setFail(errUnreachable)
	task, err := o.AddTask(ctx, model.TaskInput{Title: "Offline task"})
	require.NoError(t, err)
	assert.False(t, o.IsDatabaseAvailable())
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)

	stored, err := store.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, task.ID, stored[0].ID)

	// The flag is sticky: once down, the remote store is not tried again.
	fake.setFail(nil)
	calls := fake.callCount()
	_, err = o.AddProject(ctx, model.ProjectInput{Name: "Still local"})
	require.NoError(t, err)
	assert.Equal(t, calls, fake.callCount())
	assert.False(t, o.IsDatabaseAvailable())
	assert.Empty(t, fake.projects)

	require.Len(t, o.Tasks(), 1)
	require.Len(t, o.Projects(), 1)
}

func TestConstraintViolationLoggedAsError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
		msg   string
	}{
		{
			name:  "constraint",
			err:   &remote.Error{Op: "create", Table: "accounts", Err: remote.ErrForeignKey},
			level: "level=ERROR",
			msg:   "remote store rejected the write",
		},
		{
			name:  "connection",
			err:   errUnreachable,
			level: "level=WARN",
			msg:   "remote store failed, switching to local storage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			fake := newFakeRemote()
			o := New(fake, newLocal(), WithLogger(logger.New(&buf, logger.LevelNormal)))
			ctx := context.Background()
			require.NoError(t, o.LoadData(ctx))

			fake.setFail(tt.err)
			_, err := o.AddProject(ctx, model.ProjectInput{Name: "Site"})
			require.NoError(t, err)
			assert.False(t, o.IsDatabaseAvailable())
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), tt.msg)
		})
	}
}

func TestEveryMutationFallsBack(t *testing.T) {
	o, fake, _ := loadedRemote(t)
	ctx := context.Background()
	fake.setFail(errUnreachable)

	p, err := o.AddProject(ctx, model.ProjectInput{Name: "P"})
	require.NoError(t, err)
	_, err = o.EditProject(ctx, p.ID, model.ProjectPatch{Name: strPtr("P2")})
	require.NoError(t, err)

	a, err := o.AddAccount(ctx, model.AccountInput{ProjectID: p.ID, Username: "u", Password: "pw", Website: "w"})
	require.NoError(t, err)
	_, err = o.EditAccount(ctx, a.ID, model.AccountPatch{Notes: strPtr("n")})
	require.NoError(t, err)
	require.NoError(t, o.RemoveAccount(ctx, a.ID))

	e, err := o.AddEmailTemplate(ctx, model.EmailTemplateInput{Name: "done", Type: model.EmailTemplateTaskCompleted, Subject: "s"})
	require.NoError(t, err)
	_, err = o.EditEmailTemplate(ctx, e.ID, model.EmailTemplatePatch{Subject: strPtr("s2")})
	require.NoError(t, err)

	c, err := o.AddCodeComponent(ctx, model.CodeComponentInput{Name: "Hero", CodeJSON: json.RawMessage(`{}`)})
	require.NoError(t, err)
	_, err = o.EditCodeComponent(ctx, c.ID, model.CodeComponentPatch{Tags: []string{"ui"}})
	require.NoError(t, err)

	r, err := o.AddReportTemplate(ctx, model.ReportTemplateInput{Name: "Mine", TemplateData: json.RawMessage(`{"fields":[]}`)})
	require.NoError(t, err)
	_, err = o.EditReportTemplate(ctx, r.ID, model.ReportTemplatePatch{Name: strPtr("Mine 2")})
	require.NoError(t, err)
	require.NoError(t, o.RemoveReportTemplate(ctx, r.ID))

	s, err := o.UpdateSettings(ctx, model.SettingsPatch{Theme: strPtr("dark")})
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, "dark", o.Settings().Theme)

	require.NoError(t, o.RemoveEmailTemplate(ctx, e.ID))
	require.NoError(t, o.RemoveCodeComponent(ctx, c.ID))
	require.NoError(t, o.RemoveProject(ctx, p.ID))

	assert.Empty(t, o.Projects())
	assert.Empty(t, o.Accounts())
	assert.Empty(t, o.EmailTemplates())
	assert.Empty(t, o.CodeComponents())
	assert.Len(t, o.ReportTemplates(), 3)
	assert.False(t, o.IsDatabaseAvailable())
}

func TestToggleAdoptsRemoteRecord(t *testing.T) {
	fake := newFakeRemote()
	fake.tasks = []remote.TaskRow{{ID: 7, Title: "Draft proposal", Priority: "high", Status: "todo"}}
	store := newLocal()
	o := New(fake, store, WithLogger(logger.Nop()))
	ctx := context.Background()
	require.NoError(t, o.LoadData(ctx))

	fake.setFail(errUnreachable)
	change, err := o.ToggleTask(ctx, "7")
	require.NoError(t, err)
	assert.True(t, change.Completed())
	assert.False(t, change.Before.Completed)
	assert.True(t, change.After.Completed)
	assert.Equal(t, model.StatusDone, change.After.Status)
	assert.False(t, o.IsDatabaseAvailable())

	task, ok := o.Task("7")
	require.True(t, ok)
	assert.True(t, task.Completed)
	assert.Equal(t, model.StatusDone, task.Status)

	stored, err := store.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Draft proposal", stored[0].Title)
	assert.True(t, stored[0].Completed)

	change, err = o.ToggleTask(ctx, "7")
	require.NoError(t, err)
	assert.False(t, change.Completed())
	assert.Equal(t, model.StatusTodo, change.After.Status)
}

func TestToggleRemote(t *testing.T) {
	fake := newFakeRemote()
	fake.tasks = []remote.TaskRow{{ID: 7, Title: "Draft proposal", Priority: "high", Status: "in-progress"}}
	o := New(fake, newLocal(), WithLogger(logger.Nop()))
	ctx := context.Background()
	require.NoError(t, o.LoadData(ctx))

	change, err := o.ToggleTask(ctx, "7")
	require.NoError(t, err)
	assert.True(t, change.Completed())
	assert.Equal(t, model.StatusDone, change.After.Status)
	assert.True(t, fake.tasks[0].Completed)
	assert.True(t, o.IsDatabaseAvailable())

	_, err = o.ToggleTask(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestToggleRoundTripKeepsFields(t *testing.T) {
	tests := []struct {
		name   string
		remote func() RemoteStore
		mode   Mode
	}{
		{name: "local only", remote: func() RemoteStore { return nil }, mode: ModeLocalOnly},
		{name: "remote", remote: func() RemoteStore { return newFakeRemote() }, mode: ModeRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New(tt.remote(), newLocal(), WithLogger(logger.Nop()))
			ctx := context.Background()
			require.NoError(t, o.LoadData(ctx))
			require.Equal(t, tt.mode, o.Mode())

			task, err := o.AddTask(ctx, model.TaskInput{
				Title: "Draft proposal", Priority: model.PriorityHigh, Date: "2025-01-10", Status: model.StatusTodo,
			})
			require.NoError(t, err)

			assertFields := func(t *testing.T, got model.Task, completed bool) {
				t.Helper()
				assert.Equal(t, "Draft proposal", got.Title)
				assert.Equal(t, model.PriorityHigh, got.Priority)
				assert.Equal(t, "2025-01-10", got.Date)
				assert.Equal(t, completed, got.Completed)
			}

			change, err := o.ToggleTask(ctx, task.ID)
			require.NoError(t, err)
			assertFields(t, change.After, true)
			stored, ok := o.Task(task.ID)
			require.True(t, ok)
			assertFields(t, stored, true)

			change, err = o.ToggleTask(ctx, task.ID)
			require.NoError(t, err)
			assertFields(t, change.After, false)
			stored, ok = o.Task(task.ID)
			require.True(t, ok)
			assertFields(t, stored, false)

			assert.Equal(t, tt.mode == ModeRemote, o.IsDatabaseAvailable())
		})
	}
}

func TestEditTaskClearsDate(t *testing.T) {
	o, _, _ := loadedRemote(t)
	ctx := context.Background()

	task, err := o.AddTask(ctx, model.TaskInput{Title: "Dated", Date: "2025-01-10"})
	require.NoError(t, err)

	edited, err := o.EditTask(ctx, task.ID, model.TaskPatch{Date: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, edited.Date)
	assert.True(t, o.IsDatabaseAvailable())
}

func TestEmptyProjectReferenceIsDomainError(t *testing.T) {
	o, fake, store := loadedRemote(t)
	ctx := context.Background()

	task, err := o.AddTask(ctx, model.TaskInput{Title: "Orphan"})
	require.NoError(t, err)
	component, err := o.AddCodeComponent(ctx, model.CodeComponentInput{Name: "Hero"})
	require.NoError(t, err)

	calls := fake.callCount()
	_, err = o.EditTask(ctx, task.ID, model.TaskPatch{ProjectID: strPtr("")})
	assert.ErrorIs(t, err, model.ErrInvalid)
	_, err = o.EditCodeComponent(ctx, component.ID, model.CodeComponentPatch{ProjectID: strPtr("")})
	assert.ErrorIs(t, err, model.ErrInvalid)
	assert.Equal(t, calls, fake.callCount())
	assert.True(t, o.IsDatabaseAvailable())

	localOnly := New(nil, store, WithLogger(logger.Nop()))
	require.NoError(t, localOnly.LoadData(ctx))
	offline, err := localOnly.AddTask(ctx, model.TaskInput{Title: "Local"})
	require.NoError(t, err)
	_, err = localOnly.EditTask(ctx, offline.ID, model.TaskPatch{ProjectID: strPtr("")})
	assert.ErrorIs(t, err, model.ErrInvalid)
	got, ok := localOnly.Task(offline.ID)
	require.True(t, ok)
	assert.Nil(t, got.ProjectID)
}

func TestMoveTask(t *testing.T) {
	o := New(nil, newLocal(), WithLogger(logger.Nop()))
	ctx := context.Background()
	require.NoError(t, o.LoadData(ctx))

	task, err := o.AddTask(ctx, model.TaskInput{Title: "Card"})
	require.NoError(t, err)

	change, err := o.MoveTask(ctx, task.ID, model.StatusInProgress)
	require.NoError(t, err)
	assert.False(t, change.After.Completed)
	assert.Equal(t, model.StatusInProgress, change.After.Status)

	change, err = o.MoveTask(ctx, task.ID, model.StatusDone)
	require.NoError(t, err)
	assert.True(t, change.Completed())

	change, err = o.MoveTask(ctx, task.ID, model.StatusTodo)
	require.NoError(t, err)
	assert.False(t, change.After.Completed)

	_, err = o.MoveTask(ctx, task.ID, "archived")
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestDomainErrorsDoNotFallBack(t *testing.T) {
	o, fake, store := loadedRemote(t)
	ctx := context.Background()

	_, err := o.EditProject(ctx, "999", model.ProjectPatch{Name: strPtr("ghost")})
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.True(t, o.IsDatabaseAvailable())

	def := o.ReportTemplates()[0]
	err = o.RemoveReportTemplate(ctx, def.ID)
	assert.ErrorIs(t, err, model.ErrDefaultTemplate)
	assert.Len(t, o.ReportTemplates(), 3)

	calls := fake.callCount()
	_, err = o.AddProject(ctx, model.ProjectInput{Name: "  "})
	assert.ErrorIs(t, err, model.ErrInvalid)
	_, err = o.AddTask(ctx, model.TaskInput{Title: "bad date", Date: "03/02/2025"})
	assert.ErrorIs(t, err, model.ErrInvalid)
	assert.Equal(t, calls, fake.callCount(), "invalid input never reaches a store")

	localProjects, err := store.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, localProjects)
	assert.True(t, o.IsDatabaseAvailable())
}

func TestDefaultTemplateProtectedLocally(t *testing.T) {
	o, fake, _ := loadedRemote(t)
	ctx := context.Background()
	fake.setFail(errUnreachable)

	def := o.ReportTemplates()[0]
	err := o.RemoveReportTemplate(ctx, def.ID)
	assert.ErrorIs(t, err, model.ErrDefaultTemplate)
	assert.Len(t, o.ReportTemplates(), 3)
}

func TestRemoveProjectCascadesInMemory(t *testing.T) {
	o := New(nil, newLocal(), WithLogger(logger.Nop()))
	ctx := context.Background()
	require.NoError(t, o.LoadData(ctx))

	p, err := o.AddProject(ctx, model.ProjectInput{Name: "Site"})
	require.NoError(t, err)
	other, err := o.AddProject(ctx, model.ProjectInput{Name: "Other"})
	require.NoError(t, err)
	_, err = o.AddAccount(ctx, model.AccountInput{ProjectID: p.ID, Username: "u", Password: "pw", Website: "w"})
	require.NoError(t, err)
	_, err = o.AddAccount(ctx, model.AccountInput{ProjectID: other.ID, Username: "u", Password: "pw", Website: "w"})
	require.NoError(t, err)
	task, err := o.AddTask(ctx, model.TaskInput{ProjectID: &p.ID, Title: "t"})
	require.NoError(t, err)

	assert.Len(t, o.AccountsForProject(p.ID), 1)
	require.NoError(t, o.RemoveProject(ctx, p.ID))

	assert.Len(t, o.Projects(), 1)
	assert.Empty(t, o.AccountsForProject(p.ID))
	assert.Len(t, o.Accounts(), 1)
	got, ok := o.Task(task.ID)
	require.True(t, ok)
	assert.Nil(t, got.ProjectID)
}

func TestBoard(t *testing.T) {
	o := New(nil, newLocal(), WithLogger(logger.Nop()))
	ctx := context.Background()
	require.NoError(t, o.LoadData(ctx))

	_, err := o.AddTask(ctx, model.TaskInput{Title: "a"})
	require.NoError(t, err)
	_, err = o.AddTask(ctx, model.TaskInput{Title: "b", Status: model.StatusInProgress})
	require.NoError(t, err)
	_, err = o.AddTask(ctx, model.TaskInput{Title: "c", Completed: true})
	require.NoError(t, err)

	board := o.Board()
	require.Len(t, board, 3)
	assert.Equal(t, model.StatusTodo, board[0].Status)
	assert.Len(t, board[0].Tasks, 1)
	assert.Len(t, board[1].Tasks, 1)
	assert.Len(t, board[2].Tasks, 1)
	assert.Equal(t, "c", board[2].Tasks[0].Title)
}

func TestReadersReturnCopies(t *testing.T) {
	o := New(nil, newLocal(), WithLogger(logger.Nop()))
	ctx := context.Background()
	require.NoError(t, o.LoadData(ctx))
	_, err := o.AddProject(ctx, model.ProjectInput{Name: "Site"})
	require.NoError(t, err)

	got := o.Projects()
	got[0].Name = "changed"
	assert.Equal(t, "Site", o.Projects()[0].Name)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "init", ModeInit.String())
	assert.Equal(t, "local-only", ModeLocalOnly.String())
	assert.Equal(t, "remote", ModeRemote.String())
}
