package orchestrator

import (
	"context"

	"github.com/eleven-am/taskdeck/internal/model"
	"github.com/eleven-am/taskdeck/internal/remote"
)

// RemoteStore is the primary store. *remote.Store satisfies it.
type RemoteStore interface {
	Configured() bool
	TestConnection(ctx context.Context) error
	InitializeTables(ctx context.Context) error

	ListProjects(ctx context.Context) ([]remote.ProjectRow, error)
	CreateProject(ctx context.Context, in remote.ProjectCreate) (*remote.ProjectRow, error)
	UpdateProject(ctx context.Context, id int64, in remote.ProjectUpdate) (*remote.ProjectRow, error)
	DeleteProject(ctx context.Context, id int64) error

	ListAccounts(ctx context.Context) ([]remote.AccountRow, error)
	CreateAccount(ctx context.Context, in remote.AccountCreate) (*remote.AccountRow, error)
	UpdateAccount(ctx context.Context, id int64, in remote.AccountUpdate) (*remote.AccountRow, error)
	DeleteAccount(ctx context.Context, id int64) error

	ListTasks(ctx context.Context) ([]remote.TaskRow, error)
	CreateTask(ctx context.Context, in remote.TaskCreate) (*remote.TaskRow, error)
	UpdateTask(ctx context.Context, id int64, in remote.TaskUpdate) (*remote.TaskRow, error)
	DeleteTask(ctx context.Context, id int64) error

	ListEmailTemplates(ctx context.Context) ([]remote.EmailTemplateRow, error)
	CreateEmailTemplate(ctx context.Context, in remote.EmailTemplateCreate) (*remote.EmailTemplateRow, error)
	UpdateEmailTemplate(ctx context.Context, id int64, in remote.EmailTemplateUpdate) (*remote.EmailTemplateRow, error)
	DeleteEmailTemplate(ctx context.Context, id int64) error

	ListCodeComponents(ctx context.Context) ([]remote.CodeComponentRow, error)
	CreateCodeComponent(ctx context.Context, in remote.CodeComponentCreate) (*remote.CodeComponentRow, error)
	UpdateCodeComponent(ctx context.Context, id int64, in remote.CodeComponentUpdate) (*remote.CodeComponentRow, error)
	DeleteCodeComponent(ctx context.Context, id int64) error

	ListReportTemplates(ctx context.Context) ([]remote.ReportTemplateRow, error)
	CreateReportTemplate(ctx context.Context, in remote.ReportTemplateCreate) (*remote.ReportTemplateRow, error)
	UpdateReportTemplate(ctx context.Context, id int64, in remote.ReportTemplateUpdate) (*remote.ReportTemplateRow, error)
	DeleteReportTemplate(ctx context.Context, id int64) error

	GetSettings(ctx context.Context) (*remote.SettingsRow, error)
	UpdateSettings(ctx context.Context, in remote.SettingsUpdate) (*remote.SettingsRow, error)
}

// LocalStore is the fallback store. *local.Store satisfies it.
type LocalStore interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, in model.ProjectInput) (model.Project, error)
	UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	PutProject(ctx context.Context, p model.Project) error

	ListAccounts(ctx context.Context) ([]model.Account, error)
	CreateAccount(ctx context.Context, in model.AccountInput) (model.Account, error)
	UpdateAccount(ctx context.Context, id string, patch model.AccountPatch) (model.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	PutAccount(ctx context.Context, a model.Account) error

	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error)
	UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	PutTask(ctx context.Context, t model.Task) error

	ListEmailTemplates(ctx context.Context) ([]model.EmailTemplate, error)
	CreateEmailTemplate(ctx context.Context, in model.EmailTemplateInput) (model.EmailTemplate, error)
	UpdateEmailTemplate(ctx context.Context, id string, patch model.EmailTemplatePatch) (model.EmailTemplate, error)
	DeleteEmailTemplate(ctx context.Context, id string) error
	PutEmailTemplate(ctx context.Context, e model.EmailTemplate) error

	ListCodeComponents(ctx context.Context) ([]model.CodeComponent, error)
	CreateCodeComponent(ctx context.Context, in model.CodeComponentInput) (model.CodeComponent, error)
	UpdateCodeComponent(ctx context.Context, id string, patch model.CodeComponentPatch) (model.CodeComponent, error)
	DeleteCodeComponent(ctx context.Context, id string) error
	PutCodeComponent(ctx context.Context, c model.CodeComponent) error

	ListReportTemplates(ctx context.Context) ([]model.ReportTemplate, error)
	CreateReportTemplate(ctx context.Context, in model.ReportTemplateInput) (model.ReportTemplate, error)
	UpdateReportTemplate(ctx context.Context, id string, patch model.ReportTemplatePatch) (model.ReportTemplate, error)
	DeleteReportTemplate(ctx context.Context, id string) error
	PutReportTemplate(ctx context.Context, r model.ReportTemplate) error

	GetSettings(ctx context.Context) (model.Settings, error)
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error)
}
