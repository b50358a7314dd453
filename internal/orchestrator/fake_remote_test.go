package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/eleven-am/taskdeck/internal/model"
	"github.com/eleven-am/taskdeck/internal/remote"
)

var errUnreachable = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// fakeRemote is an in-memory RemoteStore. Setting fail makes every call
// return that error.
type fakeRemote struct {
	mu     sync.Mutex
	fail   error
	nextID int64
	calls  int

	projects        []remote.ProjectRow
	accounts        []remote.AccountRow
	tasks           []remote.TaskRow
	emailTemplates  []remote.EmailTemplateRow
	codeComponents  []remote.CodeComponentRow
	reportTemplates []remote.ReportTemplateRow
	settings        *remote.SettingsRow
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{nextID: 100}
}

func (f *fakeRemote) begin() error {
	f.mu.Lock()
	f.calls++
	return f.fail
}

func (f *fakeRemote) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRemote) setFail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeRemote) Configured() bool { return true }

func (f *fakeRemote) TestConnection(context.Context) error {
	defer f.mu.Unlock()
	return f.begin()
}

func (f *fakeRemote) InitializeTables(context.Context) error {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	if len(f.reportTemplates) == 0 {
		for _, in := range model.DefaultReportTemplates() {
			f.reportTemplates = append(f.reportTemplates, remote.ReportTemplateRow{
				ID: f.id(), Name: in.Name, TemplateData: remote.JSONData(in.TemplateData),
				Category: in.Category, IsDefault: true, CreatedBy: in.CreatedBy,
			})
		}
	}
	if f.settings == nil {
		d := model.DefaultSettings()
		f.settings = &remote.SettingsRow{
			ID: 1, UserID: d.UserID, Language: d.Language, Theme: d.Theme,
			Notifications: remote.JSONData(d.Notifications), CustomColors: remote.JSONData(d.CustomColors),
		}
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (f *fakeRemote) ListProjects(context.Context) ([]remote.ProjectRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]remote.ProjectRow(nil), f.projects...), nil
}

func (f *fakeRemote) CreateProject(_ context.Context, in remote.ProjectCreate) (*remote.ProjectRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	row := remote.ProjectRow{ID: f.id(), Name: in.Name, Domain: in.Domain, FigmaLink: in.FigmaLink,
		Description: in.Description, Status: in.Status, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.projects = append([]remote.ProjectRow{row}, f.projects...)
	return &row, nil
}

func (f *fakeRemote) UpdateProject(_ context.Context, id int64, in remote.ProjectUpdate) (*remote.ProjectRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			r := &f.projects[i]
			set(&r.Name, in.Name)
			set(&r.Domain, in.Domain)
			set(&r.FigmaLink, in.FigmaLink)
			set(&r.Description, in.Description)
			set(&r.Status, in.Status)
			row := *r
			return &row, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeRemote) DeleteProject(_ context.Context, id int64) error {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeRemote) ListAccounts(context.Context) ([]remote.AccountRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]remote.AccountRow(nil), f.accounts...), nil
}

func (f *fakeRemote) CreateAccount(_ context.Context, in remote.AccountCreate) (*remote.AccountRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	row := remote.AccountRow{ID: f.id(), ProjectID: in.ProjectID, Username: in.Username, Password: in.Password,
		Email: in.Email, Website: in.Website, Notes: in.Notes, CreatedAt: time.Now()}
	f.accounts = append([]remote.AccountRow{row}, f.accounts...)
	return &row, nil
}

func (f *fakeRemote) UpdateAccount(context.Context, int64, remote.AccountUpdate) (*remote.AccountRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return nil, model.ErrNotFound
}

func (f *fakeRemote) DeleteAccount(context.Context, int64) error {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	return model.ErrNotFound
}

func (f *fakeRemote) ListTasks(context.Context) ([]remote.TaskRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]remote.TaskRow(nil), f.tasks...), nil
}

func (f *fakeRemote) CreateTask(_ context.Context, in remote.TaskCreate) (*remote.TaskRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	row := remote.TaskRow{ID: f.id(), ProjectID: in.ProjectID, Title: in.Title, Description: in.Description,
		Priority: in.Priority, Status: in.Status, Completed: in.Completed, Date: in.Date,
		EstimatedTime: in.EstimatedTime, ActualTime: in.ActualTime, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.tasks = append([]remote.TaskRow{row}, f.tasks...)
	return &row, nil
}

func (f *fakeRemote) UpdateTask(_ context.Context, id int64, in remote.TaskUpdate) (*remote.TaskRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			r := &f.tasks[i]
			if in.ProjectID != nil {
				pid := *in.ProjectID
				r.ProjectID = &pid
			}
			set(&r.Title, in.Title)
			set(&r.Description, in.Description)
			set(&r.Priority, in.Priority)
			set(&r.Status, in.Status)
			set(&r.Completed, in.Completed)
			set(&r.Date, in.Date)
			set(&r.EstimatedTime, in.EstimatedTime)
			set(&r.ActualTime, in.ActualTime)
			row := *r
			return &row, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeRemote) DeleteTask(_ context.Context, id int64) error {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeRemote) ListEmailTemplates(context.Context) ([]remote.EmailTemplateRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]remote.EmailTemplateRow(nil), f.emailTemplates...), nil
}

func (f *fakeRemote) CreateEmailTemplate(_ context.Context, in remote.EmailTemplateCreate) (*remote.EmailTemplateRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	row := remote.EmailTemplateRow{ID: f.id(), Name: in.Name, Type: in.Type, Subject: in.Subject, Content: in.Content, CreatedAt: time.Now()}
	f.emailTemplates = append([]remote.EmailTemplateRow{row}, f.emailTemplates...)
	return &row, nil
}

func (f *fakeRemote) UpdateEmailTemplate(context.Context, int64, remote.EmailTemplateUpdate) (*remote.EmailTemplateRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return nil, model.ErrNotFound
}

func (f *fakeRemote) DeleteEmailTemplate(context.Context, int64) error {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	return model.ErrNotFound
}

func (f *fakeRemote) ListCodeComponents(context.Context) ([]remote.CodeComponentRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]remote.CodeComponentRow(nil), f.codeComponents...), nil
}

func (f *fakeRemote) CreateCodeComponent(_ context.Context, in remote.CodeComponentCreate) (*remote.CodeComponentRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	row := remote.CodeComponentRow{ID: f.id(), ProjectID: in.ProjectID, Name: in.Name, Tags: in.Tags,
		CodeJSON: in.CodeJSON, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.codeComponents = append([]remote.CodeComponentRow{row}, f.codeComponents...)
	return &row, nil
}

func (f *fakeRemote) UpdateCodeComponent(context.Context, int64, remote.CodeComponentUpdate) (*remote.CodeComponentRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return nil, model.ErrNotFound
}

func (f *fakeRemote) DeleteCodeComponent(context.Context, int64) error {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	return model.ErrNotFound
}

func (f *fakeRemote) ListReportTemplates(context.Context) ([]remote.ReportTemplateRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]remote.ReportTemplateRow(nil), f.reportTemplates...), nil
}

func (f *fakeRemote) CreateReportTemplate(_ context.Context, in remote.ReportTemplateCreate) (*remote.ReportTemplateRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	row := remote.ReportTemplateRow{ID: f.id(), Name: in.Name, TemplateData: in.TemplateData, CreatedBy: in.CreatedBy}
	f.reportTemplates = append(f.reportTemplates, row)
	return &row, nil
}

func (f *fakeRemote) UpdateReportTemplate(context.Context, int64, remote.ReportTemplateUpdate) (*remote.ReportTemplateRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return nil, model.ErrNotFound
}

func (f *fakeRemote) DeleteReportTemplate(_ context.Context, id int64) error {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	for i := range f.reportTemplates {
		if f.reportTemplates[i].ID == id {
			if f.reportTemplates[i].IsDefault {
				return model.ErrDefaultTemplate
			}
			f.reportTemplates = append(f.reportTemplates[:i], f.reportTemplates[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeRemote) GetSettings(context.Context) (*remote.SettingsRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	if f.settings == nil {
		return nil, model.ErrNotFound
	}
	row := *f.settings
	return &row, nil
}

func (f *fakeRemote) UpdateSettings(_ context.Context, in remote.SettingsUpdate) (*remote.SettingsRow, error) {
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	if f.settings == nil {
		return nil, model.ErrNotFound
	}
	set(&f.settings.Language, in.Language)
	set(&f.settings.Theme, in.Theme)
	if len(in.Notifications) > 0 {
		f.settings.Notifications = in.Notifications
	}
	if len(in.CustomColors) > 0 {
		f.settings.CustomColors = in.CustomColors
	}
	row := *f.settings
	return &row, nil
}
