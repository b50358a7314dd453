package local

import (
	"context"
	"time"

	"github.com/eleven-am/taskdeck/internal/model"
)

func projectID(p *model.Project) string             { return p.ID }
func accountID(a *model.Account) string             { return a.ID }
func taskID(t *model.Task) string                   { return t.ID }
func emailTemplateID(e *model.EmailTemplate) string { return e.ID }
func codeComponentID(c *model.CodeComponent) string { return c.ID }
func reportTemplateID(r *model.ReportTemplate) string {
	return r.ID
}

// Projects

func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	return list[model.Project](ctx, s, KeyProjects)
}

func (s *Store) CreateProject(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	in = in.Normalize()
	rec := model.Project{
		Name:        in.Name,
		Domain:      in.Domain,
		FigmaLink:   in.FigmaLink,
		Description: in.Description,
		Status:      in.Status,
	}
	return create(ctx, s, KeyProjects, rec, func(p *model.Project, id string, now time.Time) {
		p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
	})
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	return update(ctx, s, KeyProjects, id, projectID, func(p *model.Project, now time.Time) {
		patch.Apply(p)
		p.UpdatedAt = now
	})
}

// DeleteProject mirrors the remote foreign keys: the project's accounts go
// with it and its tasks and code components are detached. The collections
// are written one after another, not atomically.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := remove(ctx, s, KeyProjects, id, projectID, nil); err != nil {
		return err
	}

	if err := rewrite(ctx, s, KeyAccounts, func(items []model.Account) []model.Account {
		kept := items[:0]
		for _, a := range items {
			if a.ProjectID != id {
				kept = append(kept, a)
			}
		}
		return kept
	}); err != nil {
		return err
	}

	if err := rewrite(ctx, s, KeyTasks, func(items []model.Task) []model.Task {
		for i := range items {
			if items[i].ProjectID != nil && *items[i].ProjectID == id {
				items[i].ProjectID = nil
			}
		}
		return items
	}); err != nil {
		return err
	}

	return rewrite(ctx, s, KeyCodeComponents, func(items []model.CodeComponent) []model.CodeComponent {
		for i := range items {
			if items[i].ProjectID != nil && *items[i].ProjectID == id {
				items[i].ProjectID = nil
			}
		}
		return items
	})
}

func (s *Store) PutProject(ctx context.Context, p model.Project) error {
	return put(ctx, s, KeyProjects, p, projectID)
}

// Accounts

func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return list[model.Account](ctx, s, KeyAccounts)
}

func (s *Store) CreateAccount(ctx context.Context, in model.AccountInput) (model.Account, error) {
	rec := model.Account{
		ProjectID: in.ProjectID,
		Username:  in.Username,
		Password:  in.Password,
		Email:     in.Email,
		Website:   in.Website,
		Notes:     in.Notes,
	}
	return create(ctx, s, KeyAccounts, rec, func(a *model.Account, id string, now time.Time) {
		a.ID, a.CreatedAt = id, now
	})
}

func (s *Store) UpdateAccount(ctx context.Context, id string, patch model.AccountPatch) (model.Account, error) {
	return update(ctx, s, KeyAccounts, id, accountID, func(a *model.Account, _ time.Time) {
		patch.Apply(a)
	})
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(ctx, s, KeyAccounts, id, accountID, nil)
}

func (s *Store) PutAccount(ctx context.Context, a model.Account) error {
	return put(ctx, s, KeyAccounts, a, accountID)
}

// Tasks

func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	return list[model.Task](ctx, s, KeyTasks)
}

func (s *Store) CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	in = in.Normalize()
	rec := model.Task{
		ProjectID:     in.ProjectID,
		Title:         in.Title,
		Description:   in.Description,
		Priority:      in.Priority,
		Status:        in.Status,
		Completed:     in.Completed,
		Date:          in.Date,
		EstimatedTime: in.EstimatedTime,
		ActualTime:    in.ActualTime,
	}
	return create(ctx, s, KeyTasks, rec, func(t *model.Task, id string, now time.Time) {
		t.ID, t.CreatedAt, t.UpdatedAt = id, now, now
	})
}

func (s *Store) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	return update(ctx, s, KeyTasks, id, taskID, func(t *model.Task, now time.Time) {
		patch.Apply(t)
		t.UpdatedAt = now
	})
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(ctx, s, KeyTasks, id, taskID, nil)
}

func (s *Store) PutTask(ctx context.Context, t model.Task) error {
	return put(ctx, s, KeyTasks, t, taskID)
}

// Email templates

func (s *Store) ListEmailTemplates(ctx context.Context) ([]model.EmailTemplate, error) {
	return list[model.EmailTemplate](ctx, s, KeyEmailTemplates)
}

func (s *Store) CreateEmailTemplate(ctx context.Context, in model.EmailTemplateInput) (model.EmailTemplate, error) {
	rec := model.EmailTemplate{Name: in.Name, Type: in.Type, Subject: in.Subject, Content: in.Content}
	return create(ctx, s, KeyEmailTemplates, rec, func(e *model.EmailTemplate, id string, now time.Time) {
		e.ID, e.CreatedAt = id, now
	})
}

func (s *Store) UpdateEmailTemplate(ctx context.Context, id string, patch model.EmailTemplatePatch) (model.EmailTemplate, error) {
	return update(ctx, s, KeyEmailTemplates, id, emailTemplateID, func(e *model.EmailTemplate, _ time.Time) {
		patch.Apply(e)
	})
}

func (s *Store) DeleteEmailTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(ctx, s, KeyEmailTemplates, id, emailTemplateID, nil)
}

func (s *Store) PutEmailTemplate(ctx context.Context, e model.EmailTemplate) error {
	return put(ctx, s, KeyEmailTemplates, e, emailTemplateID)
}

// Code components

func (s *Store) ListCodeComponents(ctx context.Context) ([]model.CodeComponent, error) {
	return list[model.CodeComponent](ctx, s, KeyCodeComponents)
}

func (s *Store) CreateCodeComponent(ctx context.Context, in model.CodeComponentInput) (model.CodeComponent, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	rec := model.CodeComponent{
		ProjectID:     in.ProjectID,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Tags:          tags,
		CodeJSON:      in.CodeJSON,
		PreviewImage:  in.PreviewImage,
		ElementorData: in.ElementorData,
	}
	return create(ctx, s, KeyCodeComponents, rec, func(c *model.CodeComponent, id string, now time.Time) {
		c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
	})
}

func (s *Store) UpdateCodeComponent(ctx context.Context, id string, patch model.CodeComponentPatch) (model.CodeComponent, error) {
	return update(ctx, s, KeyCodeComponents, id, codeComponentID, func(c *model.CodeComponent, now time.Time) {
		patch.Apply(c)
		c.UpdatedAt = now
	})
}

func (s *Store) DeleteCodeComponent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(ctx, s, KeyCodeComponents, id, codeComponentID, nil)
}

func (s *Store) PutCodeComponent(ctx context.Context, c model.CodeComponent) error {
	return put(ctx, s, KeyCodeComponents, c, codeComponentID)
}

// Report templates

func (s *Store) ListReportTemplates(ctx context.Context) ([]model.ReportTemplate, error) {
	return list[model.ReportTemplate](ctx, s, KeyReportTemplates)
}

// CreateReportTemplate never creates defaults; those only arrive through
// PutReportTemplate from a remote-loaded copy.
func (s *Store) CreateReportTemplate(ctx context.Context, in model.ReportTemplateInput) (model.ReportTemplate, error) {
	rec := model.ReportTemplate{
		Name:         in.Name,
		Description:  in.Description,
		TemplateData: in.TemplateData,
		Category:     in.Category,
		CreatedBy:    in.CreatedBy,
	}
	return create(ctx, s, KeyReportTemplates, rec, func(r *model.ReportTemplate, id string, now time.Time) {
		r.ID, r.CreatedAt, r.UpdatedAt = id, now, now
	})
}

func (s *Store) UpdateReportTemplate(ctx context.Context, id string, patch model.ReportTemplatePatch) (model.ReportTemplate, error) {
	return update(ctx, s, KeyReportTemplates, id, reportTemplateID, func(r *model.ReportTemplate, now time.Time) {
		patch.Apply(r)
		r.UpdatedAt = now
	})
}

func (s *Store) DeleteReportTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(ctx, s, KeyReportTemplates, id, reportTemplateID, func(r *model.ReportTemplate) error {
		if r.IsDefault {
			return model.ErrDefaultTemplate
		}
		return nil
	})
}

func (s *Store) PutReportTemplate(ctx context.Context, r model.ReportTemplate) error {
	return put(ctx, s, KeyReportTemplates, r, reportTemplateID)
}
