package mapper

import (
	"github.com/eleven-am/taskdeck/internal/model"
	"github.com/eleven-am/taskdeck/internal/remote"
)

// ProjectToInput and the other *ToInput functions recover the create input a
// record could have been made from.
func ProjectToInput(p model.Project) model.ProjectInput {
	return model.ProjectInput{
		Name:        p.Name,
		Domain:      p.Domain,
		FigmaLink:   p.FigmaLink,
		Description: p.Description,
		Status:      p.Status,
	}
}

func AccountToInput(a model.Account) model.AccountInput {
	return model.AccountInput{
		ProjectID: a.ProjectID,
		Username:  a.Username,
		Password:  a.Password,
		Email:     a.Email,
		Website:   a.Website,
		Notes:     a.Notes,
	}
}

func TaskToInput(t model.Task) model.TaskInput {
	return model.TaskInput{
		ProjectID:     t.ProjectID,
		Title:         t.Title,
		Description:   t.Description,
		Priority:      t.Priority,
		Status:        t.Status,
		Completed:     t.Completed,
		Date:          t.Date,
		EstimatedTime: t.EstimatedTime,
		ActualTime:    t.ActualTime,
	}
}

func EmailTemplateToInput(e model.EmailTemplate) model.EmailTemplateInput {
	return model.EmailTemplateInput{Name: e.Name, Type: e.Type, Subject: e.Subject, Content: e.Content}
}

func CodeComponentToInput(c model.CodeComponent) model.CodeComponentInput {
	return model.CodeComponentInput{
		ProjectID:     c.ProjectID,
		Name:          c.Name,
		Description:   c.Description,
		Category:      c.Category,
		Tags:          c.Tags,
		CodeJSON:      c.CodeJSON,
		PreviewImage:  c.PreviewImage,
		ElementorData: c.ElementorData,
	}
}

func ReportTemplateToInput(r model.ReportTemplate) model.ReportTemplateInput {
	return model.ReportTemplateInput{
		Name:         r.Name,
		Description:  r.Description,
		TemplateData: r.TemplateData,
		Category:     r.Category,
		CreatedBy:    r.CreatedBy,
	}
}

// Create inputs.

func ProjectCreateToRemote(in model.ProjectInput) remote.ProjectCreate {
	in = in.Normalize()
	return remote.ProjectCreate{
		Name:        in.Name,
		Domain:      in.Domain,
		FigmaLink:   in.FigmaLink,
		Description: in.Description,
		Status:      string(in.Status),
	}
}

func AccountCreateToRemote(in model.AccountInput) (remote.AccountCreate, error) {
	projectID, err := ParseID(in.ProjectID)
	if err != nil {
		return remote.AccountCreate{}, err
	}
	return remote.AccountCreate{
		ProjectID: projectID,
		Username:  in.Username,
		Password:  in.Password,
		Email:     in.Email,
		Website:   in.Website,
		Notes:     in.Notes,
	}, nil
}

func TaskCreateToRemote(in model.TaskInput) (remote.TaskCreate, error) {
	in = in.Normalize()
	projectID, err := parseOptionalID(in.ProjectID)
	if err != nil {
		return remote.TaskCreate{}, err
	}
	return remote.TaskCreate{
		ProjectID:     projectID,
		Title:         in.Title,
		Description:   in.Description,
		Priority:      string(in.Priority),
		Status:        string(in.Status),
		Completed:     in.Completed,
		Date:          in.Date,
		EstimatedTime: in.EstimatedTime,
		ActualTime:    in.ActualTime,
	}, nil
}

func EmailTemplateCreateToRemote(in model.EmailTemplateInput) remote.EmailTemplateCreate {
	return remote.EmailTemplateCreate{Name: in.Name, Type: in.Type, Subject: in.Subject, Content: in.Content}
}

func CodeComponentCreateToRemote(in model.CodeComponentInput) (remote.CodeComponentCreate, error) {
	projectID, err := parseOptionalID(in.ProjectID)
	if err != nil {
		return remote.CodeComponentCreate{}, err
	}
	return remote.CodeComponentCreate{
		ProjectID:     projectID,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Tags:          in.Tags,
		CodeJSON:      remote.JSONData(in.CodeJSON),
		PreviewImage:  in.PreviewImage,
		ElementorData: remote.JSONData(in.ElementorData),
	}, nil
}

func ReportTemplateCreateToRemote(in model.ReportTemplateInput) remote.ReportTemplateCreate {
	return remote.ReportTemplateCreate{
		Name:         in.Name,
		Description:  in.Description,
		TemplateData: remote.JSONData(in.TemplateData),
		Category:     in.Category,
		CreatedBy:    in.CreatedBy,
	}
}
