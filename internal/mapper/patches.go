package mapper

import (
	"github.com/eleven-am/taskdeck/internal/model"
	"github.com/eleven-am/taskdeck/internal/remote"
)

func enumString[S ~string](s *S) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func ProjectPatchToRemote(p model.ProjectPatch) remote.ProjectUpdate {
	return remote.ProjectUpdate{
		Name:        p.Name,
		Domain:      p.Domain,
		FigmaLink:   p.FigmaLink,
		Description: p.Description,
		Status:      enumString(p.Status),
	}
}

func AccountPatchToRemote(p model.AccountPatch) remote.AccountUpdate {
	return remote.AccountUpdate{
		Username: p.Username,
		Password: p.Password,
		Email:    p.Email,
		Website:  p.Website,
		Notes:    p.Notes,
	}
}

func TaskPatchToRemote(p model.TaskPatch) (remote.TaskUpdate, error) {
	projectID, err := parseOptionalID(p.ProjectID)
	if err != nil {
		return remote.TaskUpdate{}, err
	}
	return remote.TaskUpdate{
		ProjectID:     projectID,
		Title:         p.Title,
		Description:   p.Description,
		Priority:      enumString(p.Priority),
		Status:        enumString(p.Status),
		Completed:     p.Completed,
		Date:          p.Date,
		EstimatedTime: p.EstimatedTime,
		ActualTime:    p.ActualTime,
	}, nil
}

func EmailTemplatePatchToRemote(p model.EmailTemplatePatch) remote.EmailTemplateUpdate {
	return remote.EmailTemplateUpdate{Name: p.Name, Type: p.Type, Subject: p.Subject, Content: p.Content}
}

func CodeComponentPatchToRemote(p model.CodeComponentPatch) (remote.CodeComponentUpdate, error) {
	projectID, err := parseOptionalID(p.ProjectID)
	if err != nil {
		return remote.CodeComponentUpdate{}, err
	}
	return remote.CodeComponentUpdate{
		ProjectID:     projectID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Tags:          p.Tags,
		CodeJSON:      remote.JSONData(p.CodeJSON),
		PreviewImage:  p.PreviewImage,
		ElementorData: remote.JSONData(p.ElementorData),
	}, nil
}

func ReportTemplatePatchToRemote(p model.ReportTemplatePatch) remote.ReportTemplateUpdate {
	return remote.ReportTemplateUpdate{
		Name:         p.Name,
		Description:  p.Description,
		TemplateData: remote.JSONData(p.TemplateData),
		Category:     p.Category,
	}
}

func SettingsPatchToRemote(p model.SettingsPatch) remote.SettingsUpdate {
	return remote.SettingsUpdate{
		Language:      p.Language,
		Theme:         p.Theme,
		Notifications: remote.JSONData(p.Notifications),
		CustomColors:  remote.JSONData(p.CustomColors),
	}
}
