// Package mapper translates between remote rows (snake_case columns, integer
// ids) and the UI-facing model (camelCase, string ids).
package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/eleven-am/taskdeck/internal/model"
	"github.com/eleven-am/taskdeck/internal/remote"
)

// FormatID renders a remote id the way the UI stores ids.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID converts a UI id into a remote id. Ids minted by the local store
// are not numeric and never reach the remote store.
func ParseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q is not a remote id", model.ErrInvalid, id)
	}
	return n, nil
}

func formatOptionalID(id *int64) *string {
	if id == nil {
		return nil
	}
	s := FormatID(*id)
	return &s
}

func parseOptionalID(id *string) (*int64, error) {
	if id == nil {
		return nil, nil
	}
	n, err := ParseID(*id)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func rawJSON(j remote.JSONData) json.RawMessage {
	if len(j) == 0 {
		return nil
	}
	return json.RawMessage(j)
}

func ProjectFromRow(r remote.ProjectRow) model.Project {
	return model.Project{
		ID:          FormatID(r.ID),
		Name:        r.Name,
		Domain:      r.Domain,
		FigmaLink:   r.FigmaLink,
		Description: r.Description,
		Status:      model.ProjectStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func AccountFromRow(r remote.AccountRow) model.Account {
	return model.Account{
		ID:        FormatID(r.ID),
		ProjectID: FormatID(r.ProjectID),
		Username:  r.Username,
		Password:  r.Password,
		Email:     r.Email,
		Website:   r.Website,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
}

// TaskFromRow fills a missing status from the completion flag.
func TaskFromRow(r remote.TaskRow) model.Task {
	status := model.TaskStatus(r.Status)
	if status == "" {
		status = model.StatusFor(r.Completed)
	}
	return model.Task{
		ID:            FormatID(r.ID),
		ProjectID:     formatOptionalID(r.ProjectID),
		Title:         r.Title,
		Description:   r.Description,
		Priority:      model.TaskPriority(r.Priority),
		Status:        status,
		Completed:     r.Completed,
		Date:          r.Date,
		EstimatedTime: r.EstimatedTime,
		ActualTime:    r.ActualTime,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func EmailTemplateFromRow(r remote.EmailTemplateRow) model.EmailTemplate {
	return model.EmailTemplate{
		ID:        FormatID(r.ID),
		Name:      r.Name,
		Type:      r.Type,
		Subject:   r.Subject,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

func CodeComponentFromRow(r remote.CodeComponentRow) model.CodeComponent {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return model.CodeComponent{
		ID:            FormatID(r.ID),
		ProjectID:     formatOptionalID(r.ProjectID),
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		Tags:          tags,
		CodeJSON:      rawJSON(r.CodeJSON),
		PreviewImage:  r.PreviewImage,
		ElementorData: rawJSON(r.ElementorData),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func ReportTemplateFromRow(r remote.ReportTemplateRow) model.ReportTemplate {
	return model.ReportTemplate{
		ID:           FormatID(r.ID),
		Name:         r.Name,
		Description:  r.Description,
		TemplateData: rawJSON(r.TemplateData),
		Category:     r.Category,
		IsDefault:    r.IsDefault,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func SettingsFromRow(r remote.SettingsRow) model.Settings {
	return model.Settings{
		UserID:        r.UserID,
		Language:      r.Language,
		Theme:         r.Theme,
		Notifications: rawJSON(r.Notifications),
		CustomColors:  rawJSON(r.CustomColors),
		UpdatedAt:     r.UpdatedAt,
	}
}

// mapRows applies fn to every row; the result is never nil.
func mapRows[R, M any](rows []R, fn func(R) M) []M {
	out := make([]M, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

func Projects(rows []remote.ProjectRow) []model.Project { return mapRows(rows, ProjectFromRow) }
func Accounts(rows []remote.AccountRow) []model.Account { return mapRows(rows, AccountFromRow) }
func Tasks(rows []remote.TaskRow) []model.Task          { return mapRows(rows, TaskFromRow) }

func EmailTemplates(rows []remote.EmailTemplateRow) []model.EmailTemplate {
	return mapRows(rows, EmailTemplateFromRow)
}

func CodeComponents(rows []remote.CodeComponentRow) []model.CodeComponent {
	return mapRows(rows, CodeComponentFromRow)
}

func ReportTemplates(rows []remote.ReportTemplateRow) []model.ReportTemplate {
	return mapRows(rows, ReportTemplateFromRow)
}
