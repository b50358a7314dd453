package orchestrator

import "github.com/eleven-am/taskdeck/internal/model"

func (o *Orchestrator) Projects() []model.Project             { return snapshot(o, projects) }
func (o *Orchestrator) Accounts() []model.Account             { return snapshot(o, accounts) }
func (o *Orchestrator) Tasks() []model.Task                   { return snapshot(o, tasks) }
func (o *Orchestrator) EmailTemplates() []model.EmailTemplate { return snapshot(o, emailTemplates) }
func (o *Orchestrator) CodeComponents() []model.CodeComponent { return snapshot(o, codeComponents) }

func (o *Orchestrator) ReportTemplates() []model.ReportTemplate {
	return snapshot(o, reportTemplates)
}

func (o *Orchestrator) AccountsForProject(projectID string) []model.Account {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := []model.Account{}
	for _, a := range o.state.accounts {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out
}

func (o *Orchestrator) Task(id string) (model.Task, bool) {
	return lookup(o, tasks, id)
}

// EmailTemplateByType returns the first template of the given type.
func (o *Orchestrator) EmailTemplateByType(typ string) (model.EmailTemplate, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, e := range o.state.emailTemplates {
		if e.Type == typ {
			return e, true
		}
	}
	return model.EmailTemplate{}, false
}

func (o *Orchestrator) Settings() model.Settings {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.settings
}

func (o *Orchestrator) IsDatabaseAvailable() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.available
}

func (o *Orchestrator) Mode() Mode {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.mode
}

// Column is one Kanban column.
type Column struct {
	Status model.TaskStatus `json:"status"`
	Tasks  []model.Task     `json:"tasks"`
}

// Board groups tasks into the Kanban columns, in display order. A task with
// an unknown status lands in the column its completion flag implies.
func (o *Orchestrator) Board() []Column {
	o.mu.RLock()
	defer o.mu.RUnlock()

	index := make(map[model.TaskStatus]int, len(model.BoardColumns))
	board := make([]Column, len(model.BoardColumns))
	for i, s := range model.BoardColumns {
		index[s] = i
		board[i] = Column{Status: s, Tasks: []model.Task{}}
	}
	for _, t := range o.state.tasks {
		status := t.Status
		if !status.Valid() {
			status = model.StatusFor(t.Completed)
		}
		i := index[status]
		board[i].Tasks = append(board[i].Tasks, t)
	}
	return board
}
