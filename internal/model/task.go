package model

import "time"

// DateLayout is the calendar-date format tasks are stored in. Dates are kept
// as strings so they never shift across time zones.
const DateLayout = "2006-01-02"

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus is the Kanban column a task sits in.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// BoardColumns lists the Kanban columns in display order.
var BoardColumns = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// StatusFor derives a status from the completion flag when none is stored.
func StatusFor(completed bool) TaskStatus {
	if completed {
		return StatusDone
	}
	return StatusTodo
}

// Task carries both Completed and Status. Writers keep them consistent;
// nothing here enforces that Status == done implies Completed.
type Task struct {
	ID            string       `json:"id"`
	ProjectID     *string      `json:"projectId"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Priority      TaskPriority `json:"priority"`
	Status        TaskStatus   `json:"status"`
	Completed     bool         `json:"completed"`
	Date          string       `json:"date,omitempty"`
	EstimatedTime int          `json:"estimatedTime,omitempty"`
	ActualTime    int          `json:"actualTime,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Done is the derived "is finished" view of a task.
func (t Task) Done() bool {
	return t.Completed || t.Status == StatusDone
}

type TaskInput struct {
	ProjectID     *string      `json:"projectId,omitempty"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Priority      TaskPriority `json:"priority,omitempty"`
	Status        TaskStatus   `json:"status,omitempty"`
	Completed     bool         `json:"completed,omitempty"`
	Date          string       `json:"date,omitempty"`
	EstimatedTime int          `json:"estimatedTime,omitempty"`
	ActualTime    int          `json:"actualTime,omitempty"`
}

func (in TaskInput) Normalize() TaskInput {
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Status == "" {
		in.Status = StatusFor(in.Completed)
	}
	return in
}

func (in TaskInput) Validate() error {
	var v errs
	v.required("title", in.Title)
	v.reference("projectId", in.ProjectID)
	if in.Priority != "" && !in.Priority.Valid() {
		v.add("priority", "must be one of low, medium, high")
	}
	if in.Status != "" && !in.Status.Valid() {
		v.add("status", "must be one of todo, in-progress, done")
	}
	validDate(&v, in.Date)
	if in.EstimatedTime < 0 {
		v.add("estimatedTime", "must not be negative")
	}
	if in.ActualTime < 0 {
		v.add("actualTime", "must not be negative")
	}
	return v.err()
}

type TaskPatch struct {
	ProjectID     *string       `json:"projectId,omitempty"`
	Title         *string       `json:"title,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Priority      *TaskPriority `json:"priority,omitempty"`
	Status        *TaskStatus   `json:"status,omitempty"`
	Completed     *bool         `json:"completed,omitempty"`
	Date          *string       `json:"date,omitempty"`
	EstimatedTime *int          `json:"estimatedTime,omitempty"`
	ActualTime    *int          `json:"actualTime,omitempty"`
}

func (p TaskPatch) Validate() error {
	var v errs
	v.reference("projectId", p.ProjectID)
	if p.Title != nil {
		v.required("title", *p.Title)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		v.add("priority", "must be one of low, medium, high")
	}
	if p.Status != nil && !p.Status.Valid() {
		v.add("status", "must be one of todo, in-progress, done")
	}
	if p.Date != nil {
		validDate(&v, *p.Date)
	}
	if p.EstimatedTime != nil && *p.EstimatedTime < 0 {
		v.add("estimatedTime", "must not be negative")
	}
	if p.ActualTime != nil && *p.ActualTime < 0 {
		v.add("actualTime", "must not be negative")
	}
	return v.err()
}

func (p TaskPatch) Apply(dst *Task) {
	if p.ProjectID != nil {
		id := *p.ProjectID
		dst.ProjectID = &id
	}
	setString(&dst.Title, p.Title)
	setString(&dst.Description, p.Description)
	if p.Priority != nil {
		dst.Priority = *p.Priority
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Completed != nil {
		dst.Completed = *p.Completed
	}
	setString(&dst.Date, p.Date)
	if p.EstimatedTime != nil {
		dst.EstimatedTime = *p.EstimatedTime
	}
	if p.ActualTime != nil {
		dst.ActualTime = *p.ActualTime
	}
}

// TogglePatch flips completion on t and moves the status with it: on goes
// to done, off takes a done task back to todo.
func TogglePatch(t Task) TaskPatch {
	completed := !t.Completed
	patch := TaskPatch{Completed: &completed}
	switch {
	case completed:
		s := StatusDone
		patch.Status = &s
	case t.Status == StatusDone:
		s := StatusTodo
		patch.Status = &s
	}
	return patch
}

// MovePatch places a task in a board column, deriving completion from it.
func MovePatch(status TaskStatus) TaskPatch {
	completed := status == StatusDone
	return TaskPatch{Status: &status, Completed: &completed}
}

func validDate(v *errs, date string) {
	if date == "" {
		return
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		v.add("date", "must be a calendar date (YYYY-MM-DD)")
	}
}
