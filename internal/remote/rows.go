package remote

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	tableProjects        = "projects"
	tableAccounts        = "accounts"
	tableTasks           = "tasks"
	tableEmailTemplates  = "email_templates"
	tableCodeComponents  = "code_components"
	tableReportTemplates = "report_templates"
	tableSettings        = "settings"
)

var (
	projectColumns = []string{"id", "name", "domain", "figma_link", "description", "status", "created_at", "updated_at"}
	accountColumns = []string{"id", "project_id", "username", "password", "email", "website", "notes", "created_at"}
	taskColumns    = []string{
		"id", "project_id", "title", "description", "priority",
		"COALESCE(status, '') AS status", "completed",
		"COALESCE(to_char(date, 'YYYY-MM-DD'), '') AS date",
		"estimated_time", "actual_time", "created_at", "updated_at",
	}
	emailTemplateColumns = []string{"id", "name", "type", "subject", "content", "created_at"}
	codeComponentColumns = []string{
		"id", "project_id", "name", "description", "category", "tags",
		"code_json", "preview_image", "elementor_data", "created_at", "updated_at",
	}
	reportTemplateColumns = []string{
		"id", "name", "description", "template_data", "category",
		"is_default", "created_by", "created_at", "updated_at",
	}
	settingsColumns = []string{"id", "user_id", "language", "theme", "notifications", "custom_colors", "updated_at"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

type ProjectRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Domain      string    `db:"domain"`
	FigmaLink   string    `db:"figma_link"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type ProjectCreate struct {
	Name        string
	Domain      string
	FigmaLink   string
	Description string
	Status      string
}

// ProjectUpdate and the other *Update types are partial: nil keeps the
// stored value.
type ProjectUpdate struct {
	Name        *string
	Domain      *string
	FigmaLink   *string
	Description *string
	Status      *string
}

type AccountRow struct {
	ID        int64     `db:"id"`
	ProjectID int64     `db:"project_id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	Email     string    `db:"email"`
	Website   string    `db:"website"`
	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}

type AccountCreate struct {
	ProjectID int64
	Username  string
	Password  string
	Email     string
	Website   string
	Notes     string
}

type AccountUpdate struct {
	Username *string
	Password *string
	Email    *string
	Website  *string
	Notes    *string
}

// TaskRow.Status is empty for rows written before the column existed.
type TaskRow struct {
	ID            int64     `db:"id"`
	ProjectID     *int64    `db:"project_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Priority      string    `db:"priority"`
	Status        string    `db:"status"`
	Completed     bool      `db:"completed"`
	Date          string    `db:"date"`
	EstimatedTime int       `db:"estimated_time"`
	ActualTime    int       `db:"actual_time"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type TaskCreate struct {
	ProjectID     *int64
	Title         string
	Description   string
	Priority      string
	Status        string
	Completed     bool
	Date          string
	EstimatedTime int
	ActualTime    int
}

type TaskUpdate struct {
	ProjectID     *int64
	Title         *string
	Description   *string
	Priority      *string
	Status        *string
	Completed     *bool
	Date          *string
	EstimatedTime *int
	ActualTime    *int
}

type EmailTemplateRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	Subject   string    `db:"subject"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type EmailTemplateCreate struct {
	Name    string
	Type    string
	Subject string
	Content string
}

type EmailTemplateUpdate struct {
	Name    *string
	Type    *string
	Subject *string
	Content *string
}

type CodeComponentRow struct {
	ID            int64          `db:"id"`
	ProjectID     *int64         `db:"project_id"`
	Name          string         `db:"name"`
	Description   string         `db:"description"`
	Category      string         `db:"category"`
	Tags          pq.StringArray `db:"tags"`
	CodeJSON      JSONData       `db:"code_json"`
	PreviewImage  string         `db:"preview_image"`
	ElementorData JSONData       `db:"elementor_data"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type CodeComponentCreate struct {
	ProjectID     *int64
	Name          string
	Description   string
	Category      string
	Tags          []string
	CodeJSON      JSONData
	PreviewImage  string
	ElementorData JSONData
}

// CodeComponentUpdate leaves nil Tags and empty documents unchanged.
type CodeComponentUpdate struct {
	ProjectID     *int64
	Name          *string
	Description   *string
	Category      *string
	Tags          []string
	CodeJSON      JSONData
	PreviewImage  *string
	ElementorData JSONData
}

type ReportTemplateRow struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	TemplateData JSONData  `db:"template_data"`
	Category     string    `db:"category"`
	IsDefault    bool      `db:"is_default"`
	CreatedBy    string    `db:"created_by"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type ReportTemplateCreate struct {
	Name         string
	Description  string
	TemplateData JSONData
	Category     string
	CreatedBy    string
}

type ReportTemplateUpdate struct {
	Name         *string
	Description  *string
	TemplateData JSONData
	Category     *string
}

type SettingsRow struct {
	ID            int64     `db:"id"`
	UserID        string    `db:"user_id"`
	Language      string    `db:"language"`
	Theme         string    `db:"theme"`
	Notifications JSONData  `db:"notifications"`
	CustomColors  JSONData  `db:"custom_colors"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type SettingsUpdate struct {
	Language      *string
	Theme         *string
	Notifications JSONData
	CustomColors  JSONData
}
