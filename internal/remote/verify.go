package remote

import (
	"context"
	"fmt"
	"sort"

	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
)

// expectedColumns is the schema InitializeTables produces, including the
// columns added by migrateStatements.
var expectedColumns = map[string][]string{
	tableProjects:        {"id", "name", "domain", "figma_link", "description", "status", "created_at", "updated_at"},
	tableAccounts:        {"id", "project_id", "username", "password", "email", "website", "notes", "created_at"},
	tableTasks:           {"id", "project_id", "title", "description", "priority", "status", "completed", "date", "estimated_time", "actual_time", "created_at", "updated_at"},
	tableEmailTemplates:  {"id", "name", "type", "subject", "content", "created_at"},
	tableCodeComponents:  {"id", "project_id", "name", "description", "category", "tags", "code_json", "preview_image", "elementor_data", "created_at", "updated_at"},
	tableSettings:        {"id", "user_id", "language", "theme", "notifications", "custom_colors", "updated_at"},
	tableReportTemplates: {"id", "name", "description", "template_data", "category", "is_default", "created_by", "created_at", "updated_at"},
}

// VerifyReport lists what the live database is missing.
type VerifyReport struct {
	Tables         int                 `json:"tables"`
	MissingTables  []string            `json:"missingTables"`
	MissingColumns map[string][]string `json:"missingColumns"`
}

func (r *VerifyReport) OK() bool {
	return len(r.MissingTables) == 0 && len(r.MissingColumns) == 0
}

// Verify inspects the public schema through Atlas and compares it with the
// tables this store reads and writes.
func (s *Store) Verify(ctx context.Context) (*VerifyReport, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	drv, err := postgres.Open(s.db.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create atlas driver: %w", err)
	}

	realm, err := drv.InspectRealm(ctx, &schema.InspectRealmOption{Schemas: []string{"public"}})
	if err != nil {
		return nil, fmt.Errorf("failed to inspect schema: %w", err)
	}

	report := CompareRealm(realm)
	s.log.Info("schema verified", "tables", report.Tables, "ok", report.OK())
	return report, nil
}

// CompareRealm checks an inspected realm against the expected tables.
func CompareRealm(realm *schema.Realm) *VerifyReport {
	present := make(map[string]map[string]bool)
	for _, sch := range realm.Schemas {
		for _, t := range sch.Tables {
			cols := make(map[string]bool, len(t.Columns))
			for _, c := range t.Columns {
				cols[c.Name] = true
			}
			present[t.Name] = cols
		}
	}

	report := &VerifyReport{
		Tables:         len(present),
		MissingColumns: make(map[string][]string),
	}

	for table, columns := range expectedColumns {
		cols, ok := present[table]
		if !ok {
			report.MissingTables = append(report.MissingTables, table)
			continue
		}
		for _, c := range columns {
			if !cols[c] {
				report.MissingColumns[table] = append(report.MissingColumns[table], c)
			}
		}
	}
	sort.Strings(report.MissingTables)
	return report
}
