package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/remote"
)

func newDBCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the remote database",
	}
	cmd.AddCommand(newDBInitCmd(opts), newDBStatusCmd(opts), newDBVerifyCmd(opts))
	return cmd
}

// openRemote opens the configured database and probes it.
func (o *rootOptions) openRemote(ctx context.Context) (*remote.Store, error) {
	if o.cfg.Database.URL == "" {
		return nil, fmt.Errorf("no database URL configured; use --url, DATABASE_URL or taskdeck.yaml")
	}
	store, err := remote.Open(remoteConfig(o.cfg))
	if err != nil {
		return nil, err
	}
	if err := store.TestConnection(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return store, nil
}

func newDBInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create missing tables and seed defaults",
		Long: `Creates every table, adds columns introduced by later versions and
seeds the default report templates and settings. Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			store, err := opts.openRemote(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.InitializeTables(ctx); err != nil {
				return fmt.Errorf("failed to initialize tables: %w", err)
			}
			templates, settings, err := store.SeedCounts(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Tables initialized")
			fmt.Fprintf(out, "  default report templates: %d\n", templates)
			fmt.Fprintf(out, "  settings rows:            %d\n", settings)
			return nil
		},
	}
}

type statusReport struct {
	Mode              string `json:"mode"`
	DatabaseAvailable bool   `json:"databaseAvailable"`
	DatabaseURL       bool   `json:"databaseConfigured"`
	LocalPath         string `json:"localPath"`
	Projects          int    `json:"projects"`
	Accounts          int    `json:"accounts"`
	Tasks             int    `json:"tasks"`
	EmailTemplates    int    `json:"emailTemplates"`
	CodeComponents    int    `json:"codeComponents"`
	ReportTemplates   int    `json:"reportTemplates"`
}

func newDBStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where data is loaded from",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				d := s.data
				report := statusReport{
					Mode:              d.Mode().String(),
					DatabaseAvailable: d.IsDatabaseAvailable(),
					DatabaseURL:       opts.cfg.Database.URL != "",
					LocalPath:         opts.cfg.Local.Path,
					Projects:          len(d.Projects()),
					Accounts:          len(d.Accounts()),
					Tasks:             len(d.Tasks()),
					EmailTemplates:    len(d.EmailTemplates()),
					CodeComponents:    len(d.CodeComponents()),
					ReportTemplates:   len(d.ReportTemplates()),
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, report)
				}
				fmt.Fprintf(out, "Mode:               %s\n", report.Mode)
				fmt.Fprintf(out, "Database available: %t\n", report.DatabaseAvailable)
				fmt.Fprintf(out, "Local storage:      %s\n", report.LocalPath)
				t := newTable(out, "COLLECTION", "COUNT")
				t.row("projects", fmt.Sprint(report.Projects))
				t.row("accounts", fmt.Sprint(report.Accounts))
				t.row("tasks", fmt.Sprint(report.Tasks))
				t.row("email templates", fmt.Sprint(report.EmailTemplates))
				t.row("code components", fmt.Sprint(report.CodeComponents))
				t.row("report templates", fmt.Sprint(report.ReportTemplates))
				return t.flush()
			})
		},
	}
}

func newDBVerifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify the database schema has every table and column",
		Long: `Inspects the live schema and checks that every table and column taskdeck
reads and writes exists.

Returns exit code 0 if the schema matches, 1 if anything is missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			store, err := opts.openRemote(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Verifying database schema...")
			report, err := store.Verify(ctx)
			if err != nil {
				return err
			}
			return printVerifyReport(cmd, opts, report)
		},
	}
}

func printVerifyReport(cmd *cobra.Command, opts *rootOptions, report *remote.VerifyReport) error {
	out := cmd.OutOrStdout()
	if opts.jsonOut {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Found %d tables in database\n", report.Tables)
		for _, table := range report.MissingTables {
			fmt.Fprintf(out, "  missing table %s\n", table)
		}
		tables := make([]string, 0, len(report.MissingColumns))
		for table := range report.MissingColumns {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			fmt.Fprintf(out, "  %s: missing columns %s\n", table, strings.Join(report.MissingColumns[table], ", "))
		}
	}

	if !report.OK() {
		return fmt.Errorf("schema is out of date; run 'taskdeck db init'")
	}
	if !opts.jsonOut {
		fmt.Fprintln(out, "Schema verification passed")
	}
	return nil
}
