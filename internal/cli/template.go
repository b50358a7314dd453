package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/model"
)

func newTemplateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates"},
		Short:   "Manage report and email templates",
	}
	cmd.AddCommand(
		newTemplateListCmd(opts),
		newTemplateAddCmd(opts),
		newTemplateRemoveCmd(opts),
		newEmailTemplateCmd(opts),
	)
	return cmd
}

func newTemplateListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List report templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				templates := s.data.ReportTemplates()
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, templates)
				}
				t := newTable(out, "ID", "NAME", "CATEGORY", "LAYOUT", "FIELDS", "DEFAULT")
				for _, r := range templates {
					def := ""
					if r.IsDefault {
						def = "yes"
					}
					t.row(r.ID, r.Name, orDash(r.Category), r.Layout(), strings.Join(r.Fields(), ","), def)
				}
				return t.flush()
			})
		},
	}
}

func newTemplateAddCmd(opts *rootOptions) *cobra.Command {
	var in model.ReportTemplateInput
	var dataFile string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a report template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			data, err := readJSONFile(cmd, dataFile)
			if err != nil {
				return err
			}
			in.TemplateData = data
			if in.CreatedBy == "" {
				in.CreatedBy = "user"
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				r, err := s.data.AddReportTemplate(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), r, "Created report template %s (%s)", r.ID, r.Name)
			})
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "JSON file with the template definition (- for stdin)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().StringVar(&in.Category, "category", "", "Category")
	return cmd
}

func newTemplateRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a report template (defaults cannot be removed)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				if err := s.data.RemoveReportTemplate(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed report template %s\n", args[0])
				return nil
			})
		},
	}
}

func newEmailTemplateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Manage email templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List email templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				templates := s.data.EmailTemplates()
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, templates)
				}
				t := newTable(out, "ID", "NAME", "TYPE", "SUBJECT")
				for _, e := range templates {
					t.row(e.ID, e.Name, orDash(e.Type), e.Subject)
				}
				return t.flush()
			})
		},
	}

	var in model.EmailTemplateInput
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an email template; {{title}}, {{date}} and {{priority}} are filled in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return opts.withSession(cmd.Context(), func(s *session) error {
				e, err := s.data.AddEmailTemplate(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), e, "Created email template %s (%s)", e.ID, e.Name)
			})
		},
	}
	add.Flags().StringVar(&in.Type, "type", model.EmailTemplateTaskCompleted, "Template type")
	add.Flags().StringVar(&in.Subject, "subject", "", "Subject line")
	add.Flags().StringVar(&in.Content, "content", "", "Body text")

	rm := &cobra.Command{
		Use:   "rm ID",
		Short: "Remove an email template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				if err := s.data.RemoveEmailTemplate(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed email template %s\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}
