package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/model"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(newProjectListCmd(opts), newProjectAddCmd(opts), newProjectEditCmd(opts), newProjectRemoveCmd(opts))
	return cmd
}

func newProjectListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				projects := s.data.Projects()
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, projects)
				}
				t := newTable(out, "ID", "NAME", "STATUS", "DOMAIN", "ACCOUNTS")
				for _, p := range projects {
					t.row(p.ID, p.Name, string(p.Status), orDash(p.Domain), fmt.Sprint(len(s.data.AccountsForProject(p.ID))))
				}
				return t.flush()
			})
		},
	}
}

func newProjectAddCmd(opts *rootOptions) *cobra.Command {
	var in model.ProjectInput
	var status string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			in.Status = model.ProjectStatus(status)
			return opts.withSession(cmd.Context(), func(s *session) error {
				p, err := s.data.AddProject(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), p, "Created project %s (%s)", p.ID, p.Name)
			})
		},
	}

	cmd.Flags().StringVar(&in.Domain, "domain", "", "Project domain")
	cmd.Flags().StringVar(&in.FigmaLink, "figma", "", "Figma link")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().StringVar(&status, "status", "", "Status (active, paused, completed, cancelled)")
	return cmd
}

func newProjectEditCmd(opts *rootOptions) *cobra.Command {
	var name, domain, figma, description, status string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.ProjectPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("domain") {
				patch.Domain = &domain
			}
			if flags.Changed("figma") {
				patch.FigmaLink = &figma
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("status") {
				st := model.ProjectStatus(status)
				patch.Status = &st
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				p, err := s.data.EditProject(cmd.Context(), args[0], patch)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), p, "Updated project %s", p.ID)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&domain, "domain", "", "Project domain")
	cmd.Flags().StringVar(&figma, "figma", "", "Figma link")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&status, "status", "", "Status (active, paused, completed, cancelled)")
	return cmd
}

func newProjectRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a project and its accounts",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				if err := s.data.RemoveProject(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", args[0])
				return nil
			})
		},
	}
}
