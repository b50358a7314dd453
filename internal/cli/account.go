package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/model"
)

func newAccountCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"accounts"},
		Short:   "Manage project accounts",
	}
	cmd.AddCommand(newAccountListCmd(opts), newAccountAddCmd(opts), newAccountRemoveCmd(opts))
	return cmd
}

func newAccountListCmd(opts *rootOptions) *cobra.Command {
	var projectID string
	var showPasswords bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				accounts := s.data.Accounts()
				if projectID != "" {
					accounts = s.data.AccountsForProject(projectID)
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, accounts)
				}
				t := newTable(out, "ID", "PROJECT", "WEBSITE", "USERNAME", "PASSWORD")
				for _, a := range accounts {
					password := "********"
					if showPasswords {
						password = a.Password
					}
					t.row(a.ID, a.ProjectID, a.Website, a.Username, password)
				}
				return t.flush()
			})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only accounts of this project")
	cmd.Flags().BoolVar(&showPasswords, "show-passwords", false, "Print passwords")
	return cmd
}

func newAccountAddCmd(opts *rootOptions) *cobra.Command {
	var in model.AccountInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				a, err := s.data.AddAccount(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), a, "Created account %s for %s", a.ID, a.Website)
			})
		},
	}

	cmd.Flags().StringVar(&in.ProjectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&in.Username, "username", "", "Username")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email")
	cmd.Flags().StringVar(&in.Website, "website", "", "Website")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	return cmd
}

func newAccountRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove an account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				if err := s.data.RemoveAccount(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s\n", args[0])
				return nil
			})
		},
	}
}
