package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/model"
)

func newComponentCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "component",
		Aliases: []string{"components"},
		Short:   "Manage code components",
	}
	cmd.AddCommand(newComponentListCmd(opts), newComponentAddCmd(opts), newComponentRemoveCmd(opts))
	return cmd
}

func newComponentListCmd(opts *rootOptions) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List code components",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				components := []model.CodeComponent{}
				for _, c := range s.data.CodeComponents() {
					if tag == "" || hasTag(c.Tags, tag) {
						components = append(components, c)
					}
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, components)
				}
				t := newTable(out, "ID", "NAME", "CATEGORY", "TAGS", "PROJECT")
				for _, c := range components {
					t.row(c.ID, c.Name, orDash(c.Category), orDash(strings.Join(c.Tags, ",")), optional(c.ProjectID))
				}
				return t.flush()
			})
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only components with this tag")
	return cmd
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// readJSONFile reads a JSON document from path; "-" is stdin.
func readJSONFile(cmd *cobra.Command, path string) (json.RawMessage, error) {
	if path == "" {
		return nil, nil
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return json.RawMessage(data), nil
}

func newComponentAddCmd(opts *rootOptions) *cobra.Command {
	var in model.CodeComponentInput
	var projectID, codeFile, elementorFile string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a code component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			if projectID != "" {
				in.ProjectID = &projectID
			}
			var err error
			if in.CodeJSON, err = readJSONFile(cmd, codeFile); err != nil {
				return err
			}
			if in.ElementorData, err = readJSONFile(cmd, elementorFile); err != nil {
				return err
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				c, err := s.data.AddCodeComponent(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), c, "Created component %s (%s)", c.ID, c.Name)
			})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().StringVar(&in.Category, "category", "", "Category")
	cmd.Flags().StringSliceVar(&in.Tags, "tags", nil, "Comma-separated tags")
	cmd.Flags().StringVar(&in.PreviewImage, "preview", "", "Preview image URL")
	cmd.Flags().StringVar(&codeFile, "code", "", "JSON file with the component code (- for stdin)")
	cmd.Flags().StringVar(&elementorFile, "elementor", "", "JSON file with Elementor data")
	return cmd
}

func newComponentRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a code component",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				if err := s.data.RemoveCodeComponent(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed component %s\n", args[0])
				return nil
			})
		},
	}
}
