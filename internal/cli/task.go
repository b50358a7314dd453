package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/internal/model"
	"github.com/eleven-am/taskdeck/internal/orchestrator"
)

func newTaskCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(
		newTaskListCmd(opts),
		newTaskAddCmd(opts),
		newTaskEditCmd(opts),
		newTaskToggleCmd(opts),
		newTaskMoveCmd(opts),
		newTaskRemoveCmd(opts),
		newTaskBoardCmd(opts),
	)
	return cmd
}

func newTaskListCmd(opts *rootOptions) *cobra.Command {
	var projectID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				var tasks []model.Task
				for _, t := range s.data.Tasks() {
					if projectID != "" && (t.ProjectID == nil || *t.ProjectID != projectID) {
						continue
					}
					if status != "" && string(t.Status) != status {
						continue
					}
					tasks = append(tasks, t)
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					if tasks == nil {
						tasks = []model.Task{}
					}
					return writeJSON(out, tasks)
				}
				t := newTable(out, "ID", "", "TITLE", "PRIORITY", "STATUS", "DATE", "PROJECT")
				for _, task := range tasks {
					check := "[ ]"
					if task.Completed {
						check = "[x]"
					}
					t.row(task.ID, check, task.Title, string(task.Priority), string(task.Status), orDash(task.Date), optional(task.ProjectID))
				}
				return t.flush()
			})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only tasks of this project")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks in this column")
	return cmd
}

func newTaskAddCmd(opts *rootOptions) *cobra.Command {
	var in model.TaskInput
	var projectID, priority, status string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = strings.Join(args, " ")
			in.Priority = model.TaskPriority(priority)
			in.Status = model.TaskStatus(status)
			if projectID != "" {
				in.ProjectID = &projectID
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				t, err := s.data.AddTask(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), t, "Created task %s (%s)", t.ID, t.Title)
			})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low, medium, high)")
	cmd.Flags().StringVar(&status, "status", "", "Column (todo, in-progress, done)")
	cmd.Flags().StringVar(&in.Date, "date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&in.EstimatedTime, "estimate", 0, "Estimated minutes")
	return cmd
}

func newTaskEditCmd(opts *rootOptions) *cobra.Command {
	var title, description, priority, date, projectID string
	var estimate, actual int

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("priority") {
				p := model.TaskPriority(priority)
				patch.Priority = &p
			}
			if flags.Changed("date") {
				patch.Date = &date
			}
			if flags.Changed("project") {
				patch.ProjectID = &projectID
			}
			if flags.Changed("estimate") {
				patch.EstimatedTime = &estimate
			}
			if flags.Changed("actual") {
				patch.ActualTime = &actual
			}
			return opts.withSession(cmd.Context(), func(s *session) error {
				t, err := s.data.EditTask(cmd.Context(), args[0], patch)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), t, "Updated task %s", t.ID)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low, medium, high)")
	cmd.Flags().StringVar(&date, "date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated minutes")
	cmd.Flags().IntVar(&actual, "actual", 0, "Actual minutes")
	return cmd
}

func (o *rootOptions) printChange(cmd *cobra.Command, change orchestrator.TaskChange) error {
	after := change.After
	return o.emit(cmd.OutOrStdout(), after, "Task %s: %s -> %s", after.ID, change.Before.Status, after.Status)
}

func newTaskToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a task between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				change, err := s.notifier.ToggleTask(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return opts.printChange(cmd, change)
			})
		},
	}
}

func newTaskMoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID STATUS",
		Short: "Move a task to a board column (todo, in-progress, done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				change, err := s.notifier.MoveTask(cmd.Context(), args[0], model.TaskStatus(args[1]))
				if err != nil {
					return err
				}
				return opts.printChange(cmd, change)
			})
		},
	}
}

func newTaskRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				if err := s.data.RemoveTask(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", args[0])
				return nil
			})
		},
	}
}

func newTaskBoardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show tasks grouped by board column",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				board := s.data.Board()
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, board)
				}
				for _, col := range board {
					fmt.Fprintf(out, "%s (%d)\n", strings.ToUpper(string(col.Status)), len(col.Tasks))
					for _, t := range col.Tasks {
						fmt.Fprintf(out, "  %-10s %-6s %s\n", t.ID, t.Priority, t.Title)
					}
				}
				return nil
			})
		},
	}
}
