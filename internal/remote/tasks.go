package remote

import (
	"context"

	"github.com/Masterminds/squirrel"
)

func (s *Store) ListTasks(ctx context.Context) ([]TaskRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Select(taskColumns...).From(tableTasks).OrderBy("created_at DESC")
	return selectAll[TaskRow](ctx, s.db, "list", tableTasks, q)
}

// CreateTask writes the date through a ::date cast so the stored value is a
// calendar date and never a timestamp.
func (s *Store) CreateTask(ctx context.Context, in TaskCreate) (*TaskRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Insert(tableTasks).
		Columns("project_id", "title", "description", "priority", "status", "completed", "date", "estimated_time", "actual_time").
		Values(
			in.ProjectID, in.Title, in.Description, in.Priority, in.Status, in.Completed,
			squirrel.Expr("NULLIF(?, '')::date", in.Date),
			in.EstimatedTime, in.ActualTime,
		).
		Suffix(returning(taskColumns))
	return getOne[TaskRow](ctx, s.db, "create", tableTasks, q)
}

// UpdateTask treats an empty date as a request to clear it.
func (s *Store) UpdateTask(ctx context.Context, id int64, in TaskUpdate) (*TaskRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Update(tableTasks).
		Set("project_id", coalesceCast("project_id", "bigint", in.ProjectID)).
		Set("title", coalesce("title", in.Title)).
		Set("description", coalesce("description", in.Description)).
		Set("priority", coalesce("priority", in.Priority)).
		Set("status", coalesceCast("status", "text", in.Status)).
		Set("completed", coalesceCast("completed", "boolean", in.Completed)).
		Set("date", squirrel.Expr("CASE WHEN ?::text IS NULL THEN date ELSE NULLIF(?, '')::date END", in.Date, in.Date)).
		Set("estimated_time", coalesceCast("estimated_time", "integer", in.EstimatedTime)).
		Set("actual_time", coalesceCast("actual_time", "integer", in.ActualTime)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(taskColumns))
	return getOne[TaskRow](ctx, s.db, "update", tableTasks, q)
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, tableTasks, id)
}
