package remote

import (
	"context"

	"github.com/Masterminds/squirrel"
)

func (s *Store) ListProjects(ctx context.Context) ([]ProjectRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Select(projectColumns...).From(tableProjects).OrderBy("created_at DESC")
	return selectAll[ProjectRow](ctx, s.db, "list", tableProjects, q)
}

func (s *Store) CreateProject(ctx context.Context, in ProjectCreate) (*ProjectRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Insert(tableProjects).
		Columns("name", "domain", "figma_link", "description", "status").
		Values(in.Name, in.Domain, in.FigmaLink, in.Description, in.Status).
		Suffix(returning(projectColumns))
	return getOne[ProjectRow](ctx, s.db, "create", tableProjects, q)
}

func (s *Store) UpdateProject(ctx context.Context, id int64, in ProjectUpdate) (*ProjectRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Update(tableProjects).
		Set("name", coalesce("name", in.Name)).
		Set("domain", coalesce("domain", in.Domain)).
		Set("figma_link", coalesce("figma_link", in.FigmaLink)).
		Set("description", coalesce("description", in.Description)).
		Set("status", coalesce("status", in.Status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(projectColumns))
	return getOne[ProjectRow](ctx, s.db, "update", tableProjects, q)
}

// DeleteProject relies on the foreign keys: accounts cascade, tasks and code
// components have their project_id set to NULL.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, tableProjects, id)
}
