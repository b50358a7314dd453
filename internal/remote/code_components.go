package remote

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

func (s *Store) ListCodeComponents(ctx context.Context) ([]CodeComponentRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Select(codeComponentColumns...).From(tableCodeComponents).OrderBy("created_at DESC")
	return selectAll[CodeComponentRow](ctx, s.db, "list", tableCodeComponents, q)
}

func (s *Store) CreateCodeComponent(ctx context.Context, in CodeComponentCreate) (*CodeComponentRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	q := psql.Insert(tableCodeComponents).
		Columns("project_id", "name", "description", "category", "tags", "code_json", "preview_image", "elementor_data").
		Values(
			in.ProjectID, in.Name, in.Description, in.Category, pq.StringArray(tags),
			squirrel.Expr("?::jsonb", in.CodeJSON.param()), in.PreviewImage,
			squirrel.Expr("?::jsonb", in.ElementorData.param()),
		).
		Suffix(returning(codeComponentColumns))
	return getOne[CodeComponentRow](ctx, s.db, "create", tableCodeComponents, q)
}

func (s *Store) UpdateCodeComponent(ctx context.Context, id int64, in CodeComponentUpdate) (*CodeComponentRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var tags interface{}
	if in.Tags != nil {
		tags = pq.StringArray(in.Tags)
	}
	q := psql.Update(tableCodeComponents).
		Set("project_id", coalesceCast("project_id", "bigint", in.ProjectID)).
		Set("name", coalesce("name", in.Name)).
		Set("description", coalesce("description", in.Description)).
		Set("category", coalesce("category", in.Category)).
		Set("tags", coalesceCast("tags", "text[]", tags)).
		Set("code_json", coalesceCast("code_json", "jsonb", in.CodeJSON.param())).
		Set("preview_image", coalesce("preview_image", in.PreviewImage)).
		Set("elementor_data", coalesceCast("elementor_data", "jsonb", in.ElementorData.param())).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(codeComponentColumns))
	return getOne[CodeComponentRow](ctx, s.db, "update", tableCodeComponents, q)
}

func (s *Store) DeleteCodeComponent(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, tableCodeComponents, id)
}
