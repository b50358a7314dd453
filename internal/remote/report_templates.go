package remote

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/eleven-am/taskdeck/internal/model"
)

// ListReportTemplates returns defaults first, then newest first.
func (s *Store) ListReportTemplates(ctx context.Context) ([]ReportTemplateRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Select(reportTemplateColumns...).From(tableReportTemplates).OrderBy("is_default DESC", "created_at DESC")
	return selectAll[ReportTemplateRow](ctx, s.db, "list", tableReportTemplates, q)
}

func (s *Store) CreateReportTemplate(ctx context.Context, in ReportTemplateCreate) (*ReportTemplateRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Insert(tableReportTemplates).
		Columns("name", "description", "template_data", "category", "is_default", "created_by").
		Values(in.Name, in.Description, squirrel.Expr("?::jsonb", in.TemplateData.param()), in.Category, false, in.CreatedBy).
		Suffix(returning(reportTemplateColumns))
	return getOne[ReportTemplateRow](ctx, s.db, "create", tableReportTemplates, q)
}

func (s *Store) UpdateReportTemplate(ctx context.Context, id int64, in ReportTemplateUpdate) (*ReportTemplateRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Update(tableReportTemplates).
		Set("name", coalesce("name", in.Name)).
		Set("description", coalesce("description", in.Description)).
		Set("template_data", coalesceCast("template_data", "jsonb", in.TemplateData.param())).
		Set("category", coalesce("category", in.Category)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(reportTemplateColumns))
	return getOne[ReportTemplateRow](ctx, s.db, "update", tableReportTemplates, q)
}

// DeleteReportTemplate refuses seeded defaults with model.ErrDefaultTemplate;
// the DELETE is never issued for them.
func (s *Store) DeleteReportTemplate(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		q := psql.Select("is_default").From(tableReportTemplates).Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE")
		isDefault, err := getOne[bool](ctx, tx, "delete", tableReportTemplates, q)
		if err != nil {
			return err
		}
		if *isDefault {
			return &Error{Op: "delete", Table: tableReportTemplates, Err: model.ErrDefaultTemplate}
		}
		return deleteByID(ctx, tx, tableReportTemplates, id)
	})
}
