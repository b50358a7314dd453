package remote

import (
	"context"

	"github.com/Masterminds/squirrel"
)

func (s *Store) ListEmailTemplates(ctx context.Context) ([]EmailTemplateRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Select(emailTemplateColumns...).From(tableEmailTemplates).OrderBy("created_at DESC")
	return selectAll[EmailTemplateRow](ctx, s.db, "list", tableEmailTemplates, q)
}

func (s *Store) CreateEmailTemplate(ctx context.Context, in EmailTemplateCreate) (*EmailTemplateRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Insert(tableEmailTemplates).
		Columns("name", "type", "subject", "content").
		Values(in.Name, in.Type, in.Subject, in.Content).
		Suffix(returning(emailTemplateColumns))
	return getOne[EmailTemplateRow](ctx, s.db, "create", tableEmailTemplates, q)
}

func (s *Store) UpdateEmailTemplate(ctx context.Context, id int64, in EmailTemplateUpdate) (*EmailTemplateRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Update(tableEmailTemplates).
		Set("name", coalesce("name", in.Name)).
		Set("type", coalesce("type", in.Type)).
		Set("subject", coalesce("subject", in.Subject)).
		Set("content", coalesce("content", in.Content)).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(emailTemplateColumns))
	return getOne[EmailTemplateRow](ctx, s.db, "update", tableEmailTemplates, q)
}

func (s *Store) DeleteEmailTemplate(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, tableEmailTemplates, id)
}
