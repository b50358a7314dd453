package remote

import (
	"context"

	"github.com/Masterminds/squirrel"
)

func (s *Store) ListAccounts(ctx context.Context) ([]AccountRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Select(accountColumns...).From(tableAccounts).OrderBy("created_at DESC")
	return selectAll[AccountRow](ctx, s.db, "list", tableAccounts, q)
}

func (s *Store) CreateAccount(ctx context.Context, in AccountCreate) (*AccountRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Insert(tableAccounts).
		Columns("project_id", "username", "password", "email", "website", "notes").
		Values(in.ProjectID, in.Username, in.Password, in.Email, in.Website, in.Notes).
		Suffix(returning(accountColumns))
	return getOne[AccountRow](ctx, s.db, "create", tableAccounts, q)
}

func (s *Store) UpdateAccount(ctx context.Context, id int64, in AccountUpdate) (*AccountRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Update(tableAccounts).
		Set("username", coalesce("username", in.Username)).
		Set("password", coalesce("password", in.Password)).
		Set("email", coalesce("email", in.Email)).
		Set("website", coalesce("website", in.Website)).
		Set("notes", coalesce("notes", in.Notes)).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning(accountColumns))
	return getOne[AccountRow](ctx, s.db, "update", tableAccounts, q)
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, tableAccounts, id)
}
