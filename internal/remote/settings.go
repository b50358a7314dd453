package remote

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/eleven-am/taskdeck/internal/model"
)

func (s *Store) GetSettings(ctx context.Context) (*SettingsRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Select(settingsColumns...).From(tableSettings).Where(squirrel.Eq{"user_id": model.DefaultUserID})
	return getOne[SettingsRow](ctx, s.db, "get", tableSettings, q)
}

func (s *Store) UpdateSettings(ctx context.Context, in SettingsUpdate) (*SettingsRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := psql.Update(tableSettings).
		Set("language", coalesce("language", in.Language)).
		Set("theme", coalesce("theme", in.Theme)).
		Set("notifications", coalesceCast("notifications", "jsonb", in.Notifications.param())).
		Set("custom_colors", coalesceCast("custom_colors", "jsonb", in.CustomColors.param())).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": model.DefaultUserID}).
		Suffix(returning(settingsColumns))
	return getOne[SettingsRow](ctx, s.db, "update", tableSettings, q)
}
