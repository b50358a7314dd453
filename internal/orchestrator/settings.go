package orchestrator

import (
	"context"

	"github.com/eleven-am/taskdeck/internal/mapper"
	"github.com/eleven-am/taskdeck/internal/model"
)

func (o *Orchestrator) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	if err := patch.Validate(); err != nil {
		return model.Settings{}, err
	}
	s, err := mutate(ctx, o, "update settings",
		func(ctx context.Context) (model.Settings, error) {
			row, err := o.remote.UpdateSettings(ctx, mapper.SettingsPatchToRemote(patch))
			if err != nil {
				return model.Settings{}, err
			}
			return mapper.SettingsFromRow(*row), nil
		},
		func(ctx context.Context) (model.Settings, error) {
			return o.local.UpdateSettings(ctx, patch)
		},
		nil,
	)
	if err != nil {
		return model.Settings{}, err
	}

	o.mu.Lock()
	o.state.settings = s
	o.mu.Unlock()
	return s, nil
}
