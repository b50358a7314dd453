package local

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eleven-am/taskdeck/internal/model"
)

// GetSettings returns the stored settings, or the defaults when none were
// ever written.
func (s *Store) GetSettings(ctx context.Context) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getSettings(ctx)
}

func (s *Store) getSettings(ctx context.Context) (model.Settings, error) {
	raw, ok, err := s.kv.Get(ctx, KeySettings)
	if err != nil {
		return model.Settings{}, err
	}
	settings := model.DefaultSettings()
	if !ok || len(raw) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return model.Settings{}, fmt.Errorf("decode %s: %w", KeySettings, err)
	}
	return settings, nil
}

func (s *Store) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.getSettings(ctx)
	if err != nil {
		return model.Settings{}, err
	}
	patch.Apply(&settings)
	settings.UpdatedAt = s.now()

	raw, err := json.Marshal(settings)
	if err != nil {
		return model.Settings{}, fmt.Errorf("encode %s: %w", KeySettings, err)
	}
	if err := s.kv.Set(ctx, KeySettings, raw); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}
