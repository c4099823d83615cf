package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	GetSettings(ctx context.Context) (StoreSettings, error)
	UpdateSettings(ctx context.Context, s StoreSettings) error
}

type service struct {
	repo     Repository
	defaults StoreSettings
}

// NewService returns a Service that falls back to defaults while no settings
// have been stored.
func NewService(repo Repository, defaults StoreSettings) Service {
	return &service{repo: repo, defaults: defaults}
}

func (s *service) GetSettings(ctx context.Context) (StoreSettings, error) {
	raw, err := s.repo.Get(ctx, StoreKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.defaults, nil
		}
		log.Error().Err(err).Msg("service: failed to read store settings")
		return StoreSettings{}, fmt.Errorf("service: failed to read store settings: %w", err)
	}

	var stored StoreSettings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Error().Err(err).Str("key", StoreKey).Msg("service: stored settings are not valid JSON")
		return StoreSettings{}, fmt.Errorf("service: failed to decode store settings: %w", err)
	}

	return stored, nil
}

func (s *service) UpdateSettings(ctx context.Context, settings StoreSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("service: failed to encode store settings: %w", err)
	}

	if err := s.repo.Upsert(ctx, StoreKey, string(raw)); err != nil {
		log.Error().Err(err).Msg("service: failed to save store settings")
		return fmt.Errorf("service: failed to save store settings: %w", err)
	}

	log.Info().Str("name", settings.Name).Bool("is_open", settings.IsOpen).Msg("service: store settings updated")
	return nil
}
