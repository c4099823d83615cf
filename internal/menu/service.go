package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	ListItems(ctx context.Context) ([]Item, error)
	CreateItem(ctx context.Context, item *Item) error
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id int64) error
	ToggleItem(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListItems(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list menu items")
		return nil, fmt.Errorf("service: failed to list menu items: %w", err)
	}

	return items, nil
}

func (s *service) CreateItem(ctx context.Context, item *Item) error {
	item.ID = 0

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		log.Error().Err(err).Str("name", item.Name).Msg("service: failed to create menu item")
		return fmt.Errorf("service: failed to create menu item: %w", err)
	}

	log.Info().Int64("menu_item_id", id).Str("name", item.Name).Msg("service: menu item created")
	return nil
}

func (s *service) UpdateItem(ctx context.Context, item *Item) error {
	err := s.repo.Update(ctx, item)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("menu_item_id", item.ID).Msg("service: menu item not found for update")
			return ErrNotFound
		}

		log.Error().Err(err).Int64("menu_item_id", item.ID).Msg("service: failed to update menu item")
		return fmt.Errorf("service: failed to update menu item %d: %w", item.ID, err)
	}

	return nil
}

// DeleteItem is idempotent: deleting an unknown id is not an error.
func (s *service) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("menu_item_id", id).Msg("service: failed to delete menu item")
		return fmt.Errorf("service: failed to delete menu item %d: %w", id, err)
	}

	return nil
}

// ToggleItem flips availability. An unknown id is silently ignored.
func (s *service) ToggleItem(ctx context.Context, id int64) error {
	found, err := s.repo.ToggleAvailability(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("menu_item_id", id).Msg("service: failed to toggle menu item")
		return fmt.Errorf("service: failed to toggle menu item %d: %w", id, err)
	}
	if !found {
		log.Debug().Int64("menu_item_id", id).Msg("service: toggle on unknown menu item ignored")
	}

	return nil
}
