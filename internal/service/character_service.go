package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gmscreen/internal/domain"
	"gmscreen/internal/repository"
)

var (
	// ErrEmptyCharacterName is returned when the character name is empty after trimming.
	ErrEmptyCharacterName = errors.New("character name is required")
	// ErrCharacterNotFound covers missing characters and characters the user cannot see.
	ErrCharacterNotFound = errors.New("character not found")
	// ErrEmptyItemName is returned when the item name is empty after trimming.
	ErrEmptyItemName = errors.New("item name is required")
)

// CharacterService manages characters and their items. Every operation is
// authorized through the owning campaign.
type CharacterService interface {
	CreateCharacter(ctx context.Context, userID, campaignID, name string, isNPC bool, data map[string]any) (*domain.Character, error)
	ListCharacters(ctx context.Context, userID, campaignID string) ([]domain.Character, error)
	CreateItem(ctx context.Context, userID, characterID, name, description string, quantity int, properties map[string]any) (*domain.Item, error)
	ListItems(ctx context.Context, userID, characterID string) ([]domain.Item, error)
}

type characterService struct {
	characters repository.CharacterRepository
	items      repository.ItemRepository
	campaigns  CampaignService
}

func NewCharacterService(characters repository.CharacterRepository, items repository.ItemRepository, campaigns CampaignService) CharacterService {
	return &characterService{
		characters: characters,
		items:      items,
		campaigns:  campaigns,
	}
}

func (s *characterService) CreateCharacter(ctx context.Context, userID, campaignID, name string, isNPC bool, data map[string]any) (*domain.Character, error) {
	if _, err := s.campaigns.GetCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCharacterName
	}

	character := &domain.Character{
		CampaignID: campaignID,
		Name:       name,
		IsNPC:      isNPC,
		Data:       data,
	}
	if err := s.characters.Create(ctx, character); err != nil {
		return nil, fmt.Errorf("create character: %w", err)
	}
	return character, nil
}

func (s *characterService) ListCharacters(ctx context.Context, userID, campaignID string) ([]domain.Character, error) {
	if _, err := s.campaigns.GetCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}

	characters, err := s.characters.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return characters, nil
}

func (s *characterService) CreateItem(ctx context.Context, userID, characterID, name, description string, quantity int, properties map[string]any) (*domain.Item, error) {
	if _, err := s.ownedCharacter(ctx, userID, characterID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyItemName
	}

	item := &domain.Item{
		OwnerCharacterID: characterID,
		Name:             name,
		Description:      strings.TrimSpace(description),
		Quantity:         quantity,
		Properties:       properties,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (s *characterService) ListItems(ctx context.Context, userID, characterID string) ([]domain.Item, error) {
	if _, err := s.ownedCharacter(ctx, userID, characterID); err != nil {
		return nil, err
	}

	items, err := s.items.ListByCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// ownedCharacter resolves a character and verifies the chain of ownership
// from character to campaign to user.
func (s *characterService) ownedCharacter(ctx context.Context, userID, characterID string) (*domain.Character, error) {
	character, err := s.characters.Get(ctx, characterID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	if _, err := s.campaigns.GetCampaign(ctx, userID, character.CampaignID); err != nil {
		if errors.Is(err, ErrCampaignNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	return character, nil
}
