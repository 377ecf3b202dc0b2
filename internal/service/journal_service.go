package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gmscreen/internal/domain"
	"gmscreen/internal/repository"
)

// ErrEmptyEntryTitle is returned when the journal entry title is empty after trimming.
var ErrEmptyEntryTitle = errors.New("journal entry title is required")

// JournalService manages campaign journal entries.
type JournalService interface {
	CreateEntry(ctx context.Context, userID, campaignID, title, content string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, userID, campaignID string) ([]domain.JournalEntry, error)
}

type journalService struct {
	entries   repository.JournalRepository
	campaigns CampaignService
}

func NewJournalService(entries repository.JournalRepository, campaigns CampaignService) JournalService {
	return &journalService{
		entries:   entries,
		campaigns: campaigns,
	}
}

func (s *journalService) CreateEntry(ctx context.Context, userID, campaignID, title, content string) (*domain.JournalEntry, error) {
	if _, err := s.campaigns.GetCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyEntryTitle
	}

	entry := &domain.JournalEntry{
		CampaignID: campaignID,
		Title:      title,
		Content:    content,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, userID, campaignID string) ([]domain.JournalEntry, error) {
	if _, err := s.campaigns.GetCampaign(ctx, userID, campaignID); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}
