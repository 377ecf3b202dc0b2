package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gmscreen/internal/domain"
	"gmscreen/internal/repository"
)

const createCharactersTable = `
CREATE TABLE IF NOT EXISTS characters (
	id TEXT PRIMARY KEY,
	campaign_id TEXT NOT NULL REFERENCES campaigns(id),
	name TEXT NOT NULL,
	is_npc INTEGER NOT NULL DEFAULT 0,
	data TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_characters_campaign ON characters(campaign_id);
`

type CharacterRepository struct {
	db *sql.DB
}

func NewCharacterRepository(db *sql.DB) repository.CharacterRepository {
	return &CharacterRepository{db: db}
}

func (r *CharacterRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCharactersTable); err != nil {
		return fmt.Errorf("create characters table: %w", err)
	}
	return nil
}

func (r *CharacterRepository) Create(ctx context.Context, character *domain.Character) error {
	character.ID = uuid.NewString()
	character.CreatedAt = time.Now().UTC()

	data, err := marshalJSONColumn(character.Data)
	if err != nil {
		return fmt.Errorf("encode character data: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO characters (id, campaign_id, name, is_npc, data, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		character.ID,
		character.CampaignID,
		character.Name,
		character.IsNPC,
		data,
		character.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert character: %w", err)
	}
	return nil
}

func (r *CharacterRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Character, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, campaign_id, name, is_npc, data, created_at
FROM characters
WHERE campaign_id = ?
ORDER BY created_at DESC, id DESC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()

	characters := []domain.Character{}
	for rows.Next() {
		character, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, *character)
	}

	return characters, rows.Err()
}

func (r *CharacterRepository) Get(ctx context.Context, id string) (*domain.Character, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, campaign_id, name, is_npc, data, created_at
FROM characters
WHERE id = ?`,
		id,
	)
	return scanCharacter(row)
}

func scanCharacter(scanner interface {
	Scan(dest ...any) error
}) (*domain.Character, error) {
	var (
		character domain.Character
		data      string
		createdAt time.Time
	)
	if err := scanner.Scan(
		&character.ID,
		&character.CampaignID,
		&character.Name,
		&character.IsNPC,
		&data,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("character not found")
		}
		return nil, fmt.Errorf("scan character: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &character.Data); err != nil {
		return nil, fmt.Errorf("decode character data: %w", err)
	}
	character.CreatedAt = createdAt.UTC()
	return &character, nil
}

func marshalJSONColumn(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
