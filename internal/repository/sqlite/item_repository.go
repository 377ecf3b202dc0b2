package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gmscreen/internal/domain"
	"gmscreen/internal/repository"
)

const createItemsTable = `
CREATE TABLE IF NOT EXISTS items (
	id TEXT PRIMARY KEY,
	owner_character_id TEXT NOT NULL REFERENCES characters(id),
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	quantity INTEGER NOT NULL DEFAULT 1,
	properties TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_character_id);
`

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createItemsTable); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	properties, err := marshalJSONColumn(item.Properties)
	if err != nil {
		return fmt.Errorf("encode item properties: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO items (id, owner_character_id, name, description, quantity, properties, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.OwnerCharacterID,
		item.Name,
		item.Description,
		item.Quantity,
		properties,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepository) ListByCharacter(ctx context.Context, characterID string) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_character_id, name, description, quantity, properties, created_at
FROM items
WHERE owner_character_id = ?
ORDER BY created_at DESC, id DESC`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var (
			item       domain.Item
			properties string
			createdAt  time.Time
		)
		if err := rows.Scan(
			&item.ID,
			&item.OwnerCharacterID,
			&item.Name,
			&item.Description,
			&item.Quantity,
			&properties,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if err := json.Unmarshal([]byte(properties), &item.Properties); err != nil {
			return nil, fmt.Errorf("decode item properties: %w", err)
		}
		item.CreatedAt = createdAt.UTC()
		items = append(items, item)
	}

	return items, rows.Err()
}
