package repository

import (
	"context"

	"gmscreen/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Probe is a diagnostic, low-cost read against a collection unrelated to the
// query being attempted. It distinguishes "store unreachable or schema not
// initialized" from "query failed".
type Probe interface {
	Check(ctx context.Context) error
}
