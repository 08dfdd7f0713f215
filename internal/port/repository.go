package port

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// CatalogRepository stores one client catalog and one product catalog per user.
type CatalogRepository interface {
	// Get returns domain.ErrNotFound when the user has never saved the catalog.
	Get(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) (*domain.Catalog, error)
	Save(ctx context.Context, catalog *domain.Catalog) error
	Delete(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) error
}
