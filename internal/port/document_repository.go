package port

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// DocumentRepository defines the contract for document persistence.
// Every method is scoped to the owning user.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	CreateBatch(ctx context.Context, docs []domain.Document) error
	GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error)
	// List returns documents newest first.
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Document, error)
	ListByType(ctx context.Context, userID uuid.UUID, docType domain.DocumentType) ([]domain.Document, error)
	Update(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, userID, docID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int, error)
	// ReplaceAll swaps every document the user owns for docs. Either all of
	// docs are stored and the old set is gone, or nothing changes.
	ReplaceAll(ctx context.Context, userID uuid.UUID, docs []domain.Document) (removed int, err error)
}
