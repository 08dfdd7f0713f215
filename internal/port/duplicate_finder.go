package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// DuplicateMatch identifies another document already using a number.
type DuplicateMatch struct {
	DocumentID uuid.UUID `db:"id" json:"document_id" bson:"_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at" bson:"created_at"`
}

// DuplicateNumberFinder looks for other documents of the same type with an
// identical number. excludeDocID may be uuid.Nil.
type DuplicateNumberFinder interface {
	FindDuplicates(ctx context.Context, userID, excludeDocID uuid.UUID,
		docType domain.DocumentType, number string) ([]DuplicateMatch, error)
}
