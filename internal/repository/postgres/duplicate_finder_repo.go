package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type duplicateFinderRepo struct {
	db *sqlx.DB
}

// NewDuplicateFinderRepo creates a new PostgreSQL-backed DuplicateNumberFinder.
func NewDuplicateFinderRepo(db *sqlx.DB) port.DuplicateNumberFinder {
	return &duplicateFinderRepo{db: db}
}

// FindDuplicates matches doc_number exactly; the comparison is case sensitive.
func (r *duplicateFinderRepo) FindDuplicates(
	ctx context.Context,
	userID, excludeDocID uuid.UUID,
	docType domain.DocumentType, number string,
) ([]port.DuplicateMatch, error) {
	var matches []port.DuplicateMatch
	query, args := duplicateQuery(userID, excludeDocID, docType, number)
	err := r.db.SelectContext(ctx, &matches, query, args...)
	if err != nil {
		return nil, fmt.Errorf("duplicateFinderRepo.FindDuplicates: %w", err)
	}
	return matches, nil
}

const findDuplicatesQuery = `
		SELECT id, created_at
		FROM documents
		WHERE user_id = $1
		  AND id != $2
		  AND doc_type = $3
		  AND doc_number = $4
		ORDER BY created_at DESC
		LIMIT 5`

// duplicateQuery binds the lookup arguments. A nil excludeDocID matches no
// row id, so nothing is excluded.
func duplicateQuery(userID, excludeDocID uuid.UUID, docType domain.DocumentType, number string) (string, []interface{}) {
	return findDuplicatesQuery, []interface{}{userID, excludeDocID, string(docType), number}
}
