package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
)

func TestDuplicateQuery_ExcludesEditedDocument(t *testing.T) {
	userID := uuid.New()
	editing := uuid.New()

	query, args := duplicateQuery(userID, editing, domain.DocTypeQuotation, "#4/2024")

	assert.Contains(t, query, "user_id = $1")
	assert.Contains(t, query, "id != $2")
	assert.Contains(t, query, "doc_type = $3")
	assert.Contains(t, query, "doc_number = $4")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	require.Len(t, args, 4)
	assert.Equal(t, userID, args[0])
	assert.Equal(t, editing, args[1])
	assert.Equal(t, "Quotation", args[2])
	assert.Equal(t, "#4/2024", args[3])
}

func TestDuplicateQuery_NoExclusion(t *testing.T) {
	_, args := duplicateQuery(uuid.New(), uuid.Nil, domain.DocTypeInvoice, "#1/2024")

	assert.Equal(t, uuid.Nil, args[1])
}
