package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type duplicateFinder struct {
	coll *mongo.Collection
}

// NewDuplicateFinder creates a DuplicateNumberFinder over the documents collection.
func NewDuplicateFinder(db *mongo.Database) port.DuplicateNumberFinder {
	return &duplicateFinder{coll: db.Collection(documentsCollection)}
}

func (f *duplicateFinder) FindDuplicates(ctx context.Context, userID, excludeDocID uuid.UUID,
	docType domain.DocumentType, number string) ([]port.DuplicateMatch, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "created_at": 1}).
		SetSort(newestFirst).
		SetLimit(5)

	cur, err := f.coll.Find(ctx, duplicateFilter(userID, excludeDocID, docType, number), opts)
	if err != nil {
		return nil, fmt.Errorf("duplicateFinder.FindDuplicates: %w", err)
	}
	defer cur.Close(ctx)

	matches := make([]port.DuplicateMatch, 0)
	if err := cur.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("duplicateFinder.FindDuplicates decode: %w", err)
	}
	return matches, nil
}

// duplicateFilter matches the user's other documents of docType carrying
// exactly number. excludeDocID is the document being edited, or uuid.Nil.
func duplicateFilter(userID, excludeDocID uuid.UUID, docType domain.DocumentType, number string) bson.M {
	return bson.M{
		"user_id":        userID,
		"doc_type":       docType,
		"details.number": number,
		"_id":            bson.M{"$ne": excludeDocID},
	}
}
