package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/repository"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

type documentRepo struct {
	coll *mongo.Collection
}

// NewDocumentRepo creates a new MongoDB-backed DocumentRepository.
func NewDocumentRepo(db *mongo.Database) port.DocumentRepository {
	return &documentRepo{coll: db.Collection(documentsCollection)}
}

func prepareForInsert(doc *domain.Document) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	repository.SanitizeDocument(doc)
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	prepareForInsert(doc)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) CreateBatch(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	batch := make([]interface{}, 0, len(docs))
	for i := range docs {
		prepareForInsert(&docs[i])
		batch = append(batch, &docs[i])
	}
	if _, err := r.coll.InsertMany(ctx, batch); err != nil {
		return fmt.Errorf("documentRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.coll.FindOne(ctx, bson.M{"_id": docID, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	repository.SanitizeDocument(&doc)
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	filter := bson.M{"user_id": userID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	opts := options.Find().SetSort(newestFirst).SetSkip(int64(offset)).SetLimit(int64(limit))
	docs, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, int(total), nil
}

func (r *documentRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Document, error) {
	docs, err := r.find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListAll: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) ListByType(ctx context.Context, userID uuid.UUID, docType domain.DocumentType) ([]domain.Document, error) {
	filter := bson.M{"user_id": userID, "doc_type": docType}
	docs, err := r.find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByType: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Document, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := make([]domain.Document, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for i := range docs {
		repository.SanitizeDocument(&docs[i])
	}
	return docs, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	repository.SanitizeDocument(doc)

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID, "user_id": doc.UserID}, doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, userID, docID uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": docID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("documentRepo.DeleteAll: %w", err)
	}
	return int(result.DeletedCount), nil
}

// ReplaceAll inserts the new set before removing the old one, so a failed
// insert leaves the previous documents in place. Standalone servers have no
// multi-document transactions.
func (r *documentRepo) ReplaceAll(ctx context.Context, userID uuid.UUID, docs []domain.Document) (int, error) {
	keep := make([]uuid.UUID, 0, len(docs))
	if len(docs) > 0 {
		batch := make([]interface{}, 0, len(docs))
		for i := range docs {
			docs[i].ID = uuid.New()
			docs[i].UserID = userID
			prepareForInsert(&docs[i])
			batch = append(batch, &docs[i])
			keep = append(keep, docs[i].ID)
		}
		if _, err := r.coll.InsertMany(ctx, batch); err != nil {
			if _, cleanupErr := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keep}}); cleanupErr != nil {
				log.Printf("documentRepo.ReplaceAll: removing partial insert for user %s: %v", userID, cleanupErr)
			}
			return 0, fmt.Errorf("documentRepo.ReplaceAll insert: %w", err)
		}
	}

	result, err := r.coll.DeleteMany(ctx, staleDocumentsFilter(userID, keep))
	if err != nil {
		return 0, fmt.Errorf("documentRepo.ReplaceAll delete: %w", err)
	}
	return int(result.DeletedCount), nil
}

// staleDocumentsFilter matches the user's documents other than keep.
func staleDocumentsFilter(userID uuid.UUID, keep []uuid.UUID) bson.M {
	return bson.M{"user_id": userID, "_id": bson.M{"$nin": keep}}
}
