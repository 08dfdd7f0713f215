package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/repository"
)

type catalogRepo struct {
	coll *mongo.Collection
}

// NewCatalogRepo creates a new MongoDB-backed CatalogRepository.
func NewCatalogRepo(db *mongo.Database) port.CatalogRepository {
	return &catalogRepo{coll: db.Collection(catalogsCollection)}
}

func (r *catalogRepo) Get(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) (*domain.Catalog, error) {
	var c domain.Catalog
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "kind": kind}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("catalogRepo.Get: %w", err)
	}
	repository.SanitizeCatalog(&c)
	return &c, nil
}

func (r *catalogRepo) Save(ctx context.Context, c *domain.Catalog) error {
	repository.SanitizeCatalog(c)
	if c.LastUpdated.IsZero() {
		c.LastUpdated = time.Now().UTC()
	}

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"user_id": c.UserID, "kind": c.Kind}, c,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("catalogRepo.Save: %w", err)
	}
	return nil
}

func (r *catalogRepo) Delete(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "kind": kind})
	if err != nil {
		return fmt.Errorf("catalogRepo.Delete: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
