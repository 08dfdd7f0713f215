package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/repository"
)

type catalogRow struct {
	UserID      uuid.UUID       `db:"user_id"`
	Kind        string          `db:"kind"`
	Records     json.RawMessage `db:"records"`
	Source      string          `db:"source"`
	SheetURL    string          `db:"sheet_url"`
	LastUpdated time.Time       `db:"last_updated"`
}

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new PostgreSQL-backed CatalogRepository.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) Get(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) (*domain.Catalog, error) {
	var row catalogRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM catalogs WHERE user_id = $1 AND kind = $2", userID, string(kind))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("catalogRepo.Get: %w", err)
	}

	c := &domain.Catalog{
		UserID:      row.UserID,
		Kind:        domain.CatalogKind(row.Kind),
		Source:      domain.CatalogSource(row.Source),
		SheetURL:    row.SheetURL,
		LastUpdated: row.LastUpdated,
	}
	if kind == domain.CatalogProducts {
		err = json.Unmarshal(row.Records, &c.Products)
	} else {
		err = json.Unmarshal(row.Records, &c.Clients)
	}
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.Get decode: %w", err)
	}
	repository.SanitizeCatalog(c)
	return c, nil
}

func (r *catalogRepo) Save(ctx context.Context, c *domain.Catalog) error {
	repository.SanitizeCatalog(c)
	c.LastUpdated = time.Now().UTC()

	var records interface{} = c.Clients
	if c.Kind == domain.CatalogProducts {
		records = c.Products
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("catalogRepo.Save encode: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO catalogs (user_id, kind, records, source, sheet_url, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, kind) DO UPDATE SET
			records = EXCLUDED.records,
			source = EXCLUDED.source,
			sheet_url = EXCLUDED.sheet_url,
			last_updated = EXCLUDED.last_updated`,
		c.UserID, string(c.Kind), json.RawMessage(payload), string(c.Source), c.SheetURL, c.LastUpdated)
	if err != nil {
		return fmt.Errorf("catalogRepo.Save: %w", err)
	}
	return nil
}

func (r *catalogRepo) Delete(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM catalogs WHERE user_id = $1 AND kind = $2", userID, string(kind))
	if err != nil {
		return fmt.Errorf("catalogRepo.Delete: %w", err)
	}
	return nil
}
